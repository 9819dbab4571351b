package rowan

import "github.com/jakecoffman/cp"

// Body is a minimal physics body for sprites: mass, gravity, friction, air
// resistance, and bouncing. It accumulates forces into an acceleration,
// integrates on Step, and returns the displacement for the caller to apply
// (usually via Body.Move). It is intentionally not a rigid-body solver.
type Body struct {
	Mass    float64
	Gravity float64
	// Friction damps horizontal velocity while OnGround (0 = full stop,
	// 1 = no friction).
	Friction float64
	// AirResistance damps velocity while airborne (1 = no damping).
	AirResistance float64
	// BounceFactor scales velocity retained after Bounce, in [0, 1].
	BounceFactor float64

	Velocity cp.Vector
	OnGround bool

	accel cp.Vector
}

// NewBody creates a body with the given mass and gravity and the usual
// defaults for friction, air resistance, and bounce.
func NewBody(mass, gravity float64) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Mass:          mass,
		Gravity:       gravity,
		Friction:      0.8,
		AirResistance: 0.99,
		BounceFactor:  0.7,
	}
}

// ApplyForce adds a force for the next Step; acceleration = force / mass.
func (b *Body) ApplyForce(force cp.Vector) {
	b.accel = b.accel.Add(force.Mult(1 / b.Mass))
}

// Step integrates one tick and returns the resulting displacement.
// Accumulated forces are consumed; gravity is applied unless OnGround.
func (b *Body) Step(dt float64) cp.Vector {
	if !b.OnGround {
		b.accel.Y += b.Gravity
	}

	b.Velocity = b.Velocity.Add(b.accel.Mult(dt))

	if b.OnGround {
		b.Velocity.X *= b.Friction
	} else {
		b.Velocity = b.Velocity.Mult(b.AirResistance)
	}

	b.accel = cp.Vector{}
	return b.Velocity.Mult(dt)
}

// Move steps the body and applies the displacement to the sprite.
func (b *Body) Move(s *Sprite, dt float64) {
	d := b.Step(dt)
	s.Move(d.X, d.Y)
}

// Bounce reflects the velocity off a surface with the given normal and
// scales it by BounceFactor. The normal need not be exactly unit length,
// but reflections are only physical when it is.
func (b *Body) Bounce(normal cp.Vector) {
	dot := b.Velocity.Dot(normal)
	b.Velocity = b.Velocity.Sub(normal.Mult(2 * dot)).Mult(b.BounceFactor)
}

// SetFriction sets the ground friction factor, clamped to [0, 1].
func (b *Body) SetFriction(friction float64) {
	b.Friction = clamp01(friction)
}

// SetBounceFactor sets the restitution factor, clamped to [0, 1].
func (b *Body) SetBounceFactor(factor float64) {
	b.BounceFactor = clamp01(factor)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
