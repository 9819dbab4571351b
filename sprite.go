package rowan

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// minScale is the smallest allowed sprite scale. SetScale clamps to this so
// a zero or negative scale can never produce degenerate hitbox geometry.
const minScale = 0.1

// Sprite couples a frame atlas, an animation player, a transform, simple
// velocity/acceleration physics, and a hitbox into one addressable entity.
//
// Position uses sprite-center semantics and is the single source of truth;
// the draw rectangle is derived from it (with the center truncated to whole
// pixels) and never authoritative. Rotation, scale, and flips are applied to
// the rendered copy of the current frame only; atlas frames are never
// modified.
type Sprite struct {
	atlas  *Atlas
	player *Player

	pos      cp.Vector
	rotation float64 // degrees, normalized to [0, 360)
	scale    float64
	flipX    bool
	flipY    bool
	mirrored bool

	// Velocity and Acceleration are integrated by Update with symplectic
	// Euler (velocity first, then position). Public so hosts can steer
	// directly, matching the rest of the movement helpers.
	Velocity     cp.Vector
	Acceleration cp.Vector

	currentFrame int // atlas index of the frame to render

	drawRect Rect // derived unrotated bounds, kept in sync with pos

	// Hitbox configuration. Exactly one shape is active; switching shapes
	// resets the other shape's parameters.
	hitboxShape   HitboxShape
	customW       float64
	customH       float64
	hasCustomSize bool
	offsetX       int
	offsetY       int
	radius        float64
}

// NewSprite creates a sprite showing atlas frame 0, centered at (x, y).
// Panics if atlas is nil.
func NewSprite(atlas *Atlas, x, y float64) *Sprite {
	if atlas == nil {
		panic("rowan: sprite atlas is nil")
	}
	s := &Sprite{
		atlas:  atlas,
		player: NewPlayer(),
		pos:    cp.Vector{X: x, Y: y},
		scale:  1.0,
	}
	s.syncDerived()
	return s
}

// Atlas returns the sprite's frame atlas.
func (s *Sprite) Atlas() *Atlas { return s.atlas }

// Animation returns the sprite's animation player for direct control
// (Stop, Pause, Resume, progress queries, and so on).
func (s *Sprite) Animation() *Player { return s.player }

// AddAnimation registers a named clip over atlas frame indices. Indices
// outside the atlas bound are dropped with a warning; the clip is created
// from the valid subset. Returns ErrInvalidClip if no valid index remains
// (or if fps is not positive).
func (s *Sprite) AddAnimation(name string, frames []int, fps float64, loop bool) error {
	valid := make([]int, 0, len(frames))
	var dropped []int
	for _, f := range frames {
		if f >= 0 && f < s.atlas.FrameCount() {
			valid = append(valid, f)
		} else {
			dropped = append(dropped, f)
		}
	}
	if len(dropped) > 0 {
		logger.Warn("invalid frame indices dropped",
			"animation", name, "indices", dropped, "atlasFrames", s.atlas.FrameCount())
	}

	clip, err := NewClip(name, valid, fps, loop)
	if err != nil {
		return err
	}
	return s.player.AddClip(clip)
}

// Play starts the named animation. See Player.Play for the idempotence
// rules; returns false if the animation is not registered.
func (s *Sprite) Play(name string, restart bool) bool {
	if !s.player.Play(name, restart) {
		return false
	}
	// Show the clip's current frame right away rather than waiting for the
	// next Update.
	if clip := s.player.Current(); clip != nil {
		s.currentFrame = clip.FrameAt(s.player.FrameIndex())
	}
	return true
}

// Update advances the animation, integrates velocity and position, and
// refreshes the derived draw rectangle. Call once per tick.
func (s *Sprite) Update(dt float64) {
	s.player.Advance(dt)
	if clip := s.player.Current(); clip != nil {
		idx := s.player.FrameIndex()
		if idx >= 0 && idx < clip.FrameCount() {
			atlasIndex := clip.FrameAt(idx)
			if atlasIndex >= 0 && atlasIndex < s.atlas.FrameCount() {
				s.currentFrame = atlasIndex
			}
		}
	}

	s.Velocity = s.Velocity.Add(s.Acceleration.Mult(dt))
	s.pos = s.pos.Add(s.Velocity.Mult(dt))

	s.syncDerived()
}

// syncDerived recomputes the draw rectangle from the truncated center
// position. The same truncation feeds hitbox corner derivation so drawing
// and collision always agree pixel for pixel.
func (s *Sprite) syncDerived() {
	w := float64(s.atlas.FrameWidth()) * s.scale
	h := float64(s.atlas.FrameHeight()) * s.scale
	cx, cy := s.renderCenter()
	s.drawRect = Rect{
		X:      float64(cx) - w/2,
		Y:      float64(cy) - h/2,
		Width:  w,
		Height: h,
	}
}

// renderCenter returns the truncated center pixel used for both drawing and
// hitbox derivation. Truncation (not rounding) is deliberate: it matches the
// integer pixel the frame is blitted at.
func (s *Sprite) renderCenter() (int, int) {
	return int(s.pos.X), int(s.pos.Y)
}

// --- Position & movement ---

// X returns the horizontal center coordinate.
func (s *Sprite) X() float64 { return s.pos.X }

// Y returns the vertical center coordinate.
func (s *Sprite) Y() float64 { return s.pos.Y }

// Position returns the center coordinates.
func (s *Sprite) Position() (x, y float64) { return s.pos.X, s.pos.Y }

// SetX sets the horizontal center coordinate and resynchronizes the derived
// rectangles immediately, so collision queries made before the next Update
// already see the new position.
func (s *Sprite) SetX(x float64) {
	s.pos.X = x
	s.syncDerived()
}

// SetY sets the vertical center coordinate. Same immediate-sync semantics
// as SetX.
func (s *Sprite) SetY(y float64) {
	s.pos.Y = y
	s.syncDerived()
}

// SetPosition teleports the sprite center to (x, y).
func (s *Sprite) SetPosition(x, y float64) {
	s.pos = cp.Vector{X: x, Y: y}
	s.syncDerived()
}

// Move shifts the sprite by (dx, dy).
func (s *Sprite) Move(dx, dy float64) {
	s.pos = s.pos.Add(cp.Vector{X: dx, Y: dy})
	s.syncDerived()
}

// MoveTo teleports the sprite to (x, y). Use MoveToward for gradual motion.
func (s *Sprite) MoveTo(x, y float64) {
	s.SetPosition(x, y)
}

// MoveToward points the sprite's velocity at (x, y) with the given speed.
// It does not stop at the destination; callers detect arrival themselves
// (for example with DistanceToPoint). No-op if already exactly there.
func (s *Sprite) MoveToward(x, y, speed float64) {
	delta := cp.Vector{X: x - s.pos.X, Y: y - s.pos.Y}
	if delta.Length() == 0 {
		return
	}
	s.Velocity = delta.Normalize().Mult(speed)
}

// --- Rotation, scale, flipping ---

// Rotation returns the rotation in degrees, in [0, 360).
func (s *Sprite) Rotation() float64 { return s.rotation }

// SetRotation sets the rotation in degrees, normalized to [0, 360).
// Positive rotation is visually counter-clockwise.
func (s *Sprite) SetRotation(degrees float64) {
	s.rotation = normalizeDegrees(degrees)
}

// Rotate adds to the current rotation.
func (s *Sprite) Rotate(degrees float64) {
	s.SetRotation(s.rotation + degrees)
}

// RotateToward rotates the sprite to face the point (x, y).
func (s *Sprite) RotateToward(x, y float64) {
	dx := x - s.pos.X
	dy := y - s.pos.Y
	s.SetRotation(math.Atan2(-dy, dx) * 180 / math.Pi)
}

// Scale returns the uniform scale factor.
func (s *Sprite) Scale() float64 { return s.scale }

// SetScale sets the uniform scale factor, clamped to a minimum of 0.1.
func (s *Sprite) SetScale(scale float64) {
	s.scale = math.Max(minScale, scale)
	s.syncDerived()
}

// SetFlip sets the explicit horizontal and vertical flip flags.
func (s *Sprite) SetFlip(flipX, flipY bool) {
	s.flipX = flipX
	s.flipY = flipY
}

// FlipX reports the explicit horizontal flip flag.
func (s *Sprite) FlipX() bool { return s.flipX }

// FlipY reports the explicit vertical flip flag.
func (s *Sprite) FlipY() bool { return s.flipY }

// SetMirror sets horizontal mirroring, independent of the explicit flip
// flags. The rendered frame is flipped horizontally when either the mirror
// flag or the explicit flip-x flag is set.
func (s *Sprite) SetMirror(mirrored bool) {
	s.mirrored = mirrored
}

// Mirrored reports the mirror flag.
func (s *Sprite) Mirrored() bool { return s.mirrored }

// effectiveFlip resolves the rendered flip state: mirror OR'd with the
// explicit flip-x flag, and the explicit flip-y flag.
func (s *Sprite) effectiveFlip() (flipX, flipY bool) {
	return s.flipX || s.mirrored, s.flipY
}

// --- Queries ---

// CurrentFrame returns the atlas index of the frame currently rendered.
func (s *Sprite) CurrentFrame() int { return s.currentFrame }

// Frame returns the image of the frame currently rendered.
func (s *Sprite) Frame() *ebiten.Image {
	return s.atlas.Frame(s.currentFrame)
}

// Bounds returns the derived unrotated draw rectangle.
func (s *Sprite) Bounds() Rect { return s.drawRect }

// DistanceTo returns the distance to another sprite, measured between
// truncated centers, the same pixel positions collision uses.
func (s *Sprite) DistanceTo(other *Sprite) float64 {
	ax, ay := s.renderCenter()
	bx, by := other.renderCenter()
	return math.Hypot(float64(bx-ax), float64(by-ay))
}

// DistanceToPoint returns the distance from the truncated center to (x, y).
func (s *Sprite) DistanceToPoint(x, y float64) float64 {
	cx, cy := s.renderCenter()
	return math.Hypot(x-float64(cx), y-float64(cy))
}

// AngleTo returns the angle in degrees toward another sprite, measured
// between truncated centers. 0 degrees is to the right, angles increase
// counter-clockwise.
func (s *Sprite) AngleTo(other *Sprite) float64 {
	ax, ay := s.renderCenter()
	bx, by := other.renderCenter()
	return math.Atan2(float64(ay-by), float64(bx-ax)) * 180 / math.Pi
}

// OnScreen reports whether the sprite's draw rectangle intersects bounds.
func (s *Sprite) OnScreen(bounds Rect) bool {
	return s.drawRect.Intersects(bounds)
}

// Wrap teleports the sprite to the opposite edge of bounds once its draw
// rectangle has fully left the area.
func (s *Sprite) Wrap(bounds Rect) {
	r := s.drawRect
	if r.X+r.Width < bounds.X {
		r.X = bounds.X + bounds.Width
	} else if r.X > bounds.X+bounds.Width {
		r.X = bounds.X - r.Width
	}
	if r.Y+r.Height < bounds.Y {
		r.Y = bounds.Y + bounds.Height
	} else if r.Y > bounds.Y+bounds.Height {
		r.Y = bounds.Y - r.Height
	}
	s.SetPosition(r.X+r.Width/2, r.Y+r.Height/2)
}

// --- Drawing ---

// Draw renders the current frame with the sprite's transform applied to the
// rendered copy only: scale, then mirror/flip, then rotation, blitted
// centered at the truncated position.
func (s *Sprite) Draw(dst *ebiten.Image) {
	s.DrawOffset(dst, 0, 0)
}

// DrawOffset renders like Draw, shifted by (ox, oy), typically a camera
// offset.
func (s *Sprite) DrawOffset(dst *ebiten.Image, ox, oy float64) {
	frame := s.atlas.Frame(s.currentFrame)
	if frame == nil {
		return
	}

	w := float64(s.atlas.FrameWidth())
	h := float64(s.atlas.FrameHeight())

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-w/2, -h/2)

	sx, sy := s.scale, s.scale
	flipX, flipY := s.effectiveFlip()
	if flipX {
		sx = -sx
	}
	if flipY {
		sy = -sy
	}
	op.GeoM.Scale(sx, sy)

	if s.rotation != 0 {
		// Negated: positive rotation is visually counter-clockwise in a
		// Y-down coordinate system.
		op.GeoM.Rotate(-s.rotation * math.Pi / 180)
	}

	cx, cy := s.renderCenter()
	op.GeoM.Translate(float64(cx)+ox, float64(cy)+oy)

	dst.DrawImage(frame, &op)
}

// normalizeDegrees maps an angle into [0, 360).
func normalizeDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	return d
}
