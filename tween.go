package rowan

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 properties on a Sprite simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation) and call Update(dt) each frame; values are applied through
// the sprite's setters so derived state stays in sync.
//
// There is no global tween manager; users call Update themselves.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	apply  func(values [2]float64)
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values to the
// target sprite. Sets Done once every tween has finished.
func (g *TweenGroup) Update(dt float32) {
	if g.Done || g.apply == nil {
		return
	}

	var values [2]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(values)
	g.Done = allDone
}

// TweenPosition creates a TweenGroup that moves the sprite center to the
// given coordinates over the specified duration using the easing function.
func TweenPosition(s *Sprite, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(s.X()), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(s.Y()), float32(toY), duration, fn)
	g.apply = func(v [2]float64) { s.SetPosition(v[0], v[1]) }
	return g
}

// TweenScale creates a TweenGroup that animates the sprite's scale to the
// given value over the specified duration using the easing function.
func TweenScale(s *Sprite, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(s.Scale()), float32(to), duration, fn)
	g.apply = func(v [2]float64) { s.SetScale(v[0]) }
	return g
}

// TweenRotation creates a TweenGroup that animates the sprite's rotation to
// the target angle in degrees over the specified duration.
func TweenRotation(s *Sprite, toDegrees float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(s.Rotation()), float32(toDegrees), duration, fn)
	g.apply = func(v [2]float64) { s.SetRotation(v[0]) }
	return g
}
