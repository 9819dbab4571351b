package rowan

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	done   bool
}

// Camera tracks a viewport offset into the world, optionally following a
// sprite with exponential smoothing. It produces an integer pixel offset
// that callers pass to Sprite.DrawOffset.
type Camera struct {
	// X and Y are the world coordinates of the viewport's top-left corner.
	X, Y float64
	// Width and Height are the viewport dimensions in pixels.
	Width, Height int
	// FollowSpeed controls smoothing: higher converges faster. Only used
	// with smooth following.
	FollowSpeed float64

	target *Sprite
	smooth bool

	scroll *scrollAnim
}

// NewCamera creates a camera for a viewport of the given size.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Width:       width,
		Height:      height,
		FollowSpeed: 5.0,
	}
}

// Follow makes the camera track a sprite, centering it in the viewport.
// With smooth on, the camera eases toward the target each Update; otherwise
// it snaps. Following cancels any active ScrollTo.
func (c *Camera) Follow(target *Sprite, smooth bool) {
	c.target = target
	c.smooth = smooth
	c.scroll = nil
}

// Unfollow stops tracking the current target.
func (c *Camera) Unfollow() {
	c.target = nil
}

// ScrollTo animates the camera's top-left corner to (x, y) over duration
// seconds. Overrides any follow target until it completes.
func (c *Camera) ScrollTo(x, y float64, duration float32, fn ease.TweenFunc) {
	c.scroll = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, fn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, fn),
	}
}

// Update advances scrolling or following by dt seconds.
func (c *Camera) Update(dt float64) {
	if c.scroll != nil && !c.scroll.done {
		x, doneX := c.scroll.tweenX.Update(float32(dt))
		y, doneY := c.scroll.tweenY.Update(float32(dt))
		c.X = float64(x)
		c.Y = float64(y)
		if doneX && doneY {
			c.scroll.done = true
		}
		return
	}

	if c.target == nil {
		return
	}
	tx := c.target.X() - float64(c.Width)/2
	ty := c.target.Y() - float64(c.Height)/2
	if c.smooth {
		c.X += (tx - c.X) * c.FollowSpeed * dt
		c.Y += (ty - c.Y) * c.FollowSpeed * dt
	} else {
		c.X = tx
		c.Y = ty
	}
}

// Offset returns the integer draw offset that shifts world coordinates into
// this camera's view.
func (c *Camera) Offset() (x, y float64) {
	return float64(int(-c.X)), float64(int(-c.Y))
}
