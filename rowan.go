package rowan

import "github.com/hajimehoshi/ebiten/v2"

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// HitboxShape selects which collision geometry a sprite uses.
// Exactly one shape is active at a time; switching shapes resets the
// parameters of the shape being switched away from.
type HitboxShape uint8

const (
	HitboxRect   HitboxShape = iota // rectangle (axis-aligned or rotated with the sprite)
	HitboxCircle                    // circle of a fixed radius
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
	MouseButtonRight                     // secondary (right) mouse button

	mouseButtonCount = 3
)

// EventType identifies a kind of input event.
type EventType uint8

const (
	EventKeyDown   EventType = iota // a recognized key transitioned to pressed
	EventKeyUp                      // a recognized key transitioned to released
	EventMouseDown                  // a mouse button transitioned to pressed
	EventMouseUp                    // a mouse button transitioned to released
	EventMouseMove                  // the cursor position changed since last tick
	EventQuit                       // the game loop was asked to stop
)

// Event is a fixed tagged input event. Only the fields relevant to Type are
// meaningful: Key for key events, Button for mouse button events, X and Y for
// all mouse events. Quit events carry no data.
type Event struct {
	Type   EventType
	Key    Key
	Button MouseButton
	X, Y   int
}

// Key identifies a key from the fixed recognized key set.
type Key uint8

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeySpace
	KeyEnter
	KeyEscape
	KeyShift
	KeyControl
	KeyAlt
	KeyTab
	KeyBackspace
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	keyCount = iota
)

// keyToEbiten maps each recognized Key to the device key polled for it.
// Index order must match the Key constant order above.
var keyToEbiten = [keyCount]ebiten.Key{
	ebiten.KeyArrowLeft,
	ebiten.KeyArrowRight,
	ebiten.KeyArrowUp,
	ebiten.KeyArrowDown,
	ebiten.KeySpace,
	ebiten.KeyEnter,
	ebiten.KeyEscape,
	ebiten.KeyShiftLeft,
	ebiten.KeyControlLeft,
	ebiten.KeyAltLeft,
	ebiten.KeyTab,
	ebiten.KeyBackspace,
	ebiten.KeyF1,
	ebiten.KeyF2,
	ebiten.KeyF3,
	ebiten.KeyF4,
	ebiten.KeyF5,
	ebiten.KeyF6,
	ebiten.KeyF7,
	ebiten.KeyF8,
	ebiten.KeyF9,
	ebiten.KeyF10,
	ebiten.KeyF11,
	ebiten.KeyF12,
	ebiten.KeyA,
	ebiten.KeyB,
	ebiten.KeyC,
	ebiten.KeyD,
	ebiten.KeyE,
	ebiten.KeyF,
	ebiten.KeyG,
	ebiten.KeyH,
	ebiten.KeyI,
	ebiten.KeyJ,
	ebiten.KeyK,
	ebiten.KeyL,
	ebiten.KeyM,
	ebiten.KeyN,
	ebiten.KeyO,
	ebiten.KeyP,
	ebiten.KeyQ,
	ebiten.KeyR,
	ebiten.KeyS,
	ebiten.KeyT,
	ebiten.KeyU,
	ebiten.KeyV,
	ebiten.KeyW,
	ebiten.KeyX,
	ebiten.KeyY,
	ebiten.KeyZ,
	ebiten.KeyDigit0,
	ebiten.KeyDigit1,
	ebiten.KeyDigit2,
	ebiten.KeyDigit3,
	ebiten.KeyDigit4,
	ebiten.KeyDigit5,
	ebiten.KeyDigit6,
	ebiten.KeyDigit7,
	ebiten.KeyDigit8,
	ebiten.KeyDigit9,
}
