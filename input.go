package rowan

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// deviceSnapshot is the raw device state for one tick: which recognized keys
// and mouse buttons are down, plus the cursor position.
type deviceSnapshot struct {
	keys   [keyCount]bool
	mouse  [mouseButtonCount]bool
	mouseX int
	mouseY int
}

// readDeviceSnapshot polls the current device state.
func readDeviceSnapshot() deviceSnapshot {
	var snap deviceSnapshot
	for k := Key(0); k < keyCount; k++ {
		snap.keys[k] = ebiten.IsKeyPressed(keyToEbiten[k])
	}
	snap.mouse[MouseButtonLeft] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	snap.mouse[MouseButtonMiddle] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	snap.mouse[MouseButtonRight] = ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	snap.mouseX, snap.mouseY = ebiten.CursorPosition()
	return snap
}

// Input tracks edge-detected key and mouse state over the fixed recognized
// key set. It is a pure diff of two consecutive device snapshots, refreshed
// once per tick by the owning Game; there is no global input state.
type Input struct {
	current  deviceSnapshot
	previous deviceSnapshot
	events   []Event
	ticked   bool
}

// NewInput creates an input tracker with no state recorded yet.
func NewInput() *Input {
	return &Input{}
}

// refresh replaces the previous snapshot with the current one, installs the
// new snapshot, and rebuilds the per-tick event queue from the diff.
func (in *Input) refresh(snap deviceSnapshot) {
	in.previous = in.current
	in.current = snap
	in.events = in.events[:0]

	for k := Key(0); k < keyCount; k++ {
		switch {
		case in.current.keys[k] && !in.previous.keys[k]:
			in.events = append(in.events, Event{Type: EventKeyDown, Key: k})
		case !in.current.keys[k] && in.previous.keys[k]:
			in.events = append(in.events, Event{Type: EventKeyUp, Key: k})
		}
	}
	for b := MouseButton(0); b < mouseButtonCount; b++ {
		switch {
		case in.current.mouse[b] && !in.previous.mouse[b]:
			in.events = append(in.events, Event{
				Type: EventMouseDown, Button: b, X: in.current.mouseX, Y: in.current.mouseY,
			})
		case !in.current.mouse[b] && in.previous.mouse[b]:
			in.events = append(in.events, Event{
				Type: EventMouseUp, Button: b, X: in.current.mouseX, Y: in.current.mouseY,
			})
		}
	}
	if in.ticked && (in.current.mouseX != in.previous.mouseX || in.current.mouseY != in.previous.mouseY) {
		in.events = append(in.events, Event{
			Type: EventMouseMove, X: in.current.mouseX, Y: in.current.mouseY,
		})
	}
	in.ticked = true
}

// Pressed reports whether the key is currently held down.
func (in *Input) Pressed(k Key) bool {
	return k < keyCount && in.current.keys[k]
}

// JustPressed reports whether the key went down this tick.
func (in *Input) JustPressed(k Key) bool {
	return k < keyCount && in.current.keys[k] && !in.previous.keys[k]
}

// JustReleased reports whether the key went up this tick.
func (in *Input) JustReleased(k Key) bool {
	return k < keyCount && !in.current.keys[k] && in.previous.keys[k]
}

// MouseDown reports whether the mouse button is currently held down.
func (in *Input) MouseDown(b MouseButton) bool {
	return b < mouseButtonCount && in.current.mouse[b]
}

// MouseJustPressed reports whether the mouse button went down this tick.
func (in *Input) MouseJustPressed(b MouseButton) bool {
	return b < mouseButtonCount && in.current.mouse[b] && !in.previous.mouse[b]
}

// MouseJustReleased reports whether the mouse button went up this tick.
func (in *Input) MouseJustReleased(b MouseButton) bool {
	return b < mouseButtonCount && !in.current.mouse[b] && in.previous.mouse[b]
}

// MousePosition returns the cursor position from the current snapshot.
func (in *Input) MousePosition() (x, y int) {
	return in.current.mouseX, in.current.mouseY
}

// Events returns the tagged events generated by this tick's snapshot diff.
// The slice is reused; it is only valid until the next tick.
func (in *Input) Events() []Event {
	return in.events
}
