package rowan

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// Atlas holds the individual frames sliced out of a single sprite sheet.
// Frames are extracted once at construction in row-major order (left to
// right, top to bottom) using a fixed per-frame pixel size. An Atlas is
// immutable after construction and may be shared read-only by any number
// of sprites.
type Atlas struct {
	frames []*ebiten.Image
	frameW int
	frameH int
	cols   int
	rows   int
}

// NewAtlas slices sheet into frames of frameW x frameH pixels.
// Loading and decoding the sheet image is the caller's job.
//
// The frame count is (sheet width / frameW) * (sheet height / frameH) with
// integer division; trailing pixels that don't fill a whole frame are
// ignored. Returns an error if the frame size is non-positive or larger
// than the sheet in either dimension.
func NewAtlas(sheet *ebiten.Image, frameW, frameH int) (*Atlas, error) {
	if sheet == nil {
		return nil, fmt.Errorf("rowan: atlas sheet is nil")
	}
	if frameW <= 0 || frameH <= 0 {
		return nil, fmt.Errorf("rowan: atlas frame size %dx%d must be positive", frameW, frameH)
	}

	bounds := sheet.Bounds()
	cols := bounds.Dx() / frameW
	rows := bounds.Dy() / frameH
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("rowan: atlas frame size %dx%d exceeds sheet size %dx%d",
			frameW, frameH, bounds.Dx(), bounds.Dy())
	}

	a := &Atlas{
		frames: make([]*ebiten.Image, 0, cols*rows),
		frameW: frameW,
		frameH: frameH,
		cols:   cols,
		rows:   rows,
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := bounds.Min.X + col*frameW
			y := bounds.Min.Y + row*frameH
			sub := sheet.SubImage(image.Rect(x, y, x+frameW, y+frameH)).(*ebiten.Image)
			a.frames = append(a.frames, sub)
		}
	}
	return a, nil
}

// FrameCount returns the number of frames in the atlas.
func (a *Atlas) FrameCount() int {
	return len(a.frames)
}

// Frame returns the frame image at the given row-major index.
// Returns nil for an out-of-range index.
func (a *Atlas) Frame(index int) *ebiten.Image {
	if index < 0 || index >= len(a.frames) {
		return nil
	}
	return a.frames[index]
}

// FrameWidth returns the per-frame pixel width.
func (a *Atlas) FrameWidth() int {
	return a.frameW
}

// FrameHeight returns the per-frame pixel height.
func (a *Atlas) FrameHeight() int {
	return a.frameH
}

// Columns returns the number of frames per sheet row.
func (a *Atlas) Columns() int {
	return a.cols
}

// Rows returns the number of frame rows in the sheet.
func (a *Atlas) Rows() int {
	return a.rows
}
