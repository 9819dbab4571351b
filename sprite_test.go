package rowan

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func testAtlas(t *testing.T, frameW, frameH, frames int) *Atlas {
	t.Helper()
	sheet := ebiten.NewImage(frameW*frames, frameH)
	a, err := NewAtlas(sheet, frameW, frameH)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func assertNear(t *testing.T, got, want, tolerance float64, label string) {
	t.Helper()
	if math.Abs(got-want) > tolerance {
		t.Errorf("%s = %v, want ~%v", label, got, want)
	}
}

// --- Construction ---

func TestNewSpritePanicsOnNilAtlas(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewSprite(nil, ...) did not panic")
		}
	}()
	NewSprite(nil, 0, 0)
}

func TestNewSpriteDefaults(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 4), 100, 50)
	if x, y := s.Position(); x != 100 || y != 50 {
		t.Errorf("Position() = (%v, %v), want (100, 50)", x, y)
	}
	if s.Scale() != 1 {
		t.Errorf("Scale() = %v, want 1", s.Scale())
	}
	if s.Rotation() != 0 {
		t.Errorf("Rotation() = %v, want 0", s.Rotation())
	}
	if s.HitboxShape() != HitboxRect {
		t.Errorf("HitboxShape() = %v, want HitboxRect", s.HitboxShape())
	}
}

// --- Derived state sync ---

// Position setters must sync the draw rect immediately so collision checks
// between setter and the next Update see current geometry.
func TestSetPositionSyncsBoundsImmediately(t *testing.T) {
	s := NewSprite(testAtlas(t, 64, 64, 2), 0, 0)

	s.SetX(100)
	s.SetY(80)
	b := s.Bounds()
	// Center (100, 80), 64x64 frame: top-left at (68, 48).
	if b.X != 68 || b.Y != 48 {
		t.Errorf("Bounds() origin = (%v, %v), want (68, 48)", b.X, b.Y)
	}
	if b.Width != 64 || b.Height != 64 {
		t.Errorf("Bounds() size = %vx%v, want 64x64", b.Width, b.Height)
	}
}

// Fractional positions truncate toward zero, matching the draw placement.
func TestPositionTruncation(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 2), 10.9, 10.9)
	b := s.Bounds()
	// Truncated center (10, 10), so top-left is (-6, -6).
	if b.X != -6 || b.Y != -6 {
		t.Errorf("Bounds() origin = (%v, %v), want (-6, -6)", b.X, b.Y)
	}
}

func TestScaleAffectsBounds(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 2), 0, 0)
	s.SetScale(2)
	b := s.Bounds()
	if b.Width != 64 || b.Height != 64 {
		t.Errorf("scaled Bounds() size = %vx%v, want 64x64", b.Width, b.Height)
	}
	if b.X != -32 || b.Y != -32 {
		t.Errorf("scaled Bounds() origin = (%v, %v), want (-32, -32)", b.X, b.Y)
	}
}

// --- Transform clamping and normalization ---

func TestSetScaleClampsToMinimum(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 2), 0, 0)
	s.SetScale(0)
	if s.Scale() != 0.1 {
		t.Errorf("Scale() after SetScale(0) = %v, want 0.1", s.Scale())
	}
	s.SetScale(-3)
	if s.Scale() != 0.1 {
		t.Errorf("Scale() after SetScale(-3) = %v, want 0.1", s.Scale())
	}
	s.SetScale(2.5)
	if s.Scale() != 2.5 {
		t.Errorf("Scale() = %v, want 2.5", s.Scale())
	}
}

func TestRotationNormalization(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 2), 0, 0)
	tests := []struct {
		set  float64
		want float64
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{450, 90},
		{-90, 270},
		{-360, 0},
		{720.5, 0.5},
	}
	for _, tt := range tests {
		s.SetRotation(tt.set)
		assertNear(t, s.Rotation(), tt.want, 1e-9, "Rotation()")
	}
}

func TestRotateAccumulates(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 2), 0, 0)
	s.SetRotation(350)
	s.Rotate(20)
	assertNear(t, s.Rotation(), 10, 1e-9, "Rotation() after wrap")
}

func TestRotateToward(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 2), 0, 0)
	// Target directly right: 0 degrees.
	s.RotateToward(100, 0)
	assertNear(t, s.Rotation(), 0, 1e-9, "RotateToward right")
	// Target directly above (screen up = -y): 90 degrees.
	s.RotateToward(0, -100)
	assertNear(t, s.Rotation(), 90, 1e-9, "RotateToward up")
	s.RotateToward(-100, 0)
	assertNear(t, s.Rotation(), 180, 1e-9, "RotateToward left")
	s.RotateToward(0, 100)
	assertNear(t, s.Rotation(), 270, 1e-9, "RotateToward down")
}

// --- Movement ---

func TestMoveToward(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 2), 0, 0)
	s.MoveToward(100, 0, 50)
	assertNear(t, s.Velocity.X, 50, 1e-9, "Velocity.X")
	assertNear(t, s.Velocity.Y, 0, 1e-9, "Velocity.Y")

	s.MoveToward(30, 40, 10)
	assertNear(t, s.Velocity.X, 6, 1e-9, "Velocity.X toward (30,40)")
	assertNear(t, s.Velocity.Y, 8, 1e-9, "Velocity.Y toward (30,40)")
}

func TestMoveTowardSelfIsNoop(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 2), 10, 10)
	s.Velocity.X, s.Velocity.Y = 3, 4
	s.MoveToward(10, 10, 50)
	if s.Velocity.X != 3 || s.Velocity.Y != 4 {
		t.Errorf("Velocity = (%v, %v), want unchanged (3, 4)", s.Velocity.X, s.Velocity.Y)
	}
}

func TestMoveToTeleportsWithoutVelocity(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 2), 0, 0)
	s.Velocity.X = 5
	s.MoveTo(200, 300)
	if x, y := s.Position(); x != 200 || y != 300 {
		t.Errorf("Position() = (%v, %v), want (200, 300)", x, y)
	}
	if s.Velocity.X != 5 {
		t.Error("MoveTo must not touch velocity")
	}
}

func TestUpdateIntegratesMotion(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 2), 0, 0)
	s.Velocity.X = 10
	s.Acceleration.Y = 100

	s.Update(0.1)
	// Velocity integrates before position: vy becomes 10, then y moves 1.
	assertNear(t, s.X(), 1, 1e-9, "X after update")
	assertNear(t, s.Y(), 1, 1e-9, "Y after update")
	assertNear(t, s.Velocity.Y, 10, 1e-9, "Velocity.Y after update")
}

func TestWrap(t *testing.T) {
	bounds := Rect{0, 0, 640, 480}
	s := NewSprite(testAtlas(t, 32, 32, 2), 0, 0)

	// Fully past the right edge: reenter from the left, just outside.
	s.MoveTo(680, 100)
	s.Wrap(bounds)
	assertNear(t, s.X(), -16, 1e-9, "X wrapped from right")
	assertNear(t, s.Y(), 100, 1e-9, "Y unchanged by horizontal wrap")

	// Fully above the top edge: reenter from the bottom.
	s.MoveTo(100, -40)
	s.Wrap(bounds)
	assertNear(t, s.Y(), 496, 1e-9, "Y wrapped from top")

	// Still partially visible: no wrap.
	s.MoveTo(630, 100)
	s.Wrap(bounds)
	assertNear(t, s.X(), 630, 1e-9, "X unchanged while straddling edge")
}

// --- Flip / mirror ---

func TestEffectiveFlip(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 2), 0, 0)
	tests := []struct {
		name            string
		flipX, mirrored bool
		wantFX          bool
	}{
		{"neither", false, false, false},
		{"flip only", true, false, true},
		{"mirror only", false, true, true},
		{"both", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetFlip(tt.flipX, false)
			s.SetMirror(tt.mirrored)
			fx, fy := s.effectiveFlip()
			if fx != tt.wantFX {
				t.Errorf("effectiveFlip() x = %v, want %v", fx, tt.wantFX)
			}
			if fy {
				t.Error("effectiveFlip() y = true, want false")
			}
		})
	}
}

// --- Animation integration ---

func TestAddAnimationFiltersInvalidFrames(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 4), 0, 0)

	if err := s.AddAnimation("walk", []int{0, 99, 2, -1}, 10, true); err != nil {
		t.Fatalf("AddAnimation() error = %v, want nil (invalid frames dropped)", err)
	}
	clip := s.Animation().clips["walk"]
	if clip == nil {
		t.Fatal("clip not registered")
	}
	if clip.FrameCount() != 2 {
		t.Errorf("FrameCount() = %d, want 2 surviving frames", clip.FrameCount())
	}

	if err := s.AddAnimation("bad", []int{99, -1}, 10, true); err == nil {
		t.Error("AddAnimation() with no valid frames: error = nil, want error")
	}
}

func TestUpdateAdvancesAnimationFrame(t *testing.T) {
	s := NewSprite(testAtlas(t, 32, 32, 4), 0, 0)
	if err := s.AddAnimation("walk", []int{1, 3}, 10, true); err != nil {
		t.Fatal(err)
	}
	if !s.Play("walk", false) {
		t.Fatal("Play() = false")
	}
	if s.CurrentFrame() != 1 {
		t.Errorf("CurrentFrame() = %d, want clip's first atlas index 1", s.CurrentFrame())
	}
	s.Update(0.1)
	if s.CurrentFrame() != 3 {
		t.Errorf("CurrentFrame() after one frame = %d, want 3", s.CurrentFrame())
	}
}

// --- Spatial queries ---

func TestDistanceAndAngle(t *testing.T) {
	atlas := testAtlas(t, 32, 32, 2)
	a := NewSprite(atlas, 0, 0)
	b := NewSprite(atlas, 30, 40)

	assertNear(t, a.DistanceTo(b), 50, 1e-9, "DistanceTo")
	assertNear(t, a.DistanceToPoint(30, 40), 50, 1e-9, "DistanceToPoint")

	right := NewSprite(atlas, 100, 0)
	assertNear(t, a.AngleTo(right), 0, 1e-9, "AngleTo right")
	above := NewSprite(atlas, 0, -100)
	assertNear(t, a.AngleTo(above), 90, 1e-9, "AngleTo up")
}

func TestOnScreen(t *testing.T) {
	bounds := Rect{0, 0, 640, 480}
	s := NewSprite(testAtlas(t, 32, 32, 2), 320, 240)
	if !s.OnScreen(bounds) {
		t.Error("OnScreen() = false for centered sprite")
	}
	s.MoveTo(-100, 240)
	if s.OnScreen(bounds) {
		t.Error("OnScreen() = true for sprite fully off the left edge")
	}
	// Straddling the edge still counts as on screen.
	s.MoveTo(0, 240)
	if !s.OnScreen(bounds) {
		t.Error("OnScreen() = false for sprite straddling the edge")
	}
}
