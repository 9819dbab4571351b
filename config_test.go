package rowan

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sheet.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validSheetYAML = `
image: player.png
frameWidth: 32
frameHeight: 32
animations:
  - name: walk
    frames: [0, 1, 2, 3]
    fps: 10
  - name: jump
    frames: [4, 5]
    fps: 12
    loop: false
hitbox:
  shape: circle
  radius: 14
`

func TestLoadSheetConfig(t *testing.T) {
	cfg, err := LoadSheetConfig(writeConfig(t, validSheetYAML))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Image != "player.png" {
		t.Errorf("Image = %q, want player.png", cfg.Image)
	}
	if cfg.FrameWidth != 32 || cfg.FrameHeight != 32 {
		t.Errorf("frame size = %dx%d, want 32x32", cfg.FrameWidth, cfg.FrameHeight)
	}
	if len(cfg.Animations) != 2 {
		t.Fatalf("len(Animations) = %d, want 2", len(cfg.Animations))
	}

	walk := cfg.Animations[0]
	if walk.Name != "walk" || walk.FPS != 10 || len(walk.Frames) != 4 {
		t.Errorf("walk = %+v", walk)
	}
	if walk.Loop != nil {
		t.Error("walk.Loop should be nil when omitted (defaults to looping)")
	}

	jump := cfg.Animations[1]
	if jump.Loop == nil || *jump.Loop {
		t.Error("jump.Loop should be explicitly false")
	}

	if cfg.Hitbox == nil || cfg.Hitbox.Shape != "circle" || cfg.Hitbox.Radius != 14 {
		t.Errorf("Hitbox = %+v", cfg.Hitbox)
	}
}

func TestLoadSheetConfigMissingFile(t *testing.T) {
	if _, err := LoadSheetConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("error = nil for missing file")
	}
}

func TestLoadSheetConfigBadYAML(t *testing.T) {
	if _, err := LoadSheetConfig(writeConfig(t, "frameWidth: [not a number")); err == nil {
		t.Error("error = nil for malformed YAML")
	}
}

func TestSheetConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero frame size", "frameWidth: 0\nframeHeight: 32"},
		{"empty animation name", `
frameWidth: 32
frameHeight: 32
animations:
  - name: ""
    frames: [0]
    fps: 10
`},
		{"duplicate animation", `
frameWidth: 32
frameHeight: 32
animations:
  - name: walk
    frames: [0]
    fps: 10
  - name: walk
    frames: [1]
    fps: 10
`},
		{"no frames", `
frameWidth: 32
frameHeight: 32
animations:
  - name: walk
    frames: []
    fps: 10
`},
		{"zero fps", `
frameWidth: 32
frameHeight: 32
animations:
  - name: walk
    frames: [0]
    fps: 0
`},
		{"unknown hitbox shape", `
frameWidth: 32
frameHeight: 32
hitbox:
  shape: hexagon
`},
		{"circle without radius", `
frameWidth: 32
frameHeight: 32
hitbox:
  shape: circle
`},
		{"rect without size", `
frameWidth: 32
frameHeight: 32
hitbox:
  shape: rect
  width: 10
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadSheetConfig(writeConfig(t, tt.yaml)); err == nil {
				t.Error("error = nil, want validation error")
			}
		})
	}
}

func TestSheetConfigApply(t *testing.T) {
	cfg, err := LoadSheetConfig(writeConfig(t, validSheetYAML))
	if err != nil {
		t.Fatal(err)
	}
	s := NewSprite(testAtlas(t, 32, 32, 6), 0, 0)
	if err := cfg.Apply(s); err != nil {
		t.Fatal(err)
	}

	if !s.Animation().Has("walk") || !s.Animation().Has("jump") {
		t.Fatal("animations not registered")
	}
	if s.Animation().clips["walk"].Loop() != true {
		t.Error("walk should default to looping")
	}
	if s.Animation().clips["jump"].Loop() != false {
		t.Error("jump should not loop")
	}
	if s.HitboxShape() != HitboxCircle || s.HitboxRadius() != 14 {
		t.Errorf("hitbox = %v r=%v, want circle r=14", s.HitboxShape(), s.HitboxRadius())
	}
}

func TestSheetConfigApplyTwice(t *testing.T) {
	cfg, err := LoadSheetConfig(writeConfig(t, validSheetYAML))
	if err != nil {
		t.Fatal(err)
	}
	s := NewSprite(testAtlas(t, 32, 32, 6), 0, 0)
	if err := cfg.Apply(s); err != nil {
		t.Fatal(err)
	}
	// A hot reload re-applies the full definition; clips overwrite in place.
	if err := cfg.Apply(s); err != nil {
		t.Fatalf("second Apply() error = %v, want nil", err)
	}
	if got := len(s.Animation().Names()); got != 2 {
		t.Errorf("Names() len = %d after reapply, want 2", got)
	}
}

func TestSheetConfigApplyRectHitbox(t *testing.T) {
	cfg := &SheetConfig{
		FrameWidth:  32,
		FrameHeight: 32,
		Hitbox:      &HitboxDef{Shape: "rect", Width: 20, Height: 12, OffsetX: 2, OffsetY: -4},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	s := NewSprite(testAtlas(t, 32, 32, 2), 0, 0)
	if err := cfg.Apply(s); err != nil {
		t.Fatal(err)
	}
	w, h := s.hitboxSize()
	if w != 20 || h != 12 {
		t.Errorf("hitboxSize() = %vx%v, want 20x12", w, h)
	}
	if cx, cy := s.hitboxCenter(); cx != 2 || cy != -4 {
		t.Errorf("hitboxCenter() = (%d, %d), want (2, -4)", cx, cy)
	}
}

func TestWatchSheetConfig(t *testing.T) {
	path := writeConfig(t, validSheetYAML)

	got := make(chan *SheetConfig, 1)
	stop, err := WatchSheetConfig(path, func(cfg *SheetConfig, err error) {
		if err == nil {
			select {
			case got <- cfg:
			default:
			}
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer stop()

	updated := `
image: player.png
frameWidth: 32
frameHeight: 32
animations:
  - name: walk
    frames: [0, 1, 2, 3]
    fps: 10
  - name: idle
    frames: [0]
    fps: 2
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-got:
		if len(cfg.Animations) != 2 {
			t.Errorf("reloaded len(Animations) = %d, want 2", len(cfg.Animations))
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload callback")
	}
}
