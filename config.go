package rowan

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// SheetConfig describes a sprite sheet and its animations in YAML, so frame
// lists and hitboxes can live next to the art instead of in code:
//
//	image: player.png
//	frameWidth: 32
//	frameHeight: 32
//	animations:
//	  - name: walk
//	    frames: [0, 1, 2, 3]
//	    fps: 10
//	  - name: jump
//	    frames: [4, 5, 6]
//	    fps: 12
//	    loop: false
//	hitbox:
//	  shape: circle
//	  radius: 14
type SheetConfig struct {
	// Image is the sheet path, relative to the config file. The config
	// layer doesn't load it; that stays the host's job.
	Image       string         `yaml:"image"`
	FrameWidth  int            `yaml:"frameWidth"`
	FrameHeight int            `yaml:"frameHeight"`
	Animations  []AnimationDef `yaml:"animations"`
	Hitbox      *HitboxDef     `yaml:"hitbox"`
}

// AnimationDef is one clip definition. Loop defaults to true when omitted.
type AnimationDef struct {
	Name   string  `yaml:"name"`
	Frames []int   `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   *bool   `yaml:"loop"`
}

// HitboxDef overrides the default hitbox. Shape is "rect" or "circle";
// rect uses Width/Height, circle uses Radius.
type HitboxDef struct {
	Shape   string  `yaml:"shape"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	Radius  float64 `yaml:"radius"`
	OffsetX int     `yaml:"offsetX"`
	OffsetY int     `yaml:"offsetY"`
}

// LoadSheetConfig reads and validates a YAML sheet definition.
func LoadSheetConfig(path string) (*SheetConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rowan: read sheet config: %w", err)
	}
	var cfg SheetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("rowan: parse sheet config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("rowan: sheet config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks structural constraints the YAML schema can't express.
// Frame indices are not range-checked here; the atlas bound isn't known
// until Apply.
func (c *SheetConfig) Validate() error {
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return fmt.Errorf("frame size %dx%d must be positive", c.FrameWidth, c.FrameHeight)
	}
	seen := make(map[string]bool, len(c.Animations))
	for _, a := range c.Animations {
		if a.Name == "" {
			return fmt.Errorf("animation with empty name")
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate animation %q", a.Name)
		}
		seen[a.Name] = true
		if len(a.Frames) == 0 {
			return fmt.Errorf("animation %q has no frames: %w", a.Name, ErrInvalidClip)
		}
		if a.FPS <= 0 {
			return fmt.Errorf("animation %q fps %v must be positive: %w", a.Name, a.FPS, ErrInvalidClip)
		}
	}
	if h := c.Hitbox; h != nil {
		switch h.Shape {
		case "rect":
			if h.Width <= 0 || h.Height <= 0 {
				return fmt.Errorf("rect hitbox size %vx%v must be positive", h.Width, h.Height)
			}
		case "circle":
			if h.Radius <= 0 {
				return fmt.Errorf("circle hitbox radius %v must be positive", h.Radius)
			}
		default:
			return fmt.Errorf("unknown hitbox shape %q", h.Shape)
		}
	}
	return nil
}

// Apply registers the configured animations and hitbox on a sprite. The
// sprite's atlas must already use this config's frame size; out-of-range
// frame indices follow the usual AddAnimation drop-with-warning rules.
func (c *SheetConfig) Apply(s *Sprite) error {
	for _, a := range c.Animations {
		loop := true
		if a.Loop != nil {
			loop = *a.Loop
		}
		if err := s.AddAnimation(a.Name, a.Frames, a.FPS, loop); err != nil {
			return fmt.Errorf("rowan: apply animation %q: %w", a.Name, err)
		}
	}
	if h := c.Hitbox; h != nil {
		switch h.Shape {
		case "circle":
			s.SetHitboxCircle(h.Radius, h.OffsetX, h.OffsetY)
		case "rect":
			s.SetHitboxRect(h.Width, h.Height, h.OffsetX, h.OffsetY)
		}
	}
	return nil
}

// WatchSheetConfig watches a config file and invokes onChange with the
// reloaded config (or the load error) whenever it is written. Useful while
// iterating on animation timing without restarting the game.
//
// onChange runs on the watcher goroutine, not the game loop; hand the
// result over to the loop (for example via a captured variable read in the
// update callback) rather than mutating sprites directly from it. The
// returned stop function releases the watcher.
func WatchSheetConfig(path string, onChange func(*SheetConfig, error)) (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("rowan: watch sheet config: %w", err)
	}
	// Watch the directory: editors often replace the file on save, which
	// would invalidate a watch on the path itself.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("rowan: watch sheet config dir %s: %w", dir, err)
	}
	base := filepath.Base(path)

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					onChange(LoadSheetConfig(path))
				}
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("sheet config watcher error", "path", path, "err", werr)
			}
		}
	}()

	return watcher.Close, nil
}
