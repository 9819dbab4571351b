package rowan

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidClip is returned when a clip is constructed or registered with an
// empty frame list or a non-positive playback rate.
var ErrInvalidClip = errors.New("invalid animation clip")

// Clip is a named, ordered sequence of atlas frame indices played back at a
// fixed rate. Clips are immutable after construction and owned by the sprite
// that registers them.
type Clip struct {
	name   string
	frames []int
	fps    float64
	loop   bool
}

// NewClip creates a Clip. Returns ErrInvalidClip if the name is empty, frames
// is empty, or fps is not positive. The frame slice is copied; later mutation
// of the argument has no effect on the clip.
func NewClip(name string, frames []int, fps float64, loop bool) (*Clip, error) {
	if name == "" {
		return nil, fmt.Errorf("rowan: clip name is empty: %w", ErrInvalidClip)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("rowan: clip %q has no frames: %w", name, ErrInvalidClip)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("rowan: clip %q rate %v must be positive: %w", name, fps, ErrInvalidClip)
	}
	return &Clip{
		name:   name,
		frames: append([]int(nil), frames...),
		fps:    fps,
		loop:   loop,
	}, nil
}

// Name returns the clip's name, unique within its owning player.
func (c *Clip) Name() string { return c.name }

// FPS returns the playback rate in frames per second.
func (c *Clip) FPS() float64 { return c.fps }

// Loop reports whether the clip repeats after its last frame.
func (c *Clip) Loop() bool { return c.loop }

// FrameCount returns the number of frames in the clip.
func (c *Clip) FrameCount() int { return len(c.frames) }

// FrameAt returns the atlas frame index at position i within the clip.
func (c *Clip) FrameAt(i int) int { return c.frames[i] }

// FrameDuration returns how long each frame is shown, in seconds.
func (c *Clip) FrameDuration() float64 { return 1.0 / c.fps }

// Duration returns the total clip duration in seconds.
func (c *Clip) Duration() float64 { return float64(len(c.frames)) / c.fps }

// Player advances a sprite's active clip frame by frame from accumulated
// time. It is a small state machine: stopped, playing, paused, or finished
// (non-looping clips only). All mutation happens through its methods; it is
// not safe for concurrent use, matching the single-threaded loop model.
type Player struct {
	clips   map[string]*Clip
	current *Clip

	frameIndex int
	timer      float64
	startTime  time.Time // wall-clock start of the active clip, diagnostics only

	playing  bool
	paused   bool
	finished bool
}

// NewPlayer creates an empty animation player.
func NewPlayer() *Player {
	return &Player{clips: make(map[string]*Clip)}
}

// AddClip registers a clip under its name, overwriting any existing clip of
// the same name. Returns ErrInvalidClip for a nil or zero-value clip.
func (p *Player) AddClip(clip *Clip) error {
	if clip == nil || len(clip.frames) == 0 || clip.fps <= 0 {
		return fmt.Errorf("rowan: add clip: %w", ErrInvalidClip)
	}
	p.clips[clip.name] = clip
	return nil
}

// Play starts the named clip. Returns false if no clip with that name is
// registered; no state changes in that case.
//
// Calling Play for the clip that is already actively playing is a no-op
// success unless restart is true, so callers may safely invoke it every
// tick (e.g. while a movement key is held) without resetting the animation.
func (p *Player) Play(name string, restart bool) bool {
	clip, ok := p.clips[name]
	if !ok {
		logger.Warn("animation not found", "name", name)
		return false
	}

	if p.current == clip && p.playing && !restart && !p.finished {
		return true
	}

	p.current = clip
	p.frameIndex = 0
	p.timer = 0
	p.startTime = time.Now()
	p.playing = true
	p.paused = false
	p.finished = false
	logger.Debug("animation started", "name", name, "frames", len(clip.frames), "fps", clip.fps)
	return true
}

// Stop halts playback and rewinds to the first frame. The active clip
// reference is retained so a later Play of the same name restarts it.
func (p *Player) Stop() {
	p.playing = false
	p.paused = false
	p.frameIndex = 0
	p.timer = 0
	p.finished = false
}

// Pause suspends playback. No-op unless currently playing.
func (p *Player) Pause() {
	if p.playing {
		p.paused = true
	}
}

// Resume continues a paused clip. No-op unless playing and paused.
func (p *Player) Resume() {
	if p.playing && p.paused {
		p.paused = false
	}
}

// Advance accumulates dt seconds into the frame timer and steps the frame
// index when a full frame duration has elapsed. On stepping past the last
// frame a looping clip wraps to frame 0; a non-looping clip clamps to the
// last frame, sets finished, and stops playing.
//
// At most one frame is advanced per call and the timer is reset to zero on
// each step: a dt larger than the frame duration skips time rather than
// catching up with multiple steps. This reproduces the timing of the
// classic engine this library replaces so existing content plays back
// identically.
func (p *Player) Advance(dt float64) {
	if !p.playing || p.paused || p.current == nil {
		return
	}
	if p.finished && !p.current.loop {
		return
	}

	p.timer += dt
	if p.timer < p.current.FrameDuration() {
		return
	}

	p.timer = 0
	p.frameIndex++
	if p.frameIndex >= len(p.current.frames) {
		if p.current.loop {
			p.frameIndex = 0
		} else {
			p.frameIndex = len(p.current.frames) - 1
			p.finished = true
			p.playing = false
		}
	}
}

// Current returns the active clip, or nil if none has been played yet.
func (p *Player) Current() *Clip {
	return p.current
}

// CurrentName returns the active clip's name, or "" if none.
func (p *Player) CurrentName() string {
	if p.current == nil {
		return ""
	}
	return p.current.name
}

// FrameIndex returns the current frame position within the active clip.
func (p *Player) FrameIndex() int {
	return p.frameIndex
}

// Playing reports whether a clip is actively playing (paused counts as
// playing; finished does not).
func (p *Player) Playing() bool { return p.playing }

// Paused reports whether playback is paused.
func (p *Player) Paused() bool { return p.paused }

// Finished reports whether a non-looping clip has reached its last frame.
func (p *Player) Finished() bool { return p.finished }

// Progress returns playback progress in [0, 1]: the frame index plus the
// fractional time into the current frame, divided by the frame count. The
// index clamps to the last frame, so a finished clip reads (N-1)/N rather
// than 1; use Finished to detect completion.
func (p *Player) Progress() float64 {
	if p.current == nil || len(p.current.frames) == 0 {
		return 0
	}
	within := p.timer / p.current.FrameDuration()
	progress := (float64(p.frameIndex) + within) / float64(len(p.current.frames))
	if progress > 1 {
		return 1
	}
	return progress
}

// TimeRemaining returns the seconds left until a non-looping clip finishes.
// Returns 0 for looping clips, finished clips, or when no clip is active.
func (p *Player) TimeRemaining() float64 {
	if p.current == nil || p.current.loop || p.finished {
		return 0
	}
	framesRemaining := float64(len(p.current.frames) - p.frameIndex - 1)
	timeInCurrent := p.current.FrameDuration() - p.timer
	return framesRemaining*p.current.FrameDuration() + timeInCurrent
}

// Has reports whether a clip with the given name is registered.
func (p *Player) Has(name string) bool {
	_, ok := p.clips[name]
	return ok
}

// Names returns the names of all registered clips in unspecified order.
func (p *Player) Names() []string {
	names := make([]string, 0, len(p.clips))
	for name := range p.clips {
		names = append(names, name)
	}
	return names
}

// Remove unregisters the named clip, stopping playback first if it is the
// active one. Returns false if no such clip exists.
func (p *Player) Remove(name string) bool {
	clip, ok := p.clips[name]
	if !ok {
		return false
	}
	if p.current == clip {
		p.Stop()
		p.current = nil
	}
	delete(p.clips, name)
	return true
}

// Clear stops playback and unregisters every clip.
func (p *Player) Clear() {
	p.Stop()
	clear(p.clips)
}
