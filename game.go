package rowan

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// defaultFPS is the tick rate used unless SetFPS is called.
const defaultFPS = 60

// Game owns the window, the fixed-rate loop, the input tracker, the scene
// stack, and an optional set of managed sprites that are updated and drawn
// automatically each tick.
//
// Everything runs on one goroutine: per tick the loop computes delta time,
// refreshes input and dispatches events, runs updates (managed sprites,
// scene stack, then the user update callback), and finally draws. A quit
// request lets the in-flight tick complete, then exits the loop.
type Game struct {
	width      int
	height     int
	title      string
	fps        int
	background color.RGBA

	input  *Input
	scenes *SceneManager

	sprites []*Sprite

	updateFn func()
	drawFn   func(screen *ebiten.Image)
	eventFns []func(Event)

	running  bool
	paused   bool
	showFPS  bool
	dt       float64
	lastTick time.Time
}

// NewGame creates a game with the given window size and title, a 60 ticks
// per second loop, and a dark gray background.
func NewGame(width, height int, title string) *Game {
	return &Game{
		width:      width,
		height:     height,
		title:      title,
		fps:        defaultFPS,
		background: color.RGBA{R: 50, G: 50, B: 50, A: 255},
		input:      NewInput(),
		scenes:     NewSceneManager(),
	}
}

// Run opens the window and blocks in the game loop until Quit is called or
// the window is closed. Both callbacks are optional: update runs once per
// tick after input and managed updates; draw runs after the background,
// managed sprites, and scene stack have been drawn.
func (g *Game) Run(update func(), draw func(screen *ebiten.Image)) error {
	g.updateFn = update
	g.drawFn = draw
	g.running = true

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(g.title)
	ebiten.SetTPS(g.fps)

	if err := ebiten.RunGame(&runner{game: g}); err != nil {
		return fmt.Errorf("rowan: game loop: %w", err)
	}
	return nil
}

// tick runs one loop iteration's update half: delta time, input refresh,
// event dispatch, and (unless paused) all game-state updates.
func (g *Game) tick(now time.Time, snap deviceSnapshot) {
	if g.lastTick.IsZero() {
		g.dt = 1.0 / float64(g.fps)
	} else {
		g.dt = now.Sub(g.lastTick).Seconds()
	}
	g.lastTick = now

	g.input.refresh(snap)
	for _, ev := range g.input.Events() {
		g.dispatchEvent(ev)
	}

	if g.paused {
		return
	}

	for _, s := range g.sprites {
		s.Update(g.dt)
	}
	g.scenes.Update(g.dt)
	if g.updateFn != nil {
		g.updateFn()
	}
}

// draw runs one loop iteration's draw half. Draw callbacks should treat game
// state as read-only; this is a convention, not enforced.
func (g *Game) draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	for _, s := range g.sprites {
		s.Draw(screen)
	}
	g.scenes.Draw(screen)
	if g.drawFn != nil {
		g.drawFn(screen)
	}
	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f",
			ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *Game) dispatchEvent(ev Event) {
	for _, fn := range g.eventFns {
		fn(ev)
	}
}

// Quit asks the loop to stop. The current tick completes; the loop exits
// before the next one. An EventQuit is dispatched to event callbacks.
func (g *Game) Quit() {
	if !g.running {
		return
	}
	g.running = false
	g.dispatchEvent(Event{Type: EventQuit})
}

// Running reports whether the loop has been started and not yet quit.
func (g *Game) Running() bool { return g.running }

// Pause suspends updates. Drawing continues so the last frame stays visible.
func (g *Game) Pause() { g.paused = true }

// Resume continues updates after Pause.
func (g *Game) Resume() { g.paused = false }

// TogglePause flips the paused state.
func (g *Game) TogglePause() { g.paused = !g.paused }

// Paused reports whether updates are suspended.
func (g *Game) Paused() bool { return g.paused }

// Input returns the game's input tracker.
func (g *Game) Input() *Input { return g.input }

// Scenes returns the game's scene manager. Pushing a scene onto it makes
// the loop update and draw that scene automatically.
func (g *Game) Scenes() *SceneManager { return g.scenes }

// DeltaTime returns the seconds elapsed for the current tick.
func (g *Game) DeltaTime() float64 { return g.dt }

// OnEvent registers a callback invoked for every input event, in
// registration order, once per tick before updates run.
func (g *Game) OnEvent(fn func(Event)) {
	g.eventFns = append(g.eventFns, fn)
}

// AddSprite adds a sprite to the managed set, which the loop updates and
// draws each tick in insertion order.
func (g *Game) AddSprite(s *Sprite) {
	g.sprites = append(g.sprites, s)
}

// RemoveSprite removes a sprite from the managed set. No-op if absent.
func (g *Game) RemoveSprite(s *Sprite) {
	for i, existing := range g.sprites {
		if existing == s {
			g.sprites = append(g.sprites[:i], g.sprites[i+1:]...)
			return
		}
	}
}

// SetFPS sets the loop's target ticks per second (minimum 1). Must be
// called before Run to take effect.
func (g *Game) SetFPS(fps int) {
	if fps < 1 {
		fps = 1
	}
	g.fps = fps
}

// FPS returns the configured target ticks per second.
func (g *Game) FPS() int { return g.fps }

// SetBackground sets the clear color used at the start of every draw.
func (g *Game) SetBackground(c color.RGBA) { g.background = c }

// SetShowFPS toggles the FPS/TPS overlay in the top-left corner.
func (g *Game) SetShowFPS(show bool) { g.showFPS = show }

// ScreenRect returns the window bounds as a Rect, for OnScreen and Wrap.
func (g *Game) ScreenRect() Rect {
	return Rect{Width: float64(g.width), Height: float64(g.height)}
}

// Center returns the window center point.
func (g *Game) Center() (x, y int) {
	return g.width / 2, g.height / 2
}

// runner adapts Game to the ebiten.Game interface. Kept separate so the
// public Game surface doesn't expose Update/Draw/Layout directly.
type runner struct {
	game *Game
}

func (r *runner) Update() error {
	if !r.game.running {
		return ebiten.Termination
	}
	r.game.tick(time.Now(), readDeviceSnapshot())
	return nil
}

func (r *runner) Draw(screen *ebiten.Image) {
	r.game.draw(screen)
}

func (r *runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	return r.game.width, r.game.height
}
