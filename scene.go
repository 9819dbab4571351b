package rowan

import "github.com/hajimehoshi/ebiten/v2"

// Scene is anything that can be updated and drawn by the game loop. There is
// no base type to embed; implement the two methods on any struct.
type Scene interface {
	Update(dt float64)
	Draw(screen *ebiten.Image)
}

// SceneLifecycle is optionally implemented by scenes that want to know when
// they become (or stop being) the active scene.
type SceneLifecycle interface {
	OnEnter()
	OnExit()
}

// SceneManager keeps a registry of named scenes and a stack of active ones.
// Only the top of the stack updates and draws. SwitchTo replaces the top;
// Push/Pop nest scenes (a pause menu over gameplay, say) with lifecycle
// hooks fired on every activation change.
type SceneManager struct {
	scenes map[string]Scene
	stack  []Scene
}

// NewSceneManager creates an empty scene manager.
func NewSceneManager() *SceneManager {
	return &SceneManager{scenes: make(map[string]Scene)}
}

// Add registers a scene under a name, overwriting any previous registration.
func (m *SceneManager) Add(name string, scene Scene) {
	m.scenes[name] = scene
}

// SwitchTo replaces the current top of the stack with the named scene
// (or starts the stack if empty). Returns false if the name is unknown;
// nothing changes in that case.
func (m *SceneManager) SwitchTo(name string) bool {
	scene, ok := m.scenes[name]
	if !ok {
		logger.Warn("scene not found", "name", name)
		return false
	}
	if top := m.Current(); top != nil {
		exitScene(top)
		m.stack = m.stack[:len(m.stack)-1]
	}
	m.stack = append(m.stack, scene)
	enterScene(scene)
	return true
}

// Push makes the named scene active on top of the current one. The previous
// top gets OnExit; it resumes (with OnEnter) when the new scene is popped.
// Returns false if the name is unknown.
func (m *SceneManager) Push(name string) bool {
	scene, ok := m.scenes[name]
	if !ok {
		logger.Warn("scene not found", "name", name)
		return false
	}
	if top := m.Current(); top != nil {
		exitScene(top)
	}
	m.stack = append(m.stack, scene)
	enterScene(scene)
	return true
}

// Pop removes the top scene, reactivating the one beneath it.
// Returns false if the stack is empty.
func (m *SceneManager) Pop() bool {
	if len(m.stack) == 0 {
		return false
	}
	exitScene(m.stack[len(m.stack)-1])
	m.stack = m.stack[:len(m.stack)-1]
	if top := m.Current(); top != nil {
		enterScene(top)
	}
	return true
}

// Current returns the active (top) scene, or nil if the stack is empty.
func (m *SceneManager) Current() Scene {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Depth returns the number of scenes on the stack.
func (m *SceneManager) Depth() int {
	return len(m.stack)
}

// Update advances the active scene. No-op with an empty stack.
func (m *SceneManager) Update(dt float64) {
	if top := m.Current(); top != nil {
		top.Update(dt)
	}
}

// Draw renders the active scene. No-op with an empty stack.
func (m *SceneManager) Draw(screen *ebiten.Image) {
	if top := m.Current(); top != nil {
		top.Draw(screen)
	}
}

func enterScene(s Scene) {
	if lc, ok := s.(SceneLifecycle); ok {
		lc.OnEnter()
	}
}

func exitScene(s Scene) {
	if lc, ok := s.(SceneLifecycle); ok {
		lc.OnExit()
	}
}
