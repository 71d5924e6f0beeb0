package game

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	moveSpeed        = 30.0 // world units per second along the facing vector
	focusDistance    = 5.0  // focus point distance ahead of the camera
	mouseSensitivity = 0.2  // degrees per pointer unit
	pitchLimit       = 75.0 // free-look pitch clamp in degrees

	defaultBobMagnitude = 15.0
	defaultBobSpeed     = 4.0
	bobFrameTime        = 0.167 // frame time the bob magnitude is tuned for
)

// SceneManager owns the active scene and drives one tick per rendered frame.
//
// Tick order: deferred init, input sampling, scene update and tasks, camera
// transform, frame counter.
type SceneManager struct {
	ctx       *Context
	input     Input
	factories map[SceneKind]SceneFactory

	scene       Scene
	kind        SceneKind
	sceneFrame  int
	pendingInit bool

	focus   mgl64.Vec3
	heading float64
	pitch   float64
	last    float64
	started bool

	pointerDX, pointerDY float64
	prevSwitch           bool
}

// NewSceneManager loads the initial scene. Its Init runs on the second tick.
func NewSceneManager(ctx *Context, input Input, factories map[SceneKind]SceneFactory, initial SceneKind) (*SceneManager, error) {
	if ctx.Clock == nil {
		ctx.Clock = &Clock{}
	}
	if ctx.Tasks == nil {
		ctx.Tasks = NewTaskSet()
	}
	m := &SceneManager{
		ctx:       ctx,
		input:     input,
		factories: factories,
		focus:     mgl64.Vec3{55, -55, 20},
		heading:   180,
	}
	if err := m.LoadScene(initial); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadScene tears down the active scene and constructs the next one. The
// old scene's Exit runs before the new scene's constructor. Init is deferred
// until the scene graph has had a frame to settle.
func (m *SceneManager) LoadScene(kind SceneKind) error {
	if m.scene != nil {
		m.scene.Exit()
		m.ctx.logEvent("--", "scene", "exit", m.kind.String(), 0)
	}
	m.ctx.Graph.DetachAll()
	if m.ctx.Audio != nil {
		m.ctx.Audio.StopAll()
	}
	m.scene = nil
	m.kind = SceneNone

	factory, ok := m.factories[kind]
	if !ok {
		return fmt.Errorf("load scene %s: no factory", kind)
	}
	s, err := factory(m.ctx)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", kind, err)
	}
	m.scene = s
	m.kind = kind
	m.sceneFrame = 1
	m.pendingInit = true
	m.ctx.logEvent("--", "scene", "load", kind.String(), 0)
	return nil
}

// Tick advances the game by one frame at time now (seconds since start).
// Any error is fatal.
func (m *SceneManager) Tick(now float64) error {
	if m.scene == nil {
		return fmt.Errorf("tick: no active scene")
	}
	elapsed := now - m.last
	if !m.started {
		elapsed = 0
		m.started = true
	}
	m.ctx.Clock.Tick++
	m.ctx.Clock.Now = now
	m.ctx.Tasks.SetTime(now)

	if m.pendingInit && m.sceneFrame >= 2 {
		m.pendingInit = false
		if err := m.scene.Init(); err != nil {
			return fmt.Errorf("init scene %s: %w", m.kind, err)
		}
		if m.scene.IsPlayerControlled() {
			// Free look starts from whatever pose Init left the camera in.
			m.heading = m.ctx.Camera.Heading()
			m.pitch = clampPitch(m.ctx.Camera.Pitch())
		}
		m.refreshFocus()
	}

	if err := m.handleInput(elapsed); err != nil {
		return err
	}

	if !m.pendingInit {
		if next := m.scene.Update(now, elapsed); next != SceneNone {
			if err := m.LoadScene(next); err != nil {
				return err
			}
		}
	}
	m.ctx.Tasks.Run(now)
	if m.ctx.Audio != nil {
		m.ctx.Audio.Update(elapsed)
	}

	if m.scene.IsPlayerControlled() {
		m.controlCamera()
	} else {
		m.bobCamera(now, elapsed)
	}

	m.sceneFrame++
	m.last = now
	return nil
}

// handleInput samples the pointer and maps keys to actions.
func (m *SceneManager) handleInput(elapsed float64) error {
	// Sampling every frame recentres the pointer even when it is unused.
	m.pointerDX, m.pointerDY = m.input.PointerDelta()

	if m.scene.IsPlayerControlled() {
		dir := m.ctx.Camera.Forward()
		if m.input.IsKeyDown(KeyForward) {
			m.move(true, dir, elapsed)
		}
		if m.input.IsKeyDown(KeyBackward) {
			m.move(false, dir, elapsed)
		}
	}

	down := m.input.IsKeyDown(KeySwitch)
	pressed := down && !m.prevSwitch
	m.prevSwitch = down
	// A scene is only torn down after it has been initialised.
	if pressed && m.pendingInit {
		m.ctx.logEvent("--", "input", "switch-ignored", m.kind.String()+" not initialised", 0)
		return nil
	}
	if pressed {
		next := SceneIntro
		if m.kind == SceneIntro {
			next = SceneMenu
		}
		m.ctx.logEvent("--", "input", "switch", m.kind.String()+" → "+next.String(), 0)
		return m.LoadScene(next)
	}
	return nil
}

// move translates the focus along dir and places the camera behind it.
func (m *SceneManager) move(forward bool, dir mgl64.Vec3, elapsed float64) {
	step := dir.Mul(elapsed * moveSpeed)
	if forward {
		m.focus = m.focus.Add(step)
	} else {
		m.focus = m.focus.Sub(step)
	}
	m.ctx.Camera.Pos = m.focus.Sub(dir.Mul(focusDistance))
}

// controlCamera turns pointer movement into heading and pitch.
func (m *SceneManager) controlCamera() {
	m.heading -= m.pointerDX * mouseSensitivity
	m.pitch -= m.pointerDY * mouseSensitivity
	m.pitch = clampPitch(m.pitch)
	m.ctx.Camera.SetHPR(m.heading, m.pitch, 0)
	m.refreshFocus()
}

// bobCamera sways the pitch of a non-interactive camera.
func (m *SceneManager) bobCamera(now, elapsed float64) {
	magnitude, speed := defaultBobMagnitude, defaultBobSpeed
	if b, ok := m.scene.(cameraBobber); ok {
		magnitude, speed = b.Bob()
	}
	m.ctx.Camera.SetPitch(m.ctx.Camera.Pitch() + bobOffset(now, elapsed, magnitude, speed))
}

// bobOffset is the pitch change for one frame of the camera bob.
func bobOffset(now, elapsed, magnitude, speed float64) float64 {
	return math.Sin(math.Pi*speed*now) * magnitude * (elapsed / bobFrameTime)
}

func clampPitch(p float64) float64 {
	return mgl64.Clamp(p, -pitchLimit, pitchLimit)
}

func (m *SceneManager) refreshFocus() {
	m.focus = m.ctx.Camera.Pos.Add(m.ctx.Camera.Forward().Mul(focusDistance))
}

// Scene returns the active scene.
func (m *SceneManager) Scene() Scene { return m.scene }

// Kind returns the active scene's tag.
func (m *SceneManager) Kind() SceneKind { return m.kind }

// SceneFrame returns the frame counter since the last load (1 on load).
func (m *SceneManager) SceneFrame() int { return m.sceneFrame }

// InitPending reports whether the active scene is still waiting for Init.
func (m *SceneManager) InitPending() bool { return m.pendingInit }

// Focus returns the look-at point ahead of the camera.
func (m *SceneManager) Focus() mgl64.Vec3 { return m.focus }

// Heading returns the free-look heading in degrees.
func (m *SceneManager) Heading() float64 { return m.heading }

// Pitch returns the free-look pitch in degrees.
func (m *SceneManager) Pitch() float64 { return m.pitch }

// Context returns the capabilities the manager was built with.
func (m *SceneManager) Context() *Context { return m.ctx }
