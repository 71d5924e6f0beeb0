package game

import "github.com/go-gl/mathgl/mgl64"

// defaultFrameTime is one frame at the target rate of 30 frames per second.
const defaultFrameTime = 1.0 / 30

// ScriptedInput is an Input driven by test code.
type ScriptedInput struct {
	down    map[Key]bool
	pointer [][2]float64
}

// NewScriptedInput returns an input with no keys held.
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{down: make(map[Key]bool)}
}

// Press holds k down until Release.
func (in *ScriptedInput) Press(k Key) { in.down[k] = true }

// Release lets go of k.
func (in *ScriptedInput) Release(k Key) { in.down[k] = false }

// MovePointer queues one frame of pointer movement.
func (in *ScriptedInput) MovePointer(dx, dy float64) {
	in.pointer = append(in.pointer, [2]float64{dx, dy})
}

func (in *ScriptedInput) IsKeyDown(k Key) bool { return in.down[k] }

// PointerDelta pops the next queued movement, or reports none.
func (in *ScriptedInput) PointerDelta() (dx, dy float64) {
	if len(in.pointer) == 0 {
		return 0, 0
	}
	d := in.pointer[0]
	in.pointer = in.pointer[1:]
	return d[0], d[1]
}

// TestSim is a headless harness used by tests and the headless report. It
// wires the same collaborators as App but has no ebiten dependency, advances
// time by a fixed frame step and never touches the speaker.
type TestSim struct {
	Settings  Settings
	Camera    *Camera
	World     *World
	Collision *CollisionWorld
	Audio     *CueBank
	Tasks     *TaskSet
	SimLog    *SimLog
	Clock     *Clock
	Input     *ScriptedInput
	Manager   *SceneManager
	FrameTime float64
	Tick      int
	// Err holds the first construction or tick error. Once set the sim stops.
	Err error

	factories map[SceneKind]SceneFactory
	initial   SceneKind
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // settings, timing, logging: applied before wiring
	simOptScene                      // scene table and start scene: applied after wiring
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithFrameTime sets the fixed time step in seconds.
func WithFrameTime(dt float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.FrameTime = dt
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithQuality selects the asset quality tier.
func WithQuality(q Quality) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Settings.Quality = q
	}}
}

// WithSettings replaces the session settings wholesale.
func WithSettings(s Settings) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Settings = s
	}}
}

// WithInitialScene sets the scene loaded at construction.
func WithInitialScene(k SceneKind) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.initial = k
	}}
}

// WithFactory overrides the constructor for one scene kind.
func WithFactory(k SceneKind, f SceneFactory) SimOption {
	return SimOption{simOptScene, func(ts *TestSim) {
		ts.factories[k] = f
	}}
}

// NewTestSim constructs a TestSim from the given options in three ordered
// passes:
//  1. Infrastructure (settings, frame time, verbose)
//  2. Collaborators are wired
//  3. Scene options, then the manager loads the initial scene
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Settings:  DefaultSettings(),
		SimLog:    NewSimLog(false),
		FrameTime: defaultFrameTime,
		Input:     NewScriptedInput(),
		factories: DefaultFactories(),
		initial:   SceneMenu,
	}
	ts.Settings.Audio = false
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	ts.Camera = NewCamera(mgl64.Vec3{})
	ts.Collision = NewCollisionWorld()
	ts.World = NewWorld(ts.Settings.Quality, ts.Camera, ts.Collision)
	ts.Tasks = NewTaskSet()
	ts.Clock = &Clock{}
	// The harness is silent whatever the settings say.
	ts.Audio, ts.Err = NewCueBank(ts.World, false)
	if ts.Err != nil {
		return ts
	}

	for _, o := range opts {
		if o.kind == simOptScene {
			o.fn(ts)
		}
	}
	ctx := &Context{
		Settings:  ts.Settings,
		Graph:     ts.World,
		Camera:    ts.Camera,
		Audio:     ts.Audio,
		Collision: ts.Collision,
		Tasks:     ts.Tasks,
		Log:       ts.SimLog,
		Clock:     ts.Clock,
	}
	ts.Manager, ts.Err = NewSceneManager(ctx, ts.Input, ts.factories, ts.initial)
	return ts
}

// Now returns the session time of the next tick.
func (ts *TestSim) Now() float64 {
	return float64(ts.Tick) * ts.FrameTime
}

// RunTicks advances the simulation n ticks. It stops early on error.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		if !ts.step() {
			return
		}
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		if !ts.step() {
			return -1
		}
		if predicate(ts) {
			return ts.Tick
		}
	}
	return -1
}

func (ts *TestSim) step() bool {
	if ts.Err != nil || ts.Manager == nil {
		return false
	}
	now := ts.Now()
	ts.Tick++
	if err := ts.Manager.Tick(now); err != nil {
		ts.Err = err
		return false
	}
	return true
}

// Kind returns the active scene's tag.
func (ts *TestSim) Kind() SceneKind {
	if ts.Manager == nil {
		return SceneNone
	}
	return ts.Manager.Kind()
}

// Chickens returns the active scene's chickens, if it hosts any.
func (ts *TestSim) Chickens() []*Chicken {
	if ts.Manager == nil {
		return nil
	}
	if cs, ok := ts.Manager.Scene().(chaseScene); ok {
		return cs.Chickens()
	}
	return nil
}

// Fade returns the active scene's fade overlay, if any.
func (ts *TestSim) Fade() *Fade {
	if ts.Manager == nil {
		return nil
	}
	if f, ok := ts.Manager.Scene().(fader); ok {
		return f.Fade()
	}
	return nil
}

// Switch taps the scene switch key for one tick.
func (ts *TestSim) Switch() {
	ts.Input.Press(KeySwitch)
	ts.RunTicks(1)
	ts.Input.Release(KeySwitch)
}

// TurnTo queues the pointer movement that makes the free-look camera face
// target on the next tick.
func (ts *TestSim) TurnTo(target mgl64.Vec3) {
	if ts.Manager == nil {
		return
	}
	cam := ts.Camera.Pos
	dh := normalizeDegrees(headingTo(cam, target) - ts.Manager.Heading())
	dp := pitchTo(cam, target) - ts.Manager.Pitch()
	ts.Input.MovePointer(-dh/mouseSensitivity, -dp/mouseSensitivity)
}

// Walk holds the forward (or backward) key for n ticks.
func (ts *TestSim) Walk(forward bool, n int) {
	k := KeyForward
	if !forward {
		k = KeyBackward
	}
	ts.Input.Press(k)
	ts.RunTicks(n)
	ts.Input.Release(k)
}

// PlaceChicken moves chicken i to stand dist units in front of the camera
// on the ground plane.
func (ts *TestSim) PlaceChicken(i int, dist float64) {
	chs := ts.Chickens()
	if i >= len(chs) {
		return
	}
	cam := ts.Camera.Pos
	ts.World.SetPosition(chs[i].Node(), mgl64.Vec3{cam.X(), cam.Y() + dist, cam.Z()})
}

// Summary returns a human-readable summary of the log.
func (ts *TestSim) Summary() string {
	return ts.SimLog.Summary(ts.Tick)
}
