package game

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// Clock is the frame clock shared with scenes. The manager advances it.
type Clock struct {
	Tick int
	Now  float64 // seconds since session start
}

// Context carries every capability a scene or the manager may use. Nothing
// in the core reads engine globals.
type Context struct {
	Settings  Settings
	Graph     SceneGraph
	Camera    *Camera
	Audio     AudioSystem
	Collision *CollisionWorld
	Tasks     *TaskSet
	Log       *SimLog
	Clock     *Clock
}

// logEvent records an event stamped with the current tick.
func (ctx *Context) logEvent(actor, category, key, value string, num float64) {
	if ctx.Log == nil {
		return
	}
	tick := 0
	if ctx.Clock != nil {
		tick = ctx.Clock.Tick
	}
	ctx.Log.Add(tick, actor, category, key, value, num)
}

func (ctx *Context) logVerbose(actor, category, key, value string, num float64) {
	if ctx.Log == nil {
		return
	}
	tick := 0
	if ctx.Clock != nil {
		tick = ctx.Clock.Tick
	}
	ctx.Log.AddVerbose(tick, actor, category, key, value, num)
}

// SceneKind tags the closed set of scenes.
type SceneKind int

const (
	SceneNone SceneKind = iota
	SceneMenu
	SceneIntro
	SceneGameplay
)

func (k SceneKind) String() string {
	switch k {
	case SceneNone:
		return "none"
	case SceneMenu:
		return "menu"
	case SceneIntro:
		return "intro"
	case SceneGameplay:
		return "gameplay"
	default:
		return "unknown"
	}
}

// Scene is one phase of the game. Init runs once, one frame after the scene
// is constructed; Update runs every frame after that and may request a
// transition by returning a kind other than SceneNone; Exit runs once when
// the scene is torn down.
type Scene interface {
	Init() error
	Update(now, dt float64) SceneKind
	Exit()
	IsPlayerControlled() bool
}

// SceneFactory constructs a scene, attaching its models to the scene graph.
type SceneFactory func(ctx *Context) (Scene, error)

// DefaultFactories returns the constructors for the game's scenes.
func DefaultFactories() map[SceneKind]SceneFactory {
	return map[SceneKind]SceneFactory{
		SceneMenu:     NewMenuScene,
		SceneIntro:    NewIntroScene,
		SceneGameplay: NewGameplayScene,
	}
}

// kindOf maps a scene to its tag.
func kindOf(s Scene) SceneKind {
	switch s.(type) {
	case *MenuScene:
		return SceneMenu
	case *IntroScene:
		return SceneIntro
	case *GameplayScene:
		return SceneGameplay
	default:
		return SceneNone
	}
}

// cameraBobber is implemented by non-interactive scenes that want a
// different camera bob than the default.
type cameraBobber interface {
	Bob() (magnitude, speed float64)
}

// fader is implemented by scenes with a fade-in overlay.
type fader interface {
	Fade() *Fade
}

// chaseScene is implemented by scenes that host chickens.
type chaseScene interface {
	Chickens() []*Chicken
}

// baseScene holds the model map shared by all scenes.
type baseScene struct {
	ctx              *Context
	models           map[string]ModelHandle
	playerControlled bool
}

func newBaseScene(ctx *Context, playerControlled bool) baseScene {
	return baseScene{
		ctx:              ctx,
		models:           make(map[string]ModelHandle),
		playerControlled: playerControlled,
	}
}

// IsPlayerControlled reports whether input drives the camera.
func (b *baseScene) IsPlayerControlled() bool { return b.playerControlled }

// Models returns the scene's keyed models.
func (b *baseScene) Models() map[string]ModelHandle { return b.models }

// addObject spawns a model and files it under key, or under the next index
// when key is empty.
func (b *baseScene) addObject(name, key string, pos, scale mgl64.Vec3) (ModelHandle, error) {
	h, err := b.ctx.Graph.SpawnModel(name, pos, scale, nil)
	if err != nil {
		return ModelHandle{}, err
	}
	b.models[b.keyFor(key)] = h
	return h, nil
}

// addInstance places another copy of the model filed under of.
func (b *baseScene) addInstance(of string, pos, scale mgl64.Vec3) (ModelHandle, error) {
	src, ok := b.models[of]
	if !ok {
		return ModelHandle{}, fmt.Errorf("instance of %q: %w", of, ErrAssetNotFound)
	}
	h, err := b.ctx.Graph.Instance(src, pos, scale)
	if err != nil {
		return ModelHandle{}, err
	}
	b.models[b.keyFor("")] = h
	return h, nil
}

func (b *baseScene) keyFor(key string) string {
	if key != "" {
		return key
	}
	return strconv.Itoa(len(b.models))
}

var unitScale = mgl64.Vec3{1, 1, 1}

// buildFarm lays out the ground, the barn and the corn field with its
// lollipop-shaped clearing around the barn.
func (b *baseScene) buildFarm() error {
	if _, err := b.addObject("ground.bam", "ground", mgl64.Vec3{}, mgl64.Vec3{3.6, 3.6, 2}); err != nil {
		return err
	}
	if _, err := b.addObject("barn.bam", "barn", mgl64.Vec3{}, unitScale); err != nil {
		return err
	}
	if _, err := b.addObject("corn.egg", "corn", mgl64.Vec3{-62, -62, 0}, mgl64.Vec3{1, 1, 1.3}); err != nil {
		return err
	}
	for x := 0; x < 25; x++ {
		for z := 0; z < 25; z++ {
			if !cornPlanted(x, z) {
				continue
			}
			if _, err := b.addInstance("corn", mgl64.Vec3{float64(x * 5), float64(z * 5), 0}, unitScale); err != nil {
				return err
			}
		}
	}
	return nil
}

// cornPlanted reports whether grid cell (x, z) of the 25x25 field holds corn.
// The clearing is a circle of radius 5 cells at the centre plus a 3-cell-wide
// lane running from the south edge into it.
func cornPlanted(x, z int) bool {
	dx, dz := x-12, z-12
	return dx*dx+dz*dz > 25 && (int(math.Abs(float64(dx))) > 1 || z > 12)
}
