package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	taskCameraPath = "camera-path"
	taskFadeIn     = "fade-in"

	introPointDuration = 0.8
	introChickenForce  = 30.0
)

// introPath is the flythrough down the corn lane to the barn.
var introPath = ScriptedPath{
	PointDuration: introPointDuration,
	Frames: []Keyframe{
		{Pos: mgl64.Vec3{0, -63, 4}, HPR: mgl64.Vec3{0, 0, 0}},
		{Pos: mgl64.Vec3{0, -63, 4}, HPR: mgl64.Vec3{0, 0, 0}},
		{Pos: mgl64.Vec3{0, -63, 4}, HPR: mgl64.Vec3{0, 0, 0}},
		{Pos: mgl64.Vec3{0, -56, 4}, HPR: mgl64.Vec3{-90, -10, 0}},
		{Pos: mgl64.Vec3{0, -52, 4}, HPR: mgl64.Vec3{0, -70, 0}},
		{Pos: mgl64.Vec3{0, -46, 4}, HPR: mgl64.Vec3{90, 0, 20}},
		{Pos: mgl64.Vec3{0, -40, 4}, HPR: mgl64.Vec3{0, 0, 0}},
		{Pos: mgl64.Vec3{0, -30, 4}, HPR: mgl64.Vec3{0, 0, 0}},
		{Pos: mgl64.Vec3{0, -20, 4}, HPR: mgl64.Vec3{0, 0, 0}},
		{Pos: mgl64.Vec3{5, -10, 4}, HPR: mgl64.Vec3{-40, 0, -5}},
		{Pos: mgl64.Vec3{5, -9, 4}, HPR: mgl64.Vec3{-190, 0, 0}},
		{Pos: mgl64.Vec3{5, -4, 4}, HPR: mgl64.Vec3{-190, 0, -5}},
		{Pos: mgl64.Vec3{4, 0, 0.5}, HPR: mgl64.Vec3{-190, 80, 0}},
	},
}

// chickenSpawns are shared by the intro and the first gameplay scene.
var chickenSpawns = []mgl64.Vec3{
	{20, -50, 0},
	{-20, -40, 0},
}

// IntroScene is the non-interactive flythrough. Two chickens chase the
// camera down the lane; when the path ends the scene asks for gameplay.
type IntroScene struct {
	baseScene
	path     ScriptedPath
	player   *PathPlayer
	fade     *Fade
	ai       *AIWorld
	chickens []*Chicken
}

// NewIntroScene builds the farm for the intro. A missing asset is fatal.
func NewIntroScene(ctx *Context) (Scene, error) {
	s := &IntroScene{
		baseScene: newBaseScene(ctx, false),
		path:      introPath,
		ai:        NewAIWorld(ctx.Graph),
	}
	if err := s.buildFarm(); err != nil {
		return nil, fmt.Errorf("build intro: %w", err)
	}
	return s, nil
}

// Init starts the path, the fade-in and the chickens.
func (s *IntroScene) Init() error {
	now := s.ctx.Clock.Now
	s.playerControlled = false

	s.player = NewPathPlayer(s.path, s.ctx.Camera)
	s.player.Start(now)
	s.ctx.Tasks.Add(taskCameraPath, s.player.Task)
	s.ctx.logEvent("camera", "path", "start", fmt.Sprintf("%d keyframes, %.1fs", len(s.path.Frames), s.path.Duration()), s.path.Duration())

	s.fade = NewFade()
	s.ctx.Tasks.Add(taskFadeIn, s.fade.Step)

	for i, pos := range chickenSpawns {
		ch, err := SpawnChicken(s.ctx, s.ai, fmt.Sprintf("C%d", i+1), pos)
		if err != nil {
			return fmt.Errorf("init intro: %w", err)
		}
		ch.Steering().SetMaxForce(introChickenForce)
		ch.Steering().Pursue(CameraNode)
		s.chickens = append(s.chickens, ch)
	}
	s.ctx.logEvent("--", "scene", "init", SceneIntro.String(), 0)
	return nil
}

// Update hands over to gameplay once the path has run its course.
func (s *IntroScene) Update(now, dt float64) SceneKind {
	if s.player != nil && s.player.Finished(now) {
		s.ctx.Tasks.Remove(taskCameraPath)
		s.ctx.logEvent("camera", "path", "end", fmt.Sprintf("%d frames", s.player.Frames()), s.player.Elapsed(now))
		s.player = nil
		return SceneGameplay
	}
	s.ai.Update(dt)
	return SceneNone
}

// Exit removes the path and fade tasks so nothing writes to the camera after
// the scene is gone.
func (s *IntroScene) Exit() {
	s.ctx.Tasks.Remove(taskCameraPath)
	s.ctx.Tasks.Remove(taskFadeIn)
	for _, ch := range s.chickens {
		ch.Release()
	}
	s.player = nil
}

// Path returns the running path player, or nil once it has finished.
func (s *IntroScene) Path() *PathPlayer { return s.player }

func (s *IntroScene) Fade() *Fade { return s.fade }

func (s *IntroScene) Chickens() []*Chicken { return s.chickens }

// AI returns the scene's steering world.
func (s *IntroScene) AI() *AIWorld { return s.ai }
