package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	eyeHeight    = 3.5
	playerRadius = 0.9
	playerHeight = 4.0
)

// playerSpawn is where the player stands when free roam begins: in the corn
// lane, facing the barn.
var playerSpawn = mgl64.Vec3{0, -40, 0}

// GameplayScene is the first free-roam scene. The player walks the farm; the
// chickens run their distance state machine every frame.
type GameplayScene struct {
	baseScene
	fade     *Fade
	ai       *AIWorld
	chickens []*Chicken
	player   *Collider
}

// NewGameplayScene builds the farm for free roam. A missing asset is fatal.
func NewGameplayScene(ctx *Context) (Scene, error) {
	s := &GameplayScene{
		baseScene: newBaseScene(ctx, true),
		ai:        NewAIWorld(ctx.Graph),
	}
	if err := s.buildFarm(); err != nil {
		return nil, fmt.Errorf("build gameplay: %w", err)
	}
	return s, nil
}

// Init places the player, registers its collider and spawns the chickens.
func (s *GameplayScene) Init() error {
	cam := s.ctx.Camera
	cam.Pos = playerSpawn.Add(mgl64.Vec3{0, 0, eyeHeight})
	cam.SetHPR(0, 0, 0)
	if s.ctx.Collision != nil {
		s.player = &Collider{
			Node:    CameraNode,
			Radius:  playerRadius,
			Height:  playerHeight,
			Footing: eyeHeight,
			Gravity: true,
		}
		s.ctx.Collision.AddCollider(s.player)
	}

	s.fade = NewFade()
	s.ctx.Tasks.Add(taskFadeIn, s.fade.Step)

	for i, pos := range chickenSpawns {
		ch, err := SpawnChicken(s.ctx, s.ai, fmt.Sprintf("C%d", i+1), pos)
		if err != nil {
			return fmt.Errorf("init gameplay: %w", err)
		}
		s.chickens = append(s.chickens, ch)
	}
	s.ctx.logEvent("--", "scene", "init", SceneGameplay.String(), 0)
	return nil
}

// Update steps locomotion, then each chicken's state machine, then collision
// response.
func (s *GameplayScene) Update(_, dt float64) SceneKind {
	s.ai.Update(dt)
	for _, ch := range s.chickens {
		before := ch.State()
		d := ch.Distance()
		after, cmds := ch.Tick()
		s.ctx.logVerbose(ch.Label, "chicken", "distance", fmt.Sprintf("%.2f", d), d)
		if after != before {
			s.ctx.logEvent(ch.Label, "chicken", "state", before.String()+" → "+after.String(), d)
		}
		for _, c := range cmds {
			if c.Kind == CmdCancelPursue {
				s.ctx.logEvent(ch.Label, "chicken", "escaped", "pursuit cancelled", d)
			}
		}
	}
	if s.ctx.Collision != nil {
		s.ctx.Collision.Traverse(s.ctx.Graph, dt)
	}
	return SceneNone
}

// Exit silences the chickens and drops the fade task.
func (s *GameplayScene) Exit() {
	s.ctx.Tasks.Remove(taskFadeIn)
	for _, ch := range s.chickens {
		ch.Release()
	}
}

func (s *GameplayScene) Fade() *Fade { return s.fade }

func (s *GameplayScene) Chickens() []*Chicken { return s.chickens }

// AI returns the scene's steering world.
func (s *GameplayScene) AI() *AIWorld { return s.ai }
