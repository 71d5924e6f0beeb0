package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

const (
	alertRange  = 11.0 // outer edge of the alert band
	chaseRange  = 8.0  // outer edge of the slow pursue band
	sprintRange = 5.0  // outer edge of the fast pursue band

	// escapeFrameLimit is ~4 seconds at the target frame rate.
	escapeFrameLimit = 120

	slowPursueForce = 8.0
	fastPursueForce = 27.0

	// initialLastDistance starts every chicken just outside the alert band.
	initialLastDistance = 12.0

	chickenModel     = "chicken.bam"
	chickenCue       = "resources/generic/sounds/chicken_cluck.ogg"
	chickenMovtForce = 0.05
	chickenRadius    = 0.45
)

var chickenScale = mgl64.Vec3{0.3, 0.3, 0.3}

// BehaviorState is a chicken's engagement level with the player.
type BehaviorState int

const (
	BehaviorIdle       BehaviorState = iota // player out of range
	BehaviorAlert                           // watching, player may still escape
	BehaviorPursueSlow                      // chasing at low force
	BehaviorPursueFast                      // sprinting
)

func (bs BehaviorState) String() string {
	switch bs {
	case BehaviorIdle:
		return "idle"
	case BehaviorAlert:
		return "alert"
	case BehaviorPursueSlow:
		return "pursue_slow"
	case BehaviorPursueFast:
		return "pursue_fast"
	default:
		return "unknown"
	}
}

// CommandKind names a side effect requested by Step.
type CommandKind int

const (
	CmdFacePlayer   CommandKind = iota // turn the body toward the player
	CmdPlayCue                         // play the cue unless already playing
	CmdSetLooping                      // set the cue's loop flag
	CmdPursue                          // start pursuing unless already pursuing
	CmdSetMaxForce                     // set locomotion max force
	CmdCancelPursue                    // drop the pursue behaviour
)

func (k CommandKind) String() string {
	switch k {
	case CmdFacePlayer:
		return "face_player"
	case CmdPlayCue:
		return "play_cue"
	case CmdSetLooping:
		return "set_looping"
	case CmdPursue:
		return "pursue"
	case CmdSetMaxForce:
		return "set_max_force"
	case CmdCancelPursue:
		return "cancel_pursue"
	default:
		return "unknown"
	}
}

// Command is one side effect. Force is used by CmdSetMaxForce, Loop by
// CmdSetLooping.
type Command struct {
	Kind  CommandKind
	Force float64
	Loop  bool
}

// Transition is the result of one Step.
type Transition struct {
	State    BehaviorState
	Escape   int
	Commands []Command
}

// Has reports whether the transition requested a command of kind k.
func (t Transition) Has(k CommandKind) bool {
	for _, c := range t.Commands {
		if c.Kind == k {
			return true
		}
	}
	return false
}

func pursueCommands(force float64) []Command {
	return []Command{
		{Kind: CmdPursue},
		{Kind: CmdSetMaxForce, Force: force},
		{Kind: CmdSetLooping, Loop: true},
		{Kind: CmdPlayCue},
	}
}

// Step is the chicken's transition function. d is this frame's distance to
// the player and dPrev the previous frame's.
//
// The alert and slow bands form one if/else chain; the sprint band is
// checked on its own afterwards, every frame. The bands do not overlap, so
// at most one of them fires per frame.
func Step(state BehaviorState, d, dPrev float64, escape int) Transition {
	t := Transition{State: state, Escape: escape}

	if d <= alertRange && d > chaseRange {
		if dPrev <= chaseRange || dPrev > alertRange {
			t.State = BehaviorAlert
			t.Commands = append(t.Commands, Command{Kind: CmdFacePlayer}, Command{Kind: CmdPlayCue})
		}
		// Player is outside chase range: count toward giving up.
		if dPrev > chaseRange {
			t.Escape++
			if t.Escape > escapeFrameLimit {
				t.Commands = append(t.Commands, Command{Kind: CmdCancelPursue})
				t.Escape = 0
			}
		} else {
			t.Escape = 0
		}
	} else if d <= chaseRange && d > sprintRange {
		if dPrev > chaseRange || dPrev <= sprintRange {
			t.State = BehaviorPursueSlow
			t.Commands = append(t.Commands, pursueCommands(slowPursueForce)...)
		}
	}

	if d <= sprintRange && dPrev > sprintRange {
		t.State = BehaviorPursueFast
		t.Commands = append(t.Commands, pursueCommands(fastPursueForce)...)
	}

	if d > alertRange {
		t.State = BehaviorIdle
	}
	return t
}

// Chicken is a pursuing NPC. Its position lives in the scene graph; the
// chicken only holds the handle.
type Chicken struct {
	ID     uuid.UUID
	Label  string
	node   ModelHandle
	target ModelHandle
	graph  SceneGraph
	steer  Steerer
	cue    Cue

	state        BehaviorState
	distance     float64
	lastDistance float64
	escapeFrames int
}

// NewChicken binds a chicken to an already spawned node.
func NewChicken(label string, node, target ModelHandle, graph SceneGraph, steer Steerer, cue Cue) *Chicken {
	return &Chicken{
		ID:           uuid.New(),
		Label:        label,
		node:         node,
		target:       target,
		graph:        graph,
		steer:        steer,
		cue:          cue,
		distance:     graph.Distance(node, target),
		lastDistance: initialLastDistance,
	}
}

// SpawnChicken loads a chicken model at pos, registers it with the AI world,
// the audio system and the collision world, and returns it hunting the
// camera.
func SpawnChicken(ctx *Context, ai *AIWorld, label string, pos mgl64.Vec3) (*Chicken, error) {
	node, err := ctx.Graph.SpawnModel(chickenModel, pos, chickenScale, map[string]string{})
	if err != nil {
		return nil, fmt.Errorf("spawn chicken %s: %w", label, err)
	}
	cue, err := ctx.Audio.LoadCue(chickenCue, node)
	if err != nil {
		return nil, fmt.Errorf("spawn chicken %s: %w", label, err)
	}
	ch := ai.AddCharacter("chicken", node, chickenMovtForce, 1)
	if ctx.Collision != nil {
		ctx.Collision.AddCollider(&Collider{Node: node, Radius: chickenRadius, Height: 1})
	}
	return NewChicken(label, node, CameraNode, ctx.Graph, ch, cue), nil
}

// Update runs one frame of the state machine at distance d and applies the
// resulting commands.
func (c *Chicken) Update(d float64) (BehaviorState, []Command) {
	t := Step(c.state, d, c.lastDistance, c.escapeFrames)
	c.state = t.State
	c.escapeFrames = t.Escape
	for _, cmd := range t.Commands {
		c.apply(cmd)
	}
	c.lastDistance = d
	return c.state, t.Commands
}

// Tick updates with the distance measured at the end of the previous frame,
// then measures again for the next one.
func (c *Chicken) Tick() (BehaviorState, []Command) {
	state, cmds := c.Update(c.distance)
	c.distance = c.graph.Distance(c.node, c.target)
	return state, cmds
}

func (c *Chicken) apply(cmd Command) {
	switch cmd.Kind {
	case CmdFacePlayer:
		c.graph.LookAt(c.node, c.target)
	case CmdPlayCue:
		if !c.cue.IsPlaying() {
			c.cue.Play()
		}
	case CmdSetLooping:
		c.cue.SetLooping(cmd.Loop)
	case CmdPursue:
		if c.steer.BehaviorStatus(behaviorPursue) != statusActive {
			c.steer.Pursue(c.target)
		}
	case CmdSetMaxForce:
		c.steer.SetMaxForce(cmd.Force)
	case CmdCancelPursue:
		c.steer.RemoveAI(behaviorPursue)
	}
}

// Release stops the chicken's cue.
func (c *Chicken) Release() {
	c.cue.Stop()
}

// State returns the current behaviour state.
func (c *Chicken) State() BehaviorState { return c.state }

// Distance returns the distance measured for the next frame.
func (c *Chicken) Distance() float64 { return c.distance }

// LastDistance returns the distance used on the previous frame.
func (c *Chicken) LastDistance() float64 { return c.lastDistance }

// EscapeFrames returns the consecutive frames the player has stayed outside
// chase range while the chicken was alert.
func (c *Chicken) EscapeFrames() int { return c.escapeFrames }

// Node returns the chicken's scene graph handle.
func (c *Chicken) Node() ModelHandle { return c.node }

// Steering returns the locomotion collaborator.
func (c *Chicken) Steering() Steerer { return c.steer }

// Cue returns the bound sound cue.
func (c *Chicken) Cue() Cue { return c.cue }
