package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	behaviorPursue = "pursue"

	statusActive   = "active"
	statusDisabled = "disabled"

	// speedPerForce converts movement force x max force into top speed.
	speedPerForce = 10.0
	// brakeRate is how quickly an idle character sheds velocity, per second.
	brakeRate = 4.0
	// pursueLookahead is how far ahead, in seconds, a pursuer leads its target.
	pursueLookahead = 0.5
)

// Steerer is the locomotion collaborator a chicken drives.
type Steerer interface {
	SetMaxForce(f float64)
	Pursue(target ModelHandle)
	RemoveAI(name string)
	BehaviorStatus(name string) string
}

type steeringBehavior struct {
	target     ModelHandle
	lastTarget mgl64.Vec3
	primed     bool
}

// AICharacter is one steered body in an AIWorld.
type AICharacter struct {
	Name      string
	Node      ModelHandle
	MovtForce float64
	MaxForce  float64
	Velocity  mgl64.Vec3

	behaviors map[string]*steeringBehavior
}

// SetMaxForce caps the steering force, which also sets the top speed.
func (ch *AICharacter) SetMaxForce(f float64) {
	ch.MaxForce = f
}

// Pursue (re)starts steering toward target.
func (ch *AICharacter) Pursue(target ModelHandle) {
	ch.behaviors[behaviorPursue] = &steeringBehavior{target: target}
}

// RemoveAI drops a named behaviour. Unknown names are ignored.
func (ch *AICharacter) RemoveAI(name string) {
	delete(ch.behaviors, name)
}

// BehaviorStatus reports "active" for a running behaviour, "disabled" otherwise.
func (ch *AICharacter) BehaviorStatus(name string) string {
	if _, ok := ch.behaviors[name]; ok {
		return statusActive
	}
	return statusDisabled
}

// TopSpeed returns the current speed cap in units per second.
func (ch *AICharacter) TopSpeed() float64 {
	return ch.MovtForce * ch.MaxForce * speedPerForce
}

// AIWorld steps every registered character once per frame.
type AIWorld struct {
	graph SceneGraph
	chars []*AICharacter
}

// NewAIWorld creates an AI world that moves nodes in graph.
func NewAIWorld(graph SceneGraph) *AIWorld {
	return &AIWorld{graph: graph}
}

// AddCharacter registers a steered body bound to node.
func (w *AIWorld) AddCharacter(name string, node ModelHandle, movtForce, maxForce float64) *AICharacter {
	ch := &AICharacter{
		Name:      name,
		Node:      node,
		MovtForce: movtForce,
		MaxForce:  maxForce,
		behaviors: make(map[string]*steeringBehavior),
	}
	w.chars = append(w.chars, ch)
	return ch
}

// Characters returns the registered characters.
func (w *AIWorld) Characters() []*AICharacter { return w.chars }

// Update advances every character by dt seconds.
func (w *AIWorld) Update(dt float64) {
	if dt <= 0 {
		return
	}
	for _, ch := range w.chars {
		w.step(ch, dt)
	}
}

func (w *AIWorld) step(ch *AICharacter, dt float64) {
	pos := w.graph.Position(ch.Node)
	b, pursuing := ch.behaviors[behaviorPursue]
	if !pursuing {
		// Coast to a stop.
		ch.Velocity = ch.Velocity.Mul(math.Max(0, 1-brakeRate*dt))
		w.graph.SetPosition(ch.Node, pos.Add(ch.Velocity.Mul(dt)))
		return
	}

	target := w.graph.Position(b.target)
	predicted := target
	if b.primed {
		targetVel := target.Sub(b.lastTarget).Mul(1 / dt)
		predicted = target.Add(targetVel.Mul(pursueLookahead))
	}
	b.lastTarget = target
	b.primed = true

	// Chickens stay on the ground plane.
	toward := predicted.Sub(pos)
	toward[2] = 0
	if toward.Len() < 1e-6 {
		return
	}
	desired := toward.Normalize().Mul(ch.TopSpeed())
	steer := truncate(desired.Sub(ch.Velocity), ch.MaxForce)
	ch.Velocity = truncate(ch.Velocity.Add(steer.Mul(dt)), ch.TopSpeed())

	w.graph.SetPosition(ch.Node, pos.Add(ch.Velocity.Mul(dt)))
	if ch.Velocity.Len() > 1e-6 {
		w.graph.SetHeading(ch.Node, headingTo(mgl64.Vec3{}, ch.Velocity))
	}
}

func truncate(v mgl64.Vec3, limit float64) mgl64.Vec3 {
	l := v.Len()
	if l <= limit || l < 1e-9 {
		return v
	}
	return v.Mul(limit / l)
}
