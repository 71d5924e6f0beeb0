package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newSteeringWorld(t *testing.T, chickenAt mgl64.Vec3) (*World, *AIWorld, *AICharacter) {
	t.Helper()
	w := NewWorld(QualitySuperLow, NewCamera(mgl64.Vec3{}), nil)
	node, err := w.SpawnModel(chickenModel, chickenAt, chickenScale, map[string]string{})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	ai := NewAIWorld(w)
	ch := ai.AddCharacter("chicken", node, chickenMovtForce, 1)
	return w, ai, ch
}

func TestAICharacter_BehaviorStatus(t *testing.T) {
	_, _, ch := newSteeringWorld(t, mgl64.Vec3{0, 10, 0})
	if got := ch.BehaviorStatus(behaviorPursue); got != statusDisabled {
		t.Fatalf("expected disabled before pursue, got %s", got)
	}
	ch.Pursue(CameraNode)
	if got := ch.BehaviorStatus(behaviorPursue); got != statusActive {
		t.Fatalf("expected active after pursue, got %s", got)
	}
	ch.RemoveAI(behaviorPursue)
	if got := ch.BehaviorStatus(behaviorPursue); got != statusDisabled {
		t.Fatalf("expected disabled after remove, got %s", got)
	}
	ch.RemoveAI("flee")
}

func TestAIWorld_PursuerClosesDistance(t *testing.T) {
	w, ai, ch := newSteeringWorld(t, mgl64.Vec3{0, 20, 0})
	ch.SetMaxForce(fastPursueForce)
	ch.Pursue(CameraNode)
	start := w.Distance(ch.Node, CameraNode)
	for i := 0; i < 60; i++ {
		ai.Update(1.0 / 30)
	}
	end := w.Distance(ch.Node, CameraNode)
	if end >= start {
		t.Fatalf("expected pursuer to close in, start=%.2f end=%.2f", start, end)
	}
	if z := w.Position(ch.Node).Z(); z != 0 {
		t.Fatalf("expected pursuer to stay on the ground, z=%.2f", z)
	}
}

func TestAIWorld_SpeedCappedByForce(t *testing.T) {
	_, ai, ch := newSteeringWorld(t, mgl64.Vec3{0, 200, 0})
	ch.SetMaxForce(slowPursueForce)
	ch.Pursue(CameraNode)
	for i := 0; i < 300; i++ {
		ai.Update(1.0 / 30)
		if v := ch.Velocity.Len(); v > ch.TopSpeed()+1e-9 {
			t.Fatalf("tick %d: speed %.3f exceeds cap %.3f", i, v, ch.TopSpeed())
		}
	}
}

func TestAIWorld_CoastsToStopWithoutBehavior(t *testing.T) {
	_, ai, ch := newSteeringWorld(t, mgl64.Vec3{0, 20, 0})
	ch.Velocity = mgl64.Vec3{1, 0, 0}
	for i := 0; i < 120; i++ {
		ai.Update(1.0 / 30)
	}
	if v := ch.Velocity.Len(); v > 0.01 {
		t.Fatalf("expected velocity to decay, got %.4f", v)
	}
}

func TestAIWorld_FacesDirectionOfTravel(t *testing.T) {
	w, ai, ch := newSteeringWorld(t, mgl64.Vec3{0, 20, 0})
	ch.SetMaxForce(fastPursueForce)
	ch.Pursue(CameraNode)
	for i := 0; i < 10; i++ {
		ai.Update(1.0 / 30)
	}
	// Heading toward -Y is 180 degrees.
	if h := math.Abs(normalizeDegrees(w.Node(ch.Node).Heading)); math.Abs(h-180) > 1 {
		t.Fatalf("expected heading ~180, got %.2f", w.Node(ch.Node).Heading)
	}
}

func TestTruncate(t *testing.T) {
	v := truncate(mgl64.Vec3{3, 4, 0}, 1)
	if math.Abs(v.Len()-1) > 1e-9 {
		t.Fatalf("expected length 1, got %.4f", v.Len())
	}
	if got := truncate(mgl64.Vec3{0.1, 0, 0}, 1); got != (mgl64.Vec3{0.1, 0, 0}) {
		t.Fatalf("expected short vector unchanged, got %v", got)
	}
}
