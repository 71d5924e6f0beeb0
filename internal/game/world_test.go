package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWorld_SpawnUnknownModel(t *testing.T) {
	w := NewWorld(QualityLow, NewCamera(mgl64.Vec3{}), nil)
	_, err := w.SpawnModel("tractor.bam", mgl64.Vec3{}, unitScale, nil)
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "resources/low/tractor.bam") {
		t.Fatalf("expected quality path in error, got %v", err)
	}
}

func TestWorld_InstanceComposesTransform(t *testing.T) {
	w := NewWorld(QualitySuperLow, NewCamera(mgl64.Vec3{}), nil)
	src, err := w.SpawnModel("corn.egg", mgl64.Vec3{-62, -62, 0}, mgl64.Vec3{1, 1, 1.3}, nil)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	inst, err := w.Instance(src, mgl64.Vec3{10, 5, 0}, mgl64.Vec3{2, 2, 2})
	if err != nil {
		t.Fatalf("instance: %v", err)
	}
	n := w.Node(inst)
	if n.Pos != (mgl64.Vec3{-52, -57, 0}) {
		t.Fatalf("expected composed position, got %v", n.Pos)
	}
	if n.Scale != (mgl64.Vec3{2, 2, 2.6}) {
		t.Fatalf("expected composed scale, got %v", n.Scale)
	}
	if n.InstanceOf != src || n.Model != "corn.egg" {
		t.Fatalf("expected instance of %s, got %+v", src, n)
	}
}

func TestWorld_DetachAllKeepsCamera(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{1, 2, 3})
	w := NewWorld(QualitySuperLow, cam, nil)
	if _, err := w.SpawnModel("barn.bam", mgl64.Vec3{}, unitScale, nil); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	w.DetachAll()
	if w.Len() != 0 || len(w.Nodes()) != 0 {
		t.Fatalf("expected empty graph, got %d nodes", w.Len())
	}
	if w.Position(CameraNode) != (mgl64.Vec3{1, 2, 3}) {
		t.Fatal("expected camera to survive detach")
	}
}

func TestWorld_LookAtFacesTarget(t *testing.T) {
	w := NewWorld(QualitySuperLow, NewCamera(mgl64.Vec3{}), nil)
	h, err := w.SpawnModel(chickenModel, mgl64.Vec3{10, 0, 0}, chickenScale, map[string]string{})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if !w.Node(h).Actor {
		t.Fatal("expected a model with an animation set to be an actor")
	}
	w.LookAt(h, CameraNode)
	// Facing -X is heading 90.
	if got := w.Node(h).Heading; got < 89.999 || got > 90.001 {
		t.Fatalf("expected heading 90, got %.3f", got)
	}
}

func TestBuildFarm_LaneAndClearing(t *testing.T) {
	if cornPlanted(12, 12) {
		t.Fatal("expected the barn clearing to be empty")
	}
	if cornPlanted(12, 2) || cornPlanted(11, 4) || cornPlanted(13, 0) {
		t.Fatal("expected the south lane to be empty")
	}
	if !cornPlanted(12, 20) {
		t.Fatal("expected corn north of the clearing")
	}
	if !cornPlanted(0, 0) || !cornPlanted(10, 2) {
		t.Fatal("expected corn outside the lane")
	}

	ts := NewTestSim(WithInitialScene(SceneIntro))
	if ts.Err != nil {
		t.Fatalf("sim: %v", ts.Err)
	}
	corn := 0
	for _, n := range ts.World.Nodes() {
		if n.Model == "corn.egg" {
			corn++
		}
	}
	want := 1
	for x := 0; x < 25; x++ {
		for z := 0; z < 25; z++ {
			if cornPlanted(x, z) {
				want++
			}
		}
	}
	if corn != want {
		t.Fatalf("expected %d corn nodes, got %d", want, corn)
	}
}
