package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func vecNear(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

func TestScriptedPath_DurationAndEnds(t *testing.T) {
	if d := introPath.Duration(); math.Abs(d-10.4) > 1e-9 {
		t.Fatalf("expected intro duration 10.4s, got %.3f", d)
	}
	first := introPath.Sample(0)
	if first.Pos != introPath.Frames[0].Pos {
		t.Fatalf("expected first keyframe at u=0, got %v", first.Pos)
	}
	last := introPath.Sample(1)
	if last.Pos != introPath.Frames[len(introPath.Frames)-1].Pos {
		t.Fatalf("expected last keyframe at u=1, got %v", last.Pos)
	}
}

func TestScriptedPath_PassesThroughKeyframes(t *testing.T) {
	p := ScriptedPath{PointDuration: 1, Frames: []Keyframe{
		{Pos: mgl64.Vec3{0, 0, 0}},
		{Pos: mgl64.Vec3{0, 10, 0}},
		{Pos: mgl64.Vec3{10, 10, 0}},
	}}
	mid := p.Sample(0.5)
	if !vecNear(mid.Pos, mgl64.Vec3{0, 10, 0}, 1e-9) {
		t.Fatalf("expected middle keyframe at u=0.5, got %v", mid.Pos)
	}
}

func TestPathPlayer_DrivesCameraUntilEnd(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{99, 99, 99})
	pp := NewPathPlayer(introPath, cam)
	pp.Start(2)
	if cam.Pos != introPath.Frames[0].Pos {
		t.Fatalf("expected camera on first keyframe after Start, got %v", cam.Pos)
	}
	if pp.End() != 2+introPath.Duration() {
		t.Fatalf("unexpected end %.2f", pp.End())
	}

	if st := pp.Task(5); st != TaskCont {
		t.Fatal("expected task to continue mid-path")
	}
	if pp.Frames() != 1 {
		t.Fatalf("expected one frame written, got %d", pp.Frames())
	}
	if pp.Finished(2 + 5) {
		t.Fatal("expected not finished mid-path")
	}

	before := cam.Pos
	if st := pp.Task(introPath.Duration() + 0.01); st != TaskDone {
		t.Fatal("expected task done past the end")
	}
	if cam.Pos != before {
		t.Fatal("expected no camera write once the path is over")
	}
	if !pp.Finished(pp.End() + 0.01) {
		t.Fatal("expected finished past the end")
	}
	if got := pp.Elapsed(pp.End()); math.Abs(got-introPath.Duration()) > 1e-9 {
		t.Fatalf("expected elapsed %.2f, got %.2f", introPath.Duration(), got)
	}
}

func TestCamera_ForwardConvention(t *testing.T) {
	cam := NewCamera(mgl64.Vec3{})
	if !vecNear(cam.Forward(), mgl64.Vec3{0, 1, 0}, 1e-9) {
		t.Fatalf("expected +Y at heading 0, got %v", cam.Forward())
	}
	cam.SetHPR(90, 0, 0)
	if !vecNear(cam.Forward(), mgl64.Vec3{-1, 0, 0}, 1e-9) {
		t.Fatalf("expected -X at heading 90, got %v", cam.Forward())
	}
	cam.SetHPR(0, 90, 0)
	if !vecNear(cam.Forward(), mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Fatalf("expected +Z at pitch 90, got %v", cam.Forward())
	}
	if h := headingTo(mgl64.Vec3{}, mgl64.Vec3{-5, 0, 0}); math.Abs(h-90) > 1e-9 {
		t.Fatalf("expected heading 90 toward -X, got %.2f", h)
	}
}
