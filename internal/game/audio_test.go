package game

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newSilentBank(t *testing.T) (*World, *CueBank, ModelHandle) {
	t.Helper()
	w := NewWorld(QualitySuperLow, NewCamera(mgl64.Vec3{}), nil)
	node, err := w.SpawnModel(chickenModel, mgl64.Vec3{0, 6, 0}, chickenScale, map[string]string{})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	b, err := NewCueBank(w, false)
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	return w, b, node
}

func TestCueBank_UnknownSound(t *testing.T) {
	_, b, node := newSilentBank(t)
	if _, err := b.LoadCue("resources/generic/sounds/moo.ogg", node); !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestCueBank_OneShotEnds(t *testing.T) {
	_, b, node := newSilentBank(t)
	cue, err := b.LoadCue(chickenCue, node)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cue.Play()
	if !cue.IsPlaying() {
		t.Fatal("expected cue playing after Play")
	}
	b.Update(0.1)
	if !cue.IsPlaying() {
		t.Fatal("expected cue still playing after 0.1s")
	}
	b.Update(1)
	if cue.IsPlaying() {
		t.Fatal("expected one-shot cue to finish")
	}
}

func TestCueBank_LoopingTakesEffectWhilePlaying(t *testing.T) {
	_, b, node := newSilentBank(t)
	cue, err := b.LoadCue(chickenCue, node)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cue.Play()
	b.Update(0.2)
	cue.SetLooping(true)
	b.Update(10)
	if !cue.IsPlaying() {
		t.Fatal("expected a playing cue to keep sounding once looped")
	}

	cue.SetLooping(false)
	b.Update(0.1)
	if !cue.IsPlaying() {
		t.Fatal("expected an unlooped cue to finish its current pass")
	}
	b.Update(1)
	if cue.IsPlaying() {
		t.Fatal("expected the cue to end after its last pass")
	}
	cue.Stop()
}

func TestCueBank_LoopFlagCarriesToNextPlay(t *testing.T) {
	_, b, node := newSilentBank(t)
	cue, err := b.LoadCue(chickenCue, node)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cue.SetLooping(true)
	cue.Play()
	b.Update(10)
	if !cue.IsPlaying() {
		t.Fatal("expected looping cue to keep playing")
	}
	cue.Stop()
	if cue.IsPlaying() {
		t.Fatal("expected Stop to halt a looping cue")
	}
}

func TestCueBank_GainFallsWithDistance(t *testing.T) {
	w, b, node := newSilentBank(t)
	cue, err := b.LoadCue(chickenCue, node)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cue.SetLooping(true)
	cue.Play()
	b.Update(1.0 / 30)
	near := cue.(gainReporter).Gain()
	if math.Abs(near-0.5) > 1e-9 {
		t.Fatalf("expected gain 0.5 at the reference distance, got %.3f", near)
	}
	w.SetPosition(node, mgl64.Vec3{0, 60, 0})
	b.Update(1.0 / 30)
	if far := cue.(gainReporter).Gain(); far >= near {
		t.Fatalf("expected gain to fall with distance, near=%.3f far=%.3f", near, far)
	}
}

func TestCueBank_StopAll(t *testing.T) {
	_, b, node := newSilentBank(t)
	cue, err := b.LoadCue(chickenCue, node)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cue.Play()
	b.StopAll()
	if cue.IsPlaying() {
		t.Fatal("expected StopAll to silence cues")
	}
	if b.Enabled() {
		t.Fatal("expected silent bank")
	}
}
