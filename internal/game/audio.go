package game

import (
	"fmt"
	"math"
	"path"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// Distance at which a cue plays at half gain.
	audioRefDistance = 6.0
)

// Cue is a loadable sound bound to a node in the scene graph.
type Cue interface {
	Play()
	Stop()
	IsPlaying() bool
	SetLooping(loop bool)
}

// AudioSystem loads cues and keeps their playback state and 3D gain current.
type AudioSystem interface {
	LoadCue(name string, attach ModelHandle) (Cue, error)
	Update(dt float64)
	StopAll()
}

// cueSound is a synthesized stand-in for a sound file.
type cueSound struct {
	buf      *beep.Buffer
	duration float64 // seconds
}

// CueBank is the 3D audio manager. Gain falls off with the distance between
// a cue's node and the listener (the camera). With audio disabled it keeps
// the same playback bookkeeping but never touches the speaker.
type CueBank struct {
	graph    SceneGraph
	listener ModelHandle
	enabled  bool
	mixer    *beep.Mixer
	sounds   map[string]*cueSound
	cues     []*bankCue
}

// NewCueBank creates a cue bank. When enabled the speaker is initialised and
// a mixer is attached to it.
func NewCueBank(graph SceneGraph, enabled bool) (*CueBank, error) {
	b := &CueBank{
		graph:    graph,
		listener: CameraNode,
		enabled:  enabled,
		mixer:    &beep.Mixer{},
		sounds:   make(map[string]*cueSound),
	}
	cluck, err := synthCluck()
	if err != nil {
		return nil, fmt.Errorf("synthesize cluck: %w", err)
	}
	b.sounds["chicken_cluck.ogg"] = cluck

	if enabled {
		if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
			return nil, fmt.Errorf("init speaker: %w", err)
		}
		speaker.Play(b.mixer)
	}
	return b, nil
}

// synthCluck builds a short two-note cluck.
func synthCluck() (*cueSound, error) {
	high, err := generators.SineTone(sampleRate, 740)
	if err != nil {
		return nil, err
	}
	low, err := generators.SineTone(sampleRate, 520)
	if err != nil {
		return nil, err
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Take(sampleRate.N(60*time.Millisecond), high))
	buf.Append(beep.Silence(sampleRate.N(40 * time.Millisecond)))
	buf.Append(beep.Take(sampleRate.N(90*time.Millisecond), low))
	buf.Append(beep.Silence(sampleRate.N(260 * time.Millisecond)))
	return &cueSound{buf: buf, duration: sampleRate.D(buf.Len()).Seconds()}, nil
}

// LoadCue attaches a sound to a node. name may be a bare file name or a
// resource path; only the base name is looked up.
func (b *CueBank) LoadCue(name string, attach ModelHandle) (Cue, error) {
	snd, ok := b.sounds[path.Base(name)]
	if !ok {
		return nil, fmt.Errorf("load sound %s: %w", name, ErrAssetNotFound)
	}
	c := &bankCue{bank: b, name: path.Base(name), node: attach, sound: snd, gain: 1}
	b.cues = append(b.cues, c)
	return c, nil
}

// Update advances playback clocks by dt and recomputes each cue's gain from
// its distance to the listener.
func (b *CueBank) Update(dt float64) {
	if b.enabled {
		speaker.Lock()
		defer speaker.Unlock()
	}
	for _, c := range b.cues {
		if !c.playing {
			continue
		}
		if !c.loopingNow {
			c.elapsed += dt
			if c.elapsed >= c.sound.duration {
				c.playing = false
			}
		}
		c.gain = attenuate(b.graph.Distance(c.node, b.listener))
		if c.vol != nil {
			setGain(c.vol, c.gain)
		}
	}
}

// StopAll silences and forgets every cue.
func (b *CueBank) StopAll() {
	if b.enabled {
		speaker.Lock()
		b.mixer.Clear()
		speaker.Unlock()
	}
	for _, c := range b.cues {
		c.playing = false
		c.ctrl = nil
		c.vol = nil
	}
	b.cues = b.cues[:0]
}

// Enabled reports whether the bank drives the speaker.
func (b *CueBank) Enabled() bool { return b.enabled }

// attenuate maps listener distance to a linear gain in (0, 1].
func attenuate(d float64) float64 {
	return 1 / (1 + d/audioRefDistance)
}

func setGain(v *effects.Volume, gain float64) {
	if gain <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(gain)
}

type bankCue struct {
	bank  *CueBank
	name  string
	node  ModelHandle
	sound *cueSound

	looping    bool
	loopingNow bool
	playing    bool
	elapsed    float64
	gain       float64

	ctrl *beep.Ctrl
	vol  *effects.Volume
}

// Play starts the cue from the beginning, restarting it if already playing.
func (c *bankCue) Play() {
	c.playing = true
	c.elapsed = 0
	c.loopingNow = c.looping
	if !c.bank.enabled {
		return
	}

	s := c.streamer()
	speaker.Lock()
	defer speaker.Unlock()
	if c.ctrl != nil {
		c.ctrl.Paused = true
	}
	c.ctrl = &beep.Ctrl{Streamer: s}
	c.vol = &effects.Volume{Streamer: c.ctrl, Base: 2}
	setGain(c.vol, c.gain)
	c.bank.mixer.Add(c.vol)
}

// Stop halts playback.
func (c *bankCue) Stop() {
	c.playing = false
	if c.bank.enabled && c.ctrl != nil {
		speaker.Lock()
		c.ctrl.Paused = true
		speaker.Unlock()
	}
}

// IsPlaying reports whether the cue is still sounding.
func (c *bankCue) IsPlaying() bool { return c.playing }

// SetLooping sets the loop flag. A playing cue switches over at once: it
// keeps sounding when looped, and plays one more pass when unlooped.
func (c *bankCue) SetLooping(loop bool) {
	c.looping = loop
	if !c.playing || c.loopingNow == loop {
		return
	}
	c.loopingNow = loop
	c.elapsed = 0
	if !c.bank.enabled || c.ctrl == nil {
		return
	}
	speaker.Lock()
	c.ctrl.Streamer = c.streamer()
	speaker.Unlock()
}

func (c *bankCue) streamer() beep.Streamer {
	s := c.sound.buf.Streamer(0, c.sound.buf.Len())
	if c.loopingNow {
		return beep.Loop(-1, s)
	}
	return s
}

// Gain returns the last computed distance gain.
func (c *bankCue) Gain() float64 { return c.gain }
