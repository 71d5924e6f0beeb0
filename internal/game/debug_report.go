package game

import (
	"fmt"
	"strings"
)

// statusReporter is implemented by steering characters that can describe
// their behaviours.
type statusReporter interface {
	BehaviorStatus(name string) string
}

// modelScene is implemented by scenes that keep a keyed model map.
type modelScene interface {
	Models() map[string]ModelHandle
}

// steeringScene is implemented by scenes that run an AI world.
type steeringScene interface {
	AI() *AIWorld
}

// gainReporter is implemented by cues that track distance gain.
type gainReporter interface {
	Gain() float64
}

// ChaseReport renders a plain-text snapshot of the session: the active scene,
// the camera and every chicken's state machine. lastTicks bounds the event
// tail taken from log; log may be nil.
func ChaseReport(m *SceneManager, log *SimLog, tick, lastTicks int) string {
	if m == nil {
		return ""
	}
	if lastTicks <= 0 {
		lastTicks = 120
	}
	fromTick := tick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- PoultryGeist debug report ---\n")
	fmt.Fprintf(&b, "tick=%d scene=%s sceneFrame=%d initPending=%v\n",
		tick, kindOf(m.Scene()), m.SceneFrame(), m.InitPending())

	cam := m.Context().Camera
	f := m.Focus()
	fmt.Fprintf(&b, "camera pos=(%.2f, %.2f, %.2f) hpr=(%.1f, %.1f, %.1f)\n",
		cam.Pos.X(), cam.Pos.Y(), cam.Pos.Z(), cam.HPR.X(), cam.HPR.Y(), cam.HPR.Z())
	fmt.Fprintf(&b, "focus=(%.2f, %.2f, %.2f) heading=%.1f pitch=%.1f\n",
		f.X(), f.Y(), f.Z(), m.Heading(), m.Pitch())

	if ms, ok := m.Scene().(modelScene); ok {
		fmt.Fprintf(&b, "models=%d\n", len(ms.Models()))
	}
	if fs, ok := m.Scene().(fader); ok && fs.Fade() != nil {
		fmt.Fprintf(&b, "fade alpha=%.2f disposed=%v\n", fs.Fade().Alpha(), fs.Fade().Disposed())
	}
	if is, ok := m.Scene().(*IntroScene); ok && is.Path() != nil {
		p := is.Path()
		now := m.Context().Clock.Now
		fmt.Fprintf(&b, "path elapsed=%.2f end=%.2f frames=%d\n", p.Elapsed(now), p.End(), p.Frames())
	}

	if cs, ok := m.Scene().(chaseScene); ok {
		b.WriteString("\n== chickens ==\n")
		for _, ch := range cs.Chickens() {
			pursue := "n/a"
			if sr, ok := ch.Steering().(statusReporter); ok {
				pursue = sr.BehaviorStatus(behaviorPursue)
			}
			gain := "n/a"
			if gr, ok := ch.Cue().(gainReporter); ok {
				gain = fmt.Sprintf("%.2f", gr.Gain())
			}
			fmt.Fprintf(&b, "%s node=%s state=%s d=%.2f dPrev=%.2f escape=%d/%d pursue=%s cue=%v gain=%s\n",
				ch.Label, ch.Node(), ch.State(), ch.Distance(), ch.LastDistance(),
				ch.EscapeFrames(), escapeFrameLimit, pursue, ch.Cue().IsPlaying(), gain)
			if log != nil {
				changes := 0
				for _, e := range log.FilterActor(ch.Label) {
					if e.Category == "chicken" && e.Key == "state" {
						changes++
					}
				}
				fmt.Fprintf(&b, "%s state changes=%d\n", ch.Label, changes)
			}
		}
	}
	if ss, ok := m.Scene().(steeringScene); ok {
		b.WriteString("\n== steering ==\n")
		for _, c := range ss.AI().Characters() {
			fmt.Fprintf(&b, "%s node=%s speed=%.2f top=%.2f maxForce=%.1f pursue=%s\n",
				c.Name, c.Node, c.Velocity.Len(), c.TopSpeed(), c.MaxForce, c.BehaviorStatus(behaviorPursue))
		}
	}

	if log != nil {
		events := log.FilterTickRange(fromTick, tick)
		fmt.Fprintf(&b, "\n== events [%d..%d] ==\n", fromTick, tick)
		if len(events) == 0 {
			b.WriteString("(none)\n")
		}
		for _, e := range events {
			if e.Key == "distance" {
				continue
			}
			b.WriteString(e.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}
