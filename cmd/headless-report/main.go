package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/PoultryGeist/internal/game"
	"github.com/go-gl/mathgl/mgl64"
)

type runStats struct {
	runIndex int
	fps      int

	introLoadTick    int
	pathEndTick      int
	gameplayLoadTick int

	firstAlertTick  int
	firstSlowTick   int
	firstFastTick   int
	firstEscapeTick int

	stateChanges int
	escapes      int
	cuesPlaying  int
	closest      float64
	byChicken    map[string]int
}

func main() {
	var runs int
	var ticks int
	var fpsBase int
	var fpsStep int
	var scenario string

	flag.IntVar(&runs, "runs", 3, "number of headless runs")
	flag.IntVar(&ticks, "ticks", 900, "ticks to run after gameplay starts")
	flag.IntVar(&fpsBase, "fps-base", 30, "frame rate of run 1")
	flag.IntVar(&fpsStep, "fps-step", 15, "frame rate increment between runs")
	flag.StringVar(&scenario, "scenario", "intro-chase", "scenario name")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if fpsBase <= 0 || fpsStep < 0 {
		fmt.Println("error: -fps-base must be > 0 and -fps-step >= 0")
		return
	}
	if scenario != "intro-chase" {
		fmt.Printf("error: unsupported scenario %q (supported: intro-chase)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Chase Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d fps_base=%d fps_step=%d\n\n", scenario, runs, ticks, fpsBase, fpsStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		fps := fpsBase + i*fpsStep
		rs, err := runScenarioIntroChase(i+1, fps, ticks)
		if err != nil {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			return
		}
		all = append(all, rs)
		printRun(rs)
	}
	printAggregate(all)
}

// runScenarioIntroChase starts at the menu, switches to the intro, lets the
// flythrough hand over to gameplay, then walks the player into the nearest
// chicken and back out again.
func runScenarioIntroChase(runIndex, fps, ticks int) (runStats, error) {
	ts := game.NewTestSim(game.WithFrameTime(1 / float64(fps)))
	if ts.Err != nil {
		return runStats{}, ts.Err
	}
	ts.RunTicks(2)
	ts.Switch()
	if ts.RunUntil(func(s *game.TestSim) bool { return s.Kind() == game.SceneGameplay }, 60*fps) < 0 {
		if ts.Err != nil {
			return runStats{}, ts.Err
		}
		return runStats{}, fmt.Errorf("intro never handed over to gameplay")
	}
	ts.RunTicks(2)

	closest := 1e9
	track := func() {
		for _, ch := range ts.Chickens() {
			if d := ch.Distance(); d < closest {
				closest = d
			}
		}
	}

	if chs := ts.Chickens(); len(chs) > 0 {
		target := ts.World.Position(chs[len(chs)-1].Node())
		ts.TurnTo(mgl64.Vec3{target.X(), target.Y(), ts.Camera.Pos.Z()})
		ts.RunTicks(1)
	}
	walk := ticks / 3
	for i := 0; i < walk && ts.Err == nil; i++ {
		ts.Walk(true, 1)
		track()
	}
	for i := 0; i < ticks-walk && ts.Err == nil; i++ {
		if i < walk {
			ts.Walk(false, 1)
		} else {
			ts.RunTicks(1)
		}
		track()
	}
	if ts.Err != nil {
		return runStats{}, ts.Err
	}

	entries := ts.SimLog.Entries()
	byChicken := map[string]int{}
	for _, e := range entries {
		if e.Category == "chicken" && e.Key == "state" {
			byChicken[e.Actor]++
		}
	}
	return runStats{
		runIndex:         runIndex,
		fps:              fps,
		introLoadTick:    firstTick(entries, "scene", "load", "intro"),
		pathEndTick:      firstTick(entries, "path", "end", ""),
		gameplayLoadTick: firstTick(entries, "scene", "load", "gameplay"),
		firstAlertTick:   firstTick(entries, "chicken", "state", "→ alert"),
		firstSlowTick:    firstTick(entries, "chicken", "state", "→ pursue_slow"),
		firstFastTick:    firstTick(entries, "chicken", "state", "→ pursue_fast"),
		firstEscapeTick:  firstTick(entries, "chicken", "escaped", ""),
		stateChanges:     ts.SimLog.CountCategory("chicken", "state"),
		escapes:          ts.SimLog.CountCategory("chicken", "escaped"),
		cuesPlaying:      countCuesPlaying(ts.Chickens()),
		closest:          closest,
		byChicken:        byChicken,
	}, nil
}

func countCuesPlaying(chs []*game.Chicken) int {
	n := 0
	for _, ch := range chs {
		if ch.Cue().IsPlaying() {
			n++
		}
	}
	return n
}

func firstTick(entries []game.SimLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// introSeconds converts the intro's tick span into seconds at the run's
// frame rate. It reports -1 when either marker is missing.
func introSeconds(rs runStats) float64 {
	if rs.introLoadTick < 0 || rs.gameplayLoadTick < 0 || rs.fps <= 0 {
		return -1
	}
	return float64(rs.gameplayLoadTick-rs.introLoadTick) / float64(rs.fps)
}

// caught reports whether any chicken reached sprint range, and why not.
func caught(rs runStats) (bool, string) {
	switch {
	case rs.firstFastTick >= 0:
		return true, "sprint_band_reached"
	case rs.firstSlowTick >= 0:
		return false, "chase_band_only"
	case rs.firstAlertTick >= 0:
		return false, "alert_only"
	default:
		return false, "never_noticed"
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (fps=%d) ---\n", rs.runIndex, rs.fps)
	fmt.Printf("scene_markers: intro_load=%d path_end=%d gameplay_load=%d intro_seconds=%.2f\n",
		rs.introLoadTick, rs.pathEndTick, rs.gameplayLoadTick, introSeconds(rs))
	fmt.Printf("chase_markers: first_alert=%d first_pursue_slow=%d first_pursue_fast=%d first_escape=%d\n",
		rs.firstAlertTick, rs.firstSlowTick, rs.firstFastTick, rs.firstEscapeTick)
	fmt.Printf("event_totals: state_change=%d escaped=%d cues_playing=%d closest=%.2f\n",
		rs.stateChanges, rs.escapes, rs.cuesPlaying, rs.closest)
	ok, reason := caught(rs)
	fmt.Printf("caught=%v reason=%s per_chicken=%s\n\n", ok, reason, joinCounts(rs.byChicken))
}

func printAggregate(all []runStats) {
	totalState := 0
	totalEscapes := 0
	caughtRuns := 0
	var introSecs []float64
	for _, rs := range all {
		totalState += rs.stateChanges
		totalEscapes += rs.escapes
		if ok, _ := caught(rs); ok {
			caughtRuns++
		}
		if s := introSeconds(rs); s >= 0 {
			introSecs = append(introSecs, s)
		}
	}
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d caught_runs=%d\n", len(all), caughtRuns)
	fmt.Printf("avg_events_per_run: state_change=%.1f escaped=%.1f\n",
		avg(totalState, len(all)), avg(totalEscapes, len(all)))
	fmt.Printf("intro_seconds: %s\n", joinFloats(introSecs))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%d", k, counts[k]))
	}
	return strings.Join(parts, ",")
}

func joinFloats(vals []float64) string {
	if len(vals) == 0 {
		return "n/a"
	}
	parts := make([]string, 0, len(vals))
	for _, v := range vals {
		parts = append(parts, fmt.Sprintf("%.2f", v))
	}
	return strings.Join(parts, " ")
}
