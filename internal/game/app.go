package game

import (
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// App is the ebiten.Game that hosts the scene manager.
type App struct {
	settings  Settings
	camera    *Camera
	world     *World
	collision *CollisionWorld
	audio     *CueBank
	tasks     *TaskSet
	simLog    *SimLog
	clock     *Clock
	input     *EbitenInput
	manager   *SceneManager
	thoughts  *ThoughtLog
	renderer  *Renderer

	start      time.Time
	showHUD    bool
	prevReport bool
}

// NewApp wires the collaborators and loads the menu. Any failure here is
// fatal to the session.
func NewApp(settings Settings) (*App, error) {
	a := &App{
		settings: settings,
		camera:   NewCamera(mgl64.Vec3{}),
		tasks:    NewTaskSet(),
		simLog:   NewSimLog(false),
		clock:    &Clock{},
		input:    NewEbitenInput(),
		thoughts: NewThoughtLog(),
		showHUD:  true,
	}
	a.collision = NewCollisionWorld()
	a.world = NewWorld(settings.Quality, a.camera, a.collision)

	var err error
	a.audio, err = NewCueBank(a.world, settings.Audio)
	if err != nil {
		return nil, fmt.Errorf("init audio: %w", err)
	}
	a.renderer, err = NewRenderer(settings)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		Settings:  settings,
		Graph:     a.world,
		Camera:    a.camera,
		Audio:     a.audio,
		Collision: a.collision,
		Tasks:     a.tasks,
		Log:       a.simLog,
		Clock:     a.clock,
	}
	a.manager, err = NewSceneManager(ctx, a.input, DefaultFactories(), SceneMenu)
	if err != nil {
		return nil, err
	}
	a.start = time.Now()
	log.Printf("[PoultryGeist] quality=%s resolution=%s audio=%v", settings.Quality, settings.Resolution, settings.Audio)
	return a, nil
}

// Update runs one tick. A returned error ends the session.
func (a *App) Update() error {
	now := time.Since(a.start).Seconds()
	if err := a.manager.Tick(now); err != nil {
		return err
	}
	a.thoughts.Sync(a.simLog)

	report := a.input.IsKeyDown(KeyReport)
	if report && !a.prevReport {
		a.copyReport()
	}
	a.prevReport = report

	if ebiten.IsKeyPressed(ebiten.KeyTab) {
		a.showHUD = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyH) {
		a.showHUD = false
	}
	return nil
}

func (a *App) copyReport() {
	pos := a.camera.Pos
	log.Printf("[PoultryGeist] camera at (%.2f, %.2f, %.2f) hpr (%.1f, %.1f, %.1f)",
		pos.X(), pos.Y(), pos.Z(), a.camera.HPR.X(), a.camera.HPR.Y(), a.camera.HPR.Z())
	rep := ChaseReport(a.manager, a.simLog, a.clock.Tick, 120)
	if err := clipboard.WriteAll(rep); err != nil {
		log.Printf("[PoultryGeist] copy report: %v", err)
		return
	}
	log.Printf("[PoultryGeist] debug report copied (%d bytes)", len(rep))
}

// Draw renders the world, then the HUD panels.
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.manager, a.world)
	if !a.showHUD {
		return
	}
	a.renderer.DrawHUD(screen, a.manager)
	w, h := a.renderer.Size()
	a.thoughts.Draw(screen, w-logPanelWidth, h)
}

// Layout returns the fixed logical screen size.
func (a *App) Layout(_, _ int) (int, int) {
	return a.renderer.Size()
}

// Close silences any playing cues.
func (a *App) Close() {
	a.audio.StopAll()
}
