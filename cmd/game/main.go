package main

import (
	"flag"
	"log"

	"github.com/Garsondee/PoultryGeist/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var settingsPath string
	var audio string
	flag.StringVar(&settingsPath, "settings", "settings.yaml", "YAML settings file (audio, resolution, quality)")
	flag.StringVar(&audio, "audio", "", "override audio: on|off")
	flag.Parse()

	settings, err := game.LoadSettings(settingsPath)
	if err != nil {
		log.Fatal(err)
	}
	switch audio {
	case "on":
		settings.Audio = true
	case "off":
		settings.Audio = false
	}

	app, err := game.NewApp(settings)
	if err != nil {
		log.Fatal(err)
	}
	defer app.Close()

	w, h := settings.WindowSize()
	ebiten.SetWindowTitle("PoultryGeist")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(30)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	if err := ebiten.RunGame(app); err != nil {
		log.Fatal(err)
	}
}
