package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"chosenoffset.com/packdelve/internal/app"
	"chosenoffset.com/packdelve/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (built-in defaults when empty)")
	flag.Parse()

	a, err := app.Setup(*configPath)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	g := ui.New(a.NewSession, a.Ledger.Entries, a.Logger)

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("Packdelve")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	a.Logger.Info("starting game", zap.String("hero", a.Config.Hero.Name))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		a.Logger.Error("game exited with error", zap.Error(err))
	}
}
