package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/JamesCalleja/Evolution-Visualizer/config"
	"github.com/JamesCalleja/Evolution-Visualizer/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed, overrides config (0 = keep config value)")
	headless := flag.Bool("headless", false, "Run without graphics")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	sqlitePath := flag.String("sqlite", "", "SQLite database file for run history (empty = disabled)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.RandomSeed = *seed
	}

	opts := game.Options{
		OutputDir:      *outputDir,
		SQLitePath:     *sqlitePath,
		MaxGenerations: *maxGenerations,
		Headless:       *headless,
	}

	if *headless {
		if *maxGenerations <= 0 {
			slog.Error("headless mode requires -max-generations")
			os.Exit(1)
		}

		g, err := game.NewGame(cfg, opts)
		if err != nil {
			slog.Error("failed to start run", "error", err)
			os.Exit(1)
		}
		defer g.Close()

		for !g.Done() {
			g.UpdateHeadless()
		}
		return
	}

	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Evolution Visualizer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start run", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}
