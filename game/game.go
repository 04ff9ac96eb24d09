// Package game hosts the interactive application: the raylib window loop,
// arena rendering, input handling, and the hooks that feed telemetry and
// storage as generations complete.
package game

import (
	"context"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/JamesCalleja/Evolution-Visualizer/config"
	"github.com/JamesCalleja/Evolution-Visualizer/evolution"
	"github.com/JamesCalleja/Evolution-Visualizer/storage"
	"github.com/JamesCalleja/Evolution-Visualizer/telemetry"
	"github.com/JamesCalleja/Evolution-Visualizer/ui"
)

// Speed multiplier bounds for the < > keys and the panel slider.
const (
	MinSpeed = 1
	MaxSpeed = 20
)

// Options configures a Game beyond the config file.
type Options struct {
	OutputDir      string // CSV + config snapshot directory ("" disables)
	SQLitePath     string // database file ("" disables)
	MaxGenerations int    // stop after N completed generations (0 = unlimited)
	Headless       bool
}

// Game owns the engine and everything around it for one run.
type Game struct {
	cfg    *config.Config
	engine *evolution.Engine
	opts   Options

	output *telemetry.OutputManager
	store  *storage.SQLiteStore
	runID  string

	controls *ui.Controls
	chart    *ui.Chart

	paused bool
	speed  int
	done   bool
	gens   int
}

// NewGame builds a run from a validated config, starts generation 0, and
// opens the configured sinks.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	engine := evolution.NewEngine(cfg)
	engine.Start()

	g := &Game{
		cfg:    cfg,
		engine: engine,
		opts:   opts,
		runID:  fmt.Sprintf("run-%d", engine.Seed()),
		speed:  MinSpeed,
	}

	if opts.OutputDir != "" {
		out, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("opening output dir: %w", err)
		}
		if err := out.WriteConfig(cfg); err != nil {
			return nil, fmt.Errorf("writing config snapshot: %w", err)
		}
		g.output = out
	}

	if opts.SQLitePath != "" {
		store := storage.NewSQLiteStore(opts.SQLitePath)
		if err := store.Init(context.Background()); err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		g.store = store
	}

	if !opts.Headless {
		g.controls = ui.NewControls(10, 90)
		g.chart = ui.NewChart(10, int32(cfg.Screen.Height)-170, 320, 160)
	}

	slog.Info("run started",
		"run_id", g.runID,
		"seed", engine.Seed(),
		"population", cfg.Population.Size,
		"arena_width", cfg.Arena.Width,
		"arena_height", cfg.Arena.Height,
	)
	return g, nil
}

// Update advances the simulation for one frame: input first, then as many
// ticks as the speed multiplier asks for.
func (g *Game) Update() {
	g.handleInput()

	if g.paused || g.done {
		return
	}
	for i := 0; i < g.speed && !g.done; i++ {
		g.step()
	}
}

// UpdateHeadless advances one tick with no input or rendering.
func (g *Game) UpdateHeadless() {
	if !g.done {
		g.step()
	}
}

// step runs one engine tick and flushes sinks when a generation completes.
func (g *Game) step() {
	rec := g.engine.Step()
	if rec == nil {
		return
	}

	slog.Info("generation complete", "record", rec)

	if g.output != nil {
		if err := g.output.WriteGeneration(*rec); err != nil {
			slog.Error("failed to write generation record", "error", err)
		}
	}
	if g.store != nil {
		ctx := context.Background()
		if err := g.store.SaveGeneration(ctx, g.runID, *rec); err != nil {
			slog.Error("failed to save generation", "error", err)
		}
		if brain, _, food := g.engine.Champion(); brain != nil {
			if err := g.store.SaveChampion(ctx, g.runID, rec.Generation, food, brain); err != nil {
				slog.Error("failed to save champion", "error", err)
			}
		}
	}
	if g.chart != nil {
		g.chart.Push(float64(rec.FoodEaten))
	}

	g.gens++
	if g.opts.MaxGenerations > 0 && g.gens >= g.opts.MaxGenerations {
		g.done = true
		slog.Info("run complete", "run_id", g.runID, "generations", g.gens)
	}
}

// Done reports whether the generation budget is exhausted.
func (g *Game) Done() bool {
	return g.done
}

// Generations returns the number of completed generations.
func (g *Game) Generations() int {
	return g.gens
}

// handleInput processes keyboard shortcuts and window events.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyComma) && g.speed > MinSpeed {
		g.speed--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.speed < MaxSpeed {
		g.speed++
	}
	if rl.IsKeyPressed(rl.KeyC) && g.chart != nil {
		g.chart.Toggle()
	}
}

// Close flushes and releases the output sinks.
func (g *Game) Close() {
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output manager", "error", err)
		}
	}
	if g.store != nil {
		if err := g.store.Close(); err != nil {
			slog.Error("failed to close sqlite store", "error", err)
		}
	}
}
