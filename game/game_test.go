package game

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/JamesCalleja/Evolution-Visualizer/config"
	"github.com/JamesCalleja/Evolution-Visualizer/storage"
)

func headlessConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Population.Size = 8
	cfg.Food.InitialCount = 8
	cfg.Generation.FoodTarget = 8
	cfg.Generation.MaxTicks = 50
	cfg.RandomSeed = 7
	return cfg
}

func TestHeadlessRunPersistsGenerationsAndChampions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "run.db")

	g, err := NewGame(headlessConfig(t), Options{
		Headless:       true,
		SQLitePath:     dbPath,
		MaxGenerations: 2,
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	for !g.Done() {
		g.UpdateHeadless()
	}
	runID := g.runID
	g.Close()

	ctx := context.Background()
	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer store.Close()

	recs, err := store.Generations(ctx, runID)
	if err != nil {
		t.Fatalf("load generations: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("persisted %d generation rows, want 2", len(recs))
	}

	for gen := 0; gen < 2; gen++ {
		brain, ok, err := store.GetChampion(ctx, runID, gen)
		if err != nil {
			t.Fatalf("get champion %d: %v", gen, err)
		}
		if !ok {
			t.Fatalf("no champion row for generation %d", gen)
		}
		if brain == nil || brain.Hidden != 4 {
			t.Fatalf("champion brain for generation %d not stored intact: %+v", gen, brain)
		}
	}
}

func TestHeadlessRunWithoutSinks(t *testing.T) {
	g, err := NewGame(headlessConfig(t), Options{Headless: true, MaxGenerations: 1})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Close()

	for !g.Done() {
		g.UpdateHeadless()
	}
	if g.Generations() != 1 {
		t.Fatalf("Generations = %d, want 1", g.Generations())
	}
}
