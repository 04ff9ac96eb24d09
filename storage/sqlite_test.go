package storage

import (
	"context"
	"math/rand"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/JamesCalleja/Evolution-Visualizer/neural"
	"github.com/JamesCalleja/Evolution-Visualizer/telemetry"
)

func openStore(t *testing.T) *SQLiteStore {
	t.Helper()
	ctx := context.Background()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "run.db"))
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSQLiteStoreGenerationRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	recs := []telemetry.GenerationRecord{
		{Generation: 0, Ticks: 500, FoodEaten: 12, TopFoodEaten: 4, Survivors: 15, Alive: 30, Population: 50, MeanEnergy: 22.5, TopEnergy: 80, MeanFitness: 0.24, FitnessStd: 0.7},
		{Generation: 1, Ticks: 310, FoodEaten: 50, TopFoodEaten: 9, Survivors: 15, Alive: 44, Population: 50, MeanEnergy: 41.0, TopEnergy: 100, MeanFitness: 1.0, FitnessStd: 1.8},
	}
	// Insert out of order; Generations must return them ordered.
	for _, rec := range []telemetry.GenerationRecord{recs[1], recs[0]} {
		if err := store.SaveGeneration(ctx, "run1", rec); err != nil {
			t.Fatalf("save generation %d: %v", rec.Generation, err)
		}
	}

	loaded, err := store.Generations(ctx, "run1")
	if err != nil {
		t.Fatalf("load generations: %v", err)
	}
	if !reflect.DeepEqual(loaded, recs) {
		t.Fatalf("round trip mismatch:\ngot  %+v\nwant %+v", loaded, recs)
	}

	other, err := store.Generations(ctx, "run2")
	if err != nil {
		t.Fatalf("load empty run: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("unexpected rows for unknown run: %+v", other)
	}
}

func TestSQLiteStoreGenerationUpsert(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	rec := telemetry.GenerationRecord{Generation: 0, Ticks: 100, FoodEaten: 3, Population: 10}
	if err := store.SaveGeneration(ctx, "run1", rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	rec.FoodEaten = 7
	if err := store.SaveGeneration(ctx, "run1", rec); err != nil {
		t.Fatalf("resave: %v", err)
	}

	loaded, err := store.Generations(ctx, "run1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 || loaded[0].FoodEaten != 7 {
		t.Fatalf("upsert did not replace row: %+v", loaded)
	}
}

func TestSQLiteStoreChampionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	brain := neural.NewBrain(rand.New(rand.NewSource(1)), 4)
	if err := store.SaveChampion(ctx, "run1", 3, 9, brain); err != nil {
		t.Fatalf("save champion: %v", err)
	}

	loaded, ok, err := store.GetChampion(ctx, "run1", 3)
	if err != nil {
		t.Fatalf("get champion: %v", err)
	}
	if !ok {
		t.Fatal("champion not found after save")
	}
	if !reflect.DeepEqual(loaded, brain) {
		t.Fatal("champion brain did not round trip")
	}

	_, ok, err = store.GetChampion(ctx, "run1", 99)
	if err != nil {
		t.Fatalf("get missing champion: %v", err)
	}
	if ok {
		t.Fatal("found champion for generation never saved")
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "run.db"))
	if err := store.SaveGeneration(context.Background(), "run1", telemetry.GenerationRecord{}); err == nil {
		t.Fatal("expected error before Init")
	}
}

func TestSQLiteStoreEmptyPath(t *testing.T) {
	store := NewSQLiteStore("")
	if err := store.Init(context.Background()); err == nil {
		t.Fatal("expected error for empty path")
	}
}
