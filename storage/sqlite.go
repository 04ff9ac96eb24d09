// Package storage persists run history to SQLite so finished runs can be
// queried after the process exits.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/JamesCalleja/Evolution-Visualizer/neural"
	"github.com/JamesCalleja/Evolution-Visualizer/telemetry"
)

// SQLiteStore writes generation records and champion genomes to a SQLite
// database file. Safe for concurrent use.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore returns an uninitialized store; call Init before use.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the schema. Calling Init on an
// already initialized store is a no-op.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// SaveGeneration upserts one generation's summary row, keyed by run and
// generation index.
func (s *SQLiteStore) SaveGeneration(ctx context.Context, runID string, rec telemetry.GenerationRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO generations (
			run_id, generation, ticks, food_eaten, top_food_eaten,
			survivors, alive, population,
			mean_energy, top_energy, mean_fitness, fitness_std
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			ticks = excluded.ticks,
			food_eaten = excluded.food_eaten,
			top_food_eaten = excluded.top_food_eaten,
			survivors = excluded.survivors,
			alive = excluded.alive,
			population = excluded.population,
			mean_energy = excluded.mean_energy,
			top_energy = excluded.top_energy,
			mean_fitness = excluded.mean_fitness,
			fitness_std = excluded.fitness_std
	`, runID, rec.Generation, rec.Ticks, rec.FoodEaten, rec.TopFoodEaten,
		rec.Survivors, rec.Alive, rec.Population,
		rec.MeanEnergy, rec.TopEnergy, rec.MeanFitness, rec.FitnessStd)
	return err
}

// SaveChampion stores the best brain of a generation as a JSON payload.
func (s *SQLiteStore) SaveChampion(ctx context.Context, runID string, generation, foodEaten int, brain *neural.Brain) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(brain)
	if err != nil {
		return fmt.Errorf("encode champion brain: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO champions (run_id, generation, food_eaten, brain)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			food_eaten = excluded.food_eaten,
			brain = excluded.brain
	`, runID, generation, foodEaten, payload)
	return err
}

// GetChampion loads a stored champion brain. The second return value is
// false when the run or generation has no champion row.
func (s *SQLiteStore) GetChampion(ctx context.Context, runID string, generation int) (*neural.Brain, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var payload []byte
	err = db.QueryRowContext(ctx,
		`SELECT brain FROM champions WHERE run_id = ? AND generation = ?`,
		runID, generation).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var brain neural.Brain
	if err := json.Unmarshal(payload, &brain); err != nil {
		return nil, false, fmt.Errorf("decode champion brain %s/%d: %w", runID, generation, err)
	}
	return &brain, true, nil
}

// Generations loads every generation row of a run, ordered by index.
func (s *SQLiteStore) Generations(ctx context.Context, runID string) ([]telemetry.GenerationRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT generation, ticks, food_eaten, top_food_eaten,
		       survivors, alive, population,
		       mean_energy, top_energy, mean_fitness, fitness_std
		FROM generations
		WHERE run_id = ?
		ORDER BY generation
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []telemetry.GenerationRecord
	for rows.Next() {
		var rec telemetry.GenerationRecord
		if err := rows.Scan(
			&rec.Generation, &rec.Ticks, &rec.FoodEaten, &rec.TopFoodEaten,
			&rec.Survivors, &rec.Alive, &rec.Population,
			&rec.MeanEnergy, &rec.TopEnergy, &rec.MeanFitness, &rec.FitnessStd,
		); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			food_eaten INTEGER NOT NULL,
			top_food_eaten INTEGER NOT NULL,
			survivors INTEGER NOT NULL,
			alive INTEGER NOT NULL,
			population INTEGER NOT NULL,
			mean_energy REAL NOT NULL,
			top_energy REAL NOT NULL,
			mean_fitness REAL NOT NULL,
			fitness_std REAL NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
		CREATE TABLE IF NOT EXISTS champions (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			food_eaten INTEGER NOT NULL,
			brain BLOB NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
	`)
	return err
}
