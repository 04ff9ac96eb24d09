package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}

	if cfg.Population.Size != 50 {
		t.Errorf("population.size = %d, want 50", cfg.Population.Size)
	}
	if cfg.Arena.Width != 1000 || cfg.Arena.Height != 700 {
		t.Errorf("arena = %gx%g, want 1000x700", cfg.Arena.Width, cfg.Arena.Height)
	}
	if cfg.Food.EnergyYield != 40 {
		t.Errorf("food.energy_yield = %g, want 40", cfg.Food.EnergyYield)
	}
	if cfg.Evolution.SurvivalFraction != 0.3 {
		t.Errorf("evolution.survival_fraction = %g, want 0.3", cfg.Evolution.SurvivalFraction)
	}

	wantDiag := math.Hypot(1000, 700)
	if math.Abs(cfg.Derived.Diagonal-wantDiag) > 1e-9 {
		t.Errorf("derived diagonal = %g, want %g", cfg.Derived.Diagonal, wantDiag)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	user := `
population:
  size: 12
arena:
  width: 400
random_seed: 99
`
	if err := os.WriteFile(path, []byte(user), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Population.Size != 12 {
		t.Errorf("population.size = %d, want 12 from user file", cfg.Population.Size)
	}
	if cfg.Arena.Width != 400 {
		t.Errorf("arena.width = %g, want 400 from user file", cfg.Arena.Width)
	}
	// Untouched fields keep their defaults.
	if cfg.Arena.Height != 700 {
		t.Errorf("arena.height = %g, want default 700", cfg.Arena.Height)
	}
	if cfg.RandomSeed != 99 {
		t.Errorf("random_seed = %d, want 99", cfg.RandomSeed)
	}
	if math.Abs(cfg.Derived.Diagonal-math.Hypot(400, 700)) > 1e-9 {
		t.Errorf("derived diagonal not recomputed for merged arena")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero population", func(c *Config) { c.Population.Size = 0 }},
		{"bad spawn mode", func(c *Config) { c.Population.SpawnMode = "center" }},
		{"zero arena width", func(c *Config) { c.Arena.Width = 0 }},
		{"negative dt", func(c *Config) { c.Physics.DT = -1 }},
		{"zero initial energy", func(c *Config) { c.Creature.InitialEnergy = 0 }},
		{"initial above max", func(c *Config) { c.Creature.InitialEnergy = c.Creature.MaxEnergy + 1 }},
		{"negative metabolic cost", func(c *Config) { c.Creature.MetabolicCostPerTick = -0.1 }},
		{"zero max speed", func(c *Config) { c.Creature.MaxSpeed = 0 }},
		{"negative food count", func(c *Config) { c.Food.InitialCount = -1 }},
		{"zero energy yield", func(c *Config) { c.Food.EnergyYield = 0 }},
		{"zero collision radius", func(c *Config) { c.Food.CollisionRadius = 0 }},
		{"zero hidden nodes", func(c *Config) { c.Brain.HiddenNodes = 0 }},
		{"survival fraction zero", func(c *Config) { c.Evolution.SurvivalFraction = 0 }},
		{"survival fraction above one", func(c *Config) { c.Evolution.SurvivalFraction = 1.5 }},
		{"mutation rate above one", func(c *Config) { c.Evolution.MutationRate = 1.1 }},
		{"negative mutation magnitude", func(c *Config) { c.Evolution.MutationMagnitude = -0.1 }},
		{"zero food target", func(c *Config) { c.Generation.FoodTarget = 0 }},
		{"zero max ticks", func(c *Config) { c.Generation.MaxTicks = 0 }},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			m.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate accepted an invalid config")
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Population.Size = 33

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Population.Size != 33 {
		t.Errorf("round trip lost population.size: got %d", loaded.Population.Size)
	}
}
