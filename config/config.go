// Package config provides configuration loading and validation for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Spawn modes for offspring placement at generation start.
const (
	SpawnRandom = "random"
	SpawnFixed  = "fixed"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Arena      ArenaConfig      `yaml:"arena"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Population PopulationConfig `yaml:"population"`
	Creature   CreatureConfig   `yaml:"creature"`
	Food       FoodConfig       `yaml:"food"`
	Brain      BrainConfig      `yaml:"brain"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Generation GenerationConfig `yaml:"generation"`
	RandomSeed int64            `yaml:"random_seed"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. Only the GUI reads these.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ArenaConfig holds the simulation arena dimensions in world units.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// PopulationConfig holds population size and spawn placement.
type PopulationConfig struct {
	Size      int     `yaml:"size"`
	SpawnMode string  `yaml:"spawn_mode"` // "random" or "fixed"
	SpawnX    float64 `yaml:"spawn_x"`    // used when spawn_mode is "fixed"
	SpawnY    float64 `yaml:"spawn_y"`
}

// CreatureConfig holds per-creature energy and movement bounds.
type CreatureConfig struct {
	InitialEnergy        float64 `yaml:"initial_energy"`
	MaxEnergy            float64 `yaml:"max_energy"`
	MetabolicCostPerTick float64 `yaml:"metabolic_cost_per_tick"`
	MoveCostFactor       float64 `yaml:"move_cost_factor"` // extra cost per unit thrust
	MaxTurnPerTick       float64 `yaml:"max_turn_per_tick"` // radians
	MaxSpeed             float64 `yaml:"max_speed"`         // world units per tick at full thrust
}

// FoodConfig holds food field parameters.
type FoodConfig struct {
	InitialCount    int     `yaml:"initial_count"`
	EnergyYield     float64 `yaml:"energy_yield"`
	CollisionRadius float64 `yaml:"collision_radius"`
}

// BrainConfig holds neural network topology parameters.
// Input and output widths are fixed by the sensor and steering contracts.
type BrainConfig struct {
	HiddenNodes int `yaml:"hidden_nodes"`
}

// EvolutionConfig holds selection and mutation parameters.
type EvolutionConfig struct {
	SurvivalFraction    float64 `yaml:"survival_fraction"`
	MutationRate        float64 `yaml:"mutation_rate"`
	MutationMagnitude   float64 `yaml:"mutation_magnitude"`
	ColorMutationAmount float64 `yaml:"color_mutation_amount"`
	Crossover           bool    `yaml:"crossover"` // two-parent reproduction
}

// GenerationConfig holds generation termination conditions.
type GenerationConfig struct {
	FoodTarget int `yaml:"food_target"`
	MaxTicks   int `yaml:"max_ticks"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Diagonal float64 // arena diagonal, used for distance normalization
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The returned config is
// already validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects invalid parameter ranges. Every error a run could hit from
// bad configuration is reported here, before any generation starts.
func (c *Config) Validate() error {
	if c.Population.Size <= 0 {
		return fmt.Errorf("population.size must be > 0, got %d", c.Population.Size)
	}
	if c.Population.SpawnMode != SpawnRandom && c.Population.SpawnMode != SpawnFixed {
		return fmt.Errorf("population.spawn_mode must be %q or %q, got %q", SpawnRandom, SpawnFixed, c.Population.SpawnMode)
	}
	if c.Arena.Width <= 0 || c.Arena.Height <= 0 {
		return fmt.Errorf("arena dimensions must be > 0, got %gx%g", c.Arena.Width, c.Arena.Height)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be > 0, got %g", c.Physics.DT)
	}
	if c.Creature.InitialEnergy <= 0 {
		return fmt.Errorf("creature.initial_energy must be > 0, got %g", c.Creature.InitialEnergy)
	}
	if c.Creature.MaxEnergy <= 0 {
		return fmt.Errorf("creature.max_energy must be > 0, got %g", c.Creature.MaxEnergy)
	}
	if c.Creature.InitialEnergy > c.Creature.MaxEnergy {
		return fmt.Errorf("creature.initial_energy %g exceeds max_energy %g", c.Creature.InitialEnergy, c.Creature.MaxEnergy)
	}
	if c.Creature.MetabolicCostPerTick < 0 {
		return fmt.Errorf("creature.metabolic_cost_per_tick must be >= 0, got %g", c.Creature.MetabolicCostPerTick)
	}
	if c.Creature.MoveCostFactor < 0 {
		return fmt.Errorf("creature.move_cost_factor must be >= 0, got %g", c.Creature.MoveCostFactor)
	}
	if c.Creature.MaxTurnPerTick <= 0 {
		return fmt.Errorf("creature.max_turn_per_tick must be > 0, got %g", c.Creature.MaxTurnPerTick)
	}
	if c.Creature.MaxSpeed <= 0 {
		return fmt.Errorf("creature.max_speed must be > 0, got %g", c.Creature.MaxSpeed)
	}
	if c.Food.InitialCount < 0 {
		return fmt.Errorf("food.initial_count must be >= 0, got %d", c.Food.InitialCount)
	}
	if c.Food.EnergyYield <= 0 {
		return fmt.Errorf("food.energy_yield must be > 0, got %g", c.Food.EnergyYield)
	}
	if c.Food.CollisionRadius <= 0 {
		return fmt.Errorf("food.collision_radius must be > 0, got %g", c.Food.CollisionRadius)
	}
	if c.Brain.HiddenNodes <= 0 {
		return fmt.Errorf("brain.hidden_nodes must be > 0, got %d", c.Brain.HiddenNodes)
	}
	if c.Evolution.SurvivalFraction <= 0 || c.Evolution.SurvivalFraction > 1 {
		return fmt.Errorf("evolution.survival_fraction must be in (0,1], got %g", c.Evolution.SurvivalFraction)
	}
	if c.Evolution.MutationRate < 0 || c.Evolution.MutationRate > 1 {
		return fmt.Errorf("evolution.mutation_rate must be in [0,1], got %g", c.Evolution.MutationRate)
	}
	if c.Evolution.MutationMagnitude < 0 {
		return fmt.Errorf("evolution.mutation_magnitude must be >= 0, got %g", c.Evolution.MutationMagnitude)
	}
	if c.Evolution.ColorMutationAmount < 0 {
		return fmt.Errorf("evolution.color_mutation_amount must be >= 0, got %g", c.Evolution.ColorMutationAmount)
	}
	if c.Generation.FoodTarget <= 0 {
		return fmt.Errorf("generation.food_target must be > 0, got %d", c.Generation.FoodTarget)
	}
	if c.Generation.MaxTicks <= 0 {
		return fmt.Errorf("generation.max_ticks must be > 0, got %d", c.Generation.MaxTicks)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Diagonal = math.Hypot(c.Arena.Width, c.Arena.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
