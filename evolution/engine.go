// Package evolution drives the generational loop: it runs each generation's
// environment to completion, scores and selects the population, and breeds
// the next one.
package evolution

import (
	"math"
	"math/rand"
	"time"

	"github.com/JamesCalleja/Evolution-Visualizer/components"
	"github.com/JamesCalleja/Evolution-Visualizer/config"
	"github.com/JamesCalleja/Evolution-Visualizer/neural"
	"github.com/JamesCalleja/Evolution-Visualizer/sim"
	"github.com/JamesCalleja/Evolution-Visualizer/telemetry"
)

// Engine owns the whole run: one rand.Rand drives every random decision, so
// two engines built with the same config and seed produce bit-identical
// histories. Not safe for concurrent use.
type Engine struct {
	cfg      *config.Config
	rng      *rand.Rand
	selector EliteSelector

	env        *sim.Environment
	generation int
	seed       int64

	// Last completed generation's best genome, kept for archiving.
	champBrain *neural.Brain
	champColor components.Pigment
	champFood  int
}

// NewEngine prepares an engine from a validated config. A zero random_seed
// picks one from the wall clock; the effective seed is exposed via Seed so
// a run can always be reproduced.
func NewEngine(cfg *config.Config) *Engine {
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		selector: EliteSelector{Fraction: cfg.Evolution.SurvivalFraction},
		seed:     seed,
	}
}

// Seed returns the seed actually in use.
func (e *Engine) Seed() int64 {
	return e.seed
}

// Generation returns the index of the generation currently running,
// starting at 0.
func (e *Engine) Generation() int {
	return e.generation
}

// Env exposes the running environment for read-only inspection.
func (e *Engine) Env() *sim.Environment {
	return e.env
}

// Start spawns generation 0 from random genomes.
func (e *Engine) Start() {
	genomes := make([]sim.Genome, e.cfg.Population.Size)
	for i := range genomes {
		genomes[i] = sim.Genome{
			Brain: neural.NewBrain(e.rng, e.cfg.Brain.HiddenNodes),
			Color: randomPigment(e.rng),
		}
	}
	e.env = sim.NewEnvironment(e.cfg, genomes, e.rng)
}

// Step advances the run by one tick. When that tick ends the generation,
// Step scores it, breeds the next population, spawns its environment, and
// returns the completed generation's record; otherwise it returns nil.
// If Start has not been called yet, Step starts generation 0 first.
func (e *Engine) Step() *telemetry.GenerationRecord {
	if e.env == nil {
		e.Start()
	}
	e.env.Tick()
	if !e.env.Done() {
		return nil
	}
	return e.turnover()
}

// RunGeneration ticks the current generation to completion and returns its
// record.
func (e *Engine) RunGeneration() *telemetry.GenerationRecord {
	for {
		if rec := e.Step(); rec != nil {
			return rec
		}
	}
}

// Snapshot copies the current environment state for rendering.
func (e *Engine) Snapshot() telemetry.TickSnapshot {
	return e.env.Snapshot(e.generation)
}

// turnover closes out the finished generation and installs the next one.
func (e *Engine) turnover() *telemetry.GenerationRecord {
	results := e.env.Results()
	survivors := e.selector.Select(results)
	rec := e.record(results, survivors)

	// Archive the top genome before the environment is replaced; the brain
	// is cloned so the copy outlives the population it came from.
	best := survivors[0]
	e.champBrain = best.Genome.Brain.Clone()
	e.champColor = best.Genome.Color
	e.champFood = best.FoodEaten

	e.env = sim.NewEnvironment(e.cfg, e.breed(survivors), e.rng)
	e.generation++
	return rec
}

// Champion returns the best genome of the last completed generation and its
// food count. The brain is nil until a generation has finished.
func (e *Engine) Champion() (*neural.Brain, components.Pigment, int) {
	return e.champBrain, e.champColor, e.champFood
}

// breed builds the next population from the survivor pool: each offspring
// picks its parents uniformly with replacement, copies or crosses their
// brains, and mutates brain and pigment.
func (e *Engine) breed(survivors []sim.CreatureResult) []sim.Genome {
	evoCfg := &e.cfg.Evolution
	genomes := make([]sim.Genome, e.cfg.Population.Size)
	for i := range genomes {
		parent := survivors[e.rng.Intn(len(survivors))]

		var brain *neural.Brain
		if evoCfg.Crossover && len(survivors) > 1 {
			other := survivors[e.rng.Intn(len(survivors))]
			brain = neural.Crossover(e.rng, parent.Genome.Brain, other.Genome.Brain)
		} else {
			brain = parent.Genome.Brain.Clone()
		}
		brain.Mutate(e.rng, evoCfg.MutationRate, evoCfg.MutationMagnitude)

		genomes[i] = sim.Genome{
			Brain: brain,
			Color: mutatePigment(e.rng, parent.Genome.Color, evoCfg.MutationRate, evoCfg.ColorMutationAmount),
		}
	}
	return genomes
}

// record summarizes a finished generation.
func (e *Engine) record(results, survivors []sim.CreatureResult) *telemetry.GenerationRecord {
	fitness := make([]float64, len(results))
	energy := make([]float64, len(results))
	topFood, alive := 0, 0
	topEnergy := 0.0
	for i, r := range results {
		fitness[i] = float64(r.FoodEaten)
		energy[i] = r.Energy
		if r.FoodEaten > topFood {
			topFood = r.FoodEaten
		}
		if r.Energy > topEnergy {
			topEnergy = r.Energy
		}
		if r.Alive {
			alive++
		}
	}

	fit := telemetry.Summarize(fitness)
	en := telemetry.Summarize(energy)

	return &telemetry.GenerationRecord{
		Generation:   e.generation,
		Ticks:        e.env.Tickno(),
		FoodEaten:    e.env.FoodEaten(),
		TopFoodEaten: topFood,
		Survivors:    len(survivors),
		Alive:        alive,
		Population:   len(results),
		MeanEnergy:   en.Mean,
		TopEnergy:    topEnergy,
		MeanFitness:  fit.Mean,
		FitnessStd:   fit.Std,
	}
}

// randomPigment draws a mid-range color so initial creatures stay visible
// against both the background and the food.
func randomPigment(rng *rand.Rand) components.Pigment {
	return components.Pigment{
		R: uint8(50 + rng.Intn(151)),
		G: uint8(50 + rng.Intn(151)),
		B: uint8(50 + rng.Intn(151)),
	}
}

// mutatePigment rolls each channel independently against the mutation rate
// and, on a hit, shifts it by a uniform amount in [-amount, amount], clamped
// to the displayable range.
func mutatePigment(rng *rand.Rand, p components.Pigment, rate, amount float64) components.Pigment {
	channels := [3]uint8{p.R, p.G, p.B}
	for i, c := range channels {
		if rng.Float64() >= rate {
			continue
		}
		v := int(math.Round(float64(c) + (rng.Float64()*2-1)*amount))
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		channels[i] = uint8(v)
	}
	return components.Pigment{R: channels[0], G: channels[1], B: channels[2]}
}
