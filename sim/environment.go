// Package sim implements the per-generation environment: the creature
// population, the food field, and the tick loop that advances them.
package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/mlange-42/ark/ecs"

	"github.com/JamesCalleja/Evolution-Visualizer/components"
	"github.com/JamesCalleja/Evolution-Visualizer/config"
	"github.com/JamesCalleja/Evolution-Visualizer/neural"
	"github.com/JamesCalleja/Evolution-Visualizer/systems"
	"github.com/JamesCalleja/Evolution-Visualizer/telemetry"
)

// Phase is the environment's position in the generation state machine.
type Phase uint8

const (
	// Running means ticks advance state.
	Running Phase = iota
	// GenerationEnded means a termination condition fired; the environment
	// is frozen and ready to be read out and discarded.
	GenerationEnded
)

// Genome is the heritable material a creature is built from. The brain is
// owned exclusively by the creature it seeds; callers must hand in
// independent copies.
type Genome struct {
	Brain *neural.Brain
	Color components.Pigment
}

// CreatureResult is one creature's final state, read out at generation end.
// Dead creatures keep their counters frozen at the value they died with.
type CreatureResult struct {
	Index     int
	FoodEaten int
	Energy    float64
	Alive     bool
	Genome    Genome
}

// Environment owns one generation's population and food field and advances
// them tick by tick. All mutation happens on the single goroutine calling
// Tick; external consumers only ever see copies via Snapshot.
type Environment struct {
	cfg    *config.Config
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Motion, components.Organism, components.Pigment]
	filter *ecs.Filter4[components.Position, components.Motion, components.Organism, components.Pigment]

	behavior *systems.Behavior
	feeding  *systems.Feeding
	food     *systems.FoodField

	// brains[i] belongs to the creature with Organism.Index == i.
	brains []*neural.Brain

	tick        int
	eaten       int
	initialFood int
	phase       Phase
}

// NewEnvironment spawns one creature per genome (full initial energy, zero
// food counter) and stocks a fresh food field. The rng drives spawn
// placement and headings; ticks themselves consume no randomness.
func NewEnvironment(cfg *config.Config, genomes []Genome, rng *rand.Rand) *Environment {
	world := ecs.NewWorld()

	e := &Environment{
		cfg:    cfg,
		world:  world,
		mapper: ecs.NewMap4[components.Position, components.Motion, components.Organism, components.Pigment](world),
		filter: ecs.NewFilter4[components.Position, components.Motion, components.Organism, components.Pigment](world),
		brains: make([]*neural.Brain, len(genomes)),
	}
	e.behavior = systems.NewBehavior(world, cfg)
	e.feeding = systems.NewFeeding(world, cfg.Food.CollisionRadius, cfg.Creature.MaxEnergy)

	for i, g := range genomes {
		var x, y float64
		if cfg.Population.SpawnMode == config.SpawnFixed {
			x, y = cfg.Population.SpawnX, cfg.Population.SpawnY
		} else {
			x = rng.Float64() * cfg.Arena.Width
			y = rng.Float64() * cfg.Arena.Height
		}

		pos := components.Position{X: x, Y: y}
		mo := components.Motion{Heading: rng.Float64() * 2 * math.Pi}
		org := components.Organism{
			Index:  i,
			Energy: cfg.Creature.InitialEnergy,
			Alive:  true,
		}
		pig := g.Color

		e.mapper.NewEntity(&pos, &mo, &org, &pig)
		e.brains[i] = g.Brain
	}

	e.food = systems.NewFoodField(rng, cfg.Food.InitialCount, cfg.Food.EnergyYield, cfg.Arena.Width, cfg.Arena.Height)
	e.initialFood = cfg.Food.InitialCount

	return e
}

// Tick advances the simulation by one step: behavior for every living
// creature, then collision resolution, then termination evaluation. Calling
// Tick after the generation ended is a no-op.
func (e *Environment) Tick() {
	if e.phase != Running {
		return
	}

	e.behavior.Update(e.brains, e.food)
	e.eaten += e.feeding.Update(e.food)
	e.tick++

	if got := e.food.Remaining() + e.eaten; got != e.initialFood {
		panic(fmt.Sprintf("sim: food conservation violated: %d remaining + %d eaten != %d initial",
			e.food.Remaining(), e.eaten, e.initialFood))
	}

	if e.eaten >= e.cfg.Generation.FoodTarget ||
		e.tick >= e.cfg.Generation.MaxTicks ||
		e.Alive() == 0 {
		e.phase = GenerationEnded
	}
}

// Phase returns the current state-machine phase.
func (e *Environment) Phase() Phase {
	return e.phase
}

// Done reports whether the generation has ended.
func (e *Environment) Done() bool {
	return e.phase == GenerationEnded
}

// Tickno returns the number of completed ticks.
func (e *Environment) Tickno() int {
	return e.tick
}

// FoodEaten returns the total items consumed by the population so far.
func (e *Environment) FoodEaten() int {
	return e.eaten
}

// FoodRemaining returns the surviving food count.
func (e *Environment) FoodRemaining() int {
	return e.food.Remaining()
}

// Alive counts the living creatures.
func (e *Environment) Alive() int {
	n := 0
	query := e.filter.Query()
	for query.Next() {
		_, _, org, _ := query.Get()
		if org.Alive {
			n++
		}
	}
	return n
}

// Results reads out every creature's final state, ordered by spawn index.
// The returned genomes reference the creatures' own brains; the caller must
// clone before mutating.
func (e *Environment) Results() []CreatureResult {
	out := make([]CreatureResult, 0, len(e.brains))
	query := e.filter.Query()
	for query.Next() {
		_, _, org, pig := query.Get()
		out = append(out, CreatureResult{
			Index:     org.Index,
			FoodEaten: org.FoodEaten,
			Energy:    org.Energy,
			Alive:     org.Alive,
			Genome:    Genome{Brain: e.brains[org.Index], Color: *pig},
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Snapshot copies the renderable state: every living creature and every
// surviving food item. The copy shares no storage with the world.
func (e *Environment) Snapshot(generation int) telemetry.TickSnapshot {
	snap := telemetry.TickSnapshot{
		Generation: generation,
		Tick:       e.tick,
		FoodEaten:  e.eaten,
		Remaining:  e.food.Remaining(),
	}

	query := e.filter.Query()
	for query.Next() {
		pos, mo, org, pig := query.Get()
		if !org.Alive {
			continue
		}
		snap.Creatures = append(snap.Creatures, telemetry.CreatureState{
			Index:     org.Index,
			X:         pos.X,
			Y:         pos.Y,
			Heading:   mo.Heading,
			Energy:    org.Energy,
			FoodEaten: org.FoodEaten,
			R:         pig.R,
			G:         pig.G,
			B:         pig.B,
		})
	}

	for _, item := range e.food.Items() {
		snap.Food = append(snap.Food, telemetry.FoodState{X: item.X, Y: item.Y})
	}

	return snap
}
