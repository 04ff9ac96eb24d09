package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/JamesCalleja/Evolution-Visualizer/components"
	"github.com/JamesCalleja/Evolution-Visualizer/config"
	"github.com/JamesCalleja/Evolution-Visualizer/neural"
)

// Behavior runs sensing, the brain forward pass, steering, movement and the
// metabolic cost for every living creature.
//
// Arena boundary policy: position is clamped to the arena and the heading
// component normal to the wall is mirrored (bounce). This is the policy the
// fitness numbers depend on; changing it changes evolved behavior.
type Behavior struct {
	filter ecs.Filter3[components.Position, components.Motion, components.Organism]
	cfg    *config.Config
}

// NewBehavior creates the behavior system.
func NewBehavior(w *ecs.World, cfg *config.Config) *Behavior {
	return &Behavior{
		filter: *ecs.NewFilter3[components.Position, components.Motion, components.Organism](w),
		cfg:    cfg,
	}
}

// Update advances every living creature by one tick. brains is indexed by
// Organism.Index. Dead creatures emit no sensing or movement.
func (s *Behavior) Update(brains []*neural.Brain, food *FoodField) {
	cc := s.cfg.Creature
	dt := s.cfg.Physics.DT

	query := s.filter.Query()
	for query.Next() {
		pos, mo, org := query.Get()
		if !org.Alive {
			continue
		}

		energyIn, distIn, angleIn := Sense(pos, mo, org, food, s.cfg)
		turn, thrust := brains[org.Index].Forward(energyIn, distIn, angleIn)

		mo.Heading = normalizeAngle(mo.Heading + turn*cc.MaxTurnPerTick)
		mo.Speed = thrust * cc.MaxSpeed

		pos.X += math.Cos(mo.Heading) * mo.Speed * dt
		pos.Y += math.Sin(mo.Heading) * mo.Speed * dt
		s.reflect(pos, mo)

		org.Energy -= cc.MetabolicCostPerTick * (1 + cc.MoveCostFactor*thrust)
		if org.Energy <= 0 {
			org.Energy = 0
			org.Alive = false
			mo.Speed = 0
		}
	}
}

// Sense builds the three-element sensor vector for one creature:
// own energy in [0,1], nearest-food distance in [0,1] (1 when no food
// remains), and the signed angle to the nearest food relative to the heading
// in [-1,1] (0 when no food remains).
func Sense(pos *components.Position, mo *components.Motion, org *components.Organism, food *FoodField, cfg *config.Config) (energy, dist, angle float64) {
	energy = clamp01(org.Energy / cfg.Creature.MaxEnergy)

	idx, d, ok := food.Nearest(pos.X, pos.Y)
	if !ok {
		return energy, 1, 0
	}

	dist = clamp01(d / cfg.Derived.Diagonal)

	item := food.At(idx)
	toFood := math.Atan2(item.Y-pos.Y, item.X-pos.X)
	angle = normalizeAngle(toFood-mo.Heading) / math.Pi
	return energy, dist, angle
}

// reflect clamps the position to the arena and mirrors the heading off the
// wall that was crossed.
func (s *Behavior) reflect(pos *components.Position, mo *components.Motion) {
	w := s.cfg.Arena.Width
	h := s.cfg.Arena.Height

	if pos.X < 0 {
		pos.X = 0
		mo.Heading = normalizeAngle(math.Pi - mo.Heading)
	} else if pos.X > w {
		pos.X = w
		mo.Heading = normalizeAngle(math.Pi - mo.Heading)
	}

	if pos.Y < 0 {
		pos.Y = 0
		mo.Heading = normalizeAngle(-mo.Heading)
	} else if pos.Y > h {
		pos.Y = h
		mo.Heading = normalizeAngle(-mo.Heading)
	}
}
