package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/JamesCalleja/Evolution-Visualizer/components"
)

// Feeding resolves food collisions after movement. Creatures are visited in
// query order, which is spawn order: when two creatures could claim the same
// item on the same tick, the lower spawn index wins. Each creature consumes
// at most one item per tick (its nearest), and a consumed item is removed
// immediately so it can never be claimed twice.
type Feeding struct {
	filter    ecs.Filter2[components.Position, components.Organism]
	radius    float64
	maxEnergy float64
}

// NewFeeding creates the feeding system.
func NewFeeding(w *ecs.World, collisionRadius, maxEnergy float64) *Feeding {
	return &Feeding{
		filter:    *ecs.NewFilter2[components.Position, components.Organism](w),
		radius:    collisionRadius,
		maxEnergy: maxEnergy,
	}
}

// Update processes collisions and returns the number of items consumed this
// tick.
func (s *Feeding) Update(food *FoodField) int {
	eaten := 0
	query := s.filter.Query()
	for query.Next() {
		pos, org := query.Get()
		if !org.Alive {
			continue
		}

		idx, dist, ok := food.Nearest(pos.X, pos.Y)
		if !ok || dist > s.radius {
			continue
		}

		org.Energy += food.At(idx).Yield
		if org.Energy > s.maxEnergy {
			org.Energy = s.maxEnergy
		}
		org.FoodEaten++
		food.Remove(idx)
		eaten++
	}
	return eaten
}
