package systems

import (
	"math"
	"math/rand"
)

// FoodItem is one live food item in the arena.
type FoodItem struct {
	X, Y  float64
	Yield float64
}

// FoodField holds the live food items. Items live outside the ECS: the set
// is small, consumed monotonically within a generation, and needs ordered,
// index-stable iteration for deterministic collision claims.
type FoodField struct {
	items []FoodItem
}

// NewFoodField stocks a field with count items at uniform random positions.
func NewFoodField(rng *rand.Rand, count int, yield, width, height float64) *FoodField {
	f := &FoodField{items: make([]FoodItem, 0, count)}
	for i := 0; i < count; i++ {
		f.items = append(f.items, FoodItem{
			X:     rng.Float64() * width,
			Y:     rng.Float64() * height,
			Yield: yield,
		})
	}
	return f
}

// NewFoodFieldFromItems builds a field with explicit item placement.
func NewFoodFieldFromItems(items []FoodItem) *FoodField {
	f := &FoodField{items: make([]FoodItem, len(items))}
	copy(f.items, items)
	return f
}

// Nearest returns the index and distance of the closest surviving item.
// ok is false when the field is empty; callers substitute the "no food"
// sentinel sensor values in that case.
func (f *FoodField) Nearest(x, y float64) (idx int, dist float64, ok bool) {
	if len(f.items) == 0 {
		return 0, 0, false
	}
	idx = 0
	best := math.Hypot(x-f.items[0].X, y-f.items[0].Y)
	for i := 1; i < len(f.items); i++ {
		d := math.Hypot(x-f.items[i].X, y-f.items[i].Y)
		if d < best {
			best = d
			idx = i
		}
	}
	return idx, best, true
}

// At returns the item at index i.
func (f *FoodField) At(i int) FoodItem {
	return f.items[i]
}

// Remove deletes the item at index i. Order of the remaining items is
// preserved so nearest-tie resolution stays stable across removals.
func (f *FoodField) Remove(i int) {
	f.items = append(f.items[:i], f.items[i+1:]...)
}

// Remaining returns the current live item count.
func (f *FoodField) Remaining() int {
	return len(f.items)
}

// Items returns a copy of the live items for snapshotting.
func (f *FoodField) Items() []FoodItem {
	out := make([]FoodItem, len(f.items))
	copy(out, f.items)
	return out
}
