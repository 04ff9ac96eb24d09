// Package components defines ECS components for the simulation.
package components

// Position is an entity's arena position.
type Position struct {
	X, Y float64
}

// Motion holds heading (radians) and the current scalar speed.
type Motion struct {
	Heading float64
	Speed   float64
}

// Organism holds a creature's life state. Index is the spawn order within
// the generation; it never changes and is the deterministic tie-breaker for
// selection and collision claims.
type Organism struct {
	Index     int
	Energy    float64
	FoodEaten int
	Alive     bool
}

// Pigment is the creature's heritable RGB color trait.
type Pigment struct {
	R, G, B uint8
}
