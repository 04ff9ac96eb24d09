package telemetry

// TickSnapshot is an immutable copy of the renderable simulation state,
// taken between ticks. Consumers never receive live references into the
// world, so a renderer on another goroutine cannot observe a torn tick.
type TickSnapshot struct {
	Generation int
	Tick       int
	FoodEaten  int
	Remaining  int
	Creatures  []CreatureState
	Food       []FoodState
}

// CreatureState is one living creature's renderable state.
type CreatureState struct {
	Index     int
	X, Y      float64
	Heading   float64
	Energy    float64
	FoodEaten int
	R, G, B   uint8
}

// FoodState is one surviving food item's position.
type FoodState struct {
	X, Y float64
}
