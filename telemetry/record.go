// Package telemetry provides generation records, tick snapshots and CSV output.
package telemetry

import "log/slog"

// GenerationRecord summarizes one completed generation. Records are
// read-only once emitted; one is produced per generation, in order.
type GenerationRecord struct {
	Generation   int     `csv:"generation"`
	Ticks        int     `csv:"ticks"`
	FoodEaten    int     `csv:"food_eaten"`
	TopFoodEaten int     `csv:"top_food_eaten"`
	Survivors    int     `csv:"survivors"` // creatures kept by selection
	Alive        int     `csv:"alive"`     // creatures still alive at generation end
	Population   int     `csv:"population"`
	MeanEnergy   float64 `csv:"mean_energy"`
	TopEnergy    float64 `csv:"top_energy"`
	MeanFitness  float64 `csv:"mean_fitness"`
	FitnessStd   float64 `csv:"fitness_std"`
}

// LogValue implements slog.LogValuer for structured logging.
func (r GenerationRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", r.Generation),
		slog.Int("ticks", r.Ticks),
		slog.Int("food_eaten", r.FoodEaten),
		slog.Int("top_food_eaten", r.TopFoodEaten),
		slog.Int("survivors", r.Survivors),
		slog.Int("alive", r.Alive),
		slog.Int("population", r.Population),
		slog.Float64("mean_energy", r.MeanEnergy),
		slog.Float64("top_energy", r.TopEnergy),
		slog.Float64("mean_fitness", r.MeanFitness),
		slog.Float64("fitness_std", r.FitnessStd),
	)
}
