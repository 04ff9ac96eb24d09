// Package main summarizes a finished run's generation log: per-metric
// aggregates plus the trend between the first and last quarter of the run.
//
// Usage: go run ./cmd/analyze -input out/generations.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/JamesCalleja/Evolution-Visualizer/telemetry"
)

func main() {
	input := flag.String("input", "", "Generation CSV file or the directory containing it")
	flag.Parse()

	if *input == "" {
		log.Fatal("--input is required")
	}

	path := *input
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, telemetry.GenerationsFile)
	}

	records, err := loadRecords(path)
	if err != nil {
		log.Fatalf("failed to load records: %v", err)
	}
	if len(records) == 0 {
		log.Fatalf("no generation records in %s", path)
	}

	fmt.Printf("Run: %s (%d generations)\n\n", path, len(records))

	printMetric("food eaten", records, func(r telemetry.GenerationRecord) float64 {
		return float64(r.FoodEaten)
	})
	printMetric("top food eaten", records, func(r telemetry.GenerationRecord) float64 {
		return float64(r.TopFoodEaten)
	})
	printMetric("ticks", records, func(r telemetry.GenerationRecord) float64 {
		return float64(r.Ticks)
	})
	printMetric("alive at end", records, func(r telemetry.GenerationRecord) float64 {
		return float64(r.Alive)
	})
	printMetric("mean energy", records, func(r telemetry.GenerationRecord) float64 {
		return r.MeanEnergy
	})
	printMetric("mean fitness", records, func(r telemetry.GenerationRecord) float64 {
		return r.MeanFitness
	})
}

func loadRecords(path string) ([]telemetry.GenerationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []telemetry.GenerationRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// printMetric prints aggregates for one column, plus the drift between the
// first and final quarter of the run as a rough learning signal.
func printMetric(name string, records []telemetry.GenerationRecord, get func(telemetry.GenerationRecord) float64) {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = get(r)
	}

	all := telemetry.Summarize(values)
	fmt.Printf("%-16s mean %8.2f  median %8.2f  std %8.2f", name, all.Mean, all.Median, all.Std)

	q := len(values) / 4
	if q > 0 {
		early := telemetry.Summarize(values[:q])
		late := telemetry.Summarize(values[len(values)-q:])
		fmt.Printf("  first->last quarter %8.2f -> %8.2f", early.Mean, late.Mean)
	}
	fmt.Println()
}
