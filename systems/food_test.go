package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestNewFoodFieldCount(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	f := NewFoodField(rng, 25, 40, 1000, 700)

	if f.Remaining() != 25 {
		t.Errorf("Remaining = %d, want 25", f.Remaining())
	}
	for _, item := range f.Items() {
		if item.X < 0 || item.X > 1000 || item.Y < 0 || item.Y > 700 {
			t.Errorf("item outside arena: (%f, %f)", item.X, item.Y)
		}
		if item.Yield != 40 {
			t.Errorf("item yield = %f, want 40", item.Yield)
		}
	}
}

func TestNearestPicksClosest(t *testing.T) {
	f := NewFoodFieldFromItems([]FoodItem{
		{X: 100, Y: 100, Yield: 40},
		{X: 10, Y: 10, Yield: 40},
		{X: 500, Y: 500, Yield: 40},
	})

	idx, dist, ok := f.Nearest(0, 0)
	if !ok {
		t.Fatal("Nearest reported empty field")
	}
	if idx != 1 {
		t.Errorf("Nearest idx = %d, want 1", idx)
	}
	want := math.Hypot(10, 10)
	if math.Abs(dist-want) > 1e-12 {
		t.Errorf("Nearest dist = %f, want %f", dist, want)
	}
}

func TestNearestOnEmptyField(t *testing.T) {
	f := NewFoodFieldFromItems(nil)

	_, _, ok := f.Nearest(50, 50)
	if ok {
		t.Error("Nearest on empty field must report ok=false")
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	f := NewFoodFieldFromItems([]FoodItem{
		{X: 1}, {X: 2}, {X: 3}, {X: 4},
	})

	f.Remove(1)

	if f.Remaining() != 3 {
		t.Fatalf("Remaining = %d, want 3", f.Remaining())
	}
	got := f.Items()
	want := []float64{1, 3, 4}
	for i, x := range want {
		if got[i].X != x {
			t.Errorf("items[%d].X = %f, want %f", i, got[i].X, x)
		}
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	f := NewFoodFieldFromItems([]FoodItem{{X: 1, Y: 2}})

	items := f.Items()
	items[0].X = 999

	if f.At(0).X != 1 {
		t.Error("Items must return a copy, not a live view")
	}
}
