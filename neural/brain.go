// Package neural provides the feedforward neural network brain driving each creature.
package neural

import (
	"fmt"
	"math"
	"math/rand"
)

// Network dimensions fixed by the sensor and steering contracts.
const (
	NumInputs  = 3 // energy, food distance, food angle
	NumOutputs = 2 // turn, thrust
)

// Brain is a two-layer feedforward network over flat parameter buffers.
// Hidden width is set at construction; the shape never changes afterwards.
// Forward is a pure function of the parameters and the input, so cloning a
// brain is a plain buffer copy.
type Brain struct {
	Hidden int
	W1     []float64 // [Hidden*NumInputs], input -> hidden, row-major by hidden node
	B1     []float64 // [Hidden]
	W2     []float64 // [NumOutputs*Hidden], hidden -> output, row-major by output node
	B2     []float64 // [NumOutputs]
}

// NewBrain creates a brain with parameters drawn uniformly from [-1, 1).
func NewBrain(rng *rand.Rand, hidden int) *Brain {
	if hidden <= 0 {
		panic(fmt.Sprintf("neural: hidden width must be > 0, got %d", hidden))
	}
	b := &Brain{
		Hidden: hidden,
		W1:     make([]float64, hidden*NumInputs),
		B1:     make([]float64, hidden),
		W2:     make([]float64, NumOutputs*hidden),
		B2:     make([]float64, NumOutputs),
	}
	for _, buf := range b.buffers() {
		for i := range buf {
			buf[i] = rng.Float64()*2 - 1
		}
	}
	return b
}

// Forward computes the steering outputs for one sensor vector.
// Returns: turn [-1,1] and thrust [0,1]. Both layers use tanh so the
// steering magnitude stays bounded regardless of parameter drift.
func (b *Brain) Forward(energy, foodDist, foodAngle float64) (turn, thrust float64) {
	in := [NumInputs]float64{energy, foodDist, foodAngle}

	hidden := make([]float64, b.Hidden)
	for i := 0; i < b.Hidden; i++ {
		sum := b.B1[i]
		for j := 0; j < NumInputs; j++ {
			sum += b.W1[i*NumInputs+j] * in[j]
		}
		hidden[i] = math.Tanh(sum)
	}

	var out [NumOutputs]float64
	for k := 0; k < NumOutputs; k++ {
		sum := b.B2[k]
		for i := 0; i < b.Hidden; i++ {
			sum += b.W2[k*b.Hidden+i] * hidden[i]
		}
		out[k] = math.Tanh(sum)
	}

	turn = out[0]
	thrust = (out[1] + 1) / 2
	return turn, thrust
}

// Clone creates a deep copy of the brain.
func (b *Brain) Clone() *Brain {
	c := &Brain{
		Hidden: b.Hidden,
		W1:     make([]float64, len(b.W1)),
		B1:     make([]float64, len(b.B1)),
		W2:     make([]float64, len(b.W2)),
		B2:     make([]float64, len(b.B2)),
	}
	copy(c.W1, b.W1)
	copy(c.B1, b.B1)
	copy(c.W2, b.W2)
	copy(c.B2, b.B2)
	return c
}

// Mutate perturbs each parameter independently with probability rate by a
// uniform draw from [-magnitude, magnitude]. Parameters that miss the rate
// roll are left exactly as they were.
func (b *Brain) Mutate(rng *rand.Rand, rate, magnitude float64) {
	for _, buf := range b.buffers() {
		for i := range buf {
			if rng.Float64() < rate {
				buf[i] += (rng.Float64()*2 - 1) * magnitude
			}
		}
	}
}

// Crossover builds a child brain choosing each parameter from one of the two
// parents with equal probability. Both parents must share a topology.
func Crossover(rng *rand.Rand, a, p *Brain) *Brain {
	if a.Hidden != p.Hidden {
		panic(fmt.Sprintf("neural: crossover shape mismatch: %d vs %d hidden nodes", a.Hidden, p.Hidden))
	}
	child := a.Clone()
	cb := child.buffers()
	pb := p.buffers()
	for n := range cb {
		for i := range cb[n] {
			if rng.Float64() < 0.5 {
				cb[n][i] = pb[n][i]
			}
		}
	}
	return child
}

// ParamCount returns the total number of weights and biases.
func (b *Brain) ParamCount() int {
	return len(b.W1) + len(b.B1) + len(b.W2) + len(b.B2)
}

// buffers returns the parameter buffers in a fixed order, so that every
// whole-brain pass (init, mutation, crossover) consumes randomness in the
// same sequence.
func (b *Brain) buffers() [4][]float64 {
	return [4][]float64{b.W1, b.B1, b.W2, b.B2}
}
