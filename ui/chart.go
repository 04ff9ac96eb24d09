package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Chart plots one value per generation as a line graph. Old points are
// kept; the horizontal axis compresses as generations accumulate.
type Chart struct {
	x, y          int32
	width, height int32
	values        []float64
	visible       bool
}

// NewChart creates a chart anchored at the given screen position.
func NewChart(x, y, width, height int32) *Chart {
	return &Chart{x: x, y: y, width: width, height: height, visible: true}
}

// Push appends the next generation's value.
func (c *Chart) Push(v float64) {
	c.values = append(c.values, v)
}

// Toggle switches chart visibility.
func (c *Chart) Toggle() {
	c.visible = !c.visible
}

// Draw renders the chart panel.
func (c *Chart) Draw() {
	if !c.visible {
		return
	}

	rl.DrawRectangle(c.x, c.y, c.width, c.height, rl.Color{R: 20, G: 20, B: 20, A: 200})
	rl.DrawRectangleLines(c.x, c.y, c.width, c.height, rl.DarkGray)
	rl.DrawText("Food eaten / generation [C]", c.x+6, c.y+4, 12, rl.LightGray)

	if len(c.values) < 2 {
		return
	}

	maxVal := c.values[0]
	for _, v := range c.values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	plotX := float32(c.x + 6)
	plotY := float32(c.y + 22)
	plotW := float32(c.width - 12)
	plotH := float32(c.height - 30)

	n := len(c.values)
	prev := rl.Vector2{}
	for i, v := range c.values {
		px := plotX + plotW*float32(i)/float32(n-1)
		py := plotY + plotH*(1-float32(v/maxVal))
		pt := rl.Vector2{X: px, Y: py}
		if i > 0 {
			rl.DrawLineV(prev, pt, rl.Green)
		}
		prev = pt
	}

	last := c.values[n-1]
	rl.DrawText(fmt.Sprintf("gen %d: %.0f", n-1, last), c.x+6, c.y+c.height-14, 12, rl.Green)
}
