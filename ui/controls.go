// Package ui renders the control panel and the live generation chart on top
// of the arena.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// State is the run-control state the panel edits.
type State struct {
	Paused bool
	Speed  int
}

// Controls renders the pause button and speed slider.
type Controls struct {
	x, y  float32
	width float32
}

// NewControls creates a control panel anchored at the given screen position.
func NewControls(x, y int32) *Controls {
	return &Controls{
		x:     float32(x),
		y:     float32(y),
		width: 200,
	}
}

// Draw renders the panel and returns the (possibly edited) state.
func (c *Controls) Draw(state State) State {
	y := c.y

	label := "Pause"
	if state.Paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: c.x, Y: y, Width: 90, Height: 24}, label) {
		state.Paused = !state.Paused
	}
	y += 32

	rl.DrawText("Speed", int32(c.x), int32(y), 14, rl.Gray)
	y += 18
	speed := gui.SliderBar(
		rl.Rectangle{X: c.x, Y: y, Width: c.width - 50, Height: 20},
		"1", "20",
		float32(state.Speed), 1, 20,
	)
	state.Speed = int(speed + 0.5)
	rl.DrawText(fmt.Sprintf("%dx", state.Speed), int32(c.x+c.width-40), int32(y+2), 16, rl.White)

	return state
}
