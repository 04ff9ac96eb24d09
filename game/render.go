package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/JamesCalleja/Evolution-Visualizer/telemetry"
	"github.com/JamesCalleja/Evolution-Visualizer/ui"
)

const creatureRadius = 6.0

// Draw renders one frame: arena contents, HUD, and the UI panels.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	snap := g.engine.Snapshot()
	g.drawFood(snap)
	g.drawCreatures(snap)
	g.drawHUD(snap)

	if g.controls != nil {
		state := g.controls.Draw(ui.State{Paused: g.paused, Speed: g.speed})
		g.paused = state.Paused
		g.speed = state.Speed
	}
	if g.chart != nil {
		g.chart.Draw()
	}

	rl.EndDrawing()
}

func (g *Game) drawFood(snap telemetry.TickSnapshot) {
	for _, f := range snap.Food {
		rl.DrawCircle(int32(f.X), int32(f.Y), 3, rl.Green)
	}
}

func (g *Game) drawCreatures(snap telemetry.TickSnapshot) {
	maxEnergy := g.cfg.Creature.MaxEnergy
	for _, c := range snap.Creatures {
		color := rl.Color{R: c.R, G: c.G, B: c.B, A: 255}

		// Fade toward the background as energy runs out.
		frac := c.Energy / maxEnergy
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		color.A = uint8(100 + frac*155)

		drawOrientedTriangle(float32(c.X), float32(c.Y), float32(c.Heading), creatureRadius, color)
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	frontX := x + cos*radius*1.5
	frontY := y + sin*radius*1.5

	backAngle := heading + math.Pi*0.8
	backLeftX := x + float32(math.Cos(float64(backAngle)))*radius
	backLeftY := y + float32(math.Sin(float64(backAngle)))*radius

	backAngle = heading - math.Pi*0.8
	backRightX := x + float32(math.Cos(float64(backAngle)))*radius
	backRightY := y + float32(math.Sin(float64(backAngle)))*radius

	v1 := rl.Vector2{X: frontX, Y: frontY}
	v2 := rl.Vector2{X: backLeftX, Y: backLeftY}
	v3 := rl.Vector2{X: backRightX, Y: backRightY}

	// DrawTriangle requires counter-clockwise winding (v1, v3, v2)
	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangleLines(v1, v2, v3, rl.White)
}

func (g *Game) drawHUD(snap telemetry.TickSnapshot) {
	rl.DrawText(fmt.Sprintf("Generation: %d", snap.Generation), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Tick: %d  Alive: %d", snap.Tick, len(snap.Creatures)), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Food: %d eaten / %d left  Speed: %dx [</>]",
		snap.FoodEaten, snap.Remaining, g.speed), 10, 60, 20, rl.White)
	if g.paused {
		rl.DrawText("PAUSED", 10, 85, 20, rl.Yellow)
	}
	if g.done {
		rl.DrawText("RUN COMPLETE", 10, 110, 20, rl.Yellow)
	}
}
