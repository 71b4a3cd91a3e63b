// bounce drops boxes onto a floor under gravity, with a tweened moving
// platform, a spark emitter, and a simple lighting pass. All shapes are
// procedural (no textures).
package main

import (
	"log"
	"math/rand/v2"

	"github.com/tanema/gween/ease"

	"github.com/phanxgames/grove"
)

const (
	screenW  = 1280
	screenH  = 720
	boxCount = 12

	floorY        = 640
	platformY     = 420
	platformW     = 220
	sweepDuration = 3.0 // seconds per platform sweep
)

func main() {
	world := grove.NewWorld()
	world.ClearColor = grove.Color{R: 0.06, G: 0.06, B: 0.09, A: 1}
	world.Physics = grove.Physics{Gravity: 900, Friction: 0.99}

	root := world.Root()

	// Static geometry: floor plus two side walls to keep boxes on screen.
	floor := grove.NewEntity("floor", screenW, screenH-floorY)
	floor.X, floor.Y = 0, floorY
	floor.Color = grove.Color{R: 0.2, G: 0.22, B: 0.25, A: 1}
	root.AddChild(floor)

	for _, wall := range []struct {
		name string
		x    float64
	}{{"wall-left", -40}, {"wall-right", screenW}} {
		w := grove.NewEntity(wall.name, 40, screenH+200)
		w.X, w.Y = wall.x, -200
		w.Visible = false
		root.AddChild(w)
	}

	// The platform sweeps back and forth on a tween; boxes land on it.
	platform := grove.NewEntity("platform", platformW, 24)
	platform.X, platform.Y = 100, platformY
	platform.Color = grove.Color{R: 0.6, G: 0.45, B: 0.2, A: 1}
	root.AddChild(platform)

	for i := 0; i < boxCount; i++ {
		size := 24 + rand.Float64()*28
		box := grove.NewEntity("box", size, size)
		box.X = 60 + rand.Float64()*(screenW-120)
		box.Y = -rand.Float64() * 600
		box.Bounce = 0.3 + rand.Float64()*0.4
		box.VelX = (rand.Float64() - 0.5) * 200
		box.Color = grove.Color{
			R: 0.3 + rand.Float64()*0.7,
			G: 0.3 + rand.Float64()*0.7,
			B: 0.3 + rand.Float64()*0.7,
			A: 1,
		}
		root.AddChild(box)
	}

	// Sparks drifting up from the floor line.
	sparks := grove.NewEmitter("sparks", grove.EmitterConfig{
		MaxParticles: 256,
		EmitRate:     40,
		Lifetime:     grove.Range{Min: 0.8, Max: 1.6},
		Speed:        grove.Range{Min: 30, Max: 90},
		Angle:        grove.Range{Min: -2.0, Max: -1.1}, // radians, upward fan
		StartScale:   grove.Range{Min: 1, Max: 1},
		EndScale:     grove.Range{Min: 0, Max: 0.2},
		StartAlpha:   grove.Range{Min: 0.9, Max: 1},
		EndAlpha:     grove.Range{},
		Gravity:      grove.Vec2{Y: -20},
		Size:         3,
		Color:        grove.Color{R: 1, G: 0.7, B: 0.3, A: 1},
		Blend:        grove.BlendAdd,
	})
	sparks.X, sparks.Y = screenW/2, floorY
	sparks.Emitter.Start()
	root.AddChild(sparks)

	// Darkness with a warm light riding the platform and a cool fill light.
	world.Lights().SetAmbientAlpha(0.55)
	platformLight := grove.NewLight(platform.X+platformW/2, platformY-20, 260)
	platformLight.Color = grove.Color{R: 1, G: 0.8, B: 0.5, A: 1}
	fill := grove.NewLight(screenW/2, 200, 500)
	fill.Intensity = 0.6
	world.Lights().AddLight(platformLight)
	world.Lights().AddLight(fill)

	// Per frame: retrigger the platform sweep when it finishes and keep the
	// platform light glued to it.
	goingRight := false
	world.Bus().Subscribe(grove.EventUpdate, func(args ...any) {
		if world.Tweens().Len() == 0 {
			toX := 100.0
			if goingRight = !goingRight; goingRight {
				toX = screenW - 100 - platformW
			}
			world.Tweens().Add(grove.TweenPosition(
				platform, toX, platformY, world.Now(), sweepDuration, ease.InOutQuad))
		}

		platformLight.X = platform.X + platformW/2
	})

	if err := grove.Run(world, grove.RunConfig{
		Title:  "Grove — Bounce",
		Width:  screenW,
		Height: screenH,
	}); err != nil {
		log.Fatal(err)
	}
}
