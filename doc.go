// Package grove is a retained-mode 2D scene-and-simulation engine for
// [Ebitengine].
//
// Grove provides the scene graph, per-frame update/render cycle, AABB
// collision detection and resolution, time-based property tweening, CPU
// particles, cameras, and lighting that a small 2D game needs. Rendering,
// audio, shaders, input, and frame timing are external collaborators
// reached through narrow interfaces ([Surface], [AudioPlayer],
// [ShaderStore], [KeyState], [Scheduler]), so the simulation core is
// fully testable without a window or GPU.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and
// drives the world for you:
//
//	world := grove.NewWorld()
//	// ... add nodes ...
//	grove.Run(world, grove.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [World.Root].
// A node's kind decides how it updates and renders: [KindGroup] nodes
// only group children, [KindEntity] nodes carry physical state (size,
// velocity, bounce) and take part in collision, [KindEmitter] nodes run
// a particle emitter.
//
//	platforms := grove.NewGroup("platforms")
//	world.Root().AddChild(platforms)
//
//	crate := grove.NewEntity("crate", 32, 32)
//	crate.X, crate.Y = 100, 50
//	platforms.AddChild(crate)
//
// # Frame cycle
//
// [World.Advance] runs one simulation step: scene update, particle
// update, tween advance, collision sweep, then an "update" event on the
// world's [Bus]. [World.RenderFrame] issues one render pass against a
// [Surface]. [Loop] repeats both, re-registering with a [Scheduler] each
// display refresh.
//
// Tweening is built on [gween]; audio playback on [beep].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [beep]: https://github.com/gopxl/beep
package grove
