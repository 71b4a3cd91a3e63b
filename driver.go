package grove

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventUpdate is published on the world's bus after every completed
// Advance, with the frame's delta time (float64 seconds) as the argument.
const EventUpdate = "update"

// World is the frame driver: it owns the scene tree, bus, tween set,
// collider, camera, lights, and key state, and fixes the ordering of
// sub-updates within a frame.
//
// All of it is single-threaded: exactly one logical thread of control runs
// Advance then RenderFrame per tick, and no component may be mutated from
// another goroutine within the same tick.
type World struct {
	root     *Node
	bus      *Bus
	tweens   TweenSet
	collider Collider
	camera   *Camera
	lights   *LightLayer
	keys     *KeyState

	// Physics holds the integration constants applied to every entity.
	Physics Physics
	// ClearColor fills the surface at the start of each rendered frame.
	ClearColor Color

	lastTime float64
	started  bool
}

// NewWorld creates a world with an empty root group, default physics, and
// no ambient darkness.
func NewWorld() *World {
	return &World{
		root:    NewGroup("root"),
		bus:     NewBus(),
		camera:  NewCamera(),
		lights:  NewLightLayer(0),
		keys:    NewKeyState(),
		Physics: DefaultPhysics(),
	}
}

// Root returns the world's root group node.
func (w *World) Root() *Node {
	return w.root
}

// Bus returns the world's event bus.
func (w *World) Bus() *Bus {
	return w.bus
}

// Tweens returns the world's active tween set.
func (w *World) Tweens() *TweenSet {
	return &w.tweens
}

// Camera returns the world's camera.
func (w *World) Camera() *Camera {
	return w.camera
}

// Lights returns the world's light layer.
func (w *World) Lights() *LightLayer {
	return w.lights
}

// Keys returns the world's key state.
func (w *World) Keys() *KeyState {
	return w.keys
}

// Now returns the absolute time of the most recent Advance, in seconds.
// Zero before the first Advance. Useful as the start time for tweens
// scheduled from an "update" handler.
func (w *World) Now() float64 {
	return w.lastTime
}

// Advance runs one simulation step at the absolute time now (seconds).
// Ordering within the frame:
//
//  1. camera animation
//  2. scene tree update with the frame delta (entity physics included)
//  3. particle emitters with the same delta
//  4. tween set with the absolute time (tweens are wall-clock driven,
//     unlike the frame-delta physics — see Tween)
//  5. one collision sweep over the whole tree
//  6. "update" event on the bus with the delta
//
// The first Advance establishes the time base and runs with a zero delta.
// Delta time varies tick to tick; the simulation is not frame-rate
// independent.
func (w *World) Advance(now float64) {
	if !w.started {
		w.lastTime = now
		w.started = true
	}
	dt := now - w.lastTime

	w.camera.Update(dt)
	w.root.Update(dt, w.Physics)
	updateEmitters(w.root, dt)
	w.tweens.Advance(now)
	w.collider.Sweep(w.root)

	w.lastTime = now
	w.bus.Publish(EventUpdate, dt)
}

// updateEmitters advances every particle emitter in the tree by dt seconds.
func updateEmitters(n *Node, dt float64) {
	if n.Kind == KindEmitter {
		n.Emitter.update(dt)
	}
	for _, child := range n.children {
		updateEmitters(child, dt)
	}
}

// RenderFrame issues one render pass against the surface for a viewport of
// the given pixel size: camera transform, clear, lighting composite pass,
// then the scene render traversal (particle emitters render as part of
// it). All transform and blend state is scoped by Save/Restore so later
// frames start clean.
func (w *World) RenderFrame(s Surface, width, height float64) {
	s.Save()
	w.camera.Apply(s)
	s.Clear(w.ClearColor)

	view := Rect{
		X:      w.camera.X,
		Y:      w.camera.Y,
		Width:  width / w.camera.Zoom,
		Height: height / w.camera.Zoom,
	}
	w.lights.Compose(s, view)
	w.root.Render(s)

	s.Restore()
}

// --- Continuous loop ---

// Scheduler supplies frame timing: Request registers cb to be invoked once
// at the next display refresh with a monotonically increasing timestamp in
// seconds. One-shot — a continuous loop re-registers itself every tick.
type Scheduler interface {
	Request(cb func(now float64))
}

// Loop repeatedly advances and renders a world, re-registering with its
// scheduler after every tick. Stopping the loop simply stops re-registering;
// no in-flight work needs interruption since everything within a tick is
// synchronous.
type Loop struct {
	world   *World
	surface Surface
	sched   Scheduler
	width   float64
	height  float64
	running bool
}

// NewLoop creates a loop driving world against surface at the given
// viewport size.
func NewLoop(world *World, surface Surface, sched Scheduler, width, height float64) *Loop {
	return &Loop{world: world, surface: surface, sched: sched, width: width, height: height}
}

// Start begins continuous looping. No-op if already running.
func (l *Loop) Start() {
	if l.running {
		return
	}
	l.running = true
	l.sched.Request(l.tick)
}

// Stop ends continuous looping after the current tick, if any.
func (l *Loop) Stop() {
	l.running = false
}

// Running reports whether the loop is active.
func (l *Loop) Running() bool {
	return l.running
}

func (l *Loop) tick(now float64) {
	if !l.running {
		return
	}
	l.world.Advance(now)
	l.world.RenderFrame(l.surface, l.width, l.height)
	if l.running {
		l.sched.Request(l.tick)
	}
}

// --- Ebiten driver ---

// RunConfig configures the window for Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Run opens a window and drives the world with ebiten's game loop: keyboard
// poll and Advance once per tick, RenderFrame once per draw. Blocks until
// the window closes.
func Run(w *World, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	return ebiten.RunGame(&ebitenGame{
		world:   w,
		surface: NewEbitenSurface(),
		start:   time.Now(),
		width:   cfg.Width,
		height:  cfg.Height,
	})
}

type ebitenGame struct {
	world   *World
	surface *EbitenSurface
	start   time.Time
	width   int
	height  int
}

func (g *ebitenGame) Update() error {
	PollKeyboard(g.world.Keys())
	g.world.Advance(time.Since(g.start).Seconds())
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	g.surface.Begin(screen)
	g.world.RenderFrame(g.surface, float64(g.width), float64(g.height))
}

func (g *ebitenGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
