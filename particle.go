package grove

import (
	"math"
	"math/rand/v2"
)

// particle holds per-particle simulation state. Unexported; managed by Emitter.
type particle struct {
	x, y       float64
	vx, vy     float64
	life       float64 // remaining lifetime in seconds
	maxLife    float64 // initial lifetime (for computing t)
	startScale float32
	endScale   float32
	scale      float32
	startAlpha float32
	endAlpha   float32
	alpha      float32
}

// EmitterConfig controls how particles are spawned and behave.
type EmitterConfig struct {
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int
	// EmitRate is the number of particles spawned per second.
	EmitRate float64
	// Lifetime is the range of particle lifetimes in seconds.
	Lifetime Range
	// Speed is the range of initial particle speeds in pixels per second.
	Speed Range
	// Angle is the range of emission angles in radians.
	Angle Range
	// StartScale is the range of scale factors at birth, interpolated to EndScale over lifetime.
	StartScale Range
	// EndScale is the range of scale factors at death.
	EndScale Range
	// StartAlpha is the range of alpha values at birth, interpolated to EndAlpha over lifetime.
	StartAlpha Range
	// EndAlpha is the range of alpha values at death.
	EndAlpha Range
	// Gravity is the constant acceleration applied to all particles each frame.
	Gravity Vec2
	// Size is the particle radius in pixels at scale 1.
	Size float64
	// Color is the particle tint.
	Color Color
	// Blend is the compositing operation for particle rendering.
	Blend BlendMode
}

// Emitter manages a pool of particles with CPU-based simulation.
// Particles live in the emitter node's local space.
type Emitter struct {
	config    EmitterConfig
	particles []particle
	alive     int
	emitAccum float64
	active    bool
}

// newEmitter creates an Emitter with a preallocated pool.
func newEmitter(cfg EmitterConfig) *Emitter {
	max := cfg.MaxParticles
	if max <= 0 {
		max = 128
	}
	if cfg.Size <= 0 {
		cfg.Size = 2
	}
	if cfg.Color == (Color{}) {
		cfg.Color = ColorWhite
	}
	return &Emitter{
		config:    cfg,
		particles: make([]particle, max),
	}
}

// Start begins emitting particles.
func (e *Emitter) Start() {
	e.active = true
}

// Stop stops emitting new particles. Existing particles continue to live out.
func (e *Emitter) Stop() {
	e.active = false
}

// Reset stops emitting and kills all alive particles.
func (e *Emitter) Reset() {
	e.active = false
	e.alive = 0
	e.emitAccum = 0
}

// IsActive reports whether the emitter is currently emitting new particles.
func (e *Emitter) IsActive() bool {
	return e.active
}

// AliveCount returns the number of alive particles.
func (e *Emitter) AliveCount() int {
	return e.alive
}

// Config returns a pointer to the emitter's config for live tuning.
func (e *Emitter) Config() *EmitterConfig {
	return &e.config
}

// update advances particle simulation by dt seconds.
func (e *Emitter) update(dt float64) {
	gx := e.config.Gravity.X * dt
	gy := e.config.Gravity.Y * dt

	// Update existing particles, swap-remove dead ones.
	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.life -= dt
		if p.life <= 0 {
			// Swap with last alive particle.
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}

		p.vx += gx
		p.vy += gy
		p.x += p.vx * dt
		p.y += p.vy * dt

		t := float32(1.0 - p.life/p.maxLife)
		p.scale = lerp32(p.startScale, p.endScale, t)
		p.alpha = lerp32(p.startAlpha, p.endAlpha, t)

		i++
	}

	// Emit new particles.
	if e.active && e.config.EmitRate > 0 {
		e.emitAccum += e.config.EmitRate * dt
		for e.emitAccum >= 1.0 {
			e.emitAccum -= 1.0
			if e.alive < len(e.particles) {
				e.spawnParticle()
			}
		}
	}
}

// spawnParticle initializes the particle at slot e.alive and increments alive.
func (e *Emitter) spawnParticle() {
	p := &e.particles[e.alive]

	angle := e.config.Angle.Random()
	speed := e.config.Speed.Random()
	p.vx = math.Cos(angle) * speed
	p.vy = math.Sin(angle) * speed
	p.x = 0
	p.y = 0

	p.life = e.config.Lifetime.Random()
	if p.life <= 0 {
		p.life = 1.0
	}
	p.maxLife = p.life

	p.startScale = float32(e.config.StartScale.Random())
	p.endScale = float32(e.config.EndScale.Random())
	p.scale = p.startScale

	p.startAlpha = float32(e.config.StartAlpha.Random())
	p.endAlpha = float32(e.config.EndAlpha.Random())
	p.alpha = p.startAlpha

	e.alive++
}

// render draws alive particles as soft circles offset by the emitter node's
// position. Blend state is scoped with Save/Restore.
func (e *Emitter) render(ox, oy float64, s Surface) {
	if e.alive == 0 {
		return
	}
	c := e.config.Color
	s.Save()
	s.SetBlend(e.config.Blend)
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		tint := c
		tint.A = c.A * float64(p.alpha)
		s.FillCircleGradient(ox+p.x, oy+p.y, e.config.Size*float64(p.scale), tint)
	}
	s.Restore()
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return lerp(r.Min, r.Max, rand.Float64())
}
