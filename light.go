package grove

// Light is a point light source. Pure data: the core never mutates it; the
// lighting pass only reads it.
type Light struct {
	// X and Y are the light's position in world space.
	X, Y float64
	// Radius is the light's reach in pixels.
	Radius float64
	// Intensity controls light brightness in the range [0, 1].
	Intensity float64
	// Enabled determines whether this light is composed during the
	// lighting pass. Disabled lights are skipped entirely.
	Enabled bool
	// Color is the tint color. Zero value or white means neutral (no tint).
	Color Color
}

// NewLight creates an enabled white light at the given position.
func NewLight(x, y, radius float64) *Light {
	return &Light{X: x, Y: y, Radius: radius, Intensity: 1, Enabled: true, Color: ColorWhite}
}

// LightLayer composes a simple 2D lighting effect over the scene: ambient
// darkness with soft holes punched out at each light position, plus an
// additive tint for colored lights. All drawing goes through the Surface
// contract with blend state scoped by Save/Restore.
type LightLayer struct {
	lights       []*Light
	ambientAlpha float64
}

// NewLightLayer creates a light layer.
// ambientAlpha controls the base darkness (0 = fully transparent, 1 = fully opaque black).
func NewLightLayer(ambientAlpha float64) *LightLayer {
	return &LightLayer{ambientAlpha: ambientAlpha}
}

// AddLight adds a light to the layer.
func (ll *LightLayer) AddLight(l *Light) {
	ll.lights = append(ll.lights, l)
}

// RemoveLight removes a light from the layer. No-op if absent.
func (ll *LightLayer) RemoveLight(l *Light) {
	for i, existing := range ll.lights {
		if existing == l {
			ll.lights = append(ll.lights[:i], ll.lights[i+1:]...)
			return
		}
	}
}

// ClearLights removes all lights from the layer.
func (ll *LightLayer) ClearLights() {
	ll.lights = ll.lights[:0]
}

// Lights returns the current light list. The returned slice MUST NOT be mutated.
func (ll *LightLayer) Lights() []*Light {
	return ll.lights
}

// SetAmbientAlpha sets the base darkness level.
func (ll *LightLayer) SetAmbientAlpha(a float64) {
	ll.ambientAlpha = a
}

// AmbientAlpha returns the current ambient darkness level.
func (ll *LightLayer) AmbientAlpha() float64 {
	return ll.ambientAlpha
}

// Compose runs the lighting pass over the view rectangle: fills ambient
// darkness, erases a feathered circle per enabled light, and adds tint for
// non-white lights. Lights whose reach cannot touch the view are skipped.
// The view rect is in the surface's current (camera) space.
func (ll *LightLayer) Compose(s Surface, view Rect) {
	a := clamp01(ll.ambientAlpha)
	if a == 0 && len(ll.lights) == 0 {
		return
	}

	s.Save()
	s.FillRect(view.X, view.Y, view.Width, view.Height, Color{A: a})

	for _, l := range ll.lights {
		if !l.Enabled || l.Radius <= 0 {
			continue
		}
		reach := Rect{
			X:      view.X - l.Radius,
			Y:      view.Y - l.Radius,
			Width:  view.Width + 2*l.Radius,
			Height: view.Height + 2*l.Radius,
		}
		if !reach.Contains(l.X, l.Y) {
			continue
		}
		intensity := clamp01(l.Intensity)

		// Erase pass: punch a soft hole in the darkness.
		s.SetBlend(BlendErase)
		s.FillCircleGradient(l.X, l.Y, l.Radius, Color{1, 1, 1, intensity})

		// Tint pass: additive color for non-neutral lights.
		if l.Color != (Color{}) && l.Color != ColorWhite {
			s.SetBlend(BlendAdd)
			tint := l.Color
			tint.A = intensity * 0.3
			s.FillCircleGradient(l.X, l.Y, l.Radius, tint)
		}
	}
	s.Restore()
}
