package grove

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera controls the view into the world: position and zoom. The camera is
// pure data as far as the frame cycle is concerned — it is mutated only by
// an explicit Update call (or direct field writes), never by traversal.
type Camera struct {
	// X and Y are the world-space position of the view origin.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64

	scrollTween *scrollAnim
}

// NewCamera creates a camera at the origin with zoom 1.
func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

// ScrollTo animates the camera to the given world position over duration
// seconds. A new ScrollTo replaces any scroll still in flight.
func (c *Camera) ScrollTo(x, y float64, duration float32, fn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, fn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, fn),
	}
}

// Update advances any active scroll animation by dt seconds.
func (c *Camera) Update(dt float64) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(float32(dt))
		c.X = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(float32(dt))
		c.Y = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
}

// Scrolling reports whether a ScrollTo animation is in flight.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// WorldToScreen converts world coordinates to screen coordinates under this
// camera's transform (scale by zoom, translate by -position).
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return (wx - c.X) * c.Zoom, (wy - c.Y) * c.Zoom
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return sx/c.Zoom + c.X, sy/c.Zoom + c.Y
}

// Apply issues this camera's view transform against the surface. Callers
// must pair it with a surrounding Save/Restore so later frames are
// unaffected.
func (c *Camera) Apply(s Surface) {
	s.Scale(c.Zoom, c.Zoom)
	s.Translate(-c.X, -c.Y)
}
