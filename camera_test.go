package grove

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if c.X != 0 || c.Y != 0 {
		t.Errorf("position = (%v, %v), want (0, 0)", c.X, c.Y)
	}
	if c.Zoom != 1 {
		t.Errorf("Zoom = %v, want 1", c.Zoom)
	}
	if c.Scrolling() {
		t.Error("new camera should not be scrolling")
	}
}

func TestCameraUpdateWithoutScrollNoOp(t *testing.T) {
	c := NewCamera()
	c.X, c.Y = 10, 20
	c.Update(1.0)
	if c.X != 10 || c.Y != 20 {
		t.Error("Update without a scroll animation must not move the camera")
	}
}

func TestCameraScrollTo(t *testing.T) {
	c := NewCamera()
	c.ScrollTo(100, 50, 1.0, ease.Linear)

	if !c.Scrolling() {
		t.Fatal("camera should be scrolling")
	}

	c.Update(0.5)
	if !tweenAlmost(c.X, 50) || !tweenAlmost(c.Y, 25) {
		t.Errorf("midway position = (%v, %v), want (50, 25)", c.X, c.Y)
	}

	c.Update(0.5)
	if !tweenAlmost(c.X, 100) || !tweenAlmost(c.Y, 50) {
		t.Errorf("final position = (%v, %v), want (100, 50)", c.X, c.Y)
	}
	if c.Scrolling() {
		t.Error("scroll should be finished")
	}
}

func TestCameraScrollToReplacesInFlight(t *testing.T) {
	c := NewCamera()
	c.ScrollTo(100, 0, 1.0, ease.Linear)
	c.Update(0.5)
	c.ScrollTo(0, 0, 1.0, ease.Linear)
	c.Update(1.0)

	if !tweenAlmost(c.X, 0) {
		t.Errorf("X = %v, want 0 (second scroll wins)", c.X)
	}
}

func TestCameraWorldScreenRoundTrip(t *testing.T) {
	c := NewCamera()
	c.X, c.Y = 100, 50
	c.Zoom = 2

	sx, sy := c.WorldToScreen(110, 60)
	if !almostEqual(sx, 20) || !almostEqual(sy, 20) {
		t.Errorf("screen = (%v, %v), want (20, 20)", sx, sy)
	}

	wx, wy := c.ScreenToWorld(sx, sy)
	if !almostEqual(wx, 110) || !almostEqual(wy, 60) {
		t.Errorf("world = (%v, %v), want (110, 60)", wx, wy)
	}
}

func TestCameraApplyOrder(t *testing.T) {
	c := NewCamera()
	c.X, c.Y = 5, 6
	c.Zoom = 2

	s := &recordSurface{}
	c.Apply(s)

	assertOps(t, s.ops(), []string{"scale", "translate"})
	if s.calls[0].args[0] != 2 || s.calls[0].args[1] != 2 {
		t.Errorf("scale args = %v, want (2, 2)", s.calls[0].args)
	}
	if s.calls[1].args[0] != -5 || s.calls[1].args[1] != -6 {
		t.Errorf("translate args = %v, want (-5, -6)", s.calls[1].args)
	}
}
