package grove

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Surface is the drawing collaborator the render pass issues calls against.
// Implementations must scope transform and blend state to Save/Restore pairs
// so later frames are unaffected by prior state changes.
//
// The core calls Surface in a fixed order per frame (see World.RenderFrame)
// and never retains one across frames.
type Surface interface {
	// Save pushes the current transform and blend state.
	Save()
	// Restore pops the most recently saved state. No-op on an empty stack.
	Restore()
	// Translate appends a translation to the current transform.
	Translate(x, y float64)
	// Scale appends a scale to the current transform.
	Scale(sx, sy float64)
	// Clear fills the entire surface with the given color, ignoring the
	// current transform.
	Clear(c Color)
	// FillRect fills an axis-aligned rectangle under the current transform.
	FillRect(x, y, w, h float64, c Color)
	// FillCircleGradient fills a radial-gradient circle centered on (x, y):
	// full color at the center falling off to transparent at the radius.
	FillCircleGradient(x, y, radius float64, c Color)
	// SetBlend switches the compositing operation for subsequent fills.
	SetBlend(mode BlendMode)
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	default:
		return ebiten.BlendSourceOver
	}
}

func (c Color) toNRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// whitePixel is a 1x1 white image used for solid fills.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

type surfaceState struct {
	geom  ebiten.GeoM
	blend BlendMode
}

// EbitenSurface is the production Surface backed by an ebiten.Image render
// target. Call Begin with the frame's screen image before rendering.
type EbitenSurface struct {
	target      *ebiten.Image
	state       surfaceState
	stack       []surfaceState
	circleCache map[int]*ebiten.Image // feathered circles keyed by quantized radius
	imgOp       ebiten.DrawImageOptions
}

// NewEbitenSurface creates an EbitenSurface with no target. Begin must be
// called before any drawing.
func NewEbitenSurface() *EbitenSurface {
	return &EbitenSurface{}
}

// Begin points the surface at a render target and resets transform and
// blend state for the new frame.
func (s *EbitenSurface) Begin(target *ebiten.Image) {
	s.target = target
	s.state = surfaceState{}
	s.stack = s.stack[:0]
}

// Save pushes the current transform and blend state.
func (s *EbitenSurface) Save() {
	s.stack = append(s.stack, s.state)
}

// Restore pops the most recently saved state. No-op on an empty stack.
func (s *EbitenSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Translate appends a translation to the current transform.
func (s *EbitenSurface) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	m.Concat(s.state.geom)
	s.state.geom = m
}

// Scale appends a scale to the current transform.
func (s *EbitenSurface) Scale(sx, sy float64) {
	var m ebiten.GeoM
	m.Scale(sx, sy)
	m.Concat(s.state.geom)
	s.state.geom = m
}

// Clear fills the entire target with the given color.
func (s *EbitenSurface) Clear(c Color) {
	s.target.Fill(c.toNRGBA())
}

// SetBlend switches the compositing operation for subsequent fills.
func (s *EbitenSurface) SetBlend(mode BlendMode) {
	s.state.blend = mode
}

// FillRect fills an axis-aligned rectangle under the current transform.
func (s *EbitenSurface) FillRect(x, y, w, h float64, c Color) {
	op := &s.imgOp
	op.GeoM.Reset()
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(s.state.geom)
	s.applyColor(op, c)
	s.target.DrawImage(ensureWhitePixel(), op)
}

// FillCircleGradient draws a feathered circle centered on (x, y). Circle
// textures are cached by quantized radius, matching how lighting reuses
// them across frames.
func (s *EbitenSurface) FillCircleGradient(x, y, radius float64, c Color) {
	if radius <= 0 {
		return
	}
	img := s.getCircle(radius)
	sz := float64(img.Bounds().Dx())
	op := &s.imgOp
	op.GeoM.Reset()
	op.GeoM.Scale(radius*2/sz, radius*2/sz)
	op.GeoM.Translate(x-radius, y-radius)
	op.GeoM.Concat(s.state.geom)
	s.applyColor(op, c)
	s.target.DrawImage(img, op)
}

func (s *EbitenSurface) applyColor(op *ebiten.DrawImageOptions, c Color) {
	op.ColorScale.Reset()
	a := float32(clamp01(c.A))
	op.ColorScale.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
	op.Blend = s.state.blend.EbitenBlend()
}

// getCircle returns a cached feathered circle texture for the given radius,
// generating one if needed. Radius is quantized to the nearest integer to
// avoid generating separate textures for tiny differences.
func (s *EbitenSurface) getCircle(radius float64) *ebiten.Image {
	key := int(math.Ceil(radius))
	if key < 1 {
		key = 1
	}
	if s.circleCache == nil {
		s.circleCache = make(map[int]*ebiten.Image)
	}
	if img, ok := s.circleCache[key]; ok {
		return img
	}
	img := generateCircle(float64(key))
	s.circleCache[key] = img
	return img
}

// Dispose releases the cached circle textures.
func (s *EbitenSurface) Dispose() {
	for _, img := range s.circleCache {
		img.Deallocate()
	}
	s.circleCache = nil
	s.target = nil
}

// generateCircle creates a feathered white circle image with the given radius.
// Uses smoothstep falloff and premultiplied alpha.
func generateCircle(radius float64) *ebiten.Image {
	size := int(math.Ceil(radius * 2))
	if size < 1 {
		size = 1
	}
	img := ebiten.NewImage(size, size)
	pix := make([]byte, size*size*4)

	cx, cy := radius, radius
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - cx
			dy := float64(y) + 0.5 - cy
			dist := math.Sqrt(dx*dx+dy*dy) / radius

			var alpha float64
			if dist >= 1 {
				alpha = 0
			} else {
				// smoothstep: 1 at center, 0 at edge
				t := 1 - dist
				alpha = t * t * (3 - 2*t)
			}

			a := uint8(alpha * 255)
			off := (y*size + x) * 4
			pix[off+0] = a // premultiplied white
			pix[off+1] = a
			pix[off+2] = a
			pix[off+3] = a
		}
	}
	img.WritePixels(pix)
	return img
}
