package mapview

import "math"

// Camera is the default View implementation: a world-space center, a scale,
// a rotation and the screen-space viewport it renders into.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor in screen pixels per world unit.
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// ReferenceLevel is the zoom level at which Zoom == 1.
	ReferenceLevel float64

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	toScreen affine
	toWorld  affine
	dirty    bool

	redraws int
}

// NewCamera creates a Camera with default values and the given viewport.
func NewCamera(viewport Rect) *Camera {
	return &Camera{
		Zoom:     1.0,
		Viewport: viewport,
		dirty:    true,
	}
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.clampToBounds()
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// clampToBounds keeps the visible area inside Bounds. An axis where Bounds
// is narrower than the view centers on Bounds instead.
func (c *Camera) clampToBounds() {
	if !c.BoundsEnabled {
		return
	}
	half := c.Viewport.Size().Mul(0.5 / c.Zoom)
	c.X = clampSpan(c.X, half.X, c.Bounds.X, c.Bounds.Width)
	c.Y = clampSpan(c.Y, half.Y, c.Bounds.Y, c.Bounds.Height)
	c.dirty = true
}

func clampSpan(v, half, lo, span float64) float64 {
	if span <= 2*half {
		return lo + span/2
	}
	return clamp(v, lo+half, lo+span-half)
}

// transforms returns the cached world-to-screen mapping and its inverse.
func (c *Camera) transforms() (toScreen, toWorld affine) {
	if c.dirty {
		c.dirty = false
		c.toScreen = viewTransform(Vec2{c.X, c.Y}, c.Zoom, c.Rotation, c.Viewport.Center())
		c.toWorld = c.toScreen.inverse()
	}
	return c.toScreen, c.toWorld
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(world Vec2) Vec2 {
	m, _ := c.transforms()
	return m.apply(world)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(screen Vec2) Vec2 {
	_, inv := c.transforms()
	return inv.apply(screen)
}

// Scale returns the current zoom factor.
func (c *Camera) Scale() float64 {
	return c.Zoom
}

// ZoomLevelToScale maps a zoom level onto a scale, doubling per level.
func (c *Camera) ZoomLevelToScale(level float64) float64 {
	return math.Exp2(level - c.ReferenceLevel)
}

// ZoomLevel returns the fractional zoom level matching the current scale.
func (c *Camera) ZoomLevel() float64 {
	return math.Log2(c.Zoom) + c.ReferenceLevel
}

// PlaceWorldAt moves the camera so that world lies under screen.
func (c *Camera) PlaceWorldAt(world, screen Vec2) {
	under := c.ScreenToWorld(screen)
	c.X += world.X - under.X
	c.Y += world.Y - under.Y
	c.dirty = true
	c.clampToBounds()
}

// ScaleAt sets Zoom while keeping the world point under pivot in place.
// Non-positive scales are ignored.
func (c *Camera) ScaleAt(scale float64, pivot Vec2) {
	if scale <= 0 {
		return
	}
	anchor := c.ScreenToWorld(pivot)
	c.Zoom = scale
	c.dirty = true
	c.PlaceWorldAt(anchor, pivot)
}

// RotateAt rotates the camera by deg degrees around the screen point pivot.
func (c *Camera) RotateAt(deg float64, pivot Vec2) {
	anchor := c.ScreenToWorld(pivot)
	c.Rotation += deg * math.Pi / 180
	c.dirty = true
	c.PlaceWorldAt(anchor, pivot)
}

// Resize changes the viewport size keeping the world center in place.
func (c *Camera) Resize(width, height float64) {
	c.Viewport.Width = width
	c.Viewport.Height = height
	c.dirty = true
	c.clampToBounds()
}

// RequestRedraw records that the view changed since the last frame.
func (c *Camera) RequestRedraw() {
	c.redraws++
}

// TakeRedraw reports whether a redraw was requested since the previous call
// and resets the request.
func (c *Camera) TakeRedraw() bool {
	requested := c.redraws > 0
	c.redraws = 0
	return requested
}

// VisibleBounds returns the world-space box around the viewport. Under
// rotation it covers more than the viewport itself.
func (c *Camera) VisibleBounds() Rect {
	vp := c.Viewport
	lo := c.ScreenToWorld(Vec2{vp.X, vp.Y})
	hi := lo
	for _, corner := range []Vec2{
		{vp.X + vp.Width, vp.Y},
		{vp.X, vp.Y + vp.Height},
		{vp.X + vp.Width, vp.Y + vp.Height},
	} {
		w := c.ScreenToWorld(corner)
		lo = Vec2{min(lo.X, w.X), min(lo.Y, w.Y)}
		hi = Vec2{max(hi.X, w.X), max(hi.Y, w.Y)}
	}
	return Rect{X: lo.X, Y: lo.Y, Width: hi.X - lo.X, Height: hi.Y - lo.Y}
}

// MarkDirty forces the cached transforms to be rebuilt.
func (c *Camera) MarkDirty() {
	c.dirty = true
}
