// Package view maps the logical drawing onto the screen. It is the only place
// pan and zoom are applied; stored wire geometry never passes through it.
package view

import (
	"math"

	"gioui.org/f32"

	"github.com/OpenTraceLab/OpenTraceSchem/pkg/grid"
)

// Zoom limits (pixels per world unit)
const (
	MinZoom     = 0.1
	MaxZoom     = 40.0
	DefaultZoom = 2.0
)

// Camera is a viewport onto the logical drawing.
type Camera struct {
	// Center position in world coordinates
	CenterX float64
	CenterY float64

	// Zoom level (pixels per world unit)
	Zoom float64

	// Screen dimensions (pixels)
	ScreenWidth  int
	ScreenHeight int
}

// NewCamera creates a camera centred on the origin.
func NewCamera(screenWidth, screenHeight int) *Camera {
	return &Camera{
		Zoom:         DefaultZoom,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

// WorldToScreen converts a world point to screen pixels.
func (c *Camera) WorldToScreen(p grid.Point) (float64, float64) {
	x := (p.X-c.CenterX)*c.Zoom + float64(c.ScreenWidth)/2.0
	y := (p.Y-c.CenterY)*c.Zoom + float64(c.ScreenHeight)/2.0
	return x, y
}

// ScreenPoint is WorldToScreen as a Gio point.
func (c *Camera) ScreenPoint(p grid.Point) f32.Point {
	x, y := c.WorldToScreen(p)
	return f32.Pt(float32(x), float32(y))
}

// ScreenToWorld converts screen pixels to a world point.
func (c *Camera) ScreenToWorld(screenX, screenY float64) grid.Point {
	x := (screenX-float64(c.ScreenWidth)/2.0)/c.Zoom + c.CenterX
	y := (screenY-float64(c.ScreenHeight)/2.0)/c.Zoom + c.CenterY
	return grid.Point{X: x, Y: y}
}

// Pan moves the camera by screen pixel offsets.
func (c *Camera) Pan(deltaX, deltaY float64) {
	c.CenterX -= deltaX / c.Zoom
	c.CenterY -= deltaY / c.Zoom
}

// ZoomAt zooms by factor keeping the world point under (screenX, screenY)
// fixed. factor > 1 zooms in.
func (c *Camera) ZoomAt(screenX, screenY, factor float64) {
	before := c.ScreenToWorld(screenX, screenY)

	c.Zoom = math.Min(math.Max(c.Zoom*factor, MinZoom), MaxZoom)

	after := c.ScreenToWorld(screenX, screenY)
	c.CenterX += before.X - after.X
	c.CenterY += before.Y - after.Y
}

// Fit centres on bbox and zooms so it fills 90% of the screen.
func (c *Camera) Fit(bbox grid.RectF) {
	width := bbox.Max.X - bbox.Min.X
	height := bbox.Max.Y - bbox.Min.Y
	if width <= 0 || height <= 0 {
		return
	}

	c.CenterX = (bbox.Min.X + bbox.Max.X) / 2.0
	c.CenterY = (bbox.Min.Y + bbox.Max.Y) / 2.0

	zoomX := float64(c.ScreenWidth) * 0.9 / width
	zoomY := float64(c.ScreenHeight) * 0.9 / height
	c.Zoom = math.Min(math.Max(math.Min(zoomX, zoomY), MinZoom), MaxZoom)
}

// UpdateScreenSize updates the camera when the window is resized.
func (c *Camera) UpdateScreenSize(width, height int) {
	c.ScreenWidth = width
	c.ScreenHeight = height
}

// VisibleBounds returns the visible area in world coordinates.
func (c *Camera) VisibleBounds() grid.RectF {
	return grid.RectF{
		Min: c.ScreenToWorld(0, 0),
		Max: c.ScreenToWorld(float64(c.ScreenWidth), float64(c.ScreenHeight)),
	}
}

// Affine returns the world-to-screen transform as a Gio affine matrix.
func (c *Camera) Affine() f32.Affine2D {
	z := float32(c.Zoom)
	return f32.Affine2D{}.
		Offset(f32.Pt(float32(-c.CenterX), float32(-c.CenterY))).
		Scale(f32.Point{}, f32.Pt(z, z)).
		Offset(f32.Pt(float32(c.ScreenWidth)/2, float32(c.ScreenHeight)/2))
}
