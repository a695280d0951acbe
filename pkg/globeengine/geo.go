package globeengine

import "math"

// Camera maps world-space sphere coordinates to screen pixels: a yaw/pitch
// rotation of the globe followed by an orthographic projection. Depth is
// preserved so callers can cull the far hemisphere.
type Camera struct {
	width  int
	height int
	// Screen pixels per world unit.
	scale float64
	// Globe orientation, radians.
	Yaw   float64
	Pitch float64
}

// NewCamera creates a camera that fits a sphere of the given radius into
// the viewport with a small margin.
func NewCamera(width, height int, radius float64) *Camera {
	minDim := float64(width)
	if float64(height) < minDim {
		minDim = float64(height)
	}
	return &Camera{
		width:  width,
		height: height,
		scale:  minDim * 0.42 / radius,
	}
}

// Rotate applies the camera's orientation to a world-space point.
func (c *Camera) Rotate(x, y, z float64) (rx, ry, rz float64) {
	// Yaw around the Y axis.
	sinY, cosY := math.Sin(c.Yaw), math.Cos(c.Yaw)
	x, z = x*cosY+z*sinY, -x*sinY+z*cosY
	// Pitch around the X axis.
	sinP, cosP := math.Sin(c.Pitch), math.Cos(c.Pitch)
	y, z = y*cosP-z*sinP, y*sinP+z*cosP
	return x, y, z
}

// Project rotates and projects a world-space point. The returned depth grows
// toward the viewer; a negative depth means the point sits on the far
// hemisphere.
func (c *Camera) Project(x, y, z float64) (sx, sy, depth float64) {
	x, y, z = c.Rotate(x, y, z)
	sx = float64(c.width)/2 + x*c.scale
	sy = float64(c.height)/2 - y*c.scale
	return sx, sy, z
}

// ScreenRadius returns the globe's radius in pixels for the given world
// radius.
func (c *Camera) ScreenRadius(radius float64) float64 {
	return radius * c.scale
}

// Resize refits the projection to a new viewport.
func (c *Camera) Resize(width, height int, radius float64) {
	minDim := float64(width)
	if float64(height) < minDim {
		minDim = float64(height)
	}
	c.width, c.height = width, height
	c.scale = minDim * 0.42 / radius
}
