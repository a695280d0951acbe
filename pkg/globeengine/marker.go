package globeengine

import (
	"math"

	"github.com/mvarley/anomaly-globe/pkg/dataset"
)

// SphereRadius is the globe radius in world units. Marker positions and the
// continent backdrop are both expressed on this sphere.
const SphereRadius = 10.0

// DefaultPoolCap bounds each of the pool's free lists.
const DefaultPoolCap = 100

// Geometry is the reusable shape component of a marker. The box is unit
// sized; height scaling happens at draw time so recycled geometries need no
// reset beyond being handed back.
type Geometry struct {
	Width, Height, Depth float64
}

// Material is the reusable color component of a marker. Colors are written
// in place on reuse to avoid allocation churn under frequent decade
// switching.
type Material struct {
	R, G, B float64
}

// Marker is one rendered primitive: a colored spike anchored on the sphere
// surface, oriented radially outward, with length proportional to the
// anomaly magnitude.
type Marker struct {
	Point dataset.AnomalyPoint

	// Position on the sphere surface, world units.
	X, Y, Z float64
	// Euler rotation that points the marker's up axis radially outward.
	RotX, RotY, RotZ float64

	HeightScale float64

	geom *Geometry
	mat  *Material
}

// Color returns the marker's material color in [0,1] channels.
func (m *Marker) Color() (r, g, b float64) {
	return m.mat.R, m.mat.G, m.mat.B
}

// ResourcePool recycles geometries and materials across marker batches.
// Both free lists are bounded; returns past the cap are dropped so the pool
// never grows without bound. The pool is touched only from the engine's
// update goroutine, so it carries no lock.
type ResourcePool struct {
	cap        int
	geometries []*Geometry
	materials  []*Material
}

// NewResourcePool creates a pool with the given per-list cap. A cap of zero
// or less falls back to DefaultPoolCap.
func NewResourcePool(cap int) *ResourcePool {
	if cap <= 0 {
		cap = DefaultPoolCap
	}
	return &ResourcePool{cap: cap}
}

func (p *ResourcePool) getGeometry() *Geometry {
	if n := len(p.geometries); n > 0 {
		g := p.geometries[n-1]
		p.geometries = p.geometries[:n-1]
		return g
	}
	return &Geometry{Width: 1, Height: 1, Depth: 1}
}

func (p *ResourcePool) getMaterial() *Material {
	if n := len(p.materials); n > 0 {
		m := p.materials[n-1]
		p.materials = p.materials[:n-1]
		return m
	}
	return &Material{}
}

func (p *ResourcePool) putGeometry(g *Geometry) {
	if len(p.geometries) < p.cap {
		p.geometries = append(p.geometries, g)
	}
}

func (p *ResourcePool) putMaterial(m *Material) {
	if len(p.materials) < p.cap {
		p.materials = append(p.materials, m)
	}
}

// Sizes reports the current free-list lengths.
func (p *ResourcePool) Sizes() (geometries, materials int) {
	return len(p.geometries), len(p.materials)
}

// MarkerFactory builds markers for anomaly points, drawing reusable
// resources from its pool.
type MarkerFactory struct {
	pool   *ResourcePool
	radius float64
}

// NewMarkerFactory creates a factory placing markers on a sphere of the
// given radius.
func NewMarkerFactory(pool *ResourcePool, radius float64) *MarkerFactory {
	if radius <= 0 {
		radius = SphereRadius
	}
	return &MarkerFactory{pool: pool, radius: radius}
}

// CreateMarker positions, orients and colors one marker for the given point.
// Longitude is negated before projection: the dataset stores positive east
// but the scene's handedness needs the sign flipped.
func (f *MarkerFactory) CreateMarker(p dataset.AnomalyPoint) *Marker {
	latRad := p.Lat * math.Pi / 180
	lonRad := -p.Lon * math.Pi / 180

	m := &Marker{
		Point: p,
		X:     math.Cos(latRad) * math.Cos(lonRad) * f.radius,
		Y:     math.Sin(latRad) * f.radius,
		Z:     math.Cos(latRad) * math.Sin(lonRad) * f.radius,
		RotX:  0,
		RotY:  -lonRad,
		RotZ:  latRad - math.Pi/2,
		geom:  f.pool.getGeometry(),
		mat:   f.pool.getMaterial(),
	}

	h, s, l, height := MapAnomaly(p.Delta)
	m.HeightScale = height
	// Overwrite in place; the material may be a recycled one.
	m.mat.R, m.mat.G, m.mat.B = HSLToRGB(h, s, l)
	return m
}

// ReleaseMarker hands the marker's geometry and material back to the pool,
// or drops them when the pool is full. Call exactly once per marker, at
// batch teardown; the marker must not be used afterwards.
func (f *MarkerFactory) ReleaseMarker(m *Marker) {
	if m == nil || m.geom == nil {
		return
	}
	f.pool.putGeometry(m.geom)
	f.pool.putMaterial(m.mat)
	m.geom, m.mat = nil, nil
}
