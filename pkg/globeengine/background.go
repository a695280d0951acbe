package globeengine

import (
	"image/color"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	geojson "github.com/paulmach/go.geojson"
)

// Backdrop holds the continent outlines as polylines of unit vectors on the
// sphere, precomputed once at load time. Per frame they are rotated with the
// camera and stroked; segments on the far hemisphere are culled.
type Backdrop struct {
	rings  [][]vec3
	radius float64
}

type vec3 struct{ X, Y, Z float64 }

var (
	colorOcean   = color.RGBA{8, 10, 15, 255}
	colorDisk    = color.RGBA{14, 18, 26, 255}
	colorOutline = color.RGBA{52, 61, 78, 255}
)

// LoadBackdrop reads a GeoJSON feature collection of world geometry and
// precomputes its outlines on a sphere of the given radius.
func LoadBackdrop(path string, radius float64) (*Backdrop, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	b := &Backdrop{radius: radius}
	for _, f := range fc.Features {
		if f.Geometry.IsPolygon() {
			for _, ring := range f.Geometry.Polygon {
				b.addRing(ring)
			}
		} else if f.Geometry.IsMultiPolygon() {
			for _, poly := range f.Geometry.MultiPolygon {
				for _, ring := range poly {
					b.addRing(ring)
				}
			}
		}
	}
	return b, nil
}

// addRing converts one GeoJSON ring ([lon, lat] pairs) to sphere points,
// using the same longitude sign convention as the markers.
func (b *Backdrop) addRing(coords [][]float64) {
	if len(coords) < 2 {
		return
	}
	ring := make([]vec3, 0, len(coords))
	for _, c := range coords {
		latRad := c[1] * math.Pi / 180
		lonRad := -c[0] * math.Pi / 180
		ring = append(ring, vec3{
			X: math.Cos(latRad) * math.Cos(lonRad) * b.radius,
			Y: math.Sin(latRad) * b.radius,
			Z: math.Cos(latRad) * math.Sin(lonRad) * b.radius,
		})
	}
	b.rings = append(b.rings, ring)
}

// Draw strokes the visible continent outlines onto the screen.
func (b *Backdrop) Draw(screen *ebiten.Image, cam *Camera) {
	for _, ring := range b.rings {
		for i := 0; i < len(ring)-1; i++ {
			x1, y1, d1 := cam.Project(ring[i].X, ring[i].Y, ring[i].Z)
			x2, y2, d2 := cam.Project(ring[i+1].X, ring[i+1].Y, ring[i+1].Z)
			if d1 < 0 || d2 < 0 {
				continue
			}
			vector.StrokeLine(screen, float32(x1), float32(y1), float32(x2), float32(y2), 1, colorOutline, false)
		}
	}
}
