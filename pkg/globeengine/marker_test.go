package globeengine

import (
	"math"
	"testing"

	"github.com/mvarley/anomaly-globe/pkg/dataset"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCreateMarkerPosition(t *testing.T) {
	f := NewMarkerFactory(NewResourcePool(10), SphereRadius)

	tests := []struct {
		name                string
		lat, lon            float64
		wantX, wantY, wantZ float64
	}{
		{"origin", 0, 0, 10, 0, 0},
		{"north pole", 90, 0, 0, 10, 0},
		{"south pole", -90, 0, 0, -10, 0},
		// Longitude is negated before projection, so 90E lands at -Z.
		{"90 east", 0, 90, 0, 0, -10},
		{"90 west", 0, -90, 0, 0, 10},
	}
	for _, tt := range tests {
		m := f.CreateMarker(dataset.AnomalyPoint{Lat: tt.lat, Lon: tt.lon, Delta: 1})
		if !almostEqual(m.X, tt.wantX) || !almostEqual(m.Y, tt.wantY) || !almostEqual(m.Z, tt.wantZ) {
			t.Errorf("%s: position = (%v, %v, %v), want (%v, %v, %v)",
				tt.name, m.X, m.Y, m.Z, tt.wantX, tt.wantY, tt.wantZ)
		}
	}
}

func TestCreateMarkerOrientation(t *testing.T) {
	f := NewMarkerFactory(NewResourcePool(10), SphereRadius)
	m := f.CreateMarker(dataset.AnomalyPoint{Lat: 45, Lon: 30, Delta: 0.5})

	latRad := 45 * math.Pi / 180
	lonRad := -30 * math.Pi / 180
	if m.RotX != 0 || !almostEqual(m.RotY, -lonRad) || !almostEqual(m.RotZ, latRad-math.Pi/2) {
		t.Errorf("rotation = (%v, %v, %v), want (0, %v, %v)",
			m.RotX, m.RotY, m.RotZ, -lonRad, latRad-math.Pi/2)
	}
}

func TestPoolNeverExceedsCap(t *testing.T) {
	pool := NewResourcePool(5)
	f := NewMarkerFactory(pool, SphereRadius)

	markers := make([]*Marker, 0, 50)
	for i := 0; i < 50; i++ {
		markers = append(markers, f.CreateMarker(dataset.AnomalyPoint{Lat: float64(i), Lon: 0, Delta: 0.1}))
	}
	for _, m := range markers {
		f.ReleaseMarker(m)
	}

	geoms, mats := pool.Sizes()
	if geoms > 5 || mats > 5 {
		t.Errorf("pool sizes = (%d, %d), want <= cap 5", geoms, mats)
	}
}

func TestPoolReusesResources(t *testing.T) {
	pool := NewResourcePool(10)
	f := NewMarkerFactory(pool, SphereRadius)

	m1 := f.CreateMarker(dataset.AnomalyPoint{Lat: 0, Lon: 0, Delta: 1.0})
	geom, mat := m1.geom, m1.mat
	f.ReleaseMarker(m1)

	m2 := f.CreateMarker(dataset.AnomalyPoint{Lat: 5, Lon: 5, Delta: -1.0})
	if m2.geom != geom || m2.mat != mat {
		t.Error("expected the recycled geometry and material to be reused")
	}

	// The recycled material must carry the new point's color.
	h, s, l, _ := MapAnomaly(-1.0)
	wantR, wantG, wantB := HSLToRGB(h, s, l)
	r, g, b := m2.Color()
	if r != wantR || g != wantG || b != wantB {
		t.Errorf("recycled material color = (%v, %v, %v), want (%v, %v, %v)", r, g, b, wantR, wantG, wantB)
	}
}

func TestReleaseMarkerIsIdempotentOnNil(t *testing.T) {
	f := NewMarkerFactory(NewResourcePool(3), SphereRadius)
	f.ReleaseMarker(nil)

	m := f.CreateMarker(dataset.AnomalyPoint{Delta: 0.2})
	f.ReleaseMarker(m)
	f.ReleaseMarker(m) // second release must not double-pool

	geoms, mats := f.pool.Sizes()
	if geoms != 1 || mats != 1 {
		t.Errorf("pool sizes after double release = (%d, %d), want (1, 1)", geoms, mats)
	}
}
