package dataset

import "math"

// Parse decodes a flat triple-interleaved sample sequence into anomaly
// points. The sequence is walked in steps of three; a trailing incomplete
// triple is ignored. A triple containing a NaN component (the loader's
// encoding for a missing value) is skipped silently rather than treated as
// an error. Lat/lon ranges are not validated; out-of-range values pass
// through unchanged. Output preserves source order.
func Parse(samples []float64) []AnomalyPoint {
	points := make([]AnomalyPoint, 0, len(samples)/3)
	for i := 0; i+2 < len(samples); i += 3 {
		lat, lon, delta := samples[i], samples[i+1], samples[i+2]
		if math.IsNaN(lat) || math.IsNaN(lon) || math.IsNaN(delta) {
			continue
		}
		points = append(points, AnomalyPoint{Lat: lat, Lon: lon, Delta: delta})
	}
	return points
}

// FilterNonZero returns the points with a non-zero delta, in order. Zero
// anomaly carries no visual signal, so these points are retained in the
// parsed set but never rendered.
func FilterNonZero(points []AnomalyPoint) []AnomalyPoint {
	out := make([]AnomalyPoint, 0, len(points))
	for _, p := range points {
		if p.Delta != 0 {
			out = append(out, p)
		}
	}
	return out
}
