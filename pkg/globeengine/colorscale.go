package globeengine

import "math"

// MapAnomaly converts a signed anomaly into an HSL color and a marker height
// scale. The hue constants are part of the dataset's visual identity and are
// load-bearing: warming anomalies sweep from yellow-green toward red as the
// magnitude grows, cooling anomalies from cyan toward blue-violet. A zero
// anomaly maps to pure white; in practice zero-delta points are filtered out
// before rendering, but the mapping still defines the case.
func MapAnomaly(delta float64) (h, s, l, heightScale float64) {
	switch {
	case delta > 0:
		h, s, l = 0.2139-(delta/1.619)*0.5, 1.0, 0.5
	case delta < 0:
		h, s, l = 0.5111-delta/1.619, 1.0, 0.6
	default:
		h, s, l = 0, 0, 1.0
	}
	heightScale = math.Abs(delta) * 150
	if heightScale < 0.1 {
		// A zero-height marker degenerates into an invisible transform.
		heightScale = 0.1
	}
	return h, s, l, heightScale
}

// HSLToRGB converts an HSL triple (each component in [0,1]) to RGB in [0,1].
// Hue wraps, so the open-ended hue ramps from MapAnomaly stay valid for
// extreme anomalies.
func HSLToRGB(h, s, l float64) (r, g, b float64) {
	h = h - math.Floor(h)
	if s == 0 {
		return l, l, l
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return hueToChannel(p, q, h+1.0/3.0), hueToChannel(p, q, h), hueToChannel(p, q, h-1.0/3.0)
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
