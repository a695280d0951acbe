// Package dataset loads and decodes the surface-temperature anomaly dataset:
// one sample series per decade, each series a flat sequence of
// [lat, lon, delta] triples.
package dataset

// Decades is the fixed ordered list of decade labels the dataset covers.
// Index into this slice is the join key between UI selection, series lookup
// and playback progress.
var Decades = []string{"1910", "1920", "1930", "1940", "1980", "1990", "2000", "2010"}

// DecadeIndex returns the position of label in Decades, or -1 if unknown.
func DecadeIndex(label string) int {
	for i, d := range Decades {
		if d == label {
			return i
		}
	}
	return -1
}

// AnomalyPoint is a single decoded sample: a geographic position and the
// signed temperature deviation from the historical baseline at that position.
type AnomalyPoint struct {
	Lat   float64
	Lon   float64
	Delta float64
}

// Series holds the raw samples for one decade, laid out as flat interleaved
// triples [lat0, lon0, delta0, lat1, lon1, delta1, ...].
type Series struct {
	Label   string
	Samples []float64
}

// Collection is the full dataset in source order, one entry per decade.
type Collection []Series

// ByLabel returns the series for the given decade label, or nil.
func (c Collection) ByLabel(label string) *Series {
	for i := range c {
		if c[i].Label == label {
			return &c[i]
		}
	}
	return nil
}
