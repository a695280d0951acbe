package globeengine

import (
	"log"

	"github.com/mvarley/anomaly-globe/pkg/dataset"
)

// ViewState owns the marker batch for the active decade and is the only
// mutation path for it. Activation runs synchronously on the engine's update
// goroutine, so there is at most one live batch and teardown of the old one
// always completes before the new one is built.
type ViewState struct {
	data    dataset.Collection
	factory *MarkerFactory

	activeLabel string
	activeIndex int
	batch       []*Marker
}

// NewViewState creates a view over the given dataset. No decade is active
// until the first ActivateDecade call.
func NewViewState(data dataset.Collection, factory *MarkerFactory) *ViewState {
	return &ViewState{data: data, factory: factory, activeIndex: -1}
}

// ActivateDecade tears down the current marker batch and builds the one for
// the given decade. Unknown labels and decades with no sample data are
// logged no-ops that leave the current batch untouched.
func (v *ViewState) ActivateDecade(label string) {
	idx := dataset.DecadeIndex(label)
	if idx < 0 {
		log.Printf("Ignoring unknown decade %q", label)
		return
	}
	var series *dataset.Series
	if idx < len(v.data) && v.data[idx].Label == label {
		series = &v.data[idx]
	} else {
		// Dataset order can drift from the decade list; fall back to label lookup.
		series = v.data.ByLabel(label)
	}
	if series == nil || len(series.Samples) == 0 {
		log.Printf("No sample data for decade %q", label)
		return
	}

	// Full teardown before any of the new batch exists.
	for _, m := range v.batch {
		v.factory.ReleaseMarker(m)
	}
	v.batch = v.batch[:0]

	points := dataset.FilterNonZero(dataset.Parse(series.Samples))
	for _, p := range points {
		v.batch = append(v.batch, v.factory.CreateMarker(p))
	}
	v.activeLabel = label
	v.activeIndex = idx
}

// Markers returns the live batch. Callers must not retain the slice across
// activations.
func (v *ViewState) Markers() []*Marker { return v.batch }

// ActiveDecade returns the label of the active decade, or "" before the
// first activation.
func (v *ViewState) ActiveDecade() string { return v.activeLabel }

// ActiveIndex returns the active decade's position in dataset.Decades, or -1.
func (v *ViewState) ActiveIndex() int { return v.activeIndex }
