// Package globeengine renders decade-by-decade temperature anomalies as
// height-scaled spikes on a rotating 3D globe.
package globeengine

import (
	"bytes"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jonboulle/clockwork"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/mvarley/anomaly-globe/pkg/compute"
	"github.com/mvarley/anomaly-globe/pkg/dataset"
)

// markerHeightUnit converts a marker height scale into world units. With the
// usual anomaly range (|delta| up to ~1.6) spikes top out around half the
// sphere radius.
const markerHeightUnit = 0.02

// idleSpin is the globe's resting rotation speed, radians per second.
const idleSpin = 0.12

var decadeKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

// Engine is the ebiten game: it owns the camera, the view state with the
// live marker batch, and the playback driver. All mutation happens on the
// update goroutine except SetStats, which background stat computation feeds.
type Engine struct {
	Width, Height int

	view   *ViewState
	player *Player
	pool   *ResourcePool
	cam    *Camera

	backdrop *Backdrop

	clock    clockwork.Clock
	lastTick time.Time

	fontSource *text.GoTextFaceSource
	monoSource *text.GoTextFaceSource

	stats   map[string]compute.Stats
	statsMu sync.Mutex
}

// NewEngine assembles an engine over the given dataset. poolCap bounds the
// marker resource pool; zero means the default.
func NewEngine(width, height, poolCap int, data dataset.Collection) *Engine {
	s, _ := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	m, _ := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))

	e := &Engine{
		Width:      width,
		Height:     height,
		pool:       NewResourcePool(poolCap),
		cam:        NewCamera(width, height, SphereRadius),
		clock:      clockwork.NewRealClock(),
		fontSource: s,
		monoSource: m,
		stats:      make(map[string]compute.Stats),
	}
	e.view = NewViewState(data, NewMarkerFactory(e.pool, SphereRadius))
	e.player = NewPlayer(e.clock, dataset.Decades, e.view.ActivateDecade)
	return e
}

// SetClock swaps the engine's time source. Call before RunGame; tests use a
// fake clock to drive playback deterministically.
func (e *Engine) SetClock(c clockwork.Clock) {
	e.clock = c
	e.player = NewPlayer(c, dataset.Decades, e.view.ActivateDecade)
}

// SetBackdrop installs the continent outlines. Optional; without it the
// globe renders as a bare disk.
func (e *Engine) SetBackdrop(b *Backdrop) { e.backdrop = b }

// ActivateDecade switches the view to the given decade. Safe to call from
// selection handlers running on the update goroutine.
func (e *Engine) ActivateDecade(label string) { e.view.ActivateDecade(label) }

// Play starts the auto-play sweep through all decades.
func (e *Engine) Play() { e.player.Play() }

// SetPlayDuration overrides how long the auto-play sweep takes.
func (e *Engine) SetPlayDuration(d time.Duration) { e.player.SetDuration(d) }

// View exposes the view state, mainly for tests and startup wiring.
func (e *Engine) View() *ViewState { return e.view }

// SetStats records precomputed statistics for a decade, shown in the HUD.
func (e *Engine) SetStats(label string, st compute.Stats) {
	e.statsMu.Lock()
	e.stats[label] = st
	e.statsMu.Unlock()
}

func (e *Engine) statsFor(label string) (compute.Stats, bool) {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	st, ok := e.stats[label]
	return st, ok
}

// Update advances the globe rotation, handles input and steps playback.
func (e *Engine) Update() error {
	now := e.clock.Now()
	var dt float64
	if !e.lastTick.IsZero() {
		dt = now.Sub(e.lastTick).Seconds()
	}
	e.lastTick = now

	for i, k := range decadeKeys {
		if inpututil.IsKeyJustPressed(k) {
			e.view.ActivateDecade(dataset.Decades[i])
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		e.player.Play()
	}

	manual := false
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		e.cam.Yaw -= 1.5 * dt
		manual = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		e.cam.Yaw += 1.5 * dt
		manual = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		e.cam.Pitch += 1.0 * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		e.cam.Pitch -= 1.0 * dt
	}
	if e.cam.Pitch > 1.2 {
		e.cam.Pitch = 1.2
	}
	if e.cam.Pitch < -1.2 {
		e.cam.Pitch = -1.2
	}
	if !manual {
		e.cam.Yaw += idleSpin * dt
	}

	e.player.Step()
	return nil
}

// Draw renders ocean, globe disk, continent outlines, the marker batch and
// the HUD.
func (e *Engine) Draw(screen *ebiten.Image) {
	screen.Fill(colorOcean)

	cx := float32(e.Width) / 2
	cy := float32(e.Height) / 2
	vector.DrawFilledCircle(screen, cx, cy, float32(e.cam.ScreenRadius(SphereRadius)), colorDisk, true)

	if e.backdrop != nil {
		e.backdrop.Draw(screen, e.cam)
	}

	for _, m := range e.view.Markers() {
		bx, by, depth := e.cam.Project(m.X, m.Y, m.Z)
		if depth < 0 {
			continue
		}
		// Scale the surface point outward along its radial axis.
		k := 1 + m.HeightScale*markerHeightUnit/SphereRadius
		tx, ty, _ := e.cam.Project(m.X*k, m.Y*k, m.Z*k)

		r, g, b := m.Color()
		c := color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
		vector.StrokeLine(screen, float32(bx), float32(by), float32(tx), float32(ty), 2, c, false)
		vector.DrawFilledCircle(screen, float32(tx), float32(ty), 1.5, c, false)
	}

	e.drawHUD(screen)
}

// ResizeViewport refits the rendering surface and camera to a new size.
func (e *Engine) ResizeViewport(width, height int) {
	e.Width, e.Height = width, height
	e.cam.Resize(width, height, SphereRadius)
}

// Layout tracks the outside size so the globe renders at native resolution.
func (e *Engine) Layout(w, h int) (int, int) {
	if w > 0 && h > 0 && (w != e.Width || h != e.Height) {
		e.ResizeViewport(w, h)
	}
	return e.Width, e.Height
}
