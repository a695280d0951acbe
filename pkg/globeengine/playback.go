package globeengine

import (
	"log"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
)

// PlayDuration is how long one full sweep through the decade list takes.
const PlayDuration = 8 * time.Second

// Player drives the auto-play animation: an eased progress value from 0 to 1
// over PlayDuration, activating each decade as the progress crosses into its
// slot. Play arms the run; Step advances it and is called once per engine
// tick, so activations always land on the update goroutine. Progress never
// moves backward; under a slow tick rate it may skip decades forward, in
// which case only the newest target decade is activated.
type Player struct {
	clock    clockwork.Clock
	duration time.Duration
	decades  []string
	activate func(label string)

	running   bool
	startedAt time.Time
	lastIndex int
}

// NewPlayer creates a player over the given decade list. A nil clock uses
// real time; tests inject a fake for a deterministic timeline.
func NewPlayer(clock clockwork.Clock, decades []string, activate func(string)) *Player {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Player{
		clock:    clock,
		duration: PlayDuration,
		decades:  decades,
		activate: activate,
	}
}

// Play starts a run from the first decade. A Play while a run is already in
// progress is ignored; restarting mid-run would fight the active timeline.
func (p *Player) Play() {
	if p.running {
		log.Println("Playback already running, ignoring play request")
		return
	}
	if len(p.decades) == 0 {
		return
	}
	p.running = true
	p.startedAt = p.clock.Now()
	p.lastIndex = 0
	// The run opens on the first decade; Step adds one activation per
	// index transition after it.
	p.activate(p.decades[0])
}

// Running reports whether a run is in progress.
func (p *Player) Running() bool { return p.running }

// SetDuration overrides the sweep duration. Ignored mid-run.
func (p *Player) SetDuration(d time.Duration) {
	if d > 0 && !p.running {
		p.duration = d
	}
}

// Step advances the run to the current time, activating at most one decade
// per call. No-op when idle.
func (p *Player) Step() {
	if !p.running {
		return
	}
	t := p.clock.Since(p.startedAt).Seconds() / p.duration.Seconds()
	if t >= 1 {
		t = 1
		p.running = false
	}
	progress := easeInOutCubic(t)

	target := int(math.Floor(progress * float64(len(p.decades))))
	if target > len(p.decades)-1 {
		target = len(p.decades) - 1
	}
	if target > p.lastIndex {
		p.lastIndex = target
		p.activate(p.decades[target])
	}
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
