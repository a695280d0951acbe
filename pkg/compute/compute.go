// Package compute offloads dataset parsing and statistics onto a dedicated
// worker goroutine so large decades never stall the render loop. Requests
// and responses are correlated by a unique request ID; each Manager owns one
// worker and fully serializes the work queued to it.
package compute

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/mvarley/anomaly-globe/pkg/dataset"
)

// Request types understood by the worker.
const (
	TypeProcessClimateData  = "PROCESS_CLIMATE_DATA"
	TypeCalculateStatistics = "CALCULATE_STATISTICS"
)

// Response types emitted by the worker.
const (
	TypeClimateDataProcessed = "CLIMATE_DATA_PROCESSED"
	TypeStatisticsCalculated = "STATISTICS_CALCULATED"
	TypeError                = "ERROR"
)

// ErrManagerClosed is the uniform rejection handed to every request still
// pending when the worker is torn down.
var ErrManagerClosed = errors.New("compute worker terminated")

// Stats summarizes one decade's anomaly points in a single pass.
type Stats struct {
	Count        int     `json:"count"`
	MinDelta     float64 `json:"minDelta"`
	MaxDelta     float64 `json:"maxDelta"`
	AvgDelta     float64 `json:"avgDelta"`
	NonZeroCount int     `json:"nonZeroCount"`
}

// Request is one message to the worker.
type Request struct {
	Type      string
	Data      []float64
	Points    []dataset.AnomalyPoint
	Year      string
	RequestID string
}

// Response is the worker's answer to one Request.
type Response struct {
	Type      string
	RequestID string
	Points    []dataset.AnomalyPoint
	Stats     Stats
	Error     string
}

// Manager correlates requests with worker responses. Callers may be
// concurrent; the pending tables are the only shared state and sit behind a
// mutex. The worker itself processes one message at a time.
type Manager struct {
	requests chan Request
	done     chan struct{}

	mu             sync.Mutex
	pendingProcess map[string]chan Response
	pendingStats   map[string]chan Response
	closed         bool
}

// NewManager starts a manager and its worker goroutine. Call Close to stop
// the worker and reject anything still in flight.
func NewManager() *Manager {
	m := &Manager{
		requests:       make(chan Request),
		done:           make(chan struct{}),
		pendingProcess: make(map[string]chan Response),
		pendingStats:   make(map[string]chan Response),
	}
	go m.worker()
	return m
}

// Process parses a decade's raw samples off the main goroutine and returns
// the points together with their statistics.
func (m *Manager) Process(ctx context.Context, samples []float64, year string) ([]dataset.AnomalyPoint, Stats, error) {
	resp, err := m.roundTrip(ctx, Request{
		Type: TypeProcessClimateData,
		Data: samples,
		Year: year,
	}, m.pendingProcess)
	if err != nil {
		return nil, Stats{}, err
	}
	return resp.Points, resp.Stats, nil
}

// Stats computes statistics for already-parsed points on the worker.
func (m *Manager) Stats(ctx context.Context, points []dataset.AnomalyPoint) (Stats, error) {
	resp, err := m.roundTrip(ctx, Request{
		Type:   TypeCalculateStatistics,
		Points: points,
	}, m.pendingStats)
	if err != nil {
		return Stats{}, err
	}
	return resp.Stats, nil
}

// roundTrip registers the request in the given pending table, hands it to
// the worker and waits for the correlated response. The table entry is
// removed on response, caller abandonment, or manager shutdown, whichever
// comes first.
func (m *Manager) roundTrip(ctx context.Context, req Request, pending map[string]chan Response) (Response, error) {
	req.RequestID = uuid.NewString()
	ch := make(chan Response, 1)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return Response{}, ErrManagerClosed
	}
	pending[req.RequestID] = ch
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		m.forget(req.RequestID, pending)
		return Response{}, err
	}

	select {
	case m.requests <- req:
	case <-m.done:
		m.forget(req.RequestID, pending)
		return Response{}, ErrManagerClosed
	case <-ctx.Done():
		m.forget(req.RequestID, pending)
		return Response{}, ctx.Err()
	}

	select {
	case resp := <-ch:
		if resp.Type == TypeError {
			return Response{}, fmt.Errorf("compute: %s", resp.Error)
		}
		return resp, nil
	case <-m.done:
		m.forget(req.RequestID, pending)
		return Response{}, ErrManagerClosed
	case <-ctx.Done():
		m.forget(req.RequestID, pending)
		return Response{}, ctx.Err()
	}
}

func (m *Manager) forget(id string, pending map[string]chan Response) {
	m.mu.Lock()
	delete(pending, id)
	m.mu.Unlock()
}

// deliver routes a worker response to its pending caller and clears the
// correlation entry. Responses without a matching entry are dropped; the
// caller already gave up.
func (m *Manager) deliver(resp Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, pending := range []map[string]chan Response{m.pendingProcess, m.pendingStats} {
		if ch, ok := pending[resp.RequestID]; ok {
			delete(pending, resp.RequestID)
			ch <- resp
			return
		}
	}
}

// Close stops the worker. Every request still pending in either table is
// rejected uniformly and both tables are cleared.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.done)
	for _, pending := range []map[string]chan Response{m.pendingProcess, m.pendingStats} {
		for id, ch := range pending {
			delete(pending, id)
			ch <- Response{Type: TypeError, RequestID: id, Error: ErrManagerClosed.Error()}
		}
	}
	m.mu.Unlock()
}

func (m *Manager) worker() {
	for {
		select {
		case <-m.done:
			return
		case req := <-m.requests:
			m.deliver(handle(req))
		}
	}
}

// handle executes one request. Kept free of Manager state so the dispatch
// logic is testable in isolation.
func handle(req Request) Response {
	switch req.Type {
	case TypeProcessClimateData:
		points := dataset.Parse(req.Data)
		return Response{
			Type:      TypeClimateDataProcessed,
			RequestID: req.RequestID,
			Points:    points,
			Stats:     Summarize(points),
		}
	case TypeCalculateStatistics:
		return Response{
			Type:      TypeStatisticsCalculated,
			RequestID: req.RequestID,
			Stats:     Summarize(req.Points),
		}
	default:
		return Response{
			Type:      TypeError,
			RequestID: req.RequestID,
			Error:     fmt.Sprintf("Unknown message type: %s", req.Type),
		}
	}
}

// Summarize accumulates statistics over the points in one pass. Empty input
// yields the zero Stats.
func Summarize(points []dataset.AnomalyPoint) Stats {
	if len(points) == 0 {
		return Stats{}
	}
	st := Stats{
		Count:    len(points),
		MinDelta: points[0].Delta,
		MaxDelta: points[0].Delta,
	}
	sum := 0.0
	for _, p := range points {
		if p.Delta < st.MinDelta {
			st.MinDelta = p.Delta
		}
		if p.Delta > st.MaxDelta {
			st.MaxDelta = p.Delta
		}
		if p.Delta != 0 {
			st.NonZeroCount++
		}
		sum += p.Delta
	}
	st.AvgDelta = sum / float64(st.Count)
	return st
}
