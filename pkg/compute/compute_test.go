package compute

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvarley/anomaly-globe/pkg/dataset"
)

func TestProcessRoundTrip(t *testing.T) {
	m := NewManager()
	defer m.Close()

	samples := []float64{10, 20, 0.5, -5, 15, -0.3, 0, 0, 0}
	points, stats, err := m.Process(context.Background(), samples, "1910")
	require.NoError(t, err)

	assert.Equal(t, dataset.Parse(samples), points)
	assert.Equal(t, 3, stats.Count)
	assert.Equal(t, 2, stats.NonZeroCount)
	assert.InDelta(t, -0.3, stats.MinDelta, 1e-9)
	assert.InDelta(t, 0.5, stats.MaxDelta, 1e-9)
	assert.InDelta(t, 0.2/3, stats.AvgDelta, 1e-9)
}

func TestStatsRoundTrip(t *testing.T) {
	m := NewManager()
	defer m.Close()

	points := []dataset.AnomalyPoint{
		{Delta: 1.0}, {Delta: -2.0}, {Delta: 0}, {Delta: 0.5},
	}
	stats, err := m.Stats(context.Background(), points)
	require.NoError(t, err)
	assert.Equal(t, Stats{
		Count:        4,
		MinDelta:     -2.0,
		MaxDelta:     1.0,
		AvgDelta:     -0.125,
		NonZeroCount: 3,
	}, stats)
}

func TestSummarizeEmptyInput(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil))

	m := NewManager()
	defer m.Close()
	stats, err := m.Stats(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)
}

func TestHandleUnknownType(t *testing.T) {
	resp := handle(Request{Type: "REPROCESS_EVERYTHING", RequestID: "abc"})
	assert.Equal(t, TypeError, resp.Type)
	assert.Equal(t, "abc", resp.RequestID)
	assert.Equal(t, "Unknown message type: REPROCESS_EVERYTHING", resp.Error)
}

func TestCloseRejectsAllPending(t *testing.T) {
	m := NewManager()

	// Seed both pending tables directly; in production these entries exist
	// while the worker is busy.
	chans := make([]chan Response, 0, 6)
	m.mu.Lock()
	for i := 0; i < 3; i++ {
		ch := make(chan Response, 1)
		m.pendingProcess[string(rune('a'+i))] = ch
		chans = append(chans, ch)
	}
	for i := 0; i < 3; i++ {
		ch := make(chan Response, 1)
		m.pendingStats[string(rune('x'+i))] = ch
		chans = append(chans, ch)
	}
	m.mu.Unlock()

	m.Close()

	for i, ch := range chans {
		select {
		case resp := <-ch:
			assert.Equal(t, TypeError, resp.Type, "pending request %d", i)
			assert.Equal(t, ErrManagerClosed.Error(), resp.Error, "pending request %d", i)
		default:
			t.Errorf("pending request %d was not rejected", i)
		}
	}

	m.mu.Lock()
	assert.Empty(t, m.pendingProcess)
	assert.Empty(t, m.pendingStats)
	m.mu.Unlock()
}

func TestRequestsAfterCloseFail(t *testing.T) {
	m := NewManager()
	m.Close()

	_, _, err := m.Process(context.Background(), []float64{1, 2, 3}, "1910")
	assert.ErrorIs(t, err, ErrManagerClosed)

	_, err = m.Stats(context.Background(), nil)
	assert.ErrorIs(t, err, ErrManagerClosed)
}

func TestProcessHonorsContext(t *testing.T) {
	m := NewManager()
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := m.Process(ctx, []float64{1, 2, 3}, "1910")
	assert.ErrorIs(t, err, context.Canceled)

	m.mu.Lock()
	assert.Empty(t, m.pendingProcess, "abandoned request left a correlation entry")
	m.mu.Unlock()
}
