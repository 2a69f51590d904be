package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalyanram262/docker-mcp-server/pkg/config"
)

// statsStream encodes snapshots the way the engine's stats endpoint
// does: a sequence of JSON documents on one stream.
func statsStream(t *testing.T, snaps ...container.StatsResponse) io.ReadCloser {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, s := range snaps {
		require.NoError(t, enc.Encode(s))
	}
	return io.NopCloser(&buf)
}

func sampleStats(read time.Time, memUsage uint64) container.StatsResponse {
	return container.StatsResponse{
		Stats: container.Stats{
			Read: read,
			MemoryStats: container.MemoryStats{
				Usage: memUsage,
				Limit: 1 << 30,
			},
		},
	}
}

func TestGetContainerStats_SingleSnapshot(t *testing.T) {
	now := time.Now()
	eng := &fakeEngine{
		containerStatsFn: func(ctx context.Context, id string, stream bool) (container.StatsResponseReader, error) {
			assert.False(t, stream)
			return container.StatsResponseReader{
				Body: statsStream(t, sampleStats(now, 2048)),
			}, nil
		},
	}
	d := newTestDispatcher(eng)

	res := d.Dispatch(context.Background(), OpGetContainerStats, map[string]any{"container_id": "c1"})

	require.True(t, res.Success)
	stats, ok := res.Data.(StatsResult)
	require.True(t, ok)
	assert.Empty(t, stats.Stream, "stream=false must yield exactly one snapshot")
	require.NotNil(t, stats.Snapshot.MemoryUsageBytes)
	assert.Equal(t, uint64(2048), *stats.Snapshot.MemoryUsageBytes)
}

func TestGetContainerStats_StreamBoundedBySampleCap(t *testing.T) {
	now := time.Now()
	var snaps []container.StatsResponse
	for i := 0; i < 20; i++ {
		snaps = append(snaps, sampleStats(now.Add(time.Duration(i)*time.Second), uint64(1000+i)))
	}
	eng := &fakeEngine{
		containerStatsFn: func(ctx context.Context, id string, stream bool) (container.StatsResponseReader, error) {
			assert.True(t, stream)
			return container.StatsResponseReader{Body: statsStream(t, snaps...)}, nil
		},
	}
	cfg := config.Default()
	cfg.StatsMaxSamples = 5
	d := NewDispatcher(NewExecutor(eng, nil, cfg, zerolog.Nop()), zerolog.Nop())

	res := d.Dispatch(context.Background(), OpGetContainerStats,
		map[string]any{"container_id": "c1", "stream": true})

	require.True(t, res.Success)
	stats := res.Data.(StatsResult)
	assert.Len(t, stats.Stream, 4, "initial snapshot plus stream must honor the cap")

	// Snapshots keep strict temporal order.
	prev := stats.Snapshot.ReadAt
	for _, s := range stats.Stream {
		assert.Greater(t, s.ReadAt, prev)
		prev = s.ReadAt
	}
}

func TestGetContainerStats_StreamEndsOnContainerStop(t *testing.T) {
	now := time.Now()
	eng := &fakeEngine{
		containerStatsFn: func(ctx context.Context, id string, stream bool) (container.StatsResponseReader, error) {
			// Two live samples, then the stream ends.
			return container.StatsResponseReader{
				Body: statsStream(t, sampleStats(now, 1), sampleStats(now.Add(time.Second), 2)),
			}, nil
		},
	}
	d := newTestDispatcher(eng)

	res := d.Dispatch(context.Background(), OpGetContainerStats,
		map[string]any{"container_id": "c1", "stream": true})

	require.True(t, res.Success)
	stats := res.Data.(StatsResult)
	assert.Len(t, stats.Stream, 1)
}

func TestGetContainerStats_PartialSequenceOnReadError(t *testing.T) {
	now := time.Now()
	eng := &fakeEngine{
		containerStatsFn: func(ctx context.Context, id string, stream bool) (container.StatsResponseReader, error) {
			var buf bytes.Buffer
			enc := json.NewEncoder(&buf)
			require.NoError(t, enc.Encode(sampleStats(now, 1)))
			require.NoError(t, enc.Encode(sampleStats(now.Add(time.Second), 2)))
			buf.WriteString("{definitely not json")
			return container.StatsResponseReader{Body: io.NopCloser(&buf)}, nil
		},
	}
	d := newTestDispatcher(eng)

	res := d.Dispatch(context.Background(), OpGetContainerStats,
		map[string]any{"container_id": "c1", "stream": true})

	require.True(t, res.Success, "a mid-stream read error must not discard collected snapshots")
	stats := res.Data.(StatsResult)
	assert.Len(t, stats.Stream, 1)
}
