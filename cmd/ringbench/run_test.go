// File: cmd/ringbench/run_test.go
// Author: momentics <momentics@gmail.com>

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/momentics/hioload-ringbuf/control"
	"github.com/momentics/hioload-ringbuf/pool"
	"github.com/momentics/hioload-ringbuf/ring"
)

func TestRunBenchWithReservations(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Pool.Threads = 2
	cfg.Bench.Records = 1000
	cfg.Bench.Reserve = true
	require.NoError(t, cfg.Validate())
	assert.NoError(t, runBench(context.Background(), &cfg, zaptest.NewLogger(t)))
}

func TestRunBenchWithMetrics(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Pool.Threads = 3
	cfg.Pool.InitialCapacity = 64
	cfg.Bench.Records = 500
	cfg.Metrics.Enabled = true
	cfg.Metrics.Addr = "127.0.0.1:0"
	assert.NoError(t, runBench(context.Background(), &cfg, zaptest.NewLogger(t)))
}

func TestRunBenchCancelled(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.Pool.Threads = 2
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, runBench(ctx, &cfg, zaptest.NewLogger(t)), context.Canceled)
}

func TestProduceFillsReservationsInOrder(t *testing.T) {
	b, err := ring.New(nil, ring.WithCapacity(8))
	require.NoError(t, err)
	defer b.Dispose()

	// odd count leaves the last record without a partner
	require.NoError(t, produce(context.Background(), b, 4, 7, true))
	assert.Greater(t, b.Stats().Grows, uint64(1))
	for seq := uint32(0); seq < 7; seq++ {
		ev := ring.Dequeue[event](b)
		assert.Equal(t, uint32(4), ev.Thread)
		assert.Equal(t, seq, ev.Seq)
		assert.NotZero(t, ev.Timestamp)
	}
	assert.True(t, b.IsEmpty())
}

func TestDrainCountsMismatches(t *testing.T) {
	p, err := pool.NewRingBuffers(nil, 2)
	require.NoError(t, err)
	defer p.Dispose()

	require.NoError(t, ring.Enqueue(p.GetBuffer(0), event{Thread: 0, Seq: 0}))
	require.NoError(t, ring.Enqueue(p.GetBuffer(0), event{Thread: 0, Seq: 2}))
	require.NoError(t, ring.Enqueue(p.GetBuffer(1), event{Thread: 0, Seq: 0}))

	records, mismatches := drain(p, 2)
	assert.Equal(t, 3, records)
	assert.Equal(t, 2, mismatches)
	assert.True(t, p.IsEmpty())
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "ringbench "+Version+"\n", out.String())
}

func TestRunCommandFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"run", "--threads", "2", "--records", "200", "--reserve", "--log-level", "error"})
	assert.NoError(t, cmd.Execute())

	cmd = newRootCmd()
	cmd.SetArgs([]string{"run", "--allocator", "slab"})
	assert.Error(t, cmd.Execute())
}
