// File: cmd/ringbench/run.go
// Author: momentics <momentics@gmail.com>

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/momentics/hioload-ringbuf/alloc"
	"github.com/momentics/hioload-ringbuf/control"
	"github.com/momentics/hioload-ringbuf/internal/concurrency"
	"github.com/momentics/hioload-ringbuf/pool"
	"github.com/momentics/hioload-ringbuf/ring"
)

// event is the fixed-size record producers enqueue.
type event struct {
	Timestamp int64
	Thread    uint32
	Seq       uint32
}

func newRunCmd(rf *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fill a pool from concurrent producers and drain it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := control.Decode(rf.v)
			if err != nil {
				return err
			}
			logger, err := control.NewLogger(cfg.Log.Level)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runBench(ctx, cfg, logger)
		},
	}
	f := cmd.Flags()
	f.Int("threads", 0, "producer threads, 0 for one per CPU")
	f.Uint32("initial-capacity", 0, "bytes pre-allocated per slot, 0 for lazy")
	f.String("allocator", alloc.KindHeap, "allocator: heap or page")
	f.Int("records", 100000, "records per producer")
	f.Bool("reserve", false, "enqueue every other record through a reservation")
	f.Bool("pin", false, "pin producers to CPUs")
	f.Bool("metrics", false, "serve Prometheus metrics while running")
	f.String("metrics-addr", ":9090", "metrics listen address")
	for key, flag := range map[string]string{
		"pool.threads":         "threads",
		"pool.initialCapacity": "initial-capacity",
		"pool.allocator":       "allocator",
		"bench.records":        "records",
		"bench.reserve":        "reserve",
		"bench.pin":            "pin",
		"metrics.enabled":      "metrics",
		"metrics.addr":         "metrics-addr",
	} {
		_ = rf.v.BindPFlag(key, f.Lookup(flag))
	}
	return cmd
}

func runBench(ctx context.Context, cfg *control.Config, logger *zap.Logger) error {
	threads := cfg.Pool.Threads
	if threads == 0 {
		threads = concurrency.NumCPUs()
	}

	base, err := alloc.New(cfg.Pool.Allocator)
	if err != nil {
		return err
	}
	counting := alloc.NewCounting(base)

	probes := control.NewDebugProbes()
	control.RegisterPlatformProbes(probes)

	opts := []pool.Option{
		pool.WithName("bench"),
		pool.WithLogger(logger),
		pool.WithInitialCapacity(cfg.Pool.InitialCapacity),
		pool.WithDebugProbes(probes),
	}

	if cfg.Metrics.Enabled {
		mr, err := control.NewMetricsRegistry(cfg.Metrics.Namespace)
		if err != nil {
			return err
		}
		err = mr.RegisterGaugeFunc(cfg.Metrics.Namespace, "allocator_live_bytes",
			"Bytes currently held by ring buffers", func() float64 {
				return float64(counting.Stats().LiveBytes)
			})
		if err != nil {
			return err
		}
		opts = append(opts, pool.WithMetrics(mr.Ring))

		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mr.Handler(), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(sctx)
		}()
		logger.Info("metrics endpoint listening", zap.String("addr", cfg.Metrics.Addr))
	}

	p, err := pool.NewRingBuffers(counting, uint32(threads), opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := p.Dispose(); err != nil {
			logger.Warn("pool dispose reported errors", zap.Error(err))
		}
	}()

	start := time.Now()
	err = concurrency.RunPerThread(ctx, threads, concurrency.RunOptions{Pin: cfg.Bench.Pin, Logger: logger},
		func(ctx context.Context, index int) error {
			return produce(ctx, p.GetBuffer(index), uint32(index), cfg.Bench.Records, cfg.Bench.Reserve)
		})
	if err != nil {
		return err
	}
	produced := time.Since(start)
	outstanding := p.Len()

	records, mismatches := drain(p, threads)
	total := time.Since(start)

	st := counting.Stats()
	logger.Info("run complete",
		zap.Int("threads", threads),
		zap.String("records", humanize.Comma(int64(records))),
		zap.String("bytes", humanize.IBytes(outstanding)),
		zap.Duration("produce", produced),
		zap.Duration("total", total),
		zap.String("rate", humanize.SIWithDigits(float64(records)/total.Seconds(), 2, "rec/s")),
		zap.Uint64("allocs", st.Allocs),
		zap.String("allocated", humanize.IBytes(st.TotalBytes)),
		zap.Int("mismatches", mismatches))
	for name, v := range probes.DumpState() {
		logger.Debug("probe", zap.String("name", name), zap.Any("value", v))
	}
	if mismatches > 0 {
		return fmt.Errorf("%d records dequeued out of order", mismatches)
	}
	return nil
}

func produce(ctx context.Context, b *ring.Buffer, thread uint32, records int, reserve bool) error {
	for seq := 0; seq < records; seq++ {
		if seq%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if reserve && seq%2 == 0 && seq+1 < records {
			// claim seq, write seq+1 behind it, then fill seq
			res, err := ring.ReserveEnqueue[event](b)
			if err != nil {
				return err
			}
			if err := ring.Enqueue(b, newEvent(thread, seq+1)); err != nil {
				return err
			}
			res.Set(newEvent(thread, seq))
			seq++
			continue
		}
		if err := ring.Enqueue(b, newEvent(thread, seq)); err != nil {
			return err
		}
	}
	return nil
}

func newEvent(thread uint32, seq int) event {
	return event{Timestamp: time.Now().UnixNano(), Thread: thread, Seq: uint32(seq)}
}

// drain consumes the pool one record per visit and counts records that break
// per-thread ordering.
func drain(p *pool.RingBuffers, threads int) (records, mismatches int) {
	next := make([]uint32, threads)
	pool.NewDrainer(p).Drain(func(index int, b *ring.Buffer) bool {
		ev := ring.Dequeue[event](b)
		records++
		if ev.Thread != uint32(index) || ev.Seq != next[index] {
			mismatches++
		}
		next[index] = ev.Seq + 1
		return true
	})
	return records, mismatches
}
