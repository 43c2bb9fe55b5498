package stabgo

import (
	"sync"
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    gates *prometheus.CounterVec
//	}
//
//	func (p *PrometheusCollector) RecordGate(op string, err error) {
//	    p.gates.WithLabelValues(op).Inc()
//	}
type MetricsCollector interface {
	// RecordGate is called after each applied instruction.
	RecordGate(op string, err error)

	// RecordTranspose is called with the number of physical transposes an
	// operation triggered, when that number is positive.
	RecordTranspose(count int, duration time.Duration)

	// RecordRun is called after each circuit run.
	// applied is the number of instructions that took effect.
	RecordRun(applied int, duration time.Duration, err error)

	// RecordSnapshot is called after each snapshot save or restore.
	// op is "save" or "restore"; bytes is the encoded size.
	RecordSnapshot(op string, bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGate(string, error)                         {}
func (NoopMetricsCollector) RecordTranspose(int, time.Duration)               {}
func (NoopMetricsCollector) RecordRun(int, time.Duration, error)              {}
func (NoopMetricsCollector) RecordSnapshot(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GateCount      atomic.Int64
	GateErrors     atomic.Int64
	TransposeCount atomic.Int64
	RunCount       atomic.Int64
	RunErrors      atomic.Int64
	RunTotalNanos  atomic.Int64
	SnapshotCount  atomic.Int64
	SnapshotErrors atomic.Int64
	SnapshotBytes  atomic.Int64
	RestoreCount   atomic.Int64
	RestoreErrors  atomic.Int64

	mu    sync.Mutex
	perOp map[string]int64
}

// RecordGate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGate(op string, err error) {
	b.GateCount.Add(1)
	if err != nil {
		b.GateErrors.Add(1)
		return
	}
	b.mu.Lock()
	if b.perOp == nil {
		b.perOp = make(map[string]int64)
	}
	b.perOp[op]++
	b.mu.Unlock()
}

// RecordTranspose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordTranspose(count int, _ time.Duration) {
	b.TransposeCount.Add(int64(count))
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(_ int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(op string, bytes int, _ time.Duration, err error) {
	switch op {
	case "restore":
		b.RestoreCount.Add(1)
		if err != nil {
			b.RestoreErrors.Add(1)
		}
	default:
		b.SnapshotCount.Add(1)
		if err != nil {
			b.SnapshotErrors.Add(1)
			return
		}
		b.SnapshotBytes.Add(int64(bytes))
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	b.mu.Lock()
	perOp := make(map[string]int64, len(b.perOp))
	for k, v := range b.perOp {
		perOp[k] = v
	}
	b.mu.Unlock()

	return BasicMetricsStats{
		GateCount:      b.GateCount.Load(),
		GateErrors:     b.GateErrors.Load(),
		GatesByOp:      perOp,
		TransposeCount: b.TransposeCount.Load(),
		RunCount:       b.RunCount.Load(),
		RunErrors:      b.RunErrors.Load(),
		RunAvgNanos:    b.getAvgRunNanos(),
		SnapshotCount:  b.SnapshotCount.Load(),
		SnapshotErrors: b.SnapshotErrors.Load(),
		SnapshotBytes:  b.SnapshotBytes.Load(),
		RestoreCount:   b.RestoreCount.Load(),
		RestoreErrors:  b.RestoreErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRunNanos() int64 {
	count := b.RunCount.Load()
	if count == 0 {
		return 0
	}
	return b.RunTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GateCount      int64
	GateErrors     int64
	GatesByOp      map[string]int64
	TransposeCount int64
	RunCount       int64
	RunErrors      int64
	RunAvgNanos    int64
	SnapshotCount  int64
	SnapshotErrors int64
	SnapshotBytes  int64
	RestoreCount   int64
	RestoreErrors  int64
}
