package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements stabgo.MetricsCollector.
type PrometheusCollector struct {
	gates      *prometheus.CounterVec
	transposes prometheus.Counter
	transposeT prometheus.Histogram
	runs       *prometheus.CounterVec
	runLatency prometheus.Histogram
	applied    prometheus.Counter
	snapshots  *prometheus.CounterVec
	snapBytes  prometheus.Counter
	snapT      *prometheus.HistogramVec
}

// NewPrometheusCollector creates the collector and registers it with reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	c := &PrometheusCollector{
		gates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stabgo_gates_total",
			Help: "Instructions applied, by operation and status",
		}, []string{"op", "status"}),
		transposes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stabgo_transposes_total",
			Help: "Physical tableau transposes",
		}),
		transposeT: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stabgo_transpose_operation_seconds",
			Help:    "Latency of operations that triggered a transpose",
			Buckets: prometheus.DefBuckets,
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stabgo_runs_total",
			Help: "Circuit runs, by status",
		}, []string{"status"}),
		runLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stabgo_run_latency_seconds",
			Help:    "Latency of circuit runs",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		applied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stabgo_run_instructions_total",
			Help: "Instructions applied by circuit runs",
		}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stabgo_snapshots_total",
			Help: "Snapshot saves and restores, by status",
		}, []string{"op", "status"}),
		snapBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stabgo_snapshot_bytes_total",
			Help: "Encoded snapshot bytes saved",
		}),
		snapT: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stabgo_snapshot_latency_seconds",
			Help:    "Latency of snapshot saves and restores",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}

	reg.MustRegister(
		c.gates,
		c.transposes,
		c.transposeT,
		c.runs,
		c.runLatency,
		c.applied,
		c.snapshots,
		c.snapBytes,
		c.snapT,
	)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (c *PrometheusCollector) RecordGate(op string, err error) {
	c.gates.WithLabelValues(op, status(err)).Inc()
}

func (c *PrometheusCollector) RecordTranspose(count int, d time.Duration) {
	c.transposes.Add(float64(count))
	c.transposeT.Observe(d.Seconds())
}

func (c *PrometheusCollector) RecordRun(applied int, d time.Duration, err error) {
	c.runs.WithLabelValues(status(err)).Inc()
	c.runLatency.Observe(d.Seconds())
	c.applied.Add(float64(applied))
}

func (c *PrometheusCollector) RecordSnapshot(op string, bytes int, d time.Duration, err error) {
	c.snapshots.WithLabelValues(op, status(err)).Inc()
	c.snapT.WithLabelValues(op).Observe(d.Seconds())
	if err == nil && op == "save" {
		c.snapBytes.Add(float64(bytes))
	}
}
