package stabgo

import (
	"github.com/hupe1980/stabgo/blobstore"
	"github.com/hupe1980/stabgo/chunk"
	"github.com/hupe1980/stabgo/resource"
	"github.com/hupe1980/stabgo/snapshot"
	"github.com/hupe1980/stabgo/tableau"
)

type options struct {
	metricsCollector  MetricsCollector
	logger            *Logger
	geometry          chunk.Geometry
	budget            *resource.Controller
	store             blobstore.BlobStore
	compression       snapshot.Compression
	autoLayout        bool
	parallelTranspose bool
}

// Option configures a Simulator.
type Option func(*options)

// WithGeometry sets the register geometry of new tableaux. Restored tableaux
// keep the geometry they were saved with.
func WithGeometry(g chunk.Geometry) Option {
	return func(o *options) {
		o.geometry = g
	}
}

// WithMemoryBudget reserves tableau storage and bounds background work and
// snapshot IO through rc.
//
// Example:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   1 << 30,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//	sim, _ := stabgo.New(10000, stabgo.WithMemoryBudget(rc))
func WithMemoryBudget(rc *resource.Controller) Option {
	return func(o *options) {
		o.budget = rc
	}
}

// WithBlobStore configures where snapshots are saved and restored from.
func WithBlobStore(store blobstore.BlobStore) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCompression selects the snapshot payload compression.
// Default is LZ4.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithAutoLayout controls whether Run flips the tableau back to column-major
// before a gate. When disabled, a gate on a row-major tableau fails with
// ErrInvalidLayout. Default is enabled.
func WithAutoLayout(enabled bool) Option {
	return func(o *options) {
		o.autoLayout = enabled
	}
}

// WithParallelTranspose toggles concurrent X/Z transposes for large tableaux.
func WithParallelTranspose(enabled bool) Option {
	return func(o *options) {
		o.parallelTranspose = enabled
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &stabgo.BasicMetricsCollector{}
//	sim, _ := stabgo.New(64, stabgo.WithMetricsCollector(metrics))
//	// ... run circuits ...
//	stats := metrics.GetStats()
//	fmt.Printf("Gates: %d, Transposes: %d\n", stats.GateCount, stats.TransposeCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := stabgo.NewJSONLogger(slog.LevelInfo)
//	sim, _ := stabgo.New(64, stabgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector:  NoopMetricsCollector{},
		logger:            NoopLogger(),
		compression:       snapshot.CompressionLZ4,
		autoLayout:        true,
		parallelTranspose: true,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}

func (o options) tableauOptions() []tableau.Option {
	return []tableau.Option{
		tableau.WithGeometry(o.geometry),
		tableau.WithMemoryBudget(o.budget),
		tableau.WithParallelTranspose(o.parallelTranspose),
	}
}
