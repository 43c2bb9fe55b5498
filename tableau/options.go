package tableau

import (
	"github.com/hupe1980/stabgo/chunk"
	"github.com/hupe1980/stabgo/resource"
)

// parallelTransposeMin is the smallest qubit count for which the X and Z
// transposes run on separate goroutines.
const parallelTransposeMin = 512

type options struct {
	geometry chunk.Geometry
	budget   *resource.Controller
	parallel bool
}

func defaultOptions() options {
	return options{
		geometry: chunk.DefaultGeometry,
		parallel: true,
	}
}

// Option configures a Tableau.
type Option func(*options)

// WithGeometry sets the register geometry. Defaults to chunk.DefaultGeometry.
func WithGeometry(g chunk.Geometry) Option {
	return func(o *options) {
		o.geometry = g
	}
}

// WithMemoryBudget reserves tableau storage against rc before allocating.
// Close returns the reservation.
func WithMemoryBudget(rc *resource.Controller) Option {
	return func(o *options) {
		o.budget = rc
	}
}

// MemoryBudget returns the controller opts reserve against, or nil.
// Decoders use it to account for scratch buffers before the tableau exists.
func MemoryBudget(opts ...Option) *resource.Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o.budget
}

// WithParallelTranspose controls whether large X and Z blocks are transposed
// concurrently. Enabled by default.
func WithParallelTranspose(enabled bool) Option {
	return func(o *options) {
		o.parallel = enabled
	}
}
