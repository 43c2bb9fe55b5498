// Package resource enforces process-wide limits on simulator state.
//
// A Controller tracks three things:
//
//   - Memory: tableau arenas reserve their footprint before allocating.
//     Reservations are fail-fast; the caller sees ErrMemoryLimitExceeded and
//     decides what to do.
//   - Background slots: bounds how many snapshot uploads run at once.
//   - IO: a token bucket that paces snapshot uploads in bytes per second.
//
// Usage:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes:   1 << 30,
//	    IOLimitBytesPerSec: 64 << 20,
//	})
//
//	if err := rc.AcquireMemory(size); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(size)
//
// Every method is safe for concurrent use, and a nil *Controller is valid:
// all of its methods succeed without limiting anything.
package resource
