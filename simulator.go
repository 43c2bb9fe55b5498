package stabgo

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/stabgo/blobstore"
	"github.com/hupe1980/stabgo/circuit"
	"github.com/hupe1980/stabgo/resource"
	"github.com/hupe1980/stabgo/snapshot"
	"github.com/hupe1980/stabgo/tableau"
)

// Simulator drives a stabilizer tableau through circuits and persists it as
// snapshots. It is safe for concurrent use; operations are serialized.
type Simulator struct {
	mu     sync.Mutex
	tab    *tableau.Tableau
	opts   options
	logger *Logger
	closed bool
}

// RunStats summarizes a circuit run.
type RunStats struct {
	// Instructions is the number of instructions applied.
	Instructions int `json:"instructions"`
	// Gates counts applied instructions by operation name.
	Gates map[string]int `json:"gates"`
	// Flips counts explicit layout flips in the circuit.
	Flips int `json:"flips"`
	// AutoFlips counts flips inserted to bring the tableau back to column-major.
	AutoFlips int `json:"auto_flips"`
	// Transposes counts physical transposes performed during the run.
	Transposes int           `json:"transposes"`
	Duration   time.Duration `json:"duration_ns"`
}

// SnapshotInfo describes a saved snapshot.
type SnapshotInfo struct {
	Name        string               `json:"name"`
	Bytes       int                  `json:"bytes"`
	RawBytes    uint64               `json:"raw_bytes"`
	Compression snapshot.Compression `json:"compression"`
	Checksum    uint32               `json:"crc32c"`
}

// New creates a simulator for n qubits in the |0...0> state.
func New(n int, optFns ...Option) (*Simulator, error) {
	o := applyOptions(optFns)

	tab, err := tableau.New(n, o.tableauOptions()...)
	if err != nil {
		return nil, translateError(err)
	}
	return newSimulator(tab, o), nil
}

func newSimulator(tab *tableau.Tableau, o options) *Simulator {
	return &Simulator{
		tab:    tab,
		opts:   o,
		logger: o.logger.WithQubits(tab.QubitCount()),
	}
}

// QubitCount returns the number of qubits.
func (s *Simulator) QubitCount() int {
	return s.tab.QubitCount()
}

// Tableau returns the underlying tableau. Callers must not use it
// concurrently with Simulator methods.
func (s *Simulator) Tableau() *tableau.Tableau {
	return s.tab
}

// Apply applies a single instruction.
func (s *Simulator) Apply(in circuit.Instruction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	before := s.tab.Transposes()
	start := time.Now()
	_, err := s.step(in)
	s.opts.metricsCollector.RecordGate(in.Op.String(), err)
	s.recordTransposes(context.Background(), before, time.Since(start))
	if err != nil {
		return &ErrGate{Instruction: in, Index: -1, cause: translateError(err)}
	}
	return nil
}

// Run validates c and applies its instructions in order. The context is
// checked between instructions; on cancellation the instructions applied so
// far stay applied.
func (s *Simulator) Run(ctx context.Context, c *circuit.Circuit) (RunStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := RunStats{Gates: make(map[string]int)}
	if s.closed {
		return stats, ErrClosed
	}

	start := time.Now()
	before := s.tab.Transposes()

	err := s.run(ctx, c, &stats)

	stats.Duration = time.Since(start)
	stats.Transposes = s.tab.Transposes() - before
	s.recordTransposes(ctx, before, stats.Duration)
	s.opts.metricsCollector.RecordRun(stats.Instructions, stats.Duration, err)
	s.logger.LogRun(ctx, stats, err)
	return stats, err
}

func (s *Simulator) run(ctx context.Context, c *circuit.Circuit, stats *RunStats) error {
	if c.Qubits > s.tab.QubitCount() {
		return fmt.Errorf("%w: circuit needs %d qubits, simulator has %d",
			ErrInvalidCircuit, c.Qubits, s.tab.QubitCount())
	}
	if err := c.Validate(); err != nil {
		return translateError(err)
	}

	for i, in := range c.Instructions {
		if err := ctx.Err(); err != nil {
			return err
		}

		flipped, err := s.step(in)
		s.opts.metricsCollector.RecordGate(in.Op.String(), err)
		if err != nil {
			return &ErrGate{Instruction: in, Index: i, cause: translateError(err)}
		}

		stats.Instructions++
		stats.Gates[in.Op.String()]++
		if in.Op == circuit.OpFlip {
			stats.Flips++
		}
		if flipped {
			stats.AutoFlips++
		}
	}
	return nil
}

// step applies one instruction and reports whether it flipped the layout
// first.
func (s *Simulator) step(in circuit.Instruction) (bool, error) {
	t := s.tab

	flipped := false
	if s.opts.autoLayout && needsColumnMajor(in.Op) && t.Layout() != tableau.ColumnMajor {
		t.FlipLayout()
		flipped = true
	}

	var err error
	switch in.Op {
	case circuit.OpI:
		err = t.ApplyIdentity(in.Targ)
	case circuit.OpX:
		err = t.ApplyPauliX(in.Targ)
	case circuit.OpY:
		err = t.ApplyPauliY(in.Targ)
	case circuit.OpZ:
		err = t.ApplyPauliZ(in.Targ)
	case circuit.OpH:
		err = t.ApplyHadamard(in.Targ)
	case circuit.OpS:
		err = t.ApplyPhase(in.Targ)
	case circuit.OpSdg:
		err = t.ApplyPhaseDagger(in.Targ)
	case circuit.OpCNOT:
		err = t.ApplyCNOT(in.Ctrl, in.Targ)
	case circuit.OpCZ:
		err = t.ApplyCZ(in.Ctrl, in.Targ)
	case circuit.OpFlip:
		t.FlipLayout()
	default:
		if c, ok := localOps[in.Op]; ok {
			err = t.ApplyLocal(c, in.Targ)
		} else {
			err = fmt.Errorf("%w: %d", circuit.ErrUnknownOp, in.Op)
		}
	}

	if err != nil && flipped {
		// Gates validate before writing; the flip is still only logical.
		t.FlipLayout()
		flipped = false
	}
	return flipped, err
}

// localOps maps composite circuit operations to their tableau Cliffords.
var localOps = map[circuit.Op]tableau.LocalClifford{
	circuit.OpHS:    tableau.LocalHS,
	circuit.OpSH:    tableau.LocalSH,
	circuit.OpSHS:   tableau.LocalSHS,
	circuit.OpHX:    tableau.LocalHX,
	circuit.OpSX:    tableau.LocalSX,
	circuit.OpSdgX:  tableau.LocalSdgX,
	circuit.OpHY:    tableau.LocalHY,
	circuit.OpHZ:    tableau.LocalHZ,
	circuit.OpSdgH:  tableau.LocalSdgH,
	circuit.OpHSdg:  tableau.LocalHSdg,
	circuit.OpHSX:   tableau.LocalHSX,
	circuit.OpHSdgX: tableau.LocalHSdgX,
	circuit.OpSHY:   tableau.LocalSHY,
	circuit.OpSdgHY: tableau.LocalSdgHY,
	circuit.OpHSH:   tableau.LocalHSH,
	circuit.OpHSdgH: tableau.LocalHSdgH,
	circuit.OpSdgHS: tableau.LocalSdgHS,
	circuit.OpSHSdg: tableau.LocalSHSdg,
}

func needsColumnMajor(op circuit.Op) bool {
	return op != circuit.OpI && op != circuit.OpFlip
}

func (s *Simulator) recordTransposes(ctx context.Context, before int, d time.Duration) {
	if n := s.tab.Transposes() - before; n > 0 {
		s.opts.metricsCollector.RecordTranspose(n, d)
		s.logger.LogTranspose(ctx, n, d)
	}
}

// SaveSnapshot encodes the tableau, uploads it as name and points CURRENT at
// it. Uploads hold a background slot and respect the IO limit of the
// memory budget's controller.
func (s *Simulator) SaveSnapshot(ctx context.Context, name string) (SnapshotInfo, error) {
	start := time.Now()
	info, err := s.saveSnapshot(ctx, name)
	s.opts.metricsCollector.RecordSnapshot("save", info.Bytes, time.Since(start), err)
	s.logger.LogSnapshot(ctx, name, info.Bytes, err)
	return info, err
}

func (s *Simulator) saveSnapshot(ctx context.Context, name string) (SnapshotInfo, error) {
	store := s.opts.store
	if store == nil {
		return SnapshotInfo{}, ErrNoBlobStore
	}
	if name == "" || name == blobstore.CurrentName {
		return SnapshotInfo{}, fmt.Errorf("%w: snapshot name %q", ErrInvalidOperands, name)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return SnapshotInfo{}, ErrClosed
	}
	data, err := snapshot.Encode(s.tab, s.opts.compression)
	s.mu.Unlock()
	if err != nil {
		return SnapshotInfo{}, translateError(err)
	}

	h, err := snapshot.ReadHeader(data)
	if err != nil {
		return SnapshotInfo{}, translateError(err)
	}
	info := SnapshotInfo{
		Name:        name,
		Bytes:       len(data),
		RawBytes:    h.RawLen,
		Compression: h.Compression,
		Checksum:    h.Checksum,
	}

	rc := s.opts.budget
	if err := rc.AcquireBackground(ctx); err != nil {
		return info, err
	}
	defer rc.ReleaseBackground()

	if err := rc.AcquireIO(ctx, len(data)); err != nil {
		return info, err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return info, fmt.Errorf("put %s: %w", name, err)
	}
	if err := store.Put(ctx, blobstore.CurrentName, []byte(name)); err != nil {
		return info, fmt.Errorf("commit %s: %w", name, err)
	}
	return info, nil
}

// Restore loads the snapshot called name from the store given by
// WithBlobStore and returns a simulator over it.
func Restore(ctx context.Context, name string, optFns ...Option) (*Simulator, error) {
	o := applyOptions(optFns)

	start := time.Now()
	sim, size, err := restore(ctx, name, o)
	o.metricsCollector.RecordSnapshot("restore", size, time.Since(start), err)
	o.logger.LogRestore(ctx, name, err)
	return sim, err
}

// RestoreLatest restores the snapshot CURRENT points at.
func RestoreLatest(ctx context.Context, optFns ...Option) (*Simulator, error) {
	o := applyOptions(optFns)
	if o.store == nil {
		return nil, ErrNoBlobStore
	}

	ptr, err := blobstore.ReadAll(ctx, o.store, blobstore.CurrentName)
	if err != nil {
		return nil, translateError(fmt.Errorf("read %s: %w", blobstore.CurrentName, err))
	}
	name := strings.TrimSpace(string(ptr))
	if name == "" {
		return nil, fmt.Errorf("%w: empty %s", ErrCorruptSnapshot, blobstore.CurrentName)
	}
	return Restore(ctx, name, optFns...)
}

func restore(ctx context.Context, name string, o options) (*Simulator, int, error) {
	if o.store == nil {
		return nil, 0, ErrNoBlobStore
	}

	data, err := readBlob(ctx, o.store, name, o.budget)
	if err != nil {
		return nil, 0, translateError(err)
	}

	tab, err := snapshot.Decode(data, o.tableauOptions()...)
	if err != nil {
		return nil, len(data), translateError(fmt.Errorf("decode %s: %w", name, err))
	}
	return newSimulator(tab, o), len(data), nil
}

// readBlob reads a whole blob through the IO limit of rc.
func readBlob(ctx context.Context, store blobstore.BlobStore, name string, rc *resource.Controller) ([]byte, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.Close() }()

	buf := make([]byte, b.Size())
	r := resource.NewRateLimitedReader(ctx, io.NewSectionReader(&blobReaderAt{ctx: ctx, b: b}, 0, b.Size()), rc)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return buf, nil
}

// blobReaderAt adapts a Blob to io.ReaderAt.
type blobReaderAt struct {
	ctx context.Context
	b   blobstore.Blob
}

func (r *blobReaderAt) ReadAt(p []byte, off int64) (int, error) {
	return r.b.ReadAt(r.ctx, p, off)
}

// Close releases the tableau and its memory reservation.
func (s *Simulator) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.tab.Close()
	return nil
}
