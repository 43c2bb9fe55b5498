// Package tableau implements a bit-packed stabilizer tableau and the Clifford
// gate updates that act on it.
//
// A Tableau for n qubits holds an n x n X block, an n x n Z block and an n-bit
// phase vector. Each block row is a chunk.Vector; all rows and the phase vector
// live in one aligned chunk.Arena. A freshly created tableau encodes |0...0>:
// X is zero, Z is the identity and every phase bit is clear.
//
// # Layout
//
// The blocks are stored either RowMajor (vector i holds generator i, indexed by
// qubit) or ColumnMajor (vector j holds qubit j, indexed by generator). Column
// gates (CNOT, H, S, S-dagger, Paulis) need ColumnMajor because they touch one
// or two qubits across every generator with whole-vector XORs. Row operations
// (RowSum, SwapGenerators) need RowMajor.
//
// New tableaux start ColumnMajor. FlipLayout switches the logical layout in
// O(1); the physical 64x64-tile transpose is deferred until storage is next
// touched by a gate or row query, so back-to-back flips move no data. ReadBit
// never forces a transpose: it translates coordinates against whatever layout
// the storage is in.
//
// # Errors
//
// Every gate validates its layout and indices before writing anything, so a
// failing call leaves the tableau unchanged. Errors wrap the sentinels
// ErrIndexOutOfRange, ErrInvalidLayout, ErrInvalidOperands and ErrAllocation.
//
// # Concurrency
//
// A Tableau is not safe for concurrent use. Callers that share one must
// serialize access themselves.
package tableau
