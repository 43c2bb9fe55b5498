// Package stabgo simulates Clifford circuits on large stabilizer tableaux.
//
// A tableau over n qubits stores 2n generators as X and Z bit blocks plus a
// phase vector. Column gates (H, S, CNOT and the Paulis) touch one or two
// qubit columns and run on the column-major layout, where each qubit's bits
// are a contiguous vector. Row operations such as generator products run on
// the row-major layout. The layout flip is lazy: the 64x64-tile transpose
// runs when the next operation needs the data.
//
// # Quick Start
//
//	sim, err := stabgo.New(3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sim.Close()
//
//	ghz := circuit.New(3).
//	    Gate(circuit.OpH, 0).
//	    Controlled(circuit.OpCNOT, 0, 1).
//	    Controlled(circuit.OpCNOT, 1, 2)
//
//	stats, err := sim.Run(ctx, ghz)
//
// Circuits can also be parsed from a QASM subset with circuit.Parse.
//
// # Snapshots
//
// With a blob store configured, SaveSnapshot writes a checksummed, optionally
// compressed encoding of the tableau and moves the CURRENT pointer to it:
//
//	store := blobstore.NewLocalStore("./data")
//	sim, _ := stabgo.New(1024, stabgo.WithBlobStore(store))
//	_, err := sim.SaveSnapshot(ctx, "snapshots/00000001.stab")
//
//	restored, err := stabgo.RestoreLatest(ctx, stabgo.WithBlobStore(store))
//
// The s3 and minio subpackages provide object store backends; s3.DDBCommitStore
// serializes CURRENT updates from concurrent writers through DynamoDB.
//
// # Resources
//
// WithMemoryBudget reserves tableau storage against a resource.Controller and
// fails with ErrAllocation when the budget is exhausted. The same controller
// limits concurrent snapshot uploads and their bandwidth.
//
// # Observability
//
// WithLogger enables structured logging through log/slog and
// WithMetricsCollector receives gate, transpose, run and snapshot events.
package stabgo
