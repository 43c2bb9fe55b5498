// Package circuit describes Clifford circuits for the simulator.
//
// A Circuit is a qubit count and an ordered list of instructions. Circuits can
// be built in code, parsed from a small QASM subset, and written back out:
//
//	OPENQASM 2.0;
//	include "qelib1.inc";
//	qreg q[3];
//	h q[0];
//	cx q[0], q[1];
//	cx q[1], q[2];
//	flip;
//
// Supported single-qubit gates are id, x, y, z, h, s, sdg and the composites
// hs, sh, shs (read as operator products, so sh applies h first). Two-qubit
// gates are cx (alias cnot) and cz. The non-standard flip statement toggles the
// tableau layout. Lines starting with // are comments; creg, barrier and
// OPENQASM/include headers are ignored.
package circuit
