package tableau

import "fmt"

// ApplyCNOT applies CNOT(ctrl, targ): X[targ] ^= X[ctrl], Z[ctrl] ^= Z[targ].
func (t *Tableau) ApplyCNOT(ctrl, targ int) error {
	if err := t.checkPair("cnot", ctrl, targ); err != nil {
		return err
	}
	t.sync()
	t.cnot(ctrl, targ)
	return nil
}

// ApplyCZ applies CZ(ctrl, targ), equivalent to H(targ) CNOT(ctrl, targ) H(targ).
func (t *Tableau) ApplyCZ(ctrl, targ int) error {
	if err := t.checkPair("cz", ctrl, targ); err != nil {
		return err
	}
	t.sync()
	t.z[targ].XorWith(&t.x[ctrl])
	t.z[ctrl].XorWith(&t.x[targ])
	return nil
}

// ApplyHadamard swaps X[targ] and Z[targ]. The phase is not touched.
func (t *Tableau) ApplyHadamard(targ int) error {
	if err := t.checkColumn("hadamard", targ); err != nil {
		return err
	}
	t.sync()
	t.hadamard(targ)
	return nil
}

// ApplyPhase applies S(targ): phase ^= X[targ] & Z[targ], then Z[targ] ^= X[targ].
func (t *Tableau) ApplyPhase(targ int) error {
	if err := t.checkColumn("phase", targ); err != nil {
		return err
	}
	t.sync()
	t.s(targ)
	return nil
}

// ApplyPhaseDagger applies S-dagger(targ): Z[targ] ^= X[targ], then
// phase ^= X[targ] & Z[targ] using the updated Z.
func (t *Tableau) ApplyPhaseDagger(targ int) error {
	if err := t.checkColumn("phase-dagger", targ); err != nil {
		return err
	}
	t.sync()
	t.sdg(targ)
	return nil
}

// ApplyPauliX flips the sign of every generator with Z support on targ.
func (t *Tableau) ApplyPauliX(targ int) error {
	if err := t.checkColumn("pauli-x", targ); err != nil {
		return err
	}
	t.sync()
	t.phase.XorWith(&t.z[targ])
	return nil
}

// ApplyPauliZ flips the sign of every generator with X support on targ.
func (t *Tableau) ApplyPauliZ(targ int) error {
	if err := t.checkColumn("pauli-z", targ); err != nil {
		return err
	}
	t.sync()
	t.phase.XorWith(&t.x[targ])
	return nil
}

// ApplyPauliY flips the sign of every generator that anticommutes with Y on targ.
func (t *Tableau) ApplyPauliY(targ int) error {
	if err := t.checkColumn("pauli-y", targ); err != nil {
		return err
	}
	t.sync()
	t.pauliY(targ)
	return nil
}

// ApplyIdentity validates targ and does nothing else. It has no layout requirement.
func (t *Tableau) ApplyIdentity(targ int) error {
	return t.checkIndex("qubit", targ)
}

// ApplyLocal applies a single-qubit Clifford to targ.
func (t *Tableau) ApplyLocal(c LocalClifford, targ int) error {
	if c == LocalI {
		return t.ApplyIdentity(targ)
	}
	if c >= numLocal {
		return fmt.Errorf("%w: unknown local clifford %d", ErrInvalidOperands, c)
	}
	if err := t.checkColumn(c.String(), targ); err != nil {
		return err
	}
	t.sync()

	for _, p := range localSteps[c] {
		t.primitive(p, targ)
	}
	return nil
}

type primitive uint8

const (
	primX primitive = iota
	primY
	primZ
	primH
	primS
	primSdg
)

// localSteps lists the primitives of each local Clifford in application
// order, the reverse of its name.
var localSteps = [numLocal][]primitive{
	LocalX:     {primX},
	LocalY:     {primY},
	LocalZ:     {primZ},
	LocalH:     {primH},
	LocalS:     {primS},
	LocalSdg:   {primSdg},
	LocalHS:    {primS, primH},
	LocalSH:    {primH, primS},
	LocalSHS:   {primS, primH, primS},
	LocalHX:    {primX, primH},
	LocalSX:    {primX, primS},
	LocalSdgX:  {primX, primSdg},
	LocalHY:    {primY, primH},
	LocalHZ:    {primZ, primH},
	LocalSdgH:  {primH, primSdg},
	LocalHSdg:  {primSdg, primH},
	LocalHSX:   {primX, primS, primH},
	LocalHSdgX: {primX, primSdg, primH},
	LocalSHY:   {primY, primH, primS},
	LocalSdgHY: {primY, primH, primSdg},
	LocalHSH:   {primH, primS, primH},
	LocalHSdgH: {primH, primSdg, primH},
	LocalSdgHS: {primS, primH, primSdg},
	LocalSHSdg: {primSdg, primH, primS},
}

func (t *Tableau) primitive(p primitive, targ int) {
	switch p {
	case primX:
		t.phase.XorWith(&t.z[targ])
	case primY:
		t.pauliY(targ)
	case primZ:
		t.phase.XorWith(&t.x[targ])
	case primH:
		t.hadamard(targ)
	case primS:
		t.s(targ)
	case primSdg:
		t.sdg(targ)
	}
}

func (t *Tableau) cnot(ctrl, targ int) {
	t.x[targ].XorWith(&t.x[ctrl])
	t.z[ctrl].XorWith(&t.z[targ])
}

// hadamard swaps the row views; no words move.
func (t *Tableau) hadamard(targ int) {
	t.x[targ], t.z[targ] = t.z[targ], t.x[targ]
}

func (t *Tableau) s(targ int) {
	t.phase.AndXorWith(&t.x[targ], &t.z[targ])
	t.z[targ].XorWith(&t.x[targ])
}

func (t *Tableau) sdg(targ int) {
	t.z[targ].XorWith(&t.x[targ])
	t.phase.AndXorWith(&t.x[targ], &t.z[targ])
}

func (t *Tableau) pauliY(targ int) {
	t.phase.XorWith(&t.x[targ])
	t.phase.XorWith(&t.z[targ])
}

func (t *Tableau) checkColumn(op string, targ int) error {
	if err := t.requireLayout(ColumnMajor, op); err != nil {
		return err
	}
	return t.checkIndex("qubit", targ)
}

func (t *Tableau) checkPair(op string, ctrl, targ int) error {
	if err := t.requireLayout(ColumnMajor, op); err != nil {
		return err
	}
	if err := t.checkIndex("control", ctrl); err != nil {
		return err
	}
	if err := t.checkIndex("target", targ); err != nil {
		return err
	}
	if ctrl == targ {
		return fmt.Errorf("%w: %s control and target are both %d", ErrInvalidOperands, op, ctrl)
	}
	return nil
}
