package prover

import (
	"fmt"
	"io"

	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/types"
)

// Circuit names accepted by ExportSolidity.
const (
	TransactCircuitName = "transact"
	TreeCircuitName     = "tree"
)

// ExportSolidity writes the Solidity verifier contract of the named circuit.
func (k *Keys) ExportSolidity(circuit string, w io.Writer) error {
	switch circuit {
	case TransactCircuitName:
		return k.transact.exportSolidity(w)
	case TreeCircuitName:
		return k.tree.exportSolidity(w)
	default:
		return fmt.Errorf("unknown circuit %q", circuit)
	}
}

// SolidityInputs are the public inputs of both proofs as the verifier
// contracts expect them, in circuit declaration order.
type SolidityInputs struct {
	Transact []string `json:"transact"` // [nullifier, outCommitment, delta]
	Tree     []string `json:"tree"`     // [outCommitment, rootAfter]
}

func PublicInputs(rec *types.Record) SolidityInputs {
	return SolidityInputs{
		Transact: []string{field.Hex(&rec.Nullifier), field.Hex(&rec.OutCommitment), field.Hex(&rec.Delta)},
		Tree:     []string{field.Hex(&rec.OutCommitment), field.Hex(&rec.RootAfter)},
	}
}
