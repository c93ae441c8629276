// Package prover produces records carrying real BN254 proofs for a toy
// transaction circuit. It exists to exercise the codecs end to end.
package prover

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/kysee/txcodec/proof"
	"github.com/kysee/txcodec/types"
	"github.com/kysee/txcodec/utils"
	"github.com/rs/zerolog"
)

// Keys are the compiled circuits and proving/verifying keys of one proof system.
type Keys struct {
	system   proof.System
	transact circuitKeys
	tree     circuitKeys
	log      zerolog.Logger
}

func Setup(system proof.System, log zerolog.Logger) (*Keys, error) {
	transact, err := setup(system, &TransactCircuit{})
	if err != nil {
		return nil, fmt.Errorf("transact circuit: %w", err)
	}
	tree, err := setup(system, &TreeCircuit{})
	if err != nil {
		return nil, fmt.Errorf("tree circuit: %w", err)
	}
	log.Debug().Str("system", system.String()).Msg("circuits compiled")
	return &Keys{system: system, transact: transact, tree: tree, log: log}, nil
}

func (k *Keys) System() proof.System {
	return k.system
}

// Note is the private input of a proved transaction.
type Note struct {
	Secret     fr.Element
	RootBefore fr.Element
}

func NewNote() Note {
	return Note{Secret: utils.RandElement(), RootBefore: utils.RandElement()}
}

// NoteFromSeed derives a reproducible note, so samples can be regenerated.
func NoteFromSeed(seed []byte) Note {
	return Note{
		Secret:     utils.SeedElement([]byte("txcodec/secret"), seed),
		RootBefore: utils.SeedElement([]byte("txcodec/root"), seed),
	}
}

func variable(e *fr.Element) *big.Int {
	return e.BigInt(new(big.Int))
}

// Prove computes the public values for note and delta and returns a record of
// the given kind carrying both proofs.
func (k *Keys) Prove(kind types.Kind, note Note, delta types.Delta) (*types.Record, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	d, err := delta.Pack()
	if err != nil {
		return nil, err
	}

	rec := &types.Record{Kind: kind, Delta: d}
	rec.Nullifier = utils.HashElements(note.Secret)
	rec.OutCommitment = utils.HashElements(note.Secret, d)
	rec.RootAfter = utils.HashElements(note.RootBefore, rec.OutCommitment)

	transact := &TransactCircuit{
		Secret:        variable(&note.Secret),
		Nullifier:     variable(&rec.Nullifier),
		OutCommitment: variable(&rec.OutCommitment),
		Delta:         variable(&rec.Delta),
	}
	if rec.TransactProof, err = k.transact.prove(transact, k.log); err != nil {
		return nil, fmt.Errorf("transact proof: %w", err)
	}

	tree := &TreeCircuit{
		RootBefore:    variable(&note.RootBefore),
		OutCommitment: variable(&rec.OutCommitment),
		RootAfter:     variable(&rec.RootAfter),
	}
	if rec.TreeProof, err = k.tree.prove(tree, k.log); err != nil {
		return nil, fmt.Errorf("tree proof: %w", err)
	}

	k.log.Debug().Str("kind", kind.String()).Str("nullifier", rec.Nullifier.String()).Msg("record proved")
	return rec, nil
}

var ErrNoProof = errors.New("record carries no proof")

// Verify checks both proofs of rec against its public fields.
func (k *Keys) Verify(rec *types.Record) error {
	if rec.TransactProof == nil || rec.TreeProof == nil {
		return ErrNoProof
	}
	transact := &TransactCircuit{
		Nullifier:     variable(&rec.Nullifier),
		OutCommitment: variable(&rec.OutCommitment),
		Delta:         variable(&rec.Delta),
	}
	if err := k.transact.verify(rec.TransactProof, transact); err != nil {
		return fmt.Errorf("transact proof: %w", err)
	}
	tree := &TreeCircuit{
		OutCommitment: variable(&rec.OutCommitment),
		RootAfter:     variable(&rec.RootAfter),
	}
	if err := k.tree.verify(rec.TreeProof, tree); err != nil {
		return fmt.Errorf("tree proof: %w", err)
	}
	return nil
}
