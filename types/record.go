package types

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common"
	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/proof"
)

// Record is the chain-agnostic transaction shared by every adapter.
type Record struct {
	Kind          Kind
	TransactProof proof.Proof
	TreeProof     proof.Proof
	RootAfter     fr.Element
	Delta         fr.Element
	OutCommitment fr.Element
	Nullifier     fr.Element
	Memo          []byte
	ExtraData     []byte

	// TokenID is only carried by the account-chain layout.
	TokenID string
}

// Equal compares records component-wise. A nil memo equals an empty one.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.Kind == o.Kind &&
		proofEqual(r.TransactProof, o.TransactProof) &&
		proofEqual(r.TreeProof, o.TreeProof) &&
		r.RootAfter.Equal(&o.RootAfter) &&
		r.Delta.Equal(&o.Delta) &&
		r.OutCommitment.Equal(&o.OutCommitment) &&
		r.Nullifier.Equal(&o.Nullifier) &&
		bytes.Equal(r.Memo, o.Memo) &&
		bytes.Equal(r.ExtraData, o.ExtraData) &&
		r.TokenID == o.TokenID
}

func proofEqual(a, b proof.Proof) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	if r.TransactProof != nil {
		cp.TransactProof = r.TransactProof.Clone()
	}
	if r.TreeProof != nil {
		cp.TreeProof = r.TreeProof.Clone()
	}
	cp.Memo = common.CopyBytes(r.Memo)
	cp.ExtraData = common.CopyBytes(r.ExtraData)
	return &cp
}

func (r *Record) String() string {
	if r == nil {
		return "Record(nil)"
	}
	return fmt.Sprintf("Record{kind: %s, nullifier: %s, out_commitment: %s, delta: %s, root_after: %s, "+
		"transact_proof: %v, tree_proof: %v, memo: %x, extra_data: %x, token_id: %q}",
		r.Kind, field.Hex(&r.Nullifier), field.Hex(&r.OutCommitment), field.Hex(&r.Delta), field.Hex(&r.RootAfter),
		r.TransactProof, r.TreeProof, r.Memo, r.ExtraData, r.TokenID)
}
