// Package evm implements the calldata layout of the EVM pool contract:
// a fixed 4-byte selector followed by big-endian 32-byte words.
//
//	selector          4 bytes
//	nullifier        32 bytes
//	outCommit        32 bytes
//	delta            32 bytes
//	txProof          proof
//	rootAfter        32 bytes
//	treeProof        proof
//	txType            2 bytes
//	memoLen           2 bytes
//	memo             memoLen bytes
//	extraData        rest
package evm

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/proof"
	"github.com/kysee/txcodec/types"
	"github.com/kysee/txcodec/wire"
)

const Name = "evm"

// Selector leads every encoded transaction.
var Selector = [4]byte{0x8a, 0x40, 0x68, 0xdd}

type Codec struct {
	system proof.System
}

func New(system proof.System) *Codec {
	return &Codec{system: system}
}

func (c *Codec) Name() string {
	return Name
}

func (c *Codec) System() proof.System {
	return c.system
}

func (c *Codec) Decode(data []byte) (*types.Record, error) {
	r := wire.NewReader(data, field.BigEndian)

	sel, err := r.Next(len(Selector))
	if err != nil {
		return nil, fmt.Errorf("evm: selector: %w", err)
	}
	if !bytes.Equal(sel, Selector[:]) {
		return nil, fmt.Errorf("%w: evm selector %x, want %x", types.ErrInvalidHeader, sel, Selector[:])
	}

	var rec types.Record
	if rec.Nullifier, err = r.Field(); err != nil {
		return nil, fmt.Errorf("evm: nullifier: %w", err)
	}
	if rec.OutCommitment, err = r.Field(); err != nil {
		return nil, fmt.Errorf("evm: out commitment: %w", err)
	}
	if rec.Delta, err = r.Field(); err != nil {
		return nil, fmt.Errorf("evm: delta: %w", err)
	}
	if rec.TransactProof, err = c.system.Read(r); err != nil {
		return nil, fmt.Errorf("evm: transact proof: %w", err)
	}
	if rec.RootAfter, err = r.Field(); err != nil {
		return nil, fmt.Errorf("evm: root after: %w", err)
	}
	if rec.TreeProof, err = c.system.Read(r); err != nil {
		return nil, fmt.Errorf("evm: tree proof: %w", err)
	}
	code, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("evm: tx type: %w", err)
	}
	if rec.Kind, err = types.ParseKind(code); err != nil {
		return nil, fmt.Errorf("evm: %w", err)
	}
	memoLen, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("evm: memo length: %w", err)
	}
	if rec.Memo, err = r.Bytes(int(memoLen)); err != nil {
		return nil, fmt.Errorf("evm: memo: %w", err)
	}
	rec.ExtraData = r.Rest()
	return &rec, nil
}

func (c *Codec) Encode(rec *types.Record) ([]byte, error) {
	if err := rec.Kind.Validate(); err != nil {
		return nil, fmt.Errorf("evm: %w", err)
	}
	if rec.TokenID != "" {
		return nil, fmt.Errorf("%w: evm, got %q", types.ErrTokenIDNotCarried, rec.TokenID)
	}
	w := wire.NewWriter(field.BigEndian)
	w.Write(Selector[:])
	w.Field(&rec.Nullifier)
	w.Field(&rec.OutCommitment)
	w.Field(&rec.Delta)
	if err := c.system.Write(w, rec.TransactProof); err != nil {
		return nil, fmt.Errorf("evm: transact proof: %w", err)
	}
	w.Field(&rec.RootAfter)
	if err := c.system.Write(w, rec.TreeProof); err != nil {
		return nil, fmt.Errorf("evm: tree proof: %w", err)
	}
	w.Uint16(uint16(rec.Kind))
	if err := w.Len16("memo", rec.Memo); err != nil {
		return nil, fmt.Errorf("evm: %w", err)
	}
	w.Write(rec.ExtraData)
	return w.Bytes(), nil
}

// Hash is the keccak256 digest of an encoded transaction.
func (c *Codec) Hash(encoded []byte) []byte {
	return crypto.Keccak256(encoded)
}
