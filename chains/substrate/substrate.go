// Package substrate implements the SCALE-style layout accepted by the
// substrate pallet. Words are big-endian.
//
//	nullifier        32 bytes
//	outCommit        32 bytes
//	assetId          32 bytes, read and discarded
//	delta            32 bytes
//	txProof          proof
//	treeProof        proof
//	rootAfter        32 bytes
//	txType            2 bytes
//	memoData         rest; for non-deposit kinds the last 96 bytes are extra data
//
// The pallet call is prefixed with a reserved 4-byte zero selector. Encode and
// Decode work on the bare transaction so that each inverts the other; use
// EncodeCall and DecodeCall to write or strip the selector.
package substrate

import (
	"bytes"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/proof"
	"github.com/kysee/txcodec/types"
	"github.com/kysee/txcodec/wire"
	"golang.org/x/crypto/blake2b"
)

const (
	Name = "substrate"

	// ExtraDataSize is the fixed suffix carried by transfer and withdraw memos.
	ExtraDataSize = 32 + 64
)

// CallSelector is the reserved selector written in front of the pallet call.
var CallSelector = [4]byte{0, 0, 0, 0}

type Options struct {
	// AssetID is written in place of the asset id word. Decoding ignores it.
	AssetID fr.Element
}

type Codec struct {
	system  proof.System
	assetID fr.Element
}

func New(system proof.System, opts Options) *Codec {
	return &Codec{system: system, assetID: opts.AssetID}
}

func (c *Codec) Name() string {
	return Name
}

func (c *Codec) System() proof.System {
	return c.system
}

func (c *Codec) Decode(data []byte) (*types.Record, error) {
	r := wire.NewReader(data, field.BigEndian)

	var (
		rec types.Record
		err error
	)
	if rec.Nullifier, err = r.Field(); err != nil {
		return nil, fmt.Errorf("substrate: nullifier: %w", err)
	}
	if rec.OutCommitment, err = r.Field(); err != nil {
		return nil, fmt.Errorf("substrate: out commitment: %w", err)
	}
	// the asset id is opaque to the pallet and not range checked
	if _, err = r.Next(field.Size); err != nil {
		return nil, fmt.Errorf("substrate: asset id: %w", err)
	}
	if rec.Delta, err = r.Field(); err != nil {
		return nil, fmt.Errorf("substrate: delta: %w", err)
	}
	if rec.TransactProof, err = c.system.Read(r); err != nil {
		return nil, fmt.Errorf("substrate: transact proof: %w", err)
	}
	if rec.TreeProof, err = c.system.Read(r); err != nil {
		return nil, fmt.Errorf("substrate: tree proof: %w", err)
	}
	if rec.RootAfter, err = r.Field(); err != nil {
		return nil, fmt.Errorf("substrate: root after: %w", err)
	}
	code, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("substrate: tx type: %w", err)
	}
	if rec.Kind, err = types.ParseKind(code); err != nil {
		return nil, fmt.Errorf("substrate: %w", err)
	}

	memoData := r.Rest()
	if rec.Kind == types.Deposit {
		rec.Memo, rec.ExtraData = memoData, []byte{}
		return &rec, nil
	}
	if rec.Memo, rec.ExtraData, err = wire.SplitSuffix(memoData, ExtraDataSize); err != nil {
		return nil, fmt.Errorf("substrate: %s memo: %w", rec.Kind, err)
	}
	return &rec, nil
}

// DecodeCall strips the reserved selector and decodes the rest.
func (c *Codec) DecodeCall(data []byte) (*types.Record, error) {
	if len(data) < len(CallSelector) {
		return nil, fmt.Errorf("substrate: call selector: %w", types.ErrTruncated)
	}
	if !bytes.Equal(data[:len(CallSelector)], CallSelector[:]) {
		return nil, fmt.Errorf("%w: substrate call selector %x", types.ErrInvalidHeader, data[:len(CallSelector)])
	}
	return c.Decode(data[len(CallSelector):])
}

func (c *Codec) checkExtraData(rec *types.Record) error {
	if rec.Kind == types.Deposit {
		if len(rec.ExtraData) != 0 {
			return fmt.Errorf("%w: deposit carries %d bytes of extra data, want none", types.ErrMalformedTrailingData, len(rec.ExtraData))
		}
		return nil
	}
	if len(rec.ExtraData) != ExtraDataSize {
		return fmt.Errorf("%w: %s carries %d bytes of extra data, want %d", types.ErrMalformedTrailingData, rec.Kind, len(rec.ExtraData), ExtraDataSize)
	}
	return nil
}

func (c *Codec) encode(w *wire.Writer, rec *types.Record) error {
	if err := rec.Kind.Validate(); err != nil {
		return fmt.Errorf("substrate: %w", err)
	}
	if rec.TokenID != "" {
		return fmt.Errorf("%w: substrate, got %q", types.ErrTokenIDNotCarried, rec.TokenID)
	}
	if err := c.checkExtraData(rec); err != nil {
		return fmt.Errorf("substrate: %w", err)
	}
	w.Field(&rec.Nullifier)
	w.Field(&rec.OutCommitment)
	w.Field(&c.assetID)
	w.Field(&rec.Delta)
	if err := c.system.Write(w, rec.TransactProof); err != nil {
		return fmt.Errorf("substrate: transact proof: %w", err)
	}
	if err := c.system.Write(w, rec.TreeProof); err != nil {
		return fmt.Errorf("substrate: tree proof: %w", err)
	}
	w.Field(&rec.RootAfter)
	w.Uint16(uint16(rec.Kind))
	w.Write(rec.Memo)
	w.Write(rec.ExtraData)
	return nil
}

// Encode mirrors Decode: no selector is written.
func (c *Codec) Encode(rec *types.Record) ([]byte, error) {
	w := wire.NewWriter(field.BigEndian)
	if err := c.encode(w, rec); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeCall writes the reserved selector followed by the encoded transaction.
func (c *Codec) EncodeCall(rec *types.Record) ([]byte, error) {
	w := wire.NewWriter(field.BigEndian)
	w.Write(CallSelector[:])
	if err := c.encode(w, rec); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Hash is the blake2b-256 digest substrate uses for extrinsic hashes.
func (c *Codec) Hash(encoded []byte) []byte {
	sum := blake2b.Sum256(encoded)
	return sum[:]
}
