// Package near implements the borsh-style layout used by the account-based
// chain contract. Everything is little-endian; strings and byte arrays carry a
// 4-byte length prefix.
package near

import (
	"crypto/sha256"
	"fmt"
	"unicode/utf8"

	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/proof"
	"github.com/kysee/txcodec/types"
	"github.com/kysee/txcodec/wire"
)

const Name = "near"

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
	r := wire.NewReader(data, field.LittleEndian)

	var (
		rec types.Record
		err error
	)
	if rec.Nullifier, err = r.Field(); err != nil {
		return nil, fmt.Errorf("near: nullifier: %w", err)
	}
	if rec.OutCommitment, err = r.Field(); err != nil {
		return nil, fmt.Errorf("near: out commitment: %w", err)
	}
	if rec.TokenID, err = readString(r); err != nil {
		return nil, fmt.Errorf("near: token id: %w", err)
	}
	if rec.Delta, err = r.Field(); err != nil {
		return nil, fmt.Errorf("near: delta: %w", err)
	}
	if rec.TransactProof, err = c.system.Read(r); err != nil {
		return nil, fmt.Errorf("near: transact proof: %w", err)
	}
	if rec.RootAfter, err = r.Field(); err != nil {
		return nil, fmt.Errorf("near: root after: %w", err)
	}
	if rec.TreeProof, err = c.system.Read(r); err != nil {
		return nil, fmt.Errorf("near: tree proof: %w", err)
	}
	code, err := r.Uint8()
	if err != nil {
		return nil, fmt.Errorf("near: tx type: %w", err)
	}
	if rec.Kind, err = types.ParseKind(uint16(code)); err != nil {
		return nil, fmt.Errorf("near: %w", err)
	}
	if rec.Memo, err = r.LenPrefixed(); err != nil {
		return nil, fmt.Errorf("near: memo: %w", err)
	}
	rec.ExtraData = r.Rest()
	return &rec, nil
}

func readString(r *wire.Reader) (string, error) {
	b, err := r.LenPrefixed()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %x", types.ErrInvalidUtf8, b)
	}
	return string(b), nil
}

func (c *Codec) Encode(rec *types.Record) ([]byte, error) {
	if err := rec.Kind.Validate(); err != nil {
		return nil, fmt.Errorf("near: %w", err)
	}
	if !utf8.ValidString(rec.TokenID) {
		return nil, fmt.Errorf("near: token id: %w", types.ErrInvalidUtf8)
	}

	w := wire.NewWriter(field.LittleEndian)
	w.Field(&rec.Nullifier)
	w.Field(&rec.OutCommitment)
	if err := w.Len32("token id", []byte(rec.TokenID)); err != nil {
		return nil, fmt.Errorf("near: %w", err)
	}
	w.Field(&rec.Delta)
	if err := c.system.Write(w, rec.TransactProof); err != nil {
		return nil, fmt.Errorf("near: transact proof: %w", err)
	}
	w.Field(&rec.RootAfter)
	if err := c.system.Write(w, rec.TreeProof); err != nil {
		return nil, fmt.Errorf("near: tree proof: %w", err)
	}
	w.Uint8(uint8(rec.Kind))
	if err := w.Len32("memo", rec.Memo); err != nil {
		return nil, fmt.Errorf("near: %w", err)
	}
	w.Write(rec.ExtraData)
	return w.Bytes(), nil
}

// Hash is the sha256 digest NEAR uses for transaction hashes.
func (c *Codec) Hash(encoded []byte) []byte {
	sum := sha256.Sum256(encoded)
	return sum[:]
}
