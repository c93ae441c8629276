// Package waves implements the layout of the custom-chain (Waves) dApp.
//
//	nullifier          32 bytes
//	outCommit          32 bytes
//	assetId            32 bytes
//	delta              32 bytes
//	    nativeAmount    8 bytes
//	    nativeEnergy   14 bytes
//	    txIndex         6 bytes
//	    poolId          3 bytes
//	txProof           proof
//	treeProof         proof
//	rootAfter          32 bytes
//	txType              2 bytes
//	memo               dynamic bytes
//	depositPk          32 bytes, deposits only
//	depositSignature   64 bytes, deposits only
package waves

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/proof"
	"github.com/kysee/txcodec/types"
	"github.com/kysee/txcodec/wire"
	"golang.org/x/crypto/blake2b"
)

const (
	Name = "waves"

	DepositPkSize        = 32
	DepositSignatureSize = 64
	// DepositDataSize is the suffix split off a deposit memo into extra data.
	DepositDataSize = DepositPkSize + DepositSignatureSize
)

type Options struct {
	// AssetID is written in place of the asset id word. Decoding checks it is a
	// canonical field element, then drops it.
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
		return nil, fmt.Errorf("waves: nullifier: %w", err)
	}
	if rec.OutCommitment, err = r.Field(); err != nil {
		return nil, fmt.Errorf("waves: out commitment: %w", err)
	}
	if _, err = r.Field(); err != nil {
		return nil, fmt.Errorf("waves: asset id: %w", err)
	}
	if rec.Delta, err = r.Field(); err != nil {
		return nil, fmt.Errorf("waves: delta: %w", err)
	}
	if rec.TransactProof, err = c.system.Read(r); err != nil {
		return nil, fmt.Errorf("waves: transact proof: %w", err)
	}
	if rec.TreeProof, err = c.system.Read(r); err != nil {
		return nil, fmt.Errorf("waves: tree proof: %w", err)
	}
	if rec.RootAfter, err = r.Field(); err != nil {
		return nil, fmt.Errorf("waves: root after: %w", err)
	}
	code, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("waves: tx type: %w", err)
	}
	if rec.Kind, err = types.ParseKind(code); err != nil {
		return nil, fmt.Errorf("waves: %w", err)
	}

	block := r.Rest()
	if rec.Kind != types.Deposit {
		rec.Memo, rec.ExtraData = block, []byte{}
		return &rec, nil
	}
	if rec.Memo, rec.ExtraData, err = wire.SplitSuffix(block, DepositDataSize); err != nil {
		return nil, fmt.Errorf("waves: deposit memo: %w", err)
	}
	return &rec, nil
}

func (c *Codec) Encode(rec *types.Record) ([]byte, error) {
	if err := rec.Kind.Validate(); err != nil {
		return nil, fmt.Errorf("waves: %w", err)
	}
	if rec.TokenID != "" {
		return nil, fmt.Errorf("%w: waves, got %q", types.ErrTokenIDNotCarried, rec.TokenID)
	}
	want := 0
	if rec.Kind == types.Deposit {
		want = DepositDataSize
	}
	if len(rec.ExtraData) != want {
		return nil, fmt.Errorf("%w: waves %s carries %d bytes of extra data, want %d",
			types.ErrMalformedTrailingData, rec.Kind, len(rec.ExtraData), want)
	}

	w := wire.NewWriter(field.BigEndian)
	w.Field(&rec.Nullifier)
	w.Field(&rec.OutCommitment)
	w.Field(&c.assetID)
	w.Field(&rec.Delta)
	if err := c.system.Write(w, rec.TransactProof); err != nil {
		return nil, fmt.Errorf("waves: transact proof: %w", err)
	}
	if err := c.system.Write(w, rec.TreeProof); err != nil {
		return nil, fmt.Errorf("waves: tree proof: %w", err)
	}
	w.Field(&rec.RootAfter)
	w.Uint16(uint16(rec.Kind))
	w.Write(rec.Memo)
	w.Write(rec.ExtraData)
	return w.Bytes(), nil
}

// Hash is the blake2b-256 digest Waves uses for transaction ids.
func (c *Codec) Hash(encoded []byte) []byte {
	sum := blake2b.Sum256(encoded)
	return sum[:]
}

// DepositCredentials splits a deposit's extra data into the depositor public
// key and its signature.
func DepositCredentials(extra []byte) (pk [DepositPkSize]byte, sig [DepositSignatureSize]byte, err error) {
	if len(extra) != DepositDataSize {
		return pk, sig, fmt.Errorf("%w: deposit credentials are %d bytes, want %d", types.ErrMalformedTrailingData, len(extra), DepositDataSize)
	}
	copy(pk[:], extra[:DepositPkSize])
	copy(sig[:], extra[DepositPkSize:])
	return pk, sig, nil
}

// DepositExtraData is the inverse of DepositCredentials.
func DepositExtraData(pk [DepositPkSize]byte, sig [DepositSignatureSize]byte) []byte {
	out := make([]byte, 0, DepositDataSize)
	out = append(out, pk[:]...)
	return append(out, sig[:]...)
}
