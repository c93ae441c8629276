package waves

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/proof"
	"github.com/kysee/txcodec/types"
	"github.com/stretchr/testify/require"
)

const headerLen = 4*32 + 2*proof.Groth16Size + 32 + 2

func testRecord(kind types.Kind, memo, extra []byte) *types.Record {
	return &types.Record{
		Kind:          kind,
		TransactProof: &proof.Groth16Proof{},
		TreeProof:     &proof.Groth16Proof{},
		RootAfter:     field.FromUint64(4),
		Delta:         field.FromUint64(3),
		OutCommitment: field.FromUint64(2),
		Nullifier:     field.FromUint64(1),
		Memo:          memo,
		ExtraData:     extra,
	}
}

func TestWriteReadDeposit(t *testing.T) {
	c := New(proof.Groth16, Options{})
	rec := testRecord(types.Deposit, []byte{5, 6}, bytes.Repeat([]byte{9}, DepositDataSize))

	bz, err := c.Encode(rec)
	require.NoError(t, err)
	require.Equal(t, 32+32+32+32+256+256+32+2+2+32+64, len(bz))

	got, err := c.Decode(bz)
	require.NoError(t, err)
	require.True(t, rec.Equal(got))
}

func TestWriteRead(t *testing.T) {
	c := New(proof.Groth16, Options{})
	for _, kind := range []types.Kind{types.Transfer, types.Withdraw} {
		rec := testRecord(kind, []byte{5, 6}, nil)
		bz, err := c.Encode(rec)
		require.NoError(t, err)
		require.Equal(t, 32+32+32+32+256+256+32+2+2, len(bz))

		got, err := c.Decode(bz)
		require.NoError(t, err)
		require.True(t, rec.Equal(got))
		require.Empty(t, got.ExtraData)
	}
}

func TestDepositExactSuffix(t *testing.T) {
	c := New(proof.Groth16, Options{})
	rec := testRecord(types.Deposit, nil, make([]byte, DepositDataSize))
	bz, err := c.Encode(rec)
	require.NoError(t, err)

	got, err := c.Decode(bz)
	require.NoError(t, err)
	require.Empty(t, got.Memo)
	require.Len(t, got.ExtraData, DepositDataSize)
}

func TestDepositShortBlock(t *testing.T) {
	c := New(proof.Groth16, Options{})
	bz, err := c.Encode(testRecord(types.Deposit, nil, make([]byte, DepositDataSize)))
	require.NoError(t, err)

	for _, cut := range []int{1, 32, DepositDataSize} {
		_, err = c.Decode(bz[:len(bz)-cut])
		require.ErrorIs(t, err, types.ErrMalformedTrailingData, "cut %d", cut)
	}

	// a transfer keeps the whole short block as memo
	tr := append([]byte{}, bz[:len(bz)-32]...)
	binary.BigEndian.PutUint16(tr[headerLen-2:], uint16(types.Transfer))
	got, err := c.Decode(tr)
	require.NoError(t, err)
	require.Len(t, got.Memo, DepositDataSize-32)
	require.Empty(t, got.ExtraData)
}

func TestAssetID(t *testing.T) {
	c := New(proof.Groth16, Options{AssetID: field.FromUint64(0x42)})
	rec := testRecord(types.Transfer, []byte("m"), nil)
	bz, err := c.Encode(rec)
	require.NoError(t, err)
	require.Equal(t, byte(0x42), bz[95])

	got, err := New(proof.Groth16, Options{}).Decode(bz)
	require.NoError(t, err)
	require.True(t, rec.Equal(got))

	// unlike substrate, a non-canonical asset id is rejected
	fr.Modulus().FillBytes(bz[64:96])
	_, err = c.Decode(bz)
	require.ErrorIs(t, err, types.ErrInvalidFieldElement)
}

func TestEncodeRejects(t *testing.T) {
	c := New(proof.Groth16, Options{})
	_, err := c.Encode(testRecord(types.Deposit, nil, make([]byte, 95)))
	require.ErrorIs(t, err, types.ErrMalformedTrailingData)

	_, err = c.Encode(testRecord(types.Transfer, nil, []byte{1}))
	require.ErrorIs(t, err, types.ErrMalformedTrailingData)

	_, err = c.Encode(testRecord(types.Kind(3), nil, nil))
	require.ErrorIs(t, err, types.ErrInvalidTxKind)

	rec := testRecord(types.Transfer, nil, nil)
	rec.TreeProof = proof.BlobProof{}
	_, err = c.Encode(rec)
	require.ErrorIs(t, err, types.ErrProofSystemMismatch)

	rec = testRecord(types.Transfer, nil, nil)
	rec.TokenID = "usdc"
	_, err = c.Encode(rec)
	require.ErrorIs(t, err, types.ErrTokenIDNotCarried)
}

func TestInvalidKindAndTruncation(t *testing.T) {
	c := New(proof.Groth16, Options{})
	bz, err := c.Encode(testRecord(types.Transfer, nil, nil))
	require.NoError(t, err)
	for n := 0; n < len(bz); n++ {
		_, err := c.Decode(bz[:n])
		require.ErrorIs(t, err, types.ErrTruncated, "prefix %d", n)
	}
	for _, code := range []uint16{3, 0xffff} {
		bad := append([]byte{}, bz...)
		binary.BigEndian.PutUint16(bad[headerLen-2:], code)
		_, err = c.Decode(bad)
		require.ErrorIs(t, err, types.ErrInvalidTxKind)
	}
}

func TestDepositCredentials(t *testing.T) {
	var pk [DepositPkSize]byte
	var sig [DepositSignatureSize]byte
	pk[0], sig[63] = 1, 2
	extra := DepositExtraData(pk, sig)
	require.Len(t, extra, DepositDataSize)

	gotPk, gotSig, err := DepositCredentials(extra)
	require.NoError(t, err)
	require.Equal(t, pk, gotPk)
	require.Equal(t, sig, gotSig)

	_, _, err = DepositCredentials(extra[1:])
	require.ErrorIs(t, err, types.ErrMalformedTrailingData)
}

func FuzzDecodeNoPanic(f *testing.F) {
	c := New(proof.Groth16, Options{})
	dep, _ := c.Encode(testRecord(types.Deposit, []byte("m"), make([]byte, DepositDataSize)))
	tr, _ := c.Encode(testRecord(types.Withdraw, []byte("m"), nil))
	f.Add(dep)
	f.Add(dep[:len(dep)-1])
	f.Add(tr)

	f.Fuzz(func(t *testing.T, data []byte) {
		rec, err := c.Decode(data)
		if err != nil {
			return
		}
		if _, err := c.Encode(rec); err != nil {
			t.Fatalf("re-encode decoded record: %v", err)
		}
	})
}
