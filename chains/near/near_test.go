package near

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/proof"
	"github.com/kysee/txcodec/types"
	"github.com/stretchr/testify/require"
)

func testRecord(kind types.Kind) *types.Record {
	_, _, g1, g2 := bn254.Generators()
	return &types.Record{
		Kind:          kind,
		TransactProof: &proof.Groth16Proof{A: g1, B: g2, C: g1},
		TreeProof:     &proof.Groth16Proof{},
		RootAfter:     field.FromUint64(4),
		Delta:         field.FromUint64(3),
		OutCommitment: field.FromUint64(2),
		Nullifier:     field.FromUint64(1),
		Memo:          []byte("memo"),
		ExtraData:     []byte{9, 8, 7},
		TokenID:       "wrap.near",
	}
}

func TestRoundTrip(t *testing.T) {
	c := New(proof.Groth16)
	for _, kind := range []types.Kind{types.Deposit, types.Transfer, types.Withdraw} {
		rec := testRecord(kind)
		bz, err := c.Encode(rec)
		require.NoError(t, err)
		require.Equal(t, 32+32+4+9+32+256+32+256+1+4+4+3, len(bz))

		got, err := c.Decode(bz)
		require.NoError(t, err)
		require.True(t, rec.Equal(got), "%s\n%s", rec, got)
	}
}

func TestLittleEndianLayout(t *testing.T) {
	c := New(proof.Groth16)
	rec := testRecord(types.Withdraw)
	bz, err := c.Encode(rec)
	require.NoError(t, err)

	require.Equal(t, byte(1), bz[0])
	require.Equal(t, byte(2), bz[32])
	require.Equal(t, uint32(len(rec.TokenID)), binary.LittleEndian.Uint32(bz[64:68]))
	require.Equal(t, rec.TokenID, string(bz[68:68+len(rec.TokenID)]))
	require.Equal(t, byte(3), bz[68+len(rec.TokenID)])

	kindOff := 68 + len(rec.TokenID) + 32 + 256 + 32 + 256
	require.Equal(t, byte(types.Withdraw), bz[kindOff])
	require.Equal(t, uint32(4), binary.LittleEndian.Uint32(bz[kindOff+1:]))
}

func TestEmptyTokenAndPayloads(t *testing.T) {
	c := New(proof.Plonk)
	rec := testRecord(types.Transfer)
	rec.TokenID = ""
	rec.Memo = nil
	rec.ExtraData = nil
	rec.TransactProof = proof.BlobProof{1, 2, 3}
	rec.TreeProof = proof.BlobProof{4}

	bz, err := c.Encode(rec)
	require.NoError(t, err)
	got, err := c.Decode(bz)
	require.NoError(t, err)
	require.True(t, rec.Equal(got))
	require.Empty(t, got.TokenID)
}

func TestInvalidUtf8(t *testing.T) {
	c := New(proof.Groth16)
	rec := testRecord(types.Transfer)
	rec.TokenID = "abc"
	bz, err := c.Encode(rec)
	require.NoError(t, err)

	bz[68+1] = 0xff
	_, err = c.Decode(bz)
	require.ErrorIs(t, err, types.ErrInvalidUtf8)

	rec.TokenID = string([]byte{0xc3, 0x28})
	_, err = c.Encode(rec)
	require.ErrorIs(t, err, types.ErrInvalidUtf8)
}

func TestInvalidKind(t *testing.T) {
	c := New(proof.Groth16)
	rec := testRecord(types.Transfer)
	bz, err := c.Encode(rec)
	require.NoError(t, err)
	kindOff := 68 + len(rec.TokenID) + 32 + 256 + 32 + 256

	for _, code := range []byte{3, 0xff} {
		bad := append([]byte{}, bz...)
		bad[kindOff] = code
		_, err = c.Decode(bad)
		require.ErrorIs(t, err, types.ErrInvalidTxKind)
	}
}

func TestTruncated(t *testing.T) {
	c := New(proof.Groth16)
	rec := testRecord(types.Transfer)
	rec.ExtraData = nil
	bz, err := c.Encode(rec)
	require.NoError(t, err)

	for n := 0; n < len(bz); n++ {
		_, err := c.Decode(bz[:n])
		require.ErrorIs(t, err, types.ErrTruncated, "prefix %d", n)
	}

	// a token id length past the end of the buffer
	bad := append([]byte{}, bz...)
	binary.LittleEndian.PutUint32(bad[64:68], 1<<31)
	_, err = c.Decode(bad)
	require.ErrorIs(t, err, types.ErrTruncated)
}

func TestHash(t *testing.T) {
	c := New(proof.Groth16)
	require.Len(t, c.Hash(nil), 32)
	require.NotEqual(t, c.Hash([]byte{1}), c.Hash([]byte{2}))
}

func FuzzDecodeNoPanic(f *testing.F) {
	c := New(proof.Plonk)
	rec := testRecord(types.Deposit)
	rec.TransactProof = proof.BlobProof{1}
	rec.TreeProof = proof.BlobProof{}
	bz, _ := c.Encode(rec)
	f.Add(bz)
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		got, err := c.Decode(data)
		if err != nil {
			return
		}
		out, err := c.Encode(got)
		if err != nil {
			t.Fatalf("re-encode decoded record: %v", err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("re-encoding differs")
		}
	})
}
