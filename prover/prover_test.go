package prover

import (
	"bytes"
	"io"
	"testing"

	"github.com/holiman/uint256"
	"github.com/kysee/txcodec/chains"
	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/proof"
	"github.com/kysee/txcodec/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testDelta = types.Delta{Amount: -500, Energy: uint256.NewInt(12), TxIndex: 9, PoolID: 1}

func TestProveVerifyEveryChain(t *testing.T) {
	for _, system := range []proof.System{proof.Groth16, proof.Plonk} {
		keys, err := Setup(system, zerolog.Nop())
		require.NoError(t, err)
		require.Equal(t, system, keys.System())

		rec, err := keys.Prove(types.Transfer, NewNote(), testDelta)
		require.NoError(t, err)
		require.Equal(t, system, rec.TransactProof.System())
		require.NoError(t, keys.Verify(rec))

		// proofs survive every chain layout
		for _, name := range chains.Names() {
			c, err := chains.New(name, chains.Options{System: system})
			require.NoError(t, err)

			in := rec.Clone()
			if name == "substrate" {
				in.ExtraData = make([]byte, 96)
			}
			bz, err := c.Encode(in)
			require.NoError(t, err, name)
			got, err := c.Decode(bz)
			require.NoError(t, err, name)
			require.NoError(t, keys.Verify(got), "%s/%s", system, name)
		}
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	keys, err := Setup(proof.Groth16, zerolog.Nop())
	require.NoError(t, err)
	rec, err := keys.Prove(types.Withdraw, NewNote(), testDelta)
	require.NoError(t, err)

	bad := rec.Clone()
	bad.Delta = field.FromUint64(1)
	require.Error(t, keys.Verify(bad))

	bad = rec.Clone()
	bad.RootAfter = field.FromUint64(1)
	require.Error(t, keys.Verify(bad))

	bad = rec.Clone()
	bad.TreeProof = proof.BlobProof{1}
	require.ErrorIs(t, keys.Verify(bad), types.ErrProofSystemMismatch)

	bad.TreeProof = nil
	require.ErrorIs(t, keys.Verify(bad), ErrNoProof)

	delta, err := types.UnpackDelta(&rec.Delta)
	require.NoError(t, err)
	require.Equal(t, testDelta.Amount, delta.Amount)
}

func TestNoteFromSeed(t *testing.T) {
	keys, err := Setup(proof.Groth16, zerolog.Nop())
	require.NoError(t, err)

	a, err := keys.Prove(types.Deposit, NoteFromSeed([]byte("alice")), testDelta)
	require.NoError(t, err)
	b, err := keys.Prove(types.Deposit, NoteFromSeed([]byte("alice")), testDelta)
	require.NoError(t, err)
	require.True(t, a.Nullifier.Equal(&b.Nullifier))
	require.True(t, a.RootAfter.Equal(&b.RootAfter))
	require.NoError(t, keys.Verify(b))

	note, alice := NoteFromSeed([]byte("bob")), NoteFromSeed([]byte("alice"))
	require.False(t, note.Secret.Equal(&alice.Secret))
	require.False(t, note.Secret.Equal(&note.RootBefore))
}

func TestProveRejectsInvalidInput(t *testing.T) {
	keys, err := Setup(proof.Groth16, zerolog.Nop())
	require.NoError(t, err)

	_, err = keys.Prove(types.Kind(7), NewNote(), testDelta)
	require.ErrorIs(t, err, types.ErrInvalidTxKind)

	_, err = keys.Prove(types.Deposit, NewNote(), types.Delta{PoolID: 1 << 24})
	require.Error(t, err)
}

func TestExportSolidity(t *testing.T) {
	for _, system := range []proof.System{proof.Groth16, proof.Plonk} {
		keys, err := Setup(system, zerolog.Nop())
		require.NoError(t, err)
		for _, name := range []string{TransactCircuitName, TreeCircuitName} {
			var buf bytes.Buffer
			require.NoError(t, keys.ExportSolidity(name, &buf))
			require.Contains(t, buf.String(), "pragma solidity")
		}
		require.Error(t, keys.ExportSolidity("vote", io.Discard))
	}
}

func TestPublicInputs(t *testing.T) {
	rec := &types.Record{
		Nullifier:     field.FromUint64(1),
		OutCommitment: field.FromUint64(2),
		Delta:         field.FromUint64(3),
		RootAfter:     field.FromUint64(4),
	}
	in := PublicInputs(rec)
	require.Len(t, in.Transact, 3)
	require.Equal(t, in.Transact[1], in.Tree[0])
	require.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000004", in.Tree[1])
}
