package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kysee/txcodec/chains"
	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/proof"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, zerolog.InfoLevel, cfg.Level())

	c, err := cfg.Codec()
	require.NoError(t, err)
	require.Equal(t, "evm", c.Name())
	require.Equal(t, proof.Groth16, c.System())
}

func TestLoad(t *testing.T) {
	src := `
chain: substrate
proof_system: plonk
asset_id: 0x2a
log_level: debug
encoding: base58
`
	path := filepath.Join(t.TempDir(), "txcodec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "substrate", cfg.Chain)
	require.Equal(t, proof.Plonk, cfg.ProofSystem)
	require.Equal(t, zerolog.DebugLevel, cfg.Level())
	require.Equal(t, EncodingBase58, cfg.Encoding)

	want := field.FromUint64(42)
	opts := cfg.ChainOptions()
	require.True(t, opts.AssetID.Equal(&want))
	require.Equal(t, proof.Plonk, opts.System)
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader("chain: near\n"))
	require.NoError(t, err)
	require.Equal(t, "near", cfg.Chain)
	require.Equal(t, EncodingHex, cfg.Encoding)

	cfg, err = LoadFromReader(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadRejects(t *testing.T) {
	for _, src := range []string{
		"chain: solana\n",
		"proof_system: stark\n",
		"encoding: base32\n",
		"log_level: loud\n",
		"unknown_key: 1\n",
		"asset_id: [1, 2]\n",
		"asset_id: 0xzz\n",
		// the field modulus
		"asset_id: 0x30644e72e131a029b85045b68181585d2833e84879b9709143e1f593f0000001\n",
	} {
		_, err := LoadFromReader(strings.NewReader(src))
		require.Error(t, err, src)
	}

	_, err := LoadFromReader(strings.NewReader("chain: solana\n"))
	require.ErrorIs(t, err, chains.ErrUnknownChain)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.True(t, os.IsNotExist(err))
}

func TestWriteLoad(t *testing.T) {
	cfg := Default()
	cfg.Chain = "waves"
	cfg.AssetID = AssetID(field.FromUint64(7))

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))
	require.Contains(t, buf.String(), "proof_system: groth16")

	got, err := LoadFromReader(&buf)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
