// Package config loads the codec deployment settings from YAML.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/kysee/txcodec/chains"
	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/proof"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Binary encodings accepted for transaction bytes on the command line.
const (
	EncodingHex    = "hex"
	EncodingBase58 = "base58"
	EncodingBase64 = "base64"
)

// AssetID encodes to YAML as a 0x-prefixed big-endian field element.
type AssetID fr.Element

func (a AssetID) MarshalYAML() (any, error) {
	e := fr.Element(a)
	return field.Hex(&e), nil
}

func (a *AssetID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Wrap(fmt.Errorf("asset_id must be a scalar"), "unmarshal yaml")
	}
	e, err := ParseAssetID(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*a = AssetID(e)
	return nil
}

// ParseAssetID accepts a 0x-prefixed big-endian hex number below the field
// modulus. Shorter inputs are left padded.
func ParseAssetID(s string) (fr.Element, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return fr.Element{}, errors.Wrap(err, "asset id")
	}
	if len(b) > field.Size {
		return fr.Element{}, errors.Errorf("asset id: %d bytes, want at most %d", len(b), field.Size)
	}
	var word [field.Size]byte
	copy(word[field.Size-len(b):], b)
	e, err := field.Decode(word[:], field.BigEndian)
	if err != nil {
		return fr.Element{}, errors.Wrap(err, "asset id")
	}
	return e, nil
}

type Config struct {
	Chain       string       `yaml:"chain"`
	ProofSystem proof.System `yaml:"proof_system"`
	AssetID     AssetID      `yaml:"asset_id"`
	LogLevel    string       `yaml:"log_level"`
	Encoding    string       `yaml:"encoding"`
}

func Default() *Config {
	return &Config{
		Chain:       "evm",
		ProofSystem: proof.Groth16,
		LogLevel:    zerolog.InfoLevel.String(),
		Encoding:    EncodingHex,
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func (c *Config) Validate() error {
	if _, err := chains.New(c.Chain, c.ChainOptions()); err != nil {
		return errors.Wrap(err, "chain")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	switch c.Encoding {
	case EncodingHex, EncodingBase58, EncodingBase64:
	default:
		return errors.Errorf("encoding: unknown %q", c.Encoding)
	}
	return nil
}

func (c *Config) ChainOptions() chains.Options {
	return chains.Options{System: c.ProofSystem, AssetID: fr.Element(c.AssetID)}
}

// Codec builds the configured chain adapter.
func (c *Config) Codec() (chains.Codec, error) {
	return chains.New(c.Chain, c.ChainOptions())
}

func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
