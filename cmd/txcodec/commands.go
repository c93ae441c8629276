package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/holiman/uint256"
	"github.com/kysee/txcodec/chains"
	"github.com/kysee/txcodec/chains/substrate"
	"github.com/kysee/txcodec/chains/waves"
	"github.com/kysee/txcodec/prover"
	"github.com/kysee/txcodec/types"
	"github.com/kysee/txcodec/utils"
	"github.com/urfave/cli/v2"
)

// callCodec is implemented by layouts that have a separate call envelope.
type callCodec interface {
	DecodeCall(data []byte) (*types.Record, error)
	EncodeCall(rec *types.Record) ([]byte, error)
}

var (
	callFlag = &cli.BoolFlag{
		Name:  "call",
		Usage: "use the call envelope (selector prefixed) where the chain has one",
	}
	toFlag = &cli.StringFlag{
		Name:     "to",
		Usage:    "target chain layout",
		Required: true,
	}
	checkFlag = &cli.BoolFlag{
		Name:  "check",
		Usage: "decode the transaction before hashing it",
	}
	kindFlag = &cli.StringFlag{
		Name:  "kind",
		Usage: "transaction kind (deposit, transfer, withdraw)",
		Value: "transfer",
	}
	amountFlag = &cli.Int64Flag{
		Name:  "amount",
		Usage: "signed amount packed into the delta",
		Value: 1,
	}
	seedFlag = &cli.StringFlag{
		Name:  "seed",
		Usage: "derive the sample note from this seed instead of randomly",
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "print the record as JSON instead of encoded bytes",
	}
)

var commandDecode = &cli.Command{
	Name:      "decode",
	Usage:     "decode transaction bytes into a JSON record",
	ArgsUsage: "[<encoded tx> | -]",
	Flags:     []cli.Flag{callFlag},
	Action: func(ctx *cli.Context) error {
		codec, err := cfg.Codec()
		if err != nil {
			return err
		}
		data, err := inputBinary(ctx)
		if err != nil {
			return err
		}
		rec, err := decode(codec, data, ctx.Bool(callFlag.Name))
		if err != nil {
			return err
		}
		log.Debug().Str("chain", codec.Name()).Int("bytes", len(data)).Str("kind", rec.Kind.String()).Msg("decoded")
		return printJSON(ctx.App.Writer, rec)
	},
}

var commandEncode = &cli.Command{
	Name:      "encode",
	Usage:     "encode a JSON record into transaction bytes",
	ArgsUsage: "[<record.json> | -]",
	Flags:     []cli.Flag{callFlag},
	Action: func(ctx *cli.Context) error {
		codec, err := cfg.Codec()
		if err != nil {
			return err
		}
		var src []byte
		if path := ctx.Args().First(); path != "" && path != "-" {
			src, err = os.ReadFile(path)
		} else {
			src, err = io.ReadAll(ctx.App.Reader)
		}
		if err != nil {
			return err
		}
		var rec types.Record
		if err := json.Unmarshal(src, &rec); err != nil {
			return fmt.Errorf("record: %w", err)
		}
		out, err := encode(codec, &rec, ctx.Bool(callFlag.Name))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(ctx.App.Writer, encodeBinary(cfg.Encoding, out))
		return err
	},
}

var commandTranscode = &cli.Command{
	Name:      "transcode",
	Usage:     "re-encode transaction bytes for another chain",
	ArgsUsage: "[<encoded tx> | -]",
	Flags:     []cli.Flag{toFlag},
	Action: func(ctx *cli.Context) error {
		from, err := cfg.Codec()
		if err != nil {
			return err
		}
		to, err := chains.New(ctx.String(toFlag.Name), cfg.ChainOptions())
		if err != nil {
			return err
		}
		data, err := inputBinary(ctx)
		if err != nil {
			return err
		}
		out, err := chains.Transcode(from, to, data)
		if err != nil {
			return err
		}
		log.Info().Str("from", from.Name()).Str("to", to.Name()).Int("in", len(data)).Int("out", len(out)).Msg("transcoded")
		_, err = fmt.Fprintln(ctx.App.Writer, encodeBinary(cfg.Encoding, out))
		return err
	},
}

var commandHash = &cli.Command{
	Name:      "hash",
	Usage:     "print the chain's transaction hash of encoded bytes",
	ArgsUsage: "[<encoded tx> | -]",
	Flags:     []cli.Flag{checkFlag},
	Action: func(ctx *cli.Context) error {
		codec, err := cfg.Codec()
		if err != nil {
			return err
		}
		data, err := inputBinary(ctx)
		if err != nil {
			return err
		}
		if ctx.Bool(checkFlag.Name) {
			if _, err := codec.Decode(data); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintln(ctx.App.Writer, encodeBinary(cfg.Encoding, codec.Hash(data)))
		return err
	},
}

var commandSample = &cli.Command{
	Name:  "sample",
	Usage: "prove a sample transaction and print its encoding",
	Description: `
Compiles the sample transaction circuits for the configured proof system, proves
a random note and encodes the record for the configured chain. Setup uses an
insecure SRS and throwaway keys; the output is for testing only.`,
	Flags: []cli.Flag{kindFlag, amountFlag, seedFlag, jsonFlag},
	Action: func(ctx *cli.Context) error {
		kind, err := types.ParseKindText(ctx.String(kindFlag.Name))
		if err != nil {
			return err
		}
		codec, err := cfg.Codec()
		if err != nil {
			return err
		}
		keys, err := prover.Setup(cfg.ProofSystem, log)
		if err != nil {
			return err
		}
		delta := types.Delta{Amount: ctx.Int64(amountFlag.Name), Energy: new(uint256.Int)}
		note := prover.NewNote()
		if ctx.IsSet(seedFlag.Name) {
			note = prover.NoteFromSeed([]byte(ctx.String(seedFlag.Name)))
		}
		rec, err := keys.Prove(kind, note, delta)
		if err != nil {
			return err
		}
		rec.Memo = []byte("sample")
		fillExtraData(codec.Name(), rec)
		if err := keys.Verify(rec); err != nil {
			return err
		}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx.App.Writer, rec)
		}
		out, err := codec.Encode(rec)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(ctx.App.Writer, encodeBinary(cfg.Encoding, out))
		return err
	},
}

var outFlag = &cli.StringFlag{
	Name:  "out",
	Usage: "directory the verifier contracts are written to",
	Value: "contracts",
}

var commandSolidity = &cli.Command{
	Name:  "solidity",
	Usage: "export Solidity verifiers for the sample circuits",
	Flags: []cli.Flag{outFlag},
	Action: func(ctx *cli.Context) error {
		keys, err := prover.Setup(cfg.ProofSystem, log)
		if err != nil {
			return err
		}
		dir := ctx.String(outFlag.Name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		files := map[string]string{
			prover.TransactCircuitName: "TransactVerifier.sol",
			prover.TreeCircuitName:     "TreeVerifier.sol",
		}
		for circuit, name := range files {
			var buf bytes.Buffer
			if err := keys.ExportSolidity(circuit, &buf); err != nil {
				return err
			}
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return err
			}
			log.Info().Str("circuit", circuit).Str("path", path).Msg("solidity verifier generated")
		}
		return nil
	},
}

var commandConfig = &cli.Command{
	Name:  "config",
	Usage: "print the effective configuration as YAML",
	Action: func(ctx *cli.Context) error {
		return cfg.Write(ctx.App.Writer)
	},
}

// fillExtraData gives rec the trailing data its chain layout requires.
func fillExtraData(chain string, rec *types.Record) {
	switch chain {
	case substrate.Name:
		if rec.Kind != types.Deposit {
			rec.ExtraData = utils.RandBytes(substrate.ExtraDataSize)
		}
	case waves.Name:
		if rec.Kind == types.Deposit {
			rec.ExtraData = utils.RandBytes(waves.DepositDataSize)
		}
	}
}

func decode(codec chains.Codec, data []byte, call bool) (*types.Record, error) {
	if cc, ok := codec.(callCodec); ok && call {
		return cc.DecodeCall(data)
	}
	return codec.Decode(data)
}

func encode(codec chains.Codec, rec *types.Record, call bool) ([]byte, error) {
	if cc, ok := codec.(callCodec); ok && call {
		return cc.EncodeCall(rec)
	}
	return codec.Encode(rec)
}

func printJSON(w io.Writer, rec *types.Record) error {
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
