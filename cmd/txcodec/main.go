// Command txcodec converts zk transactions between chain layouts.
package main

import (
	"fmt"
	"os"

	gnarklog "github.com/consensys/gnark/logger"
	"github.com/kysee/txcodec/chains"
	"github.com/kysee/txcodec/config"
	"github.com/kysee/txcodec/proof"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var (
	cfg = config.Default()
	log = zerolog.New(os.Stderr)
)

// Commonly used command line flags.
var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML configuration file",
	}
	chainFlag = &cli.StringFlag{
		Name:  "chain",
		Usage: fmt.Sprintf("chain layout, one of %v", chains.Names()),
	}
	systemFlag = &cli.StringFlag{
		Name:  "proof-system",
		Usage: "proof system of the deployment (groth16 or plonk)",
	}
	assetIDFlag = &cli.StringFlag{
		Name:  "asset-id",
		Usage: "asset id written by the substrate and waves encoders (hex)",
	}
	encodingFlag = &cli.StringFlag{
		Name:  "encoding",
		Usage: "encoding of transaction bytes (hex, base58 or base64)",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "log level (trace, debug, info, warn, error)",
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "txcodec",
		Usage: "encode and decode zk transactions for evm, near, substrate and waves",
		Flags: []cli.Flag{
			configFlag,
			chainFlag,
			systemFlag,
			assetIDFlag,
			encodingFlag,
			logLevelFlag,
		},
		Before: setup,
		Commands: []*cli.Command{
			commandDecode,
			commandEncode,
			commandTranscode,
			commandHash,
			commandSample,
			commandSolidity,
			commandConfig,
		},
	}
}

// setup loads the config file, applies flag overrides and configures logging.
func setup(ctx *cli.Context) error {
	cfg = config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if ctx.IsSet(chainFlag.Name) {
		cfg.Chain = ctx.String(chainFlag.Name)
	}
	if ctx.IsSet(systemFlag.Name) {
		system, err := proof.ParseSystem(ctx.String(systemFlag.Name))
		if err != nil {
			return err
		}
		cfg.ProofSystem = system
	}
	if ctx.IsSet(assetIDFlag.Name) {
		id, err := config.ParseAssetID(ctx.String(assetIDFlag.Name))
		if err != nil {
			return err
		}
		cfg.AssetID = config.AssetID(id)
	}
	if ctx.IsSet(encodingFlag.Name) {
		cfg.Encoding = ctx.String(encodingFlag.Name)
	}
	if ctx.IsSet(logLevelFlag.Name) {
		cfg.LogLevel = ctx.String(logLevelFlag.Name)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log = zerolog.New(zerolog.ConsoleWriter{Out: ctx.App.ErrWriter}).
		Level(cfg.Level()).With().Timestamp().Logger()
	gnarklog.Set(log)
	log.Debug().Str("chain", cfg.Chain).Str("proof_system", cfg.ProofSystem.String()).
		Str("encoding", cfg.Encoding).Msg("configured")
	return nil
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
