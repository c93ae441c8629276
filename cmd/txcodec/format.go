package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/kysee/txcodec/config"
	"github.com/urfave/cli/v2"
)

func decodeBinary(encoding, s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	switch encoding {
	case config.EncodingHex:
		if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
			s = "0x" + s
		}
		return hexutil.Decode(s)
	case config.EncodingBase58:
		b := base58.Decode(s)
		if len(b) == 0 && s != "" {
			return nil, errors.New("invalid base58 input")
		}
		return b, nil
	case config.EncodingBase64:
		return base64.StdEncoding.DecodeString(s)
	default:
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}
}

func encodeBinary(encoding string, b []byte) string {
	switch encoding {
	case config.EncodingBase58:
		return base58.Encode(b)
	case config.EncodingBase64:
		return base64.StdEncoding.EncodeToString(b)
	default:
		return hexutil.Encode(b)
	}
}

// input returns the first argument, or stdin when it is absent or "-".
func input(ctx *cli.Context) (string, error) {
	if arg := ctx.Args().First(); arg != "" && arg != "-" {
		return arg, nil
	}
	b, err := io.ReadAll(ctx.App.Reader)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func inputBinary(ctx *cli.Context) ([]byte, error) {
	s, err := input(ctx)
	if err != nil {
		return nil, err
	}
	b, err := decodeBinary(cfg.Encoding, s)
	if err != nil {
		return nil, fmt.Errorf("%s input: %w", cfg.Encoding, err)
	}
	return b, nil
}
