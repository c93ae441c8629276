// Package chains selects a chain adapter by name.
package chains

import (
	"errors"
	"fmt"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/kysee/txcodec/chains/evm"
	"github.com/kysee/txcodec/chains/near"
	"github.com/kysee/txcodec/chains/substrate"
	"github.com/kysee/txcodec/chains/waves"
	"github.com/kysee/txcodec/proof"
	"github.com/kysee/txcodec/types"
)

var ErrUnknownChain = errors.New("txcodec: unknown chain")

// Codec converts records to and from one chain's bytes. Implementations are
// stateless and safe for concurrent use.
type Codec interface {
	Name() string
	System() proof.System
	Decode(data []byte) (*types.Record, error)
	Encode(rec *types.Record) ([]byte, error)
	Hash(encoded []byte) []byte
}

type Options struct {
	System proof.System
	// AssetID is only used by chains whose layout carries an asset id word.
	AssetID fr.Element
}

var constructors = map[string]func(Options) Codec{
	evm.Name: func(o Options) Codec {
		return evm.New(o.System)
	},
	near.Name: func(o Options) Codec {
		return near.New(o.System)
	},
	substrate.Name: func(o Options) Codec {
		return substrate.New(o.System, substrate.Options{AssetID: o.AssetID})
	},
	waves.Name: func(o Options) Codec {
		return waves.New(o.System, waves.Options{AssetID: o.AssetID})
	},
}

func New(name string, opts Options) (Codec, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChain, name)
	}
	return ctor(opts), nil
}

// Names returns the supported chain names, sorted.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Transcode decodes data with from and re-encodes the record with to. The
// record must also satisfy the target's rules, e.g. its extra data split.
func Transcode(from, to Codec, data []byte) ([]byte, error) {
	rec, err := from.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", from.Name(), err)
	}
	out, err := to.Encode(rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", to.Name(), err)
	}
	return out, nil
}
