// Package proof encodes zero-knowledge proofs for the two supported proof
// systems: fixed-form Groth16 proofs over BN254 (three curve points, 256 bytes)
// and opaque length-prefixed blobs (PLONK). The system is chosen once per
// deployment and handed to the chain adapters.
package proof

import (
	"fmt"
	"strings"

	"github.com/kysee/txcodec/errs"
	"github.com/kysee/txcodec/wire"
)

// Proof is implemented by *Groth16Proof and BlobProof.
type Proof interface {
	System() System
	// Equal compares component-wise; a nil argument is never equal.
	Equal(other Proof) bool
	Clone() Proof
	String() string
}

type System uint8

const (
	Groth16 System = iota
	Plonk
)

func (s System) String() string {
	switch s {
	case Groth16:
		return "groth16"
	case Plonk:
		return "plonk"
	default:
		return fmt.Sprintf("system(%d)", uint8(s))
	}
}

func ParseSystem(name string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "groth16", "":
		return Groth16, nil
	case "plonk", "blob":
		return Plonk, nil
	default:
		return 0, fmt.Errorf("unknown proof system %q", name)
	}
}

func (s System) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *System) UnmarshalText(text []byte) error {
	v, err := ParseSystem(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Read decodes one proof of this system from r.
func (s System) Read(r *wire.Reader) (Proof, error) {
	switch s {
	case Groth16:
		p, err := readGroth16(r)
		if err != nil {
			return nil, err
		}
		return p, nil
	case Plonk:
		p, err := readBlob(r)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("read proof: unknown %s", s)
	}
}

// Write encodes p to w. p must belong to this system.
func (s System) Write(w *wire.Writer, p Proof) error {
	if p == nil {
		return fmt.Errorf("%w: nil proof for %s", errs.ErrProofSystemMismatch, s)
	}
	switch v := p.(type) {
	case *Groth16Proof:
		if s != Groth16 || v == nil {
			break
		}
		v.write(w)
		return nil
	case BlobProof:
		if s != Plonk {
			break
		}
		return v.write(w)
	}
	return fmt.Errorf("%w: %s proof for %s", errs.ErrProofSystemMismatch, p.System(), s)
}
