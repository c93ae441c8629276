package proof

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	groth16_bn254 "github.com/consensys/gnark/backend/groth16/bn254"
	"github.com/consensys/gnark/backend/plonk"
)

var errCommittedProof = errors.New("groth16 proof carries commitments; no fixed-form encoding")

// FromGroth16 takes the (Ar, Bs, Krs) points of a gnark BN254 Groth16 proof.
func FromGroth16(p groth16.Proof) (*Groth16Proof, error) {
	bp, ok := p.(*groth16_bn254.Proof)
	if !ok {
		return nil, fmt.Errorf("groth16 proof %T is not over BN254", p)
	}
	if len(bp.Commitments) > 0 {
		return nil, errCommittedProof
	}
	return &Groth16Proof{A: bp.Ar, B: bp.Bs, C: bp.Krs}, nil
}

// ToGroth16 rebuilds a gnark proof for groth16.Verify.
func (p *Groth16Proof) ToGroth16() groth16.Proof {
	return &groth16_bn254.Proof{Ar: p.A, Bs: p.B, Krs: p.C}
}

// FromPlonk serializes a gnark PLONK proof into its opaque form.
func FromPlonk(p plonk.Proof) (BlobProof, error) {
	bufProof := bytes.NewBuffer(nil)
	if _, err := p.WriteTo(bufProof); err != nil {
		return nil, err
	}
	return BlobProof(bufProof.Bytes()), nil
}

// ToPlonk parses the blob as a BN254 PLONK proof.
func (b BlobProof) ToPlonk() (plonk.Proof, error) {
	p := plonk.NewProof(ecc.BN254)
	if _, err := p.ReadFrom(bytes.NewReader(b)); err != nil {
		return nil, err
	}
	return p, nil
}
