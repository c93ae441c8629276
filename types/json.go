package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/proof"
)

type recordJSON struct {
	Kind          Kind          `json:"kind"`
	Nullifier     hexutil.Bytes `json:"nullifier"`
	OutCommitment hexutil.Bytes `json:"out_commitment"`
	Delta         hexutil.Bytes `json:"delta"`
	RootAfter     hexutil.Bytes `json:"root_after"`
	TransactProof *proofJSON    `json:"transact_proof"`
	TreeProof     *proofJSON    `json:"tree_proof"`
	Memo          hexutil.Bytes `json:"memo"`
	ExtraData     hexutil.Bytes `json:"extra_data"`
	TokenID       string        `json:"token_id,omitempty"`
}

// proofJSON carries exactly one of the two forms.
type proofJSON struct {
	Groth16 []hexutil.Bytes `json:"groth16,omitempty"`
	Plonk   *hexutil.Bytes  `json:"plonk,omitempty"`
}

func elementJSON(e *fr.Element) hexutil.Bytes {
	b := field.Encode(e, field.BigEndian)
	return b[:]
}

func elementFromJSON(name string, b hexutil.Bytes) (fr.Element, error) {
	if len(b) != field.Size {
		return fr.Element{}, fmt.Errorf("%s: want %d bytes, got %d", name, field.Size, len(b))
	}
	e, err := field.Decode(b, field.BigEndian)
	if err != nil {
		return fr.Element{}, fmt.Errorf("%s: %w", name, err)
	}
	return e, nil
}

func toProofJSON(p proof.Proof) (*proofJSON, error) {
	switch v := p.(type) {
	case nil:
		return nil, nil
	case *proof.Groth16Proof:
		out := &proofJSON{}
		for _, c := range v.Coordinates() {
			b := field.EncodeBase(c, field.BigEndian)
			out.Groth16 = append(out.Groth16, b[:])
		}
		return out, nil
	case proof.BlobProof:
		b := hexutil.Bytes(v)
		return &proofJSON{Plonk: &b}, nil
	default:
		return nil, fmt.Errorf("unsupported proof type %T", p)
	}
}

func (pj *proofJSON) proof(name string) (proof.Proof, error) {
	if pj == nil {
		return nil, nil
	}
	switch {
	case pj.Plonk != nil && pj.Groth16 == nil:
		return proof.BlobProof(*pj.Plonk), nil
	case pj.Groth16 != nil && pj.Plonk == nil:
		if len(pj.Groth16) != 8 {
			return nil, fmt.Errorf("%s: groth16 proof needs 8 coordinates, got %d", name, len(pj.Groth16))
		}
		p := &proof.Groth16Proof{}
		for i, c := range p.Coordinates() {
			if len(pj.Groth16[i]) != field.Size {
				return nil, fmt.Errorf("%s: coordinate %d: want %d bytes", name, i, field.Size)
			}
			e, err := field.DecodeBase(pj.Groth16[i], field.BigEndian)
			if err != nil {
				return nil, fmt.Errorf("%s: coordinate %d: %w", name, i, err)
			}
			*c = e
		}
		return p, nil
	default:
		return nil, errors.New(name + ": proof must hold exactly one of groth16 or plonk")
	}
}

func (r *Record) MarshalJSON() ([]byte, error) {
	tp, err := toProofJSON(r.TransactProof)
	if err != nil {
		return nil, err
	}
	tr, err := toProofJSON(r.TreeProof)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&recordJSON{
		Kind:          r.Kind,
		Nullifier:     elementJSON(&r.Nullifier),
		OutCommitment: elementJSON(&r.OutCommitment),
		Delta:         elementJSON(&r.Delta),
		RootAfter:     elementJSON(&r.RootAfter),
		TransactProof: tp,
		TreeProof:     tr,
		Memo:          r.Memo,
		ExtraData:     r.ExtraData,
		TokenID:       r.TokenID,
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var (
		out Record
		err error
	)
	out.Kind = raw.Kind
	if out.Nullifier, err = elementFromJSON("nullifier", raw.Nullifier); err != nil {
		return err
	}
	if out.OutCommitment, err = elementFromJSON("out_commitment", raw.OutCommitment); err != nil {
		return err
	}
	if out.Delta, err = elementFromJSON("delta", raw.Delta); err != nil {
		return err
	}
	if out.RootAfter, err = elementFromJSON("root_after", raw.RootAfter); err != nil {
		return err
	}
	if out.TransactProof, err = raw.TransactProof.proof("transact_proof"); err != nil {
		return err
	}
	if out.TreeProof, err = raw.TreeProof.proof("tree_proof"); err != nil {
		return err
	}
	out.Memo = []byte(raw.Memo)
	out.ExtraData = []byte(raw.ExtraData)
	out.TokenID = raw.TokenID
	*r = out
	return nil
}
