package proof

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/kysee/txcodec/errs"
	"github.com/kysee/txcodec/field"
	"github.com/kysee/txcodec/wire"
)

// Groth16Size is the encoded width of a Groth16Proof: 8 coordinates.
const Groth16Size = 8 * field.Size

// Groth16Proof is the fixed-form proof. Points are taken as-is; on-curve
// membership is the verifier's concern.
type Groth16Proof struct {
	A bn254.G1Affine
	B bn254.G2Affine
	C bn254.G1Affine
}

func (p *Groth16Proof) System() System {
	return Groth16
}

// Coordinates lists pointers to the eight coordinates in wire order:
// a.x, a.y, b.x0, b.x1, b.y0, b.y1, c.x, c.y.
func (p *Groth16Proof) Coordinates() [8]*fp.Element {
	return [8]*fp.Element{
		&p.A.X, &p.A.Y,
		&p.B.X.A0, &p.B.X.A1,
		&p.B.Y.A0, &p.B.Y.A1,
		&p.C.X, &p.C.Y,
	}
}

func (p *Groth16Proof) Equal(other Proof) bool {
	o, ok := other.(*Groth16Proof)
	if !ok || p == nil || o == nil {
		return ok && p == nil && o == nil
	}
	mine, theirs := p.Coordinates(), o.Coordinates()
	for i := range mine {
		if !mine[i].Equal(theirs[i]) {
			return false
		}
	}
	return true
}

func (p *Groth16Proof) Clone() Proof {
	if p == nil {
		return (*Groth16Proof)(nil)
	}
	cp := &Groth16Proof{}
	src, dst := p.Coordinates(), cp.Coordinates()
	for i := range src {
		dst[i].Set(src[i])
	}
	return cp
}

func (p *Groth16Proof) String() string {
	if p == nil {
		return "Groth16Proof(nil)"
	}
	c := p.Coordinates()
	return fmt.Sprintf("Groth16Proof{a: (%s, %s), b: ((%s, %s), (%s, %s)), c: (%s, %s)}",
		c[0].String(), c[1].String(),
		c[2].String(), c[3].String(), c[4].String(), c[5].String(),
		c[6].String(), c[7].String())
}

func (p *Groth16Proof) write(w *wire.Writer) {
	for _, c := range p.Coordinates() {
		w.BaseField(c)
	}
}

func readGroth16(r *wire.Reader) (*Groth16Proof, error) {
	if r.Len() < Groth16Size {
		return nil, fmt.Errorf("%w: groth16 proof needs %d bytes, have %d", errs.ErrTruncated, Groth16Size, r.Len())
	}
	start := r.Offset()
	p := &Groth16Proof{}
	for i, c := range p.Coordinates() {
		e, err := r.BaseField()
		if err != nil {
			return nil, fmt.Errorf("groth16 proof at offset %d, coordinate %d: %w", start, i, err)
		}
		*c = e
	}
	return p, nil
}
