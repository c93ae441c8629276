package proof

import (
	"bytes"
	"fmt"

	"github.com/kysee/txcodec/wire"
)

// BlobProof is the opaque form: a length-prefixed byte string whose contents
// are never interpreted.
type BlobProof []byte

func (b BlobProof) System() System {
	return Plonk
}

func (b BlobProof) Equal(other Proof) bool {
	o, ok := other.(BlobProof)
	return ok && bytes.Equal(b, o)
}

func (b BlobProof) Clone() Proof {
	return append(BlobProof{}, b...)
}

func (b BlobProof) String() string {
	const show = 16
	if len(b) <= show {
		return fmt.Sprintf("BlobProof(%d bytes: %x)", len(b), []byte(b))
	}
	return fmt.Sprintf("BlobProof(%d bytes: %x...)", len(b), []byte(b[:show]))
}

func (b BlobProof) write(w *wire.Writer) error {
	return w.Len32("blob proof", b)
}

func readBlob(r *wire.Reader) (BlobProof, error) {
	b, err := r.LenPrefixed()
	if err != nil {
		return nil, fmt.Errorf("blob proof: %w", err)
	}
	return BlobProof(b), nil
}
