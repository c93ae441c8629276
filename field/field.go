// Package field serializes BN254 field elements as fixed 32-byte words in a
// selectable byte order. Decoding rejects non-canonical integers (>= modulus).
package field

import (
	"encoding/binary"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/kysee/txcodec/errs"
)

// Size is the encoded width of every field element.
const Size = 32

type Order uint8

const (
	BigEndian Order = iota
	LittleEndian
)

func (o Order) ByteOrder() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

func (o Order) String() string {
	if o == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// element is satisfied by *fr.Element and *fp.Element.
type element[T any] interface {
	*T
	SetBytesCanonical([]byte) error
	Bytes() [Size]byte
}

func decode[T any, P element[T]](b []byte, order Order) (T, error) {
	var e T
	if len(b) < Size {
		return e, fmt.Errorf("%w: field element needs %d bytes, got %d", errs.ErrTruncated, Size, len(b))
	}
	var be [Size]byte
	copy(be[:], b[:Size])
	if order == LittleEndian {
		reverse(be[:])
	}
	if err := P(&e).SetBytesCanonical(be[:]); err != nil {
		return e, fmt.Errorf("%w: %x", errs.ErrInvalidFieldElement, b[:Size])
	}
	return e, nil
}

func encode[T any, P element[T]](e *T, order Order) [Size]byte {
	out := P(e).Bytes()
	if order == LittleEndian {
		reverse(out[:])
	}
	return out
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// Decode reads a scalar field element from the first 32 bytes of b.
func Decode(b []byte, order Order) (fr.Element, error) {
	return decode[fr.Element](b, order)
}

// Encode writes e as exactly 32 bytes.
func Encode(e *fr.Element, order Order) [Size]byte {
	return encode[fr.Element](e, order)
}

// DecodeBase reads a base field element, the coordinate type of curve points.
func DecodeBase(b []byte, order Order) (fp.Element, error) {
	return decode[fp.Element](b, order)
}

func EncodeBase(e *fp.Element, order Order) [Size]byte {
	return encode[fp.Element](e, order)
}

func FromUint64(v uint64) fr.Element {
	var e fr.Element
	e.SetUint64(v)
	return e
}

// Hex renders e as a 0x-prefixed big-endian word.
func Hex(e *fr.Element) string {
	b := Encode(e, BigEndian)
	return fmt.Sprintf("0x%x", b[:])
}
