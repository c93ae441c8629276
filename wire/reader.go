package wire

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/kysee/txcodec/errs"
	"github.com/kysee/txcodec/field"
)

// Reader consumes a caller-owned buffer front to back. A failed read never
// advances the cursor.
type Reader struct {
	buf   []byte
	off   int
	order field.Order
}

func NewReader(buf []byte, order field.Order) *Reader {
	return &Reader{buf: buf, order: order}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Next returns the next n bytes. The slice aliases the underlying buffer.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrTruncated, n, r.off, r.Len())
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out, nil
}

// Bytes returns a copy of the next n bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	b, err := r.Next(n)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, b...), nil
}

func (r *Reader) Uint8() (uint8, error) {
	b, err := r.Next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) Uint16() (uint16, error) {
	b, err := r.Next(2)
	if err != nil {
		return 0, err
	}
	return r.order.ByteOrder().Uint16(b), nil
}

func (r *Reader) Uint32() (uint32, error) {
	b, err := r.Next(4)
	if err != nil {
		return 0, err
	}
	return r.order.ByteOrder().Uint32(b), nil
}

// Field reads a scalar field element.
func (r *Reader) Field() (fr.Element, error) {
	if r.Len() < field.Size {
		return fr.Element{}, fmt.Errorf("%w: field element at offset %d", errs.ErrTruncated, r.off)
	}
	e, err := field.Decode(r.buf[r.off:], r.order)
	if err != nil {
		return fr.Element{}, fmt.Errorf("offset %d: %w", r.off, err)
	}
	r.off += field.Size
	return e, nil
}

// BaseField reads a curve coordinate.
func (r *Reader) BaseField() (fp.Element, error) {
	if r.Len() < field.Size {
		return fp.Element{}, fmt.Errorf("%w: base field element at offset %d", errs.ErrTruncated, r.off)
	}
	e, err := field.DecodeBase(r.buf[r.off:], r.order)
	if err != nil {
		return fp.Element{}, fmt.Errorf("offset %d: %w", r.off, err)
	}
	r.off += field.Size
	return e, nil
}

// LenPrefixed reads a 4-byte length followed by that many bytes.
func (r *Reader) LenPrefixed() ([]byte, error) {
	start := r.off
	n, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if uint64(n) > uint64(r.Len()) {
		r.off = start
		return nil, fmt.Errorf("%w: declared length %d at offset %d, have %d", errs.ErrTruncated, n, start, r.Len())
	}
	return r.Bytes(int(n))
}

// Rest returns a copy of every unread byte and exhausts the reader.
func (r *Reader) Rest() []byte {
	out := append([]byte{}, r.buf[r.off:]...)
	r.off = len(r.buf)
	return out
}
