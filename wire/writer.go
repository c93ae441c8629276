package wire

import (
	"bytes"
	"fmt"
	"math"

	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/kysee/txcodec/errs"
	"github.com/kysee/txcodec/field"
)

type Writer struct {
	buf   bytes.Buffer
	order field.Order
}

func NewWriter(order field.Order) *Writer {
	return &Writer{order: order}
}

func (w *Writer) Write(b []byte) {
	w.buf.Write(b)
}

func (w *Writer) Uint8(v uint8) {
	w.buf.WriteByte(v)
}

func (w *Writer) Uint16(v uint16) {
	var b [2]byte
	w.order.ByteOrder().PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) Uint32(v uint32) {
	var b [4]byte
	w.order.ByteOrder().PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) Field(e *fr.Element) {
	b := field.Encode(e, w.order)
	w.buf.Write(b[:])
}

func (w *Writer) BaseField(e *fp.Element) {
	b := field.EncodeBase(e, w.order)
	w.buf.Write(b[:])
}

// Len16 writes a 2-byte length prefix for b, then b.
func (w *Writer) Len16(name string, b []byte) error {
	if len(b) > math.MaxUint16 {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", errs.ErrFieldTooLarge, name, len(b), math.MaxUint16)
	}
	w.Uint16(uint16(len(b)))
	w.Write(b)
	return nil
}

// Len32 writes a 4-byte length prefix for b, then b.
func (w *Writer) Len32(name string, b []byte) error {
	if uint64(len(b)) > math.MaxUint32 {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", errs.ErrFieldTooLarge, name, len(b), uint64(math.MaxUint32))
	}
	w.Uint32(uint32(len(b)))
	w.Write(b)
	return nil
}

func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}
