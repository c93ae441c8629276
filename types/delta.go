package types

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/holiman/uint256"
	"github.com/kysee/txcodec/field"
)

// Delta packing, most significant first within the big-endian word:
//
//	reserved   1 byte (zero)
//	amount     8 bytes, two's complement
//	energy    14 bytes
//	txIndex    6 bytes
//	poolId     3 bytes
const (
	poolIDBits  = 24
	txIndexBits = 48
	energyBits  = 112
	amountBits  = 64

	txIndexShift = poolIDBits
	energyShift  = txIndexShift + txIndexBits
	amountShift  = energyShift + energyBits
	reserveShift = amountShift + amountBits
)

type Delta struct {
	Amount  int64
	Energy  *uint256.Int
	TxIndex uint64
	PoolID  uint32
}

func mask(bits uint) *uint256.Int {
	one := uint256.NewInt(1)
	return new(uint256.Int).Sub(new(uint256.Int).Lsh(one, bits), one)
}

func bitsAt(word *uint256.Int, shift, bits uint) *uint256.Int {
	v := new(uint256.Int).Rsh(word, shift)
	return v.And(v, mask(bits))
}

// UnpackDelta splits the delta field element. The reserved byte must be zero.
func UnpackDelta(e *fr.Element) (Delta, error) {
	be := field.Encode(e, field.BigEndian)
	word := new(uint256.Int).SetBytes32(be[:])
	if !new(uint256.Int).Rsh(word, reserveShift).IsZero() {
		return Delta{}, fmt.Errorf("delta %s: reserved byte is not zero", word.Hex())
	}
	return Delta{
		Amount:  int64(bitsAt(word, amountShift, amountBits).Uint64()),
		Energy:  bitsAt(word, energyShift, energyBits),
		TxIndex: bitsAt(word, txIndexShift, txIndexBits).Uint64(),
		PoolID:  uint32(bitsAt(word, 0, poolIDBits).Uint64()),
	}, nil
}

// Pack rebuilds the delta field element.
func (d Delta) Pack() (fr.Element, error) {
	energy := d.Energy
	if energy == nil {
		energy = new(uint256.Int)
	}
	if energy.BitLen() > energyBits {
		return fr.Element{}, fmt.Errorf("delta energy %s exceeds %d bits", energy.Dec(), energyBits)
	}
	if d.TxIndex>>txIndexBits != 0 {
		return fr.Element{}, fmt.Errorf("delta tx index %d exceeds %d bits", d.TxIndex, txIndexBits)
	}
	if d.PoolID>>poolIDBits != 0 {
		return fr.Element{}, fmt.Errorf("delta pool id %d exceeds %d bits", d.PoolID, poolIDBits)
	}

	word := new(uint256.Int).Lsh(uint256.NewInt(uint64(d.Amount)), amountShift)
	word.Or(word, new(uint256.Int).Lsh(energy, energyShift))
	word.Or(word, new(uint256.Int).Lsh(uint256.NewInt(d.TxIndex), txIndexShift))
	word.Or(word, uint256.NewInt(uint64(d.PoolID)))

	be := word.Bytes32()
	return field.Decode(be[:], field.BigEndian)
}
