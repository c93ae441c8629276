package utils

import (
	crand "crypto/rand"
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	_ "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	gnark_hash "github.com/consensys/gnark-crypto/hash"
)

func MiMCHasher() hash.Hash {
	return gnark_hash.MIMC_BN254.New()
}

// HashElements is the native counterpart of gnark's in-circuit MiMC over the
// same elements.
func HashElements(elems ...fr.Element) fr.Element {
	hasher := MiMCHasher()
	for i := range elems {
		if _, err := hasher.Write(elems[i].Marshal()); err != nil {
			// canonical by construction
			panic(err)
		}
	}
	var out fr.Element
	out.SetBytes(hasher.Sum(nil))
	return out
}

// SeedElement derives a field element from arbitrary bytes. Each part is cut
// into 32-byte big-endian words reduced mod r, and the words of all parts are
// hashed in order. A part's length is absorbed too, so ("ab", "c") and
// ("a", "bc") differ.
func SeedElement(parts ...[]byte) fr.Element {
	var words []fr.Element
	for _, part := range parts {
		words = append(words, fr.NewElement(uint64(len(part))))
		for len(part) > 0 {
			n := min(len(part), fr.Bytes)
			var w fr.Element
			w.SetBytes(part[:n])
			words = append(words, w)
			part = part[n:]
		}
	}
	return HashElements(words...)
}

func RandBytes(n int) []byte {
	b := make([]byte, n)
	_, _ = crand.Read(b)
	return b
}

func RandElement() fr.Element {
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		panic(err)
	}
	return e
}
