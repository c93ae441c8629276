package wire

import (
	"fmt"

	"github.com/kysee/txcodec/errs"
)

// SplitSuffix cuts the last n bytes off block. Both halves are fresh copies.
func SplitSuffix(block []byte, n int) (prefix, suffix []byte, err error) {
	if n < 0 || len(block) < n {
		return nil, nil, fmt.Errorf("%w: need a %d-byte suffix, block is %d bytes", errs.ErrMalformedTrailingData, n, len(block))
	}
	cut := len(block) - n
	prefix = append([]byte{}, block[:cut]...)
	suffix = append([]byte{}, block[cut:]...)
	return prefix, suffix, nil
}
