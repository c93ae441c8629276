// Package errs holds the closed error taxonomy shared by every codec package.
// Decoders and encoders wrap these sentinels with context; callers match them
// with errors.Is.
package errs

import "errors"

var (
	// ErrTruncated indicates fewer bytes than a fixed-width field or a declared length requires.
	ErrTruncated = errors.New("txcodec: truncated input")

	// ErrInvalidHeader indicates a selector that does not match the chain's constant.
	ErrInvalidHeader = errors.New("txcodec: invalid header")

	// ErrInvalidFieldElement indicates a 32-byte integer on or above the field modulus.
	ErrInvalidFieldElement = errors.New("txcodec: invalid field element")

	// ErrInvalidTxKind indicates a kind code outside {0, 1, 2}.
	ErrInvalidTxKind = errors.New("txcodec: invalid tx kind")

	// ErrInvalidUtf8 indicates a token id that is not valid UTF-8.
	ErrInvalidUtf8 = errors.New("txcodec: invalid utf8")

	// ErrMalformedTrailingData indicates a trailing block that does not fit the
	// chain's positional suffix rule.
	ErrMalformedTrailingData = errors.New("txcodec: malformed trailing data")

	// ErrFieldTooLarge indicates a variable-length field that overflows its length prefix.
	ErrFieldTooLarge = errors.New("txcodec: field too large")

	// ErrProofSystemMismatch indicates a proof variant other than the configured proof system.
	ErrProofSystemMismatch = errors.New("txcodec: proof system mismatch")

	// ErrTokenIDNotCarried indicates a token id handed to a layout that has no place for it.
	ErrTokenIDNotCarried = errors.New("txcodec: token id not carried by layout")
)
