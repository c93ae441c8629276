package types

import "github.com/kysee/txcodec/errs"

var (
	ErrTruncated             = errs.ErrTruncated
	ErrInvalidHeader         = errs.ErrInvalidHeader
	ErrInvalidFieldElement   = errs.ErrInvalidFieldElement
	ErrInvalidTxKind         = errs.ErrInvalidTxKind
	ErrInvalidUtf8           = errs.ErrInvalidUtf8
	ErrMalformedTrailingData = errs.ErrMalformedTrailingData
	ErrFieldTooLarge         = errs.ErrFieldTooLarge
	ErrProofSystemMismatch   = errs.ErrProofSystemMismatch
	ErrTokenIDNotCarried     = errs.ErrTokenIDNotCarried
)
