package types

import (
	"fmt"
)

// Kind is the transaction type. It is a closed set; there is no unknown variant.
type Kind uint16

const (
	Deposit Kind = iota
	Transfer
	Withdraw
)

// ParseKind validates a wire code.
func ParseKind(code uint16) (Kind, error) {
	switch k := Kind(code); k {
	case Deposit, Transfer, Withdraw:
		return k, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidTxKind, code)
	}
}

func (k Kind) String() string {
	switch k {
	case Deposit:
		return "deposit"
	case Transfer:
		return "transfer"
	case Withdraw:
		return "withdraw"
	default:
		return fmt.Sprintf("kind(%d)", uint16(k))
	}
}

// MarshalText renders the kind as its four-digit code, e.g. "0001".
func (k Kind) MarshalText() ([]byte, error) {
	if _, err := ParseKind(uint16(k)); err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("%04d", uint16(k))), nil
}

// UnmarshalText accepts the four-digit code or the lower-case name.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKindText(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func ParseKindText(s string) (Kind, error) {
	switch s {
	case "0000", "deposit":
		return Deposit, nil
	case "0001", "transfer":
		return Transfer, nil
	case "0002", "withdraw":
		return Withdraw, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTxKind, s)
	}
}

// Validate reports ErrInvalidTxKind for values outside the enumeration.
func (k Kind) Validate() error {
	_, err := ParseKind(uint16(k))
	return err
}
