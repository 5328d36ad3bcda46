package utils

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Uint256ToString renders an amount as a decimal string for store payloads
// and event/log output. A nil amount renders as "0".
func Uint256ToString(v *uint256.Int) string {
	if v == nil {
		return "0"
	}
	return v.Dec()
}

// Uint256FromString parses a decimal amount string produced by Uint256ToString.
func Uint256FromString(s string) (*uint256.Int, error) {
	if s == "" {
		return uint256.NewInt(0), nil
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount string %q: %w", s, err)
	}
	return v, nil
}
