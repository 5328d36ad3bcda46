package types

import (
	"github.com/holiman/uint256"
)

// ZeroAddress is the null principal. No balance may ever be credited to it.
const ZeroAddress = ""

// Scale is the fixed-point denominator: one whole token = 10^18 smallest units.
var Scale = uint256.MustFromDecimal("1000000000000000000")

// Account holds the token balance for a principal.
type Account struct {
	Address string       `json:"address"`
	Balance *uint256.Int `json:"balance"`
}

// NewAccount returns an account with a zero balance.
func NewAccount(addr string) *Account {
	return &Account{Address: addr, Balance: uint256.NewInt(0)}
}
