package interfaces

import (
	"github.com/holiman/uint256"
)

// TokenLedger defines the ledger surface the exchange depends on
type TokenLedger interface {
	// Mint creates amount new units for to; caller must hold the minter role
	Mint(caller, to string, amount *uint256.Int) error
	// Transfer moves amount from the caller's balance to to
	Transfer(caller, to string, amount *uint256.Int) error
	// TransferFrom moves amount from from to to, consuming the caller's allowance
	TransferFrom(caller, from, to string, amount *uint256.Int) error
	// BalanceOf returns the balance for the given principal (zero when unknown)
	BalanceOf(addr string) (*uint256.Int, error)
	// TotalSupply returns the current total supply
	TotalSupply() (*uint256.Int, error)
	// MaxSupply returns the immutable supply cap
	MaxSupply() (*uint256.Int, error)
}
