package exchange

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tmalone1250/mtk-sale/types"
)

func newPricingExchange(t *testing.T, buyPrice, sellPrice uint64) *Exchange {
	t.Helper()
	ts := newTestStack(t, 1_000_000)
	exch, err := NewExchange(exchangeAddr, ts.ledger, ts.vault, ts.stores, ts.eventBus,
		uint256.NewInt(buyPrice), uint256.NewInt(sellPrice), ownerAddr)
	require.NoError(t, err)
	return exch
}

func TestTokensForPayment(t *testing.T) {
	exch := newPricingExchange(t, 100, 80)

	cases := []struct {
		name        string
		paid        uint64
		wholeTokens uint64
	}{
		{"exact multiple", 300, 3},
		{"floored remainder", 350, 3},
		{"one unit short of a token", 99, 0},
		{"exactly one token", 100, 1},
		{"one over", 101, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := exch.tokensForPayment(uint256.NewInt(tc.paid))
			require.NoError(t, err)
			expected := new(uint256.Int).Mul(uint256.NewInt(tc.wholeTokens), types.Scale)
			assert.Equal(t, 0, tokens.Cmp(expected), "paid %d: got %s", tc.paid, tokens.Dec())
		})
	}
}

func TestTokensForPaymentOverflow(t *testing.T) {
	exch := newPricingExchange(t, 1, 1)

	// floor(max/1) * Scale cannot fit in 256 bits
	_, err := exch.tokensForPayment(new(uint256.Int).SetAllOne())
	assert.Error(t, err)
}

func TestCurrencyForTokens(t *testing.T) {
	exch := newPricingExchange(t, 100, 80)

	cases := []struct {
		name   string
		tokens *uint256.Int
		owed   uint64
	}{
		{"whole tokens", new(uint256.Int).Mul(uint256.NewInt(5), types.Scale), 400},
		{"half token floors", new(uint256.Int).Div(types.Scale, uint256.NewInt(2)), 40},
		{"dust floors to zero", uint256.NewInt(1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			owed, err := exch.currencyForTokens(tc.tokens)
			require.NoError(t, err)
			assert.Equal(t, tc.owed, owed.Uint64())
		})
	}
}

func TestCurrencyForTokensOverflow(t *testing.T) {
	exch := newPricingExchange(t, 100, 80)

	_, err := exch.currencyForTokens(new(uint256.Int).SetAllOne())
	assert.Error(t, err)
}

func TestNewExchangeValidation(t *testing.T) {
	ts := newTestStack(t, 1_000_000)

	_, err := NewExchange(types.ZeroAddress, ts.ledger, ts.vault, ts.stores, ts.eventBus,
		uint256.NewInt(100), uint256.NewInt(80), ownerAddr)
	assert.Error(t, err, "zero address must be rejected")

	_, err = NewExchange(exchangeAddr, ts.ledger, ts.vault, ts.stores, ts.eventBus,
		uint256.NewInt(0), uint256.NewInt(80), ownerAddr)
	assert.Error(t, err, "zero buy price must be rejected")

	_, err = NewExchange(exchangeAddr, ts.ledger, ts.vault, ts.stores, ts.eventBus,
		uint256.NewInt(100), nil, ownerAddr)
	assert.Error(t, err, "nil sell price must be rejected")
}
