package exchange

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/holiman/uint256"

	"github.com/Tmalone1250/mtk-sale/currency"
	ledgererr "github.com/Tmalone1250/mtk-sale/errors"
	"github.com/Tmalone1250/mtk-sale/events"
	"github.com/Tmalone1250/mtk-sale/ledger"
	"github.com/Tmalone1250/mtk-sale/roles"
	"github.com/Tmalone1250/mtk-sale/store"
	"github.com/Tmalone1250/mtk-sale/types"
)

const (
	exchangeAddr = "addr_exchange"
	ownerAddr    = "addr_owner"
	minterAddr   = "addr_minter"
	aliceAddr    = "addr_alice"
	bobAddr      = "addr_bob"
)

type testStack struct {
	stores   *store.Stores
	ledger   *ledger.Ledger
	vault    *currency.Vault
	exchange *Exchange
	eventBus *events.EventBus
}

// newTestStack wires a full deployment: a capped ledger, a funded vault and
// an exchange holding the minter role, at 100 currency per token bought and
// 80 per token sold back.
func newTestStack(t *testing.T, maxWholeTokens uint64) *testStack {
	t.Helper()

	factory := store.NewStoreFactory()
	stores, err := factory.CreateStoreWithProvider(&store.StoreConfig{
		Type:      store.LevelDBStoreType,
		Directory: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	t.Cleanup(stores.MustClose)

	eventBus := events.NewEventBus()
	permissions := roles.NewPermissionStore(stores, eventBus, time.Hour)
	for _, grant := range []struct{ role, principal string }{
		{types.RoleMinter, minterAddr},
		{types.RoleMinter, exchangeAddr},
	} {
		if err := stores.Role.Grant(grant.role, grant.principal); err != nil {
			t.Fatalf("Failed to grant %s: %v", grant.role, err)
		}
	}

	maxSupply := new(uint256.Int).Mul(uint256.NewInt(maxWholeTokens), types.Scale)
	led, err := ledger.NewLedger("Mint Token", "MTK", maxSupply, stores, permissions, eventBus)
	if err != nil {
		t.Fatalf("Failed to create ledger: %v", err)
	}

	vault := currency.NewVault(stores)
	exch, err := NewExchange(exchangeAddr, led, vault, stores, eventBus, uint256.NewInt(100), uint256.NewInt(80), ownerAddr)
	if err != nil {
		t.Fatalf("Failed to create exchange: %v", err)
	}

	return &testStack{stores: stores, ledger: led, vault: vault, exchange: exch, eventBus: eventBus}
}

func wholeTokens(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), types.Scale)
}

func (ts *testStack) fund(t *testing.T, principal string, amount uint64) {
	t.Helper()
	if err := ts.vault.Deposit(principal, uint256.NewInt(amount)); err != nil {
		t.Fatalf("Failed to fund %s: %v", principal, err)
	}
}

func (ts *testStack) tokenBalance(t *testing.T, addr string) *uint256.Int {
	t.Helper()
	balance, err := ts.ledger.BalanceOf(addr)
	if err != nil {
		t.Fatalf("Failed to read token balance: %v", err)
	}
	return balance
}

func (ts *testStack) currencyBalance(t *testing.T, addr string) *uint256.Int {
	t.Helper()
	balance, err := ts.vault.BalanceOf(addr)
	if err != nil {
		t.Fatalf("Failed to read currency balance: %v", err)
	}
	return balance
}

func TestBuyMintsWhenReserveEmpty(t *testing.T) {
	ts := newTestStack(t, 1_000_000)
	ts.fund(t, aliceAddr, 350)

	// 350 at 100 per token buys 3 whole tokens; the 50 remainder stays
	// with the exchange, unrefunded
	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(350)); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	if got := ts.tokenBalance(t, aliceAddr); got.Cmp(wholeTokens(3)) != 0 {
		t.Errorf("Buyer tokens = %s, expected 3 whole tokens", got.Dec())
	}
	if got := ts.currencyBalance(t, aliceAddr); !got.IsZero() {
		t.Errorf("Buyer currency = %s, expected full 350 collected", got.Dec())
	}
	if got := ts.currencyBalance(t, exchangeAddr); got.Uint64() != 350 {
		t.Errorf("Treasury = %s, expected 350 including the remainder", got.Dec())
	}
	supply, _ := ts.ledger.TotalSupply()
	if supply.Cmp(wholeTokens(3)) != 0 {
		t.Errorf("Supply = %s, expected 3 whole tokens minted", supply.Dec())
	}
}

func TestBuyPrefersReserve(t *testing.T) {
	ts := newTestStack(t, 1_000_000)
	ts.fund(t, aliceAddr, 200)

	// seed the reserve with exactly the demand
	if err := ts.ledger.Mint(minterAddr, exchangeAddr, wholeTokens(2)); err != nil {
		t.Fatalf("Failed to seed reserve: %v", err)
	}
	supplyBefore, _ := ts.ledger.TotalSupply()

	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(200)); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	supplyAfter, _ := ts.ledger.TotalSupply()
	if supplyAfter.Cmp(supplyBefore) != 0 {
		t.Errorf("Supply grew from %s to %s on a fully reserved buy", supplyBefore.Dec(), supplyAfter.Dec())
	}
	if got := ts.tokenBalance(t, exchangeAddr); !got.IsZero() {
		t.Errorf("Reserve = %s, expected fully drained", got.Dec())
	}
	if got := ts.tokenBalance(t, aliceAddr); got.Cmp(wholeTokens(2)) != 0 {
		t.Errorf("Buyer tokens = %s, expected 2 whole tokens", got.Dec())
	}
}

func TestBuyMintsWhenReserveShort(t *testing.T) {
	ts := newTestStack(t, 1_000_000)
	ts.fund(t, aliceAddr, 200)

	// one token short of demand: the whole order is minted fresh and the
	// reserve is left as is
	if err := ts.ledger.Mint(minterAddr, exchangeAddr, wholeTokens(1)); err != nil {
		t.Fatalf("Failed to seed reserve: %v", err)
	}

	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(200)); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	if got := ts.tokenBalance(t, exchangeAddr); got.Cmp(wholeTokens(1)) != 0 {
		t.Errorf("Reserve = %s, expected untouched 1 whole token", got.Dec())
	}
	supply, _ := ts.ledger.TotalSupply()
	if supply.Cmp(wholeTokens(3)) != 0 {
		t.Errorf("Supply = %s, expected 1 reserved + 2 minted", supply.Dec())
	}
}

func TestBuyPrechecks(t *testing.T) {
	ts := newTestStack(t, 1_000_000)
	ts.fund(t, aliceAddr, 99)

	// below one whole token's price nothing can be bought
	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(99)); !stderrors.Is(err, ledgererr.ErrZeroAmount) {
		t.Errorf("Expected ZeroAmount for sub-price payment, got %v", err)
	}
	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(0)); !stderrors.Is(err, ledgererr.ErrZeroAmount) {
		t.Errorf("Expected ZeroAmount, got %v", err)
	}

	// claiming more than the buyer holds fails before any state moves
	err := ts.exchange.Buy(aliceAddr, uint256.NewInt(100))
	if !stderrors.Is(err, ledgererr.ErrInsufficientBalance) {
		t.Errorf("Expected InsufficientBalance, got %v", err)
	}
	if got := ts.currencyBalance(t, aliceAddr); got.Uint64() != 99 {
		t.Errorf("Buyer currency moved on rejected buy: %s", got.Dec())
	}
	if got := ts.tokenBalance(t, aliceAddr); !got.IsZero() {
		t.Errorf("Buyer received tokens on rejected buy: %s", got.Dec())
	}
}

func TestBuyRejectsExchangeAsBuyer(t *testing.T) {
	ts := newTestStack(t, 1_000_000)
	ts.fund(t, exchangeAddr, 100)

	// a purchase where payer and payee are the same vault account would
	// settle against the treasury itself; it must be refused up front
	err := ts.exchange.Buy(exchangeAddr, uint256.NewInt(100))
	if !stderrors.Is(err, ledgererr.ErrUnauthorized) {
		t.Errorf("Expected Unauthorized, got %v", err)
	}
	if got := ts.currencyBalance(t, exchangeAddr); got.Uint64() != 100 {
		t.Errorf("Treasury = %s, expected untouched 100", got.Dec())
	}
	supply, _ := ts.ledger.TotalSupply()
	if !supply.IsZero() {
		t.Errorf("Supply = %s, expected nothing minted", supply.Dec())
	}

	if err := ts.exchange.Receive(exchangeAddr, uint256.NewInt(100), nil); !stderrors.Is(err, ledgererr.ErrUnauthorized) {
		t.Errorf("Expected Unauthorized via Receive, got %v", err)
	}
}

func TestBuyRejectedByCap(t *testing.T) {
	ts := newTestStack(t, 2)
	ts.fund(t, aliceAddr, 300)

	err := ts.exchange.Buy(aliceAddr, uint256.NewInt(300))
	if !stderrors.Is(err, ledgererr.ErrMaxSupplyReached) {
		t.Errorf("Expected MaxSupplyReached, got %v", err)
	}
	if got := ts.currencyBalance(t, aliceAddr); got.Uint64() != 300 {
		t.Errorf("Buyer currency moved on capped buy: %s", got.Dec())
	}
	supply, _ := ts.ledger.TotalSupply()
	if !supply.IsZero() {
		t.Errorf("Supply moved on capped buy: %s", supply.Dec())
	}
}

func TestReceive(t *testing.T) {
	ts := newTestStack(t, 1_000_000)
	ts.fund(t, aliceAddr, 150)

	// any payload at all is rejected before the purchase path is reached
	err := ts.exchange.Receive(aliceAddr, uint256.NewInt(150), []byte("memo"))
	if !stderrors.Is(err, ledgererr.ErrUnknownPayload) {
		t.Errorf("Expected UnknownPayload, got %v", err)
	}
	if got := ts.currencyBalance(t, aliceAddr); got.Uint64() != 150 {
		t.Errorf("Currency moved on rejected payload: %s", got.Dec())
	}

	// an empty payload is a plain buy
	if err := ts.exchange.Receive(aliceAddr, uint256.NewInt(150), nil); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if got := ts.tokenBalance(t, aliceAddr); got.Cmp(wholeTokens(1)) != 0 {
		t.Errorf("Buyer tokens = %s, expected 1 whole token", got.Dec())
	}
}

func TestSellRoundTrip(t *testing.T) {
	ts := newTestStack(t, 1_000_000)
	ts.fund(t, aliceAddr, 200)

	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(200)); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if err := ts.ledger.Approve(aliceAddr, exchangeAddr, wholeTokens(2)); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if err := ts.exchange.Sell(aliceAddr, wholeTokens(2)); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	// bought at 100, sold back at 80: the round trip loses 40 of 200
	if got := ts.currencyBalance(t, aliceAddr); got.Uint64() != 160 {
		t.Errorf("Seller currency = %s, expected 160 after round trip", got.Dec())
	}
	if got := ts.tokenBalance(t, aliceAddr); !got.IsZero() {
		t.Errorf("Seller tokens = %s, expected all sold back", got.Dec())
	}
	if got := ts.tokenBalance(t, exchangeAddr); got.Cmp(wholeTokens(2)) != 0 {
		t.Errorf("Reserve = %s, expected repurchased 2 whole tokens", got.Dec())
	}
	if got := ts.currencyBalance(t, exchangeAddr); got.Uint64() != 40 {
		t.Errorf("Treasury = %s, expected the 40 spread", got.Dec())
	}
}

func TestSellRequiresAllowance(t *testing.T) {
	ts := newTestStack(t, 1_000_000)
	ts.fund(t, aliceAddr, 200)

	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(200)); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	err := ts.exchange.Sell(aliceAddr, wholeTokens(1))
	if !stderrors.Is(err, ledgererr.ErrInsufficientAllowance) {
		t.Errorf("Expected InsufficientAllowance, got %v", err)
	}
	if got := ts.currencyBalance(t, aliceAddr); !got.IsZero() {
		t.Errorf("Currency paid out without tokens pulled: %s", got.Dec())
	}
	if got := ts.tokenBalance(t, aliceAddr); got.Cmp(wholeTokens(2)) != 0 {
		t.Errorf("Tokens moved on rejected sell: %s", got.Dec())
	}
}

func TestSellInsufficientTreasury(t *testing.T) {
	ts := newTestStack(t, 1_000_000)

	// hand alice tokens directly; the treasury has never been funded
	if err := ts.ledger.Mint(minterAddr, aliceAddr, wholeTokens(5)); err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	if err := ts.ledger.Approve(aliceAddr, exchangeAddr, wholeTokens(5)); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	err := ts.exchange.Sell(aliceAddr, wholeTokens(5))
	if !stderrors.Is(err, ledgererr.ErrInsufficientReserve) {
		t.Errorf("Expected InsufficientReserve, got %v", err)
	}
	// the precheck must run before the allowance is consumed
	remaining, _ := ts.ledger.Allowance(aliceAddr, exchangeAddr)
	if remaining.Cmp(wholeTokens(5)) != 0 {
		t.Errorf("Allowance consumed on rejected sell: %s", remaining.Dec())
	}
	if got := ts.tokenBalance(t, aliceAddr); got.Cmp(wholeTokens(5)) != 0 {
		t.Errorf("Tokens moved on rejected sell: %s", got.Dec())
	}
}

func TestReentrancyGuard(t *testing.T) {
	ts := newTestStack(t, 1_000_000)
	ts.fund(t, aliceAddr, 400)

	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(200)); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if err := ts.ledger.Approve(aliceAddr, exchangeAddr, wholeTokens(2)); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	// the seller's receive hook fires inside Sell, while the guard is
	// held; every nested mutating entry point must refuse
	var nestedBuyErr, nestedSellErr, nestedWithdrawErr error
	ts.vault.SetHook(aliceAddr, func(from string, amount *uint256.Int) {
		nestedBuyErr = ts.exchange.Buy(aliceAddr, uint256.NewInt(100))
		nestedSellErr = ts.exchange.Sell(aliceAddr, wholeTokens(1))
		nestedWithdrawErr = ts.exchange.WithdrawCurrency(ownerAddr)
	})

	if err := ts.exchange.Sell(aliceAddr, wholeTokens(1)); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	if !stderrors.Is(nestedBuyErr, ledgererr.ErrReentrantCall) {
		t.Errorf("Nested Buy: expected ReentrantCall, got %v", nestedBuyErr)
	}
	if !stderrors.Is(nestedSellErr, ledgererr.ErrReentrantCall) {
		t.Errorf("Nested Sell: expected ReentrantCall, got %v", nestedSellErr)
	}
	if !stderrors.Is(nestedWithdrawErr, ledgererr.ErrReentrantCall) {
		t.Errorf("Nested WithdrawCurrency: expected ReentrantCall, got %v", nestedWithdrawErr)
	}

	// the guard releases once the outer call returns
	ts.vault.RemoveHook(aliceAddr)
	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(100)); err != nil {
		t.Errorf("Buy after guarded sell failed: %v", err)
	}
}

func TestGuardCoversBuyPath(t *testing.T) {
	ts := newTestStack(t, 1_000_000)
	ts.fund(t, aliceAddr, 200)

	// on a buy the exchange is the payment recipient; a hook on the
	// exchange's own vault account runs mid-buy and must be locked out
	var nestedErr error
	ts.vault.SetHook(exchangeAddr, func(from string, amount *uint256.Int) {
		nestedErr = ts.exchange.Buy(from, uint256.NewInt(100))
	})

	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(100)); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if !stderrors.Is(nestedErr, ledgererr.ErrReentrantCall) {
		t.Errorf("Nested buy during payment: expected ReentrantCall, got %v", nestedErr)
	}
}

func TestWithdrawCurrency(t *testing.T) {
	ts := newTestStack(t, 1_000_000)

	if err := ts.exchange.WithdrawCurrency(ownerAddr); !stderrors.Is(err, ledgererr.ErrInsufficientReserve) {
		t.Errorf("Expected InsufficientReserve on empty treasury, got %v", err)
	}

	ts.fund(t, aliceAddr, 300)
	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(300)); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	if err := ts.exchange.WithdrawCurrency(aliceAddr); !stderrors.Is(err, ledgererr.ErrUnauthorized) {
		t.Errorf("Expected Unauthorized for non-owner, got %v", err)
	}
	if err := ts.exchange.WithdrawCurrency(ownerAddr); err != nil {
		t.Fatalf("WithdrawCurrency failed: %v", err)
	}

	if got := ts.currencyBalance(t, ownerAddr); got.Uint64() != 300 {
		t.Errorf("Owner received %s, expected the full 300", got.Dec())
	}
	if got := ts.currencyBalance(t, exchangeAddr); !got.IsZero() {
		t.Errorf("Treasury = %s after withdrawal, expected empty", got.Dec())
	}
}

func TestWithdrawTokens(t *testing.T) {
	ts := newTestStack(t, 1_000_000)

	if err := ts.ledger.Mint(minterAddr, exchangeAddr, wholeTokens(3)); err != nil {
		t.Fatalf("Failed to seed reserve: %v", err)
	}

	if err := ts.exchange.WithdrawTokens(aliceAddr, wholeTokens(1)); !stderrors.Is(err, ledgererr.ErrUnauthorized) {
		t.Errorf("Expected Unauthorized, got %v", err)
	}
	if err := ts.exchange.WithdrawTokens(ownerAddr, uint256.NewInt(0)); !stderrors.Is(err, ledgererr.ErrZeroAmount) {
		t.Errorf("Expected ZeroAmount, got %v", err)
	}
	if err := ts.exchange.WithdrawTokens(ownerAddr, wholeTokens(4)); !stderrors.Is(err, ledgererr.ErrInsufficientReserve) {
		t.Errorf("Expected InsufficientReserve, got %v", err)
	}

	if err := ts.exchange.WithdrawTokens(ownerAddr, wholeTokens(2)); err != nil {
		t.Fatalf("WithdrawTokens failed: %v", err)
	}
	if got := ts.tokenBalance(t, ownerAddr); got.Cmp(wholeTokens(2)) != 0 {
		t.Errorf("Owner tokens = %s, expected 2 whole tokens", got.Dec())
	}
	if got := ts.tokenBalance(t, exchangeAddr); got.Cmp(wholeTokens(1)) != 0 {
		t.Errorf("Reserve = %s, expected 1 whole token left", got.Dec())
	}
}

func TestOwnershipHandover(t *testing.T) {
	ts := newTestStack(t, 1_000_000)

	if err := ts.exchange.ProposeOwner(aliceAddr, bobAddr); !stderrors.Is(err, ledgererr.ErrUnauthorized) {
		t.Errorf("Expected Unauthorized, got %v", err)
	}
	if err := ts.exchange.CancelOwner(ownerAddr); !stderrors.Is(err, ledgererr.ErrNoPendingRecord) {
		t.Errorf("Expected NoPendingRecord, got %v", err)
	}

	// a canceled proposal is dead: it announces itself and the candidate
	// can no longer accept
	if err := ts.exchange.ProposeOwner(ownerAddr, aliceAddr); err != nil {
		t.Fatalf("ProposeOwner failed: %v", err)
	}
	if err := ts.exchange.CancelOwner(ownerAddr); err != nil {
		t.Fatalf("CancelOwner failed: %v", err)
	}
	history := ts.eventBus.History()
	last := history[len(history)-1]
	if last.Type() != events.EventOwnershipCanceled {
		t.Errorf("Last event = %s, expected %s", last.Type(), events.EventOwnershipCanceled)
	}
	if last.Principal() != aliceAddr {
		t.Errorf("Canceled event principal = %s, expected %s", last.Principal(), aliceAddr)
	}
	if err := ts.exchange.AcceptOwner(aliceAddr); !stderrors.Is(err, ledgererr.ErrUnauthorized) {
		t.Errorf("Expected Unauthorized after cancel, got %v", err)
	}

	if err := ts.exchange.ProposeOwner(ownerAddr, bobAddr); err != nil {
		t.Fatalf("ProposeOwner failed: %v", err)
	}
	if err := ts.exchange.AcceptOwner(aliceAddr); !stderrors.Is(err, ledgererr.ErrUnauthorized) {
		t.Errorf("Expected Unauthorized for non-candidate, got %v", err)
	}
	if err := ts.exchange.AcceptOwner(bobAddr); err != nil {
		t.Fatalf("AcceptOwner failed: %v", err)
	}

	owner, _ := ts.exchange.Owner()
	if owner != bobAddr {
		t.Errorf("Owner = %s, expected %s", owner, bobAddr)
	}
	// the previous owner is fully out
	if err := ts.exchange.ProposeOwner(ownerAddr, aliceAddr); !stderrors.Is(err, ledgererr.ErrUnauthorized) {
		t.Errorf("Previous owner retained control: %v", err)
	}
}

// TestPurchaseLifecycle walks a full deployment through mint, a reserved
// buy, a minted buy, a sell-back and the owner withdrawal, checking the
// books balance at the end.
func TestPurchaseLifecycle(t *testing.T) {
	ts := newTestStack(t, 1_000_000)
	ts.fund(t, aliceAddr, 1_000)
	ts.fund(t, bobAddr, 500)

	if err := ts.ledger.Mint(minterAddr, exchangeAddr, wholeTokens(5)); err != nil {
		t.Fatalf("Failed to seed reserve: %v", err)
	}

	// alice's demand fits the reserve, bob's does not
	if err := ts.exchange.Buy(aliceAddr, uint256.NewInt(500)); err != nil {
		t.Fatalf("Reserved buy failed: %v", err)
	}
	if err := ts.exchange.Buy(bobAddr, uint256.NewInt(500)); err != nil {
		t.Fatalf("Minted buy failed: %v", err)
	}

	if err := ts.ledger.Approve(aliceAddr, exchangeAddr, wholeTokens(5)); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if err := ts.exchange.Sell(aliceAddr, wholeTokens(5)); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	if err := ts.exchange.WithdrawCurrency(ownerAddr); err != nil {
		t.Fatalf("WithdrawCurrency failed: %v", err)
	}

	// alice: 1000 in, 500 spent, 400 back
	if got := ts.currencyBalance(t, aliceAddr); got.Uint64() != 900 {
		t.Errorf("Alice currency = %s, expected 900", got.Dec())
	}
	if got := ts.tokenBalance(t, bobAddr); got.Cmp(wholeTokens(5)) != 0 {
		t.Errorf("Bob tokens = %s, expected 5 whole tokens", got.Dec())
	}
	// treasury took 1000, paid alice 400, owner drained the remaining 600
	if got := ts.currencyBalance(t, ownerAddr); got.Uint64() != 600 {
		t.Errorf("Owner currency = %s, expected 600", got.Dec())
	}

	// the books: supply equals the sum over every account
	accounts, err := ts.ledger.GetAllAccounts()
	if err != nil {
		t.Fatalf("GetAllAccounts failed: %v", err)
	}
	sum := uint256.NewInt(0)
	for _, acc := range accounts {
		sum = new(uint256.Int).Add(sum, acc.Balance)
	}
	supply, _ := ts.ledger.TotalSupply()
	if sum.Cmp(supply) != 0 {
		t.Errorf("Sum of balances %s != supply %s", sum.Dec(), supply.Dec())
	}
	if supply.Cmp(wholeTokens(10)) != 0 {
		t.Errorf("Supply = %s, expected 5 seeded + 5 minted", supply.Dec())
	}
}
