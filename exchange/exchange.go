package exchange

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/Tmalone1250/mtk-sale/currency"
	"github.com/Tmalone1250/mtk-sale/db"
	"github.com/Tmalone1250/mtk-sale/errors"
	"github.com/Tmalone1250/mtk-sale/events"
	"github.com/Tmalone1250/mtk-sale/interfaces"
	"github.com/Tmalone1250/mtk-sale/logx"
	"github.com/Tmalone1250/mtk-sale/monitoring"
	"github.com/Tmalone1250/mtk-sale/store"
	"github.com/Tmalone1250/mtk-sale/types"
	"github.com/Tmalone1250/mtk-sale/utils"
)

// Exchange converts settlement currency into tokens and back at two fixed
// rates. Its own token balance on the ledger is the resale reserve; its
// vault balance is the currency treasury. Buys are served from the reserve
// before any new supply is minted.
//
// Every state-mutating entry point holds the reentrancy guard for its full
// duration, covering the external currency payment that hands control to
// the recipient - buys included, not just sells.
type Exchange struct {
	address   string
	ledger    interfaces.TokenLedger
	vault     *currency.Vault
	provider  db.DatabaseProvider
	metaStore store.MetaStore
	eventBus  *events.EventBus
	buyPrice  *uint256.Int
	sellPrice *uint256.Int

	guardMu sync.Mutex
	entered bool
}

// NewExchange wires an exchange over an already-deployed ledger. Rates are
// currency-per-whole-token, scaled by 10^18, and immutable afterwards.
// Owner is persisted on first construction; the exchange still needs a
// minter grant as a follow-up administrative action before it can serve
// buys past its reserve.
func NewExchange(address string, ledger interfaces.TokenLedger, vault *currency.Vault, stores *store.Stores, eventBus *events.EventBus, buyPrice, sellPrice *uint256.Int, owner string) (*Exchange, error) {
	if address == types.ZeroAddress {
		return nil, errors.ErrZeroAddress
	}
	if buyPrice == nil || buyPrice.IsZero() || sellPrice == nil || sellPrice.IsZero() {
		return nil, fmt.Errorf("exchange rates must be positive")
	}

	current, err := stores.Meta.Owner()
	if err != nil {
		return nil, err
	}
	if current == "" {
		if owner == types.ZeroAddress {
			return nil, errors.ErrZeroAddress
		}
		if err := stores.Meta.SetOwner(owner); err != nil {
			return nil, err
		}
	}

	return &Exchange{
		address:   address,
		ledger:    ledger,
		vault:     vault,
		provider:  stores.Provider,
		metaStore: stores.Meta,
		eventBus:  eventBus,
		buyPrice:  buyPrice.Clone(),
		sellPrice: sellPrice.Clone(),
	}, nil
}

// enter acquires the reentrancy guard; a nested attempt from a payment
// hook fails immediately instead of proceeding.
func (e *Exchange) enter() error {
	e.guardMu.Lock()
	defer e.guardMu.Unlock()

	if e.entered {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedReentrantCall)
		return errors.ErrReentrantCall
	}
	e.entered = true
	return nil
}

// leave releases the guard; deferred on every entry point so no exit path
// can leave it stuck.
func (e *Exchange) leave() {
	e.guardMu.Lock()
	e.entered = false
	e.guardMu.Unlock()
}

// Address returns the exchange's own principal address
func (e *Exchange) Address() string { return e.address }

// BuyPrice returns the immutable buy rate
func (e *Exchange) BuyPrice() *uint256.Int { return e.buyPrice.Clone() }

// SellPrice returns the immutable sell rate
func (e *Exchange) SellPrice() *uint256.Int { return e.sellPrice.Clone() }

// Reserve returns the exchange's token balance on the ledger
func (e *Exchange) Reserve() (*uint256.Int, error) {
	return e.ledger.BalanceOf(e.address)
}

// CurrencyBalance returns the exchange's settlement-currency treasury
func (e *Exchange) CurrencyBalance() (*uint256.Int, error) {
	return e.vault.BalanceOf(e.address)
}

// tokensForPayment floors the paid amount to whole-token granularity:
// floor(paid / buyPrice) * Scale. The sub-token remainder is intentionally
// kept by the exchange and never refunded.
func (e *Exchange) tokensForPayment(paid *uint256.Int) (*uint256.Int, error) {
	wholeTokens := new(uint256.Int).Div(paid, e.buyPrice)
	tokens := new(uint256.Int)
	if _, overflow := tokens.MulOverflow(wholeTokens, types.Scale); overflow {
		return nil, fmt.Errorf("token amount overflow")
	}
	return tokens, nil
}

// currencyForTokens computes floor(tokenAmount * sellPrice / Scale)
func (e *Exchange) currencyForTokens(tokenAmount *uint256.Int) (*uint256.Int, error) {
	product := new(uint256.Int)
	if _, overflow := product.MulOverflow(tokenAmount, e.sellPrice); overflow {
		return nil, fmt.Errorf("currency amount overflow")
	}
	return product.Div(product, types.Scale), nil
}

// Buy converts paid settlement currency into tokens for buyer. The reserve
// is consumed first; only unmet demand mints new supply. All prechecks run
// before any state moves, so a failing buy leaves the buyer's currency with
// the buyer.
func (e *Exchange) Buy(buyer string, paid *uint256.Int) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	return e.buy(buyer, paid)
}

// buy runs the purchase with the guard already held; shared by Buy and Receive
func (e *Exchange) buy(buyer string, paid *uint256.Int) error {
	if paid == nil || paid.IsZero() {
		return errors.ErrZeroAmount
	}
	if buyer == e.address {
		// the exchange is never its own customer
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedUnauthorized)
		return errors.ErrUnauthorized
	}

	tokensToBuy, err := e.tokensForPayment(paid)
	if err != nil {
		return err
	}
	if tokensToBuy.IsZero() {
		return errors.ErrZeroAmount
	}

	// the buyer must be able to settle before any token moves
	buyerFunds, err := e.vault.BalanceOf(buyer)
	if err != nil {
		return err
	}
	if buyerFunds.Cmp(paid) < 0 {
		return errors.ErrInsufficientBalance
	}

	reserve, err := e.ledger.BalanceOf(e.address)
	if err != nil {
		return err
	}

	minted := false
	if reserve.Cmp(tokensToBuy) >= 0 {
		// no supply is created on this path, so no cap check applies
		if err := e.ledger.Transfer(e.address, buyer, tokensToBuy); err != nil {
			return err
		}
	} else {
		if err := e.ledger.Mint(e.address, buyer, tokensToBuy); err != nil {
			return err
		}
		minted = true
	}

	// the full payment, unrefunded remainder included, lands in the treasury
	if err := e.vault.Transfer(buyer, e.address, paid); err != nil {
		return fmt.Errorf("failed to collect payment: %w", err)
	}

	logx.Info("EXCHANGE", fmt.Sprintf("Sold %s tokens to %s for %s (minted=%t)", utils.Uint256ToString(tokensToBuy), utils.ShortenLog(buyer), utils.Uint256ToString(paid), minted))
	monitoring.IncreasePurchaseCount()
	e.eventBus.Publish(events.NewPurchased(buyer, paid.Clone(), tokensToBuy, minted))
	return nil
}

// Receive is the bare-currency entry point: an empty payload behaves as a
// buy, anything else is rejected outright rather than treated as a purchase.
func (e *Exchange) Receive(caller string, amount *uint256.Int, payload []byte) error {
	if len(payload) != 0 {
		return errors.ErrUnknownPayload
	}

	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	return e.buy(caller, amount)
}

// Sell buys tokenAmount back from seller at the sell rate. The currency
// reserve is checked before any state moves; the seller must have approved
// at least tokenAmount to the exchange beforehand. The payout to the seller
// is the reentrancy window the guard exists for.
func (e *Exchange) Sell(seller string, tokenAmount *uint256.Int) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if tokenAmount == nil || tokenAmount.IsZero() {
		return errors.ErrZeroAmount
	}

	currencyOwed, err := e.currencyForTokens(tokenAmount)
	if err != nil {
		return err
	}

	treasury, err := e.vault.BalanceOf(e.address)
	if err != nil {
		return err
	}
	if treasury.Cmp(currencyOwed) < 0 {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedInsufficientReserve)
		return errors.ErrInsufficientReserve
	}

	// pull the tokens through the allowance mechanism; a short allowance
	// or balance aborts here, before any currency moves
	if err := e.ledger.TransferFrom(e.address, seller, e.address, tokenAmount); err != nil {
		return err
	}

	if !currencyOwed.IsZero() {
		if err := e.vault.Transfer(e.address, seller, currencyOwed); err != nil {
			return fmt.Errorf("failed to pay seller: %w", err)
		}
	}

	logx.Info("EXCHANGE", fmt.Sprintf("Bought %s tokens from %s for %s", utils.Uint256ToString(tokenAmount), utils.ShortenLog(seller), utils.Uint256ToString(currencyOwed)))
	monitoring.IncreaseSaleCount()
	e.eventBus.Publish(events.NewSold(seller, tokenAmount.Clone(), currencyOwed))
	return nil
}

// requireOwner fails with Unauthorized unless caller is the current owner
func (e *Exchange) requireOwner(caller string) error {
	owner, err := e.metaStore.Owner()
	if err != nil {
		return err
	}
	if caller != owner {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedUnauthorized)
		return errors.ErrUnauthorized
	}
	return nil
}

// WithdrawCurrency pays the full currency treasury to the owner
func (e *Exchange) WithdrawCurrency(caller string) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if err := e.requireOwner(caller); err != nil {
		return err
	}

	treasury, err := e.vault.BalanceOf(e.address)
	if err != nil {
		return err
	}
	if treasury.IsZero() {
		return errors.ErrInsufficientReserve
	}

	if err := e.vault.Transfer(e.address, caller, treasury); err != nil {
		return fmt.Errorf("failed to pay owner: %w", err)
	}

	logx.Info("EXCHANGE", fmt.Sprintf("Withdrew %s currency to owner %s", utils.Uint256ToString(treasury), utils.ShortenLog(caller)))
	e.eventBus.Publish(events.NewCurrencyWithdrawn(caller, treasury))
	return nil
}

// WithdrawTokens transfers amount tokens from the reserve to the owner
func (e *Exchange) WithdrawTokens(caller string, amount *uint256.Int) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if err := e.requireOwner(caller); err != nil {
		return err
	}
	if amount == nil || amount.IsZero() {
		return errors.ErrZeroAmount
	}

	reserve, err := e.ledger.BalanceOf(e.address)
	if err != nil {
		return err
	}
	if reserve.Cmp(amount) < 0 {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedInsufficientReserve)
		return errors.ErrInsufficientReserve
	}

	if err := e.ledger.Transfer(e.address, caller, amount); err != nil {
		return err
	}

	logx.Info("EXCHANGE", fmt.Sprintf("Withdrew %s tokens to owner %s", utils.Uint256ToString(amount), utils.ShortenLog(caller)))
	e.eventBus.Publish(events.NewTokensWithdrawn(caller, amount.Clone()))
	return nil
}

// Owner returns the current owner principal
func (e *Exchange) Owner() (string, error) {
	return e.metaStore.Owner()
}

// ProposeOwner records a pending ownership handover to candidate. Owner-only.
func (e *Exchange) ProposeOwner(caller, candidate string) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if err := e.requireOwner(caller); err != nil {
		return err
	}
	if candidate == types.ZeroAddress {
		return errors.ErrZeroAddress
	}

	if err := e.metaStore.SetPendingOwner(&types.PendingOwner{Candidate: candidate}); err != nil {
		return err
	}

	logx.Info("EXCHANGE", fmt.Sprintf("Proposed owner %s", utils.ShortenLog(candidate)))
	e.eventBus.Publish(events.NewOwnershipProposed(candidate))
	return nil
}

// AcceptOwner completes a pending ownership handover. Candidate-only.
func (e *Exchange) AcceptOwner(caller string) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	pending, err := e.metaStore.PendingOwner()
	if err != nil {
		return err
	}
	if pending == nil || pending.Candidate != caller {
		return errors.ErrUnauthorized
	}

	// the new owner and the cleared proposal land in one commit
	batch := e.provider.Batch()
	e.metaStore.SetOwnerInBatch(batch, caller)
	e.metaStore.ClearPendingOwnerInBatch(batch)
	err = batch.Write()
	batch.Close()
	if err != nil {
		return fmt.Errorf("failed to commit ownership handover: %w", err)
	}

	logx.Info("EXCHANGE", fmt.Sprintf("Ownership accepted by %s", utils.ShortenLog(caller)))
	e.eventBus.Publish(events.NewOwnershipAccepted(caller))
	return nil
}

// CancelOwner clears a pending ownership handover. Owner-only.
func (e *Exchange) CancelOwner(caller string) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if err := e.requireOwner(caller); err != nil {
		return err
	}

	pending, err := e.metaStore.PendingOwner()
	if err != nil {
		return err
	}
	if pending == nil {
		return errors.ErrNoPendingRecord
	}

	if err := e.metaStore.ClearPendingOwner(); err != nil {
		return err
	}

	logx.Info("EXCHANGE", fmt.Sprintf("Ownership proposal for %s canceled", utils.ShortenLog(pending.Candidate)))
	e.eventBus.Publish(events.NewOwnershipCanceled(pending.Candidate))
	return nil
}
