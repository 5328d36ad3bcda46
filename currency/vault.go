package currency

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/Tmalone1250/mtk-sale/db"
	"github.com/Tmalone1250/mtk-sale/errors"
	"github.com/Tmalone1250/mtk-sale/logx"
	"github.com/Tmalone1250/mtk-sale/store"
	"github.com/Tmalone1250/mtk-sale/utils"
)

// ReceiveHook is invoked after a principal's currency balance is credited.
// It models the control handoff of an external payment: the recipient runs
// arbitrary code before the paying call frame returns. Hooks observe the
// already-committed transfer and cannot veto it.
type ReceiveHook func(from string, amount *uint256.Int)

// Vault is the settlement-currency table, kept separate from the token
// balance table on the ledger.
type Vault struct {
	mu            sync.Mutex
	provider      db.DatabaseProvider
	currencyStore store.CurrencyStore
	hooks         map[string]ReceiveHook
}

func NewVault(stores *store.Stores) *Vault {
	return &Vault{
		provider:      stores.Provider,
		currencyStore: stores.Currency,
		hooks:         make(map[string]ReceiveHook),
	}
}

// BalanceOf returns the currency balance for principal (zero when unknown)
func (v *Vault) BalanceOf(principal string) (*uint256.Int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.currencyStore.Get(principal)
}

// Deposit creates settlement funds for principal. This is the platform's
// funding entry point, used at genesis and by the CLI.
func (v *Vault) Deposit(principal string, amount *uint256.Int) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if amount == nil || amount.IsZero() {
		return errors.ErrZeroAmount
	}

	balance, err := v.currencyStore.Get(principal)
	if err != nil {
		return err
	}
	newBalance := new(uint256.Int)
	if _, overflow := newBalance.AddOverflow(balance, amount); overflow {
		return fmt.Errorf("currency balance overflow for %s", utils.ShortenLog(principal))
	}
	return v.currencyStore.Put(principal, newBalance)
}

// Transfer moves amount of settlement currency from from to to. Both
// balances commit in one batch; the recipient's hook, if any, runs after
// the commit and before this call returns.
func (v *Vault) Transfer(from, to string, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return errors.ErrZeroAmount
	}

	v.mu.Lock()

	sender, err := v.currencyStore.Get(from)
	if err != nil {
		v.mu.Unlock()
		return err
	}
	if sender.Cmp(amount) < 0 {
		v.mu.Unlock()
		return errors.ErrInsufficientBalance
	}
	if from == to {
		// nothing moves and the hook does not fire for a self payment
		v.mu.Unlock()
		return nil
	}

	recipient, err := v.currencyStore.Get(to)
	if err != nil {
		v.mu.Unlock()
		return err
	}

	batch := v.provider.Batch()
	v.currencyStore.PutInBatch(batch, from, new(uint256.Int).Sub(sender, amount))
	v.currencyStore.PutInBatch(batch, to, new(uint256.Int).Add(recipient, amount))
	err = batch.Write()
	batch.Close()
	if err != nil {
		v.mu.Unlock()
		return fmt.Errorf("failed to commit currency transfer: %w", err)
	}

	hook := v.hooks[to]
	// release before the hook runs: the recipient may call back into
	// vault or exchange operations
	v.mu.Unlock()

	logx.Debug("VAULT", fmt.Sprintf("Paid %s from %s to %s", utils.Uint256ToString(amount), utils.ShortenLog(from), utils.ShortenLog(to)))

	if hook != nil {
		hook(from, amount)
	}
	return nil
}

// SetHook registers a receive hook for principal, replacing any existing one
func (v *Vault) SetHook(principal string, hook ReceiveHook) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.hooks[principal] = hook
}

// RemoveHook unregisters the receive hook for principal
func (v *Vault) RemoveHook(principal string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.hooks, principal)
}
