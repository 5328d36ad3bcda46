package ledger

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/Tmalone1250/mtk-sale/db"
	"github.com/Tmalone1250/mtk-sale/errors"
	"github.com/Tmalone1250/mtk-sale/events"
	"github.com/Tmalone1250/mtk-sale/logx"
	"github.com/Tmalone1250/mtk-sale/monitoring"
	"github.com/Tmalone1250/mtk-sale/roles"
	"github.com/Tmalone1250/mtk-sale/store"
	"github.com/Tmalone1250/mtk-sale/types"
	"github.com/Tmalone1250/mtk-sale/utils"
)

const tokenDecimals = 18

// Ledger is the sole authority over balances, allowances and the supply
// cap. Every mutating operation validates fully before touching state and
// commits through a single batch write, so a failed call leaves the
// persisted state untouched.
//
// Pause policy: the pause flag gates every balance mutation - mint,
// transfer and transferFrom alike. Approvals and queries are unaffected.
type Ledger struct {
	mu          sync.RWMutex
	name        string
	symbol      string
	maxSupply   *uint256.Int
	stores      *store.Stores
	permissions *roles.PermissionStore
	eventBus    *events.EventBus
}

// NewLedger wires a ledger over its stores and records the immutable token
// info. maxSupply is set once here and never changes afterwards.
func NewLedger(name, symbol string, maxSupply *uint256.Int, stores *store.Stores, permissions *roles.PermissionStore, eventBus *events.EventBus) (*Ledger, error) {
	if maxSupply == nil || maxSupply.IsZero() {
		return nil, fmt.Errorf("max supply must be positive")
	}
	if err := stores.Meta.SetTokenInfo(name, symbol, maxSupply); err != nil {
		return nil, fmt.Errorf("failed to persist token info: %w", err)
	}

	return &Ledger{
		name:        name,
		symbol:      symbol,
		maxSupply:   maxSupply.Clone(),
		stores:      stores,
		permissions: permissions,
		eventBus:    eventBus,
	}, nil
}

// OpenLedger restores a ledger from previously persisted token info
func OpenLedger(stores *store.Stores, permissions *roles.PermissionStore, eventBus *events.EventBus) (*Ledger, error) {
	name, symbol, maxSupply, err := stores.Meta.TokenInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to read token info: %w", err)
	}
	if maxSupply.IsZero() {
		return nil, fmt.Errorf("ledger has not been initialized")
	}

	return &Ledger{
		name:        name,
		symbol:      symbol,
		maxSupply:   maxSupply,
		stores:      stores,
		permissions: permissions,
		eventBus:    eventBus,
	}, nil
}

// loadAccount returns the stored account for addr, or a fresh zero-balance
// account when none exists yet.
func (l *Ledger) loadAccount(addr string) (*types.Account, error) {
	acc, err := l.stores.Account.GetByAddr(addr)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		acc = types.NewAccount(addr)
	}
	return acc, nil
}

func (l *Ledger) requirePermission(caller, role string) error {
	ok, err := l.permissions.HasPermission(caller, role)
	if err != nil {
		return fmt.Errorf("could not check %s role: %w", role, err)
	}
	if !ok {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedUnauthorized)
		return errors.ErrUnauthorized
	}
	return nil
}

func (l *Ledger) requireNotPaused() error {
	paused, err := l.stores.Meta.Paused()
	if err != nil {
		return fmt.Errorf("could not read pause flag: %w", err)
	}
	if paused {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedPaused)
		return errors.ErrPaused
	}
	return nil
}

// mintUnits is the single state-transition routine through which
// totalSupply may grow. The cap check lives here and nowhere else, so no
// alternate entry point can bypass it.
func (l *Ledger) mintUnits(batch db.DatabaseBatch, to *types.Account, amount *uint256.Int) (*uint256.Int, error) {
	supply, err := l.stores.Meta.TotalSupply()
	if err != nil {
		return nil, fmt.Errorf("could not read total supply: %w", err)
	}

	newSupply := new(uint256.Int)
	if _, overflow := newSupply.AddOverflow(supply, amount); overflow {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedMaxSupply)
		return nil, errors.ErrMaxSupplyReached
	}
	if newSupply.Cmp(l.maxSupply) > 0 {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedMaxSupply)
		return nil, errors.ErrMaxSupplyReached
	}

	newBalance := new(uint256.Int)
	if _, overflow := newBalance.AddOverflow(to.Balance, amount); overflow {
		return nil, fmt.Errorf("balance overflow for %s", utils.ShortenLog(to.Address))
	}
	to.Balance = newBalance

	if err := l.stores.Account.PutInBatch(batch, to); err != nil {
		return nil, err
	}
	l.stores.Meta.SetTotalSupplyInBatch(batch, newSupply)
	return newSupply, nil
}

// Mint creates amount new units for to. Caller must hold the minter role.
func (l *Ledger) Mint(caller, to string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requirePermission(caller, types.RoleMinter); err != nil {
		return err
	}
	if to == types.ZeroAddress {
		return errors.ErrZeroAddress
	}
	if amount == nil || amount.IsZero() {
		return errors.ErrZeroAmount
	}
	if err := l.requireNotPaused(); err != nil {
		return err
	}

	recipient, err := l.loadAccount(to)
	if err != nil {
		return err
	}

	batch := l.stores.Provider.Batch()
	defer batch.Close()
	newSupply, err := l.mintUnits(batch, recipient, amount)
	if err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedUnknown)
		return fmt.Errorf("failed to commit mint: %w", err)
	}

	// the gauge tracks committed supply only
	monitoring.SetTotalSupply(newSupply)
	logx.Info("LEDGER", fmt.Sprintf("Minted %s to %s", utils.Uint256ToString(amount), utils.ShortenLog(to)))
	monitoring.IncreaseAppliedOpCount()
	l.eventBus.Publish(events.NewMinted(to, amount.Clone(), caller))
	return nil
}

// move debits from and credits to, staging both accounts into batch
func (l *Ledger) move(batch db.DatabaseBatch, from, to string, amount *uint256.Int) error {
	sender, err := l.loadAccount(from)
	if err != nil {
		return err
	}
	if sender.Balance.Cmp(amount) < 0 {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedInsufficientBalance)
		return errors.ErrInsufficientBalance
	}

	if from == to {
		// self transfer leaves the balance untouched
		return l.stores.Account.PutInBatch(batch, sender)
	}

	recipient, err := l.loadAccount(to)
	if err != nil {
		return err
	}

	sender.Balance = new(uint256.Int).Sub(sender.Balance, amount)
	recipient.Balance = new(uint256.Int).Add(recipient.Balance, amount)

	if err := l.stores.Account.PutInBatch(batch, sender); err != nil {
		return err
	}
	return l.stores.Account.PutInBatch(batch, recipient)
}

// Transfer moves amount from the caller's balance to to
func (l *Ledger) Transfer(caller, to string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if to == types.ZeroAddress {
		return errors.ErrZeroAddress
	}
	if amount == nil || amount.IsZero() {
		return errors.ErrZeroAmount
	}
	if err := l.requireNotPaused(); err != nil {
		return err
	}

	batch := l.stores.Provider.Batch()
	defer batch.Close()
	if err := l.move(batch, caller, to, amount); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedUnknown)
		return fmt.Errorf("failed to commit transfer: %w", err)
	}

	logx.Info("LEDGER", fmt.Sprintf("Transferred %s from %s to %s", utils.Uint256ToString(amount), utils.ShortenLog(caller), utils.ShortenLog(to)))
	monitoring.IncreaseAppliedOpCount()
	l.eventBus.Publish(events.NewTransferred(caller, to, amount.Clone()))
	return nil
}

// TransferFrom moves amount from from to to on the strength of the
// caller's allowance, which is decremented by exactly amount.
func (l *Ledger) TransferFrom(caller, from, to string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if to == types.ZeroAddress {
		return errors.ErrZeroAddress
	}
	if amount == nil || amount.IsZero() {
		return errors.ErrZeroAmount
	}
	if err := l.requireNotPaused(); err != nil {
		return err
	}

	remaining, err := l.stores.Allowance.Get(from, caller)
	if err != nil {
		return err
	}
	if remaining.Cmp(amount) < 0 {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedInsufficientAllowance)
		return errors.ErrInsufficientAllowance
	}

	batch := l.stores.Provider.Batch()
	defer batch.Close()
	if err := l.move(batch, from, to, amount); err != nil {
		return err
	}
	l.stores.Allowance.PutInBatch(batch, from, caller, new(uint256.Int).Sub(remaining, amount))
	if err := batch.Write(); err != nil {
		monitoring.IncreaseRejectedOpCount(monitoring.OpRejectedUnknown)
		return fmt.Errorf("failed to commit transfer: %w", err)
	}

	logx.Info("LEDGER", fmt.Sprintf("Transferred %s from %s to %s by %s", utils.Uint256ToString(amount), utils.ShortenLog(from), utils.ShortenLog(to), utils.ShortenLog(caller)))
	monitoring.IncreaseAppliedOpCount()
	l.eventBus.Publish(events.NewTransferred(from, to, amount.Clone()))
	return nil
}

// Approve sets the caller's allowance for spender to exactly amount.
// Not additive, and not gated by the pause flag.
func (l *Ledger) Approve(caller, spender string, amount *uint256.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if spender == types.ZeroAddress {
		return errors.ErrZeroAddress
	}
	if amount == nil {
		amount = uint256.NewInt(0)
	}

	if err := l.stores.Allowance.Put(caller, spender, amount); err != nil {
		return err
	}

	monitoring.IncreaseAppliedOpCount()
	l.eventBus.Publish(events.NewApproved(caller, spender, amount.Clone()))
	return nil
}

// Pause halts every balance mutation. Caller must hold the pauser role.
// Pausing an already paused ledger is an error.
func (l *Ledger) Pause(caller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requirePermission(caller, types.RolePauser); err != nil {
		return err
	}

	paused, err := l.stores.Meta.Paused()
	if err != nil {
		return err
	}
	if paused {
		return errors.ErrPaused
	}
	if err := l.stores.Meta.SetPaused(true); err != nil {
		return err
	}

	logx.Warn("LEDGER", fmt.Sprintf("Paused by %s", utils.ShortenLog(caller)))
	monitoring.IncreaseAppliedOpCount()
	l.eventBus.Publish(events.NewPauseChanged(true, caller))
	return nil
}

// Unpause lifts the pause flag. Caller must hold the pauser role.
func (l *Ledger) Unpause(caller string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requirePermission(caller, types.RolePauser); err != nil {
		return err
	}

	paused, err := l.stores.Meta.Paused()
	if err != nil {
		return err
	}
	if !paused {
		return errors.ErrNotPaused
	}
	if err := l.stores.Meta.SetPaused(false); err != nil {
		return err
	}

	logx.Info("LEDGER", fmt.Sprintf("Unpaused by %s", utils.ShortenLog(caller)))
	monitoring.IncreaseAppliedOpCount()
	l.eventBus.Publish(events.NewPauseChanged(false, caller))
	return nil
}

// Name returns the display name
func (l *Ledger) Name() string { return l.name }

// Symbol returns the display symbol
func (l *Ledger) Symbol() string { return l.symbol }

// Decimals returns the fixed-point precision
func (l *Ledger) Decimals() uint8 { return tokenDecimals }

// MaxSupply returns the immutable supply cap
func (l *Ledger) MaxSupply() (*uint256.Int, error) {
	return l.maxSupply.Clone(), nil
}

// BalanceOf returns the balance for addr (zero when unknown)
func (l *Ledger) BalanceOf(addr string) (*uint256.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	acc, err := l.stores.Account.GetByAddr(addr)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return uint256.NewInt(0), nil
	}
	return acc.Balance, nil
}

// Allowance returns the remaining spend grant from owner to spender
func (l *Ledger) Allowance(owner, spender string) (*uint256.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.stores.Allowance.Get(owner, spender)
}

// TotalSupply returns the current total supply
func (l *Ledger) TotalSupply() (*uint256.Int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.stores.Meta.TotalSupply()
}

// IsPaused reports the pause flag
func (l *Ledger) IsPaused() (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.stores.Meta.Paused()
}

// GetAllAccounts returns every account, for audits and the CLI
func (l *Ledger) GetAllAccounts() ([]*types.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	accounts, err := l.stores.Account.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get all accounts: %w", err)
	}
	return accounts, nil
}
