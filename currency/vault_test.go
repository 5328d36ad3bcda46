package currency

import (
	stderrors "errors"
	"testing"

	"github.com/holiman/uint256"

	ledgererr "github.com/Tmalone1250/mtk-sale/errors"
	"github.com/Tmalone1250/mtk-sale/store"
)

func newTestVault(t *testing.T) *Vault {
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

	return NewVault(stores)
}

func TestDepositAndBalance(t *testing.T) {
	vault := newTestVault(t)

	if balance, _ := vault.BalanceOf("alice"); !balance.IsZero() {
		t.Errorf("Fresh principal has balance %s", balance.Dec())
	}

	if err := vault.Deposit("alice", uint256.NewInt(500)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if err := vault.Deposit("alice", uint256.NewInt(250)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	balance, err := vault.BalanceOf("alice")
	if err != nil {
		t.Fatalf("BalanceOf failed: %v", err)
	}
	if balance.Uint64() != 750 {
		t.Errorf("Balance = %s, expected 750", balance.Dec())
	}

	if err := vault.Deposit("alice", uint256.NewInt(0)); !stderrors.Is(err, ledgererr.ErrZeroAmount) {
		t.Errorf("Expected ZeroAmount, got %v", err)
	}
}

func TestVaultTransfer(t *testing.T) {
	vault := newTestVault(t)

	if err := vault.Deposit("alice", uint256.NewInt(100)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	if err := vault.Transfer("alice", "bob", uint256.NewInt(40)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	alice, _ := vault.BalanceOf("alice")
	bob, _ := vault.BalanceOf("bob")
	if alice.Uint64() != 60 || bob.Uint64() != 40 {
		t.Errorf("Balances = %s/%s, expected 60/40", alice.Dec(), bob.Dec())
	}

	err := vault.Transfer("alice", "bob", uint256.NewInt(61))
	if !stderrors.Is(err, ledgererr.ErrInsufficientBalance) {
		t.Errorf("Expected InsufficientBalance, got %v", err)
	}
	alice, _ = vault.BalanceOf("alice")
	if alice.Uint64() != 60 {
		t.Errorf("Sender balance moved on rejected transfer: %s", alice.Dec())
	}
}

func TestSelfTransferConservesBalance(t *testing.T) {
	vault := newTestVault(t)

	if err := vault.Deposit("alice", uint256.NewInt(100)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	hookFired := false
	vault.SetHook("alice", func(from string, amount *uint256.Int) {
		hookFired = true
	})

	// paying yourself must leave the balance exactly as it was
	if err := vault.Transfer("alice", "alice", uint256.NewInt(40)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	alice, _ := vault.BalanceOf("alice")
	if alice.Uint64() != 100 {
		t.Errorf("Self transfer changed balance to %s, expected 100", alice.Dec())
	}
	if hookFired {
		t.Error("Hook fired on self transfer")
	}

	err := vault.Transfer("alice", "alice", uint256.NewInt(101))
	if !stderrors.Is(err, ledgererr.ErrInsufficientBalance) {
		t.Errorf("Expected InsufficientBalance, got %v", err)
	}
}

func TestReceiveHookRunsAfterCommit(t *testing.T) {
	vault := newTestVault(t)

	if err := vault.Deposit("alice", uint256.NewInt(100)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	var hookFrom string
	var hookSeen *uint256.Int
	vault.SetHook("bob", func(from string, amount *uint256.Int) {
		hookFrom = from
		// the credit is already committed when the hook observes it,
		// and the vault lock is released so callbacks are legal here
		hookSeen, _ = vault.BalanceOf("bob")
		_ = amount
	})

	if err := vault.Transfer("alice", "bob", uint256.NewInt(30)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if hookFrom != "alice" {
		t.Errorf("Hook saw from=%q, expected alice", hookFrom)
	}
	if hookSeen == nil || hookSeen.Uint64() != 30 {
		t.Errorf("Hook observed balance %v, expected committed 30", hookSeen)
	}

	vault.RemoveHook("bob")
	hookFrom = ""
	if err := vault.Transfer("alice", "bob", uint256.NewInt(10)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if hookFrom != "" {
		t.Error("Hook fired after removal")
	}
}

func TestHookFailureDoesNotRevertTransfer(t *testing.T) {
	vault := newTestVault(t)

	if err := vault.Deposit("alice", uint256.NewInt(50)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	vault.SetHook("bob", func(from string, amount *uint256.Int) {
		// a hook that tries to move funds it does not have; the failure
		// stays inside the hook and cannot veto the committed credit
		_ = vault.Transfer("bob", "mallory", uint256.NewInt(10_000))
	})

	if err := vault.Transfer("alice", "bob", uint256.NewInt(20)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	bob, _ := vault.BalanceOf("bob")
	if bob.Uint64() != 20 {
		t.Errorf("Bob balance = %s, expected 20", bob.Dec())
	}
}
