package roles

import (
	"fmt"
	"sync"
	"time"

	"github.com/Tmalone1250/mtk-sale/db"
	"github.com/Tmalone1250/mtk-sale/errors"
	"github.com/Tmalone1250/mtk-sale/events"
	"github.com/Tmalone1250/mtk-sale/logx"
	"github.com/Tmalone1250/mtk-sale/store"
	"github.com/Tmalone1250/mtk-sale/types"
	"github.com/Tmalone1250/mtk-sale/utils"
)

// PermissionStore holds role assignments and the two-step admin handover
// state. The ledger consults it before every permissioned mutation.
type PermissionStore struct {
	mu        sync.Mutex
	provider  db.DatabaseProvider
	roleStore store.RoleStore
	metaStore store.MetaStore
	eventBus  *events.EventBus
	minDelay  time.Duration
	now       func() time.Time
}

func NewPermissionStore(stores *store.Stores, eventBus *events.EventBus, minDelay time.Duration) *PermissionStore {
	return &PermissionStore{
		provider:  stores.Provider,
		roleStore: stores.Role,
		metaStore: stores.Meta,
		eventBus:  eventBus,
		minDelay:  minDelay,
		now:       time.Now,
	}
}

// HasPermission reports whether principal currently holds role
func (ps *PermissionStore) HasPermission(principal, role string) (bool, error) {
	return ps.roleStore.Has(role, principal)
}

// requireAdmin fails with Unauthorized unless caller holds the admin role
func (ps *PermissionStore) requireAdmin(caller string) error {
	isAdmin, err := ps.roleStore.Has(types.RoleAdmin, caller)
	if err != nil {
		return fmt.Errorf("could not check admin role: %w", err)
	}
	if !isAdmin {
		return errors.ErrUnauthorized
	}
	return nil
}

// Grant assigns role to principal. Admin-only.
func (ps *PermissionStore) Grant(caller, role, principal string) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if err := ps.requireAdmin(caller); err != nil {
		return err
	}
	if principal == types.ZeroAddress {
		return errors.ErrZeroAddress
	}

	if err := ps.roleStore.Grant(role, principal); err != nil {
		return err
	}

	logx.Info("ROLES", fmt.Sprintf("Granted role %s to %s", role, utils.ShortenLog(principal)))
	ps.eventBus.Publish(events.NewRoleChanged(role, principal, caller, true))
	return nil
}

// Revoke removes role from principal. Admin-only.
func (ps *PermissionStore) Revoke(caller, role, principal string) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if err := ps.requireAdmin(caller); err != nil {
		return err
	}

	if err := ps.roleStore.Revoke(role, principal); err != nil {
		return err
	}

	logx.Info("ROLES", fmt.Sprintf("Revoked role %s from %s", role, utils.ShortenLog(principal)))
	ps.eventBus.Publish(events.NewRoleChanged(role, principal, caller, false))
	return nil
}

// ProposeAdmin records a pending admin handover to candidate. A zero
// notBefore defaults to now plus the configured minimum delay; an explicit
// notBefore earlier than that is rejected with TooEarly.
func (ps *PermissionStore) ProposeAdmin(caller, candidate string, notBefore int64) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if err := ps.requireAdmin(caller); err != nil {
		return err
	}
	if candidate == types.ZeroAddress {
		return errors.ErrZeroAddress
	}

	earliest := ps.now().Add(ps.minDelay).Unix()
	if notBefore == 0 {
		notBefore = earliest
	} else if notBefore < earliest {
		return fmt.Errorf("notBefore precedes the configured delay: %w", errors.ErrTooEarly)
	}

	pending := &types.PendingAdmin{Candidate: candidate, NotBefore: notBefore}
	if err := ps.metaStore.SetPendingAdmin(pending); err != nil {
		return err
	}

	logx.Info("ROLES", fmt.Sprintf("Proposed admin %s, acceptable from %d", utils.ShortenLog(candidate), notBefore))
	ps.eventBus.Publish(events.NewAdminProposed(candidate, notBefore))
	return nil
}

// AcceptAdmin completes a pending handover. Candidate-only, only at or
// after the recorded notBefore. The previous admin set is replaced.
func (ps *PermissionStore) AcceptAdmin(caller string) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	pending, err := ps.metaStore.PendingAdmin()
	if err != nil {
		return err
	}
	if pending == nil || pending.Candidate != caller {
		return errors.ErrUnauthorized
	}
	if ps.now().Unix() < pending.NotBefore {
		return errors.ErrTooEarly
	}

	previous, err := ps.roleStore.Members(types.RoleAdmin)
	if err != nil {
		return fmt.Errorf("could not list current admins: %w", err)
	}
	// revocations, the new grant and the cleared proposal land in one
	// commit so a crash cannot leave the ledger without an admin
	batch := ps.provider.Batch()
	for _, admin := range previous {
		ps.roleStore.RevokeInBatch(batch, types.RoleAdmin, admin)
	}
	ps.roleStore.GrantInBatch(batch, types.RoleAdmin, caller)
	ps.metaStore.ClearPendingAdminInBatch(batch)
	err = batch.Write()
	batch.Close()
	if err != nil {
		return fmt.Errorf("failed to commit admin handover: %w", err)
	}

	logx.Info("ROLES", fmt.Sprintf("Admin handover accepted by %s", utils.ShortenLog(caller)))
	ps.eventBus.Publish(events.NewAdminAccepted(caller))
	return nil
}

// CancelAdmin clears a pending handover without completing it. Admin-only.
func (ps *PermissionStore) CancelAdmin(caller string) error {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if err := ps.requireAdmin(caller); err != nil {
		return err
	}

	pending, err := ps.metaStore.PendingAdmin()
	if err != nil {
		return err
	}
	if pending == nil {
		return errors.ErrNoPendingRecord
	}

	if err := ps.metaStore.ClearPendingAdmin(); err != nil {
		return err
	}

	logx.Info("ROLES", fmt.Sprintf("Admin handover to %s canceled", utils.ShortenLog(pending.Candidate)))
	ps.eventBus.Publish(events.NewAdminCanceled(pending.Candidate))
	return nil
}

// PendingAdmin returns the current pending handover record (nil when none)
func (ps *PermissionStore) PendingAdmin() (*types.PendingAdmin, error) {
	return ps.metaStore.PendingAdmin()
}
