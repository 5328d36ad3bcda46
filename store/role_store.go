package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/Tmalone1250/mtk-sale/db"
)

// RoleStore persists role membership as one key per (role, principal).
// Keys: PrefixRole + <role> + ":" + <principal> => "1"
type RoleStore interface {
	Has(role, principal string) (bool, error)
	Grant(role, principal string) error
	GrantInBatch(batch db.DatabaseBatch, role, principal string)
	Revoke(role, principal string) error
	RevokeInBatch(batch db.DatabaseBatch, role, principal string)
	Members(role string) ([]string, error)
}

type GenericRoleStore struct {
	mu         sync.RWMutex
	dbProvider db.DatabaseProvider
}

func NewGenericRoleStore(dbProvider db.DatabaseProvider) (*GenericRoleStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericRoleStore{
		dbProvider: dbProvider,
	}, nil
}

func (s *GenericRoleStore) Has(role, principal string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dbProvider.Has(s.getDbKey(role, principal))
}

func (s *GenericRoleStore) Grant(role, principal string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dbProvider.Put(s.getDbKey(role, principal), []byte("1")); err != nil {
		return fmt.Errorf("failed to write role grant to db: %w", err)
	}
	return nil
}

// GrantInBatch stages a grant into a caller-owned batch so the whole role
// change set commits in one write.
func (s *GenericRoleStore) GrantInBatch(batch db.DatabaseBatch, role, principal string) {
	batch.Put(s.getDbKey(role, principal), []byte("1"))
}

func (s *GenericRoleStore) Revoke(role, principal string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dbProvider.Delete(s.getDbKey(role, principal)); err != nil {
		return fmt.Errorf("failed to delete role grant from db: %w", err)
	}
	return nil
}

// RevokeInBatch stages a revoke into a caller-owned batch
func (s *GenericRoleStore) RevokeInBatch(batch db.DatabaseBatch, role, principal string) {
	batch.Delete(s.getDbKey(role, principal))
}

// Members lists every principal currently holding role
func (s *GenericRoleStore) Members(role string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	iterable, ok := s.dbProvider.(db.IterableProvider)
	if !ok {
		return nil, fmt.Errorf("provider does not support iteration")
	}

	prefix := PrefixRole + role + ":"
	members := make([]string, 0)
	err := iterable.IteratePrefix([]byte(prefix), func(key, value []byte) bool {
		members = append(members, strings.TrimPrefix(string(key), prefix))
		return true
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (s *GenericRoleStore) getDbKey(role, principal string) []byte {
	return []byte(PrefixRole + role + ":" + principal)
}
