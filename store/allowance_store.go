package store

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/Tmalone1250/mtk-sale/db"
	"github.com/Tmalone1250/mtk-sale/utils"
)

// AllowanceStore tracks remaining-spend grants keyed by (owner, spender).
// An absent record reads as a zero allowance.
type AllowanceStore interface {
	Get(owner, spender string) (*uint256.Int, error)
	Put(owner, spender string, remaining *uint256.Int) error
	PutInBatch(batch db.DatabaseBatch, owner, spender string, remaining *uint256.Int)
}

type GenericAllowanceStore struct {
	mu         sync.RWMutex
	dbProvider db.DatabaseProvider
}

func NewGenericAllowanceStore(dbProvider db.DatabaseProvider) (*GenericAllowanceStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericAllowanceStore{
		dbProvider: dbProvider,
	}, nil
}

func (s *GenericAllowanceStore) Get(owner, spender string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.dbProvider.Get(s.getDbKey(owner, spender))
	if err != nil {
		return nil, fmt.Errorf("failed to read allowance from db: %w", err)
	}
	if data == nil {
		return uint256.NewInt(0), nil
	}

	remaining, err := utils.Uint256FromString(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid stored allowance: %w", err)
	}
	return remaining, nil
}

func (s *GenericAllowanceStore) Put(owner, spender string, remaining *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.getDbKey(owner, spender)
	if err := s.dbProvider.Put(key, []byte(utils.Uint256ToString(remaining))); err != nil {
		return fmt.Errorf("failed to write allowance to db: %w", err)
	}
	return nil
}

// PutInBatch stages the allowance write into a caller-owned batch
func (s *GenericAllowanceStore) PutInBatch(batch db.DatabaseBatch, owner, spender string, remaining *uint256.Int) {
	batch.Put(s.getDbKey(owner, spender), []byte(utils.Uint256ToString(remaining)))
}

func (s *GenericAllowanceStore) getDbKey(owner, spender string) []byte {
	return []byte(PrefixAllowance + owner + ":" + spender)
}
