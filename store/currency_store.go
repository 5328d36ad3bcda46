package store

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/Tmalone1250/mtk-sale/db"
	"github.com/Tmalone1250/mtk-sale/utils"
)

// CurrencyStore tracks settlement-currency balances per principal,
// separate from the token balance table. An absent record reads as zero.
type CurrencyStore interface {
	Get(principal string) (*uint256.Int, error)
	Put(principal string, balance *uint256.Int) error
	PutInBatch(batch db.DatabaseBatch, principal string, balance *uint256.Int)
}

type GenericCurrencyStore struct {
	mu         sync.RWMutex
	dbProvider db.DatabaseProvider
}

func NewGenericCurrencyStore(dbProvider db.DatabaseProvider) (*GenericCurrencyStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericCurrencyStore{
		dbProvider: dbProvider,
	}, nil
}

func (s *GenericCurrencyStore) Get(principal string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.dbProvider.Get(s.getDbKey(principal))
	if err != nil {
		return nil, fmt.Errorf("failed to read currency balance from db: %w", err)
	}
	if data == nil {
		return uint256.NewInt(0), nil
	}

	balance, err := utils.Uint256FromString(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid stored currency balance: %w", err)
	}
	return balance, nil
}

func (s *GenericCurrencyStore) Put(principal string, balance *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dbProvider.Put(s.getDbKey(principal), []byte(utils.Uint256ToString(balance))); err != nil {
		return fmt.Errorf("failed to write currency balance to db: %w", err)
	}
	return nil
}

// PutInBatch stages the balance write into a caller-owned batch
func (s *GenericCurrencyStore) PutInBatch(batch db.DatabaseBatch, principal string, balance *uint256.Int) {
	batch.Put(s.getDbKey(principal), []byte(utils.Uint256ToString(balance)))
}

func (s *GenericCurrencyStore) getDbKey(principal string) []byte {
	return []byte(PrefixCurrency + principal)
}
