package store

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"

	"github.com/Tmalone1250/mtk-sale/db"
	"github.com/Tmalone1250/mtk-sale/jsonx"
	"github.com/Tmalone1250/mtk-sale/types"
	"github.com/Tmalone1250/mtk-sale/utils"
)

// MetaStore holds the scalar ledger and exchange state that does not fit
// the per-principal tables: supply counters, the pause flag, pending
// transfer records, exchange ownership and rates.
type MetaStore interface {
	SetTokenInfo(name, symbol string, maxSupply *uint256.Int) error
	TokenInfo() (name, symbol string, maxSupply *uint256.Int, err error)

	TotalSupply() (*uint256.Int, error)
	SetTotalSupplyInBatch(batch db.DatabaseBatch, supply *uint256.Int)

	Paused() (bool, error)
	SetPaused(paused bool) error

	PendingAdmin() (*types.PendingAdmin, error)
	SetPendingAdmin(pending *types.PendingAdmin) error
	ClearPendingAdmin() error
	ClearPendingAdminInBatch(batch db.DatabaseBatch)

	SetRates(buyPrice, sellPrice *uint256.Int) error
	Rates() (buyPrice, sellPrice *uint256.Int, err error)

	Owner() (string, error)
	SetOwner(owner string) error
	SetOwnerInBatch(batch db.DatabaseBatch, owner string)
	PendingOwner() (*types.PendingOwner, error)
	SetPendingOwner(pending *types.PendingOwner) error
	ClearPendingOwner() error
	ClearPendingOwnerInBatch(batch db.DatabaseBatch)
}

type GenericMetaStore struct {
	mu         sync.RWMutex
	dbProvider db.DatabaseProvider
}

func NewGenericMetaStore(dbProvider db.DatabaseProvider) (*GenericMetaStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericMetaStore{
		dbProvider: dbProvider,
	}, nil
}

func (s *GenericMetaStore) SetTokenInfo(name, symbol string, maxSupply *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.dbProvider.Batch()
	defer batch.Close()
	batch.Put([]byte(MetaKeyTokenName), []byte(name))
	batch.Put([]byte(MetaKeyTokenSymbol), []byte(symbol))
	batch.Put([]byte(MetaKeyMaxSupply), []byte(utils.Uint256ToString(maxSupply)))
	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to write token info: %w", err)
	}
	return nil
}

func (s *GenericMetaStore) TokenInfo() (string, string, *uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, err := s.dbProvider.Get([]byte(MetaKeyTokenName))
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read token name: %w", err)
	}
	symbol, err := s.dbProvider.Get([]byte(MetaKeyTokenSymbol))
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read token symbol: %w", err)
	}
	maxSupply, err := s.getAmount(MetaKeyMaxSupply)
	if err != nil {
		return "", "", nil, err
	}
	return string(name), string(symbol), maxSupply, nil
}

func (s *GenericMetaStore) TotalSupply() (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getAmount(MetaKeyTotalSupply)
}

// SetTotalSupplyInBatch stages the supply counter write into a caller-owned
// batch so the counter and the balances it backs commit together.
func (s *GenericMetaStore) SetTotalSupplyInBatch(batch db.DatabaseBatch, supply *uint256.Int) {
	batch.Put([]byte(MetaKeyTotalSupply), []byte(utils.Uint256ToString(supply)))
}

func (s *GenericMetaStore) Paused() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.dbProvider.Get([]byte(MetaKeyPaused))
	if err != nil {
		return false, fmt.Errorf("failed to read pause flag: %w", err)
	}
	return string(data) == "1", nil
}

func (s *GenericMetaStore) SetPaused(paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value := []byte("0")
	if paused {
		value = []byte("1")
	}
	if err := s.dbProvider.Put([]byte(MetaKeyPaused), value); err != nil {
		return fmt.Errorf("failed to write pause flag: %w", err)
	}
	return nil
}

func (s *GenericMetaStore) PendingAdmin() (*types.PendingAdmin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.dbProvider.Get([]byte(MetaKeyPendingAdmin))
	if err != nil {
		return nil, fmt.Errorf("failed to read pending admin: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var pending types.PendingAdmin
	if err := jsonx.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending admin: %w", err)
	}
	return &pending, nil
}

func (s *GenericMetaStore) SetPendingAdmin(pending *types.PendingAdmin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := jsonx.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending admin: %w", err)
	}
	if err := s.dbProvider.Put([]byte(MetaKeyPendingAdmin), data); err != nil {
		return fmt.Errorf("failed to write pending admin: %w", err)
	}
	return nil
}

func (s *GenericMetaStore) ClearPendingAdmin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dbProvider.Delete([]byte(MetaKeyPendingAdmin))
}

// ClearPendingAdminInBatch stages the delete into a caller-owned batch so a
// handover's role changes and its cleared proposal commit together.
func (s *GenericMetaStore) ClearPendingAdminInBatch(batch db.DatabaseBatch) {
	batch.Delete([]byte(MetaKeyPendingAdmin))
}

func (s *GenericMetaStore) SetRates(buyPrice, sellPrice *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := s.dbProvider.Batch()
	defer batch.Close()
	batch.Put([]byte(MetaKeyBuyPrice), []byte(utils.Uint256ToString(buyPrice)))
	batch.Put([]byte(MetaKeySellPrice), []byte(utils.Uint256ToString(sellPrice)))
	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to write exchange rates: %w", err)
	}
	return nil
}

func (s *GenericMetaStore) Rates() (*uint256.Int, *uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	buyPrice, err := s.getAmount(MetaKeyBuyPrice)
	if err != nil {
		return nil, nil, err
	}
	sellPrice, err := s.getAmount(MetaKeySellPrice)
	if err != nil {
		return nil, nil, err
	}
	return buyPrice, sellPrice, nil
}

func (s *GenericMetaStore) Owner() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.dbProvider.Get([]byte(MetaKeyOwner))
	if err != nil {
		return "", fmt.Errorf("failed to read owner: %w", err)
	}
	return string(data), nil
}

func (s *GenericMetaStore) SetOwner(owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dbProvider.Put([]byte(MetaKeyOwner), []byte(owner)); err != nil {
		return fmt.Errorf("failed to write owner: %w", err)
	}
	return nil
}

// SetOwnerInBatch stages the owner write into a caller-owned batch
func (s *GenericMetaStore) SetOwnerInBatch(batch db.DatabaseBatch, owner string) {
	batch.Put([]byte(MetaKeyOwner), []byte(owner))
}

func (s *GenericMetaStore) PendingOwner() (*types.PendingOwner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := s.dbProvider.Get([]byte(MetaKeyPendingOwner))
	if err != nil {
		return nil, fmt.Errorf("failed to read pending owner: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	var pending types.PendingOwner
	if err := jsonx.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending owner: %w", err)
	}
	return &pending, nil
}

func (s *GenericMetaStore) SetPendingOwner(pending *types.PendingOwner) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := jsonx.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending owner: %w", err)
	}
	if err := s.dbProvider.Put([]byte(MetaKeyPendingOwner), data); err != nil {
		return fmt.Errorf("failed to write pending owner: %w", err)
	}
	return nil
}

func (s *GenericMetaStore) ClearPendingOwner() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.dbProvider.Delete([]byte(MetaKeyPendingOwner))
}

// ClearPendingOwnerInBatch stages the delete into a caller-owned batch
func (s *GenericMetaStore) ClearPendingOwnerInBatch(batch db.DatabaseBatch) {
	batch.Delete([]byte(MetaKeyPendingOwner))
}

func (s *GenericMetaStore) getAmount(key string) (*uint256.Int, error) {
	data, err := s.dbProvider.Get([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	amount, err := utils.Uint256FromString(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount at %s: %w", key, err)
	}
	return amount, nil
}
