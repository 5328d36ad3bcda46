package store

import (
	"fmt"
	"sync"

	"github.com/Tmalone1250/mtk-sale/db"
	"github.com/Tmalone1250/mtk-sale/jsonx"
	"github.com/Tmalone1250/mtk-sale/types"
	"github.com/Tmalone1250/mtk-sale/utils"
)

type AccountStore interface {
	Store(account *types.Account) error
	PutInBatch(batch db.DatabaseBatch, account *types.Account) error
	GetByAddr(addr string) (*types.Account, error)
	GetAll() ([]*types.Account, error)
	ExistsByAddr(addr string) (bool, error)
	MustClose()
}

// accountPayload is the persisted form; balances travel as decimal strings
type accountPayload struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

type GenericAccountStore struct {
	mu         sync.RWMutex
	dbProvider db.DatabaseProvider
}

func NewGenericAccountStore(dbProvider db.DatabaseProvider) (*GenericAccountStore, error) {
	if dbProvider == nil {
		return nil, fmt.Errorf("provider cannot be nil")
	}

	return &GenericAccountStore{
		dbProvider: dbProvider,
	}, nil
}

func marshalAccount(account *types.Account) ([]byte, error) {
	payload := &accountPayload{
		Address: account.Address,
		Balance: utils.Uint256ToString(account.Balance),
	}
	data, err := jsonx.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account: %w", err)
	}
	return data, nil
}

func unmarshalAccount(data []byte) (*types.Account, error) {
	var payload accountPayload
	if err := jsonx.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}
	balance, err := utils.Uint256FromString(payload.Balance)
	if err != nil {
		return nil, fmt.Errorf("invalid stored balance: %w", err)
	}
	return &types.Account{Address: payload.Address, Balance: balance}, nil
}

func (as *GenericAccountStore) Store(account *types.Account) error {
	as.mu.Lock()
	defer as.mu.Unlock()

	data, err := marshalAccount(account)
	if err != nil {
		return err
	}

	if err := as.dbProvider.Put(as.getDbKey(account.Address), data); err != nil {
		return fmt.Errorf("failed to write account to db: %w", err)
	}

	return nil
}

// PutInBatch stages the account write into a caller-owned batch so that
// several stores can commit in one atomic write.
func (as *GenericAccountStore) PutInBatch(batch db.DatabaseBatch, account *types.Account) error {
	data, err := marshalAccount(account)
	if err != nil {
		return err
	}
	batch.Put(as.getDbKey(account.Address), data)
	return nil
}

func (as *GenericAccountStore) GetByAddr(addr string) (*types.Account, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	data, err := as.dbProvider.Get(as.getDbKey(addr))
	if err != nil {
		return nil, fmt.Errorf("failed to read account from db: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	return unmarshalAccount(data)
}

func (as *GenericAccountStore) GetAll() ([]*types.Account, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	iterable, ok := as.dbProvider.(db.IterableProvider)
	if !ok {
		return nil, fmt.Errorf("provider does not support iteration")
	}

	accounts := make([]*types.Account, 0)
	var iterErr error
	err := iterable.IteratePrefix([]byte(PrefixAccount), func(key, value []byte) bool {
		account, err := unmarshalAccount(value)
		if err != nil {
			iterErr = err
			return false
		}
		accounts = append(accounts, account)
		return true
	})
	if err != nil {
		return nil, err
	}
	if iterErr != nil {
		return nil, iterErr
	}
	return accounts, nil
}

func (as *GenericAccountStore) ExistsByAddr(addr string) (bool, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	return as.dbProvider.Has(as.getDbKey(addr))
}

func (as *GenericAccountStore) getDbKey(addr string) []byte {
	return []byte(PrefixAccount + addr)
}

func (as *GenericAccountStore) MustClose() {
	if err := as.dbProvider.Close(); err != nil {
		panic(fmt.Sprintf("failed to close account store: %v", err))
	}
}
