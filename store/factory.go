package store

import (
	"fmt"

	"github.com/Tmalone1250/mtk-sale/db"
)

// StoreType represents the type of store implementation
type StoreType string

const (
	// LevelDBStoreType uses the LevelDB implementation
	LevelDBStoreType StoreType = "leveldb"

	// BoltDBStoreType uses the bbolt implementation
	BoltDBStoreType StoreType = "boltdb"
)

// StoreConfig holds configuration for creating store instances
type StoreConfig struct {
	// Type specifies which store implementation to use
	Type StoreType `json:"type" yaml:"type"`

	// Directory is the database directory path (for file-based databases)
	Directory string `json:"directory" yaml:"directory"`
}

// Validate validates the store configuration
func (sc *StoreConfig) Validate() error {
	if sc.Type == "" {
		return fmt.Errorf("store type cannot be empty")
	}

	if sc.Directory == "" {
		return fmt.Errorf("directory cannot be empty")
	}

	switch sc.Type {
	case LevelDBStoreType, BoltDBStoreType:
		return nil
	default:
		return fmt.Errorf("unsupported store type: %s", sc.Type)
	}
}

// Stores bundles every table the ledger and exchange persist into.
// All stores share one provider so cross-store batches commit atomically.
type Stores struct {
	Provider  db.DatabaseProvider
	Account   AccountStore
	Allowance AllowanceStore
	Role      RoleStore
	Meta      MetaStore
	Currency  CurrencyStore
}

// MustClose closes the shared provider
func (s *Stores) MustClose() {
	if err := s.Provider.Close(); err != nil {
		panic(fmt.Sprintf("failed to close stores: %v", err))
	}
}

// StoreFactory take responsibility to create store instances
type StoreFactory struct{}

// NewStoreFactory creates a new store factory
func NewStoreFactory() *StoreFactory {
	return &StoreFactory{}
}

// CreateProvider creates a database provider for the configured backend
func (sf *StoreFactory) CreateProvider(config *StoreConfig) (db.DatabaseProvider, error) {
	switch config.Type {
	case LevelDBStoreType:
		return db.NewLevelDBProvider(config.Directory)
	case BoltDBStoreType:
		return db.NewBoltDBProvider(config.Directory + "/state.db")
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// CreateStoreWithProvider creates all store instances using the provider pattern
func (sf *StoreFactory) CreateStoreWithProvider(config *StoreConfig) (*Stores, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	provider, err := sf.CreateProvider(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	return NewStores(provider)
}

// NewStores wires every store onto one shared provider
func NewStores(provider db.DatabaseProvider) (*Stores, error) {
	accountStore, err := NewGenericAccountStore(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create account store: %w", err)
	}
	allowanceStore, err := NewGenericAllowanceStore(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create allowance store: %w", err)
	}
	roleStore, err := NewGenericRoleStore(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create role store: %w", err)
	}
	metaStore, err := NewGenericMetaStore(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create meta store: %w", err)
	}
	currencyStore, err := NewGenericCurrencyStore(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create currency store: %w", err)
	}

	return &Stores{
		Provider:  provider,
		Account:   accountStore,
		Allowance: allowanceStore,
		Role:      roleStore,
		Meta:      metaStore,
		Currency:  currencyStore,
	}, nil
}
