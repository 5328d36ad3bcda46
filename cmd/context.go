package cmd

import (
	"fmt"
	"time"

	"github.com/Tmalone1250/mtk-sale/config"
	"github.com/Tmalone1250/mtk-sale/currency"
	"github.com/Tmalone1250/mtk-sale/events"
	"github.com/Tmalone1250/mtk-sale/exchange"
	"github.com/Tmalone1250/mtk-sale/ledger"
	"github.com/Tmalone1250/mtk-sale/roles"
	"github.com/Tmalone1250/mtk-sale/store"
)

var (
	settingsPath string
	genesisPath  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", config.DefaultSettingsPath, "path to settings.ini")
	rootCmd.PersistentFlags().StringVar(&genesisPath, "genesis", config.DefaultGenesisPath, "path to genesis.yml")
}

// runtimeState bundles everything an operational command needs
type runtimeState struct {
	stores      *store.Stores
	eventBus    *events.EventBus
	permissions *roles.PermissionStore
	ledger      *ledger.Ledger
	vault       *currency.Vault
	exchange    *exchange.Exchange
}

func loadStores() (*store.Stores, error) {
	settings, err := config.LoadStoreSettings(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings.Type == "" {
		settings.Type = config.DefaultStoreType
	}
	if settings.Directory == "" {
		settings.Directory = config.DefaultDataDir
	}

	factory := store.NewStoreFactory()
	return factory.CreateStoreWithProvider(&store.StoreConfig{
		Type:      store.StoreType(settings.Type),
		Directory: settings.Directory,
	})
}

// openState restores the ledger and exchange from the persisted store.
// The genesis file is only needed for the admin transfer delay and the
// exchange address; everything else lives in the store.
func openState() (*runtimeState, error) {
	gen, err := config.LoadGenesisConfig(genesisPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load genesis: %w", err)
	}

	stores, err := loadStores()
	if err != nil {
		return nil, err
	}

	eventBus := events.NewEventBus()
	permissions := roles.NewPermissionStore(stores, eventBus, time.Duration(gen.Admin.TransferDelaySecs)*time.Second)

	led, err := ledger.OpenLedger(stores, permissions, eventBus)
	if err != nil {
		stores.MustClose()
		return nil, err
	}

	vault := currency.NewVault(stores)

	buyPrice, sellPrice, err := stores.Meta.Rates()
	if err != nil {
		stores.MustClose()
		return nil, err
	}
	owner, err := stores.Meta.Owner()
	if err != nil {
		stores.MustClose()
		return nil, err
	}
	exch, err := exchange.NewExchange(gen.Exchange.Address, led, vault, stores, eventBus, buyPrice, sellPrice, owner)
	if err != nil {
		stores.MustClose()
		return nil, err
	}

	return &runtimeState{
		stores:      stores,
		eventBus:    eventBus,
		permissions: permissions,
		ledger:      led,
		vault:       vault,
		exchange:    exch,
	}, nil
}

func (rs *runtimeState) close() {
	rs.stores.MustClose()
}
