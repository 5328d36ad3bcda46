package config

// TokenConfig describes the token created at genesis. Amounts are decimal
// strings in smallest units (10^18 per whole token).
type TokenConfig struct {
	Name           string `yaml:"name"`
	Symbol         string `yaml:"symbol"`
	MaxSupply      string `yaml:"max_supply"`
	InitialHolder  string `yaml:"initial_holder"`
	InitialBalance string `yaml:"initial_balance"`
}

// AdminConfig holds the initial administrator and the minimum delay for
// two-step admin handovers.
type AdminConfig struct {
	Address           string `yaml:"address"`
	TransferDelaySecs int64  `yaml:"transfer_delay_secs"`
}

// ExchangeConfig describes the exchange deployed after the ledger. Rates
// are currency-per-whole-token, scaled by 10^18.
type ExchangeConfig struct {
	Address   string `yaml:"address"`
	Owner     string `yaml:"owner"`
	BuyPrice  string `yaml:"buy_price"`
	SellPrice string `yaml:"sell_price"`
}

// GenesisConfig holds the configuration from genesis.yml
type GenesisConfig struct {
	Token    TokenConfig    `yaml:"token"`
	Admin    AdminConfig    `yaml:"admin"`
	Exchange ExchangeConfig `yaml:"exchange"`
}

// ConfigFile is the top-level structure for genesis.yml
type ConfigFile struct {
	Config GenesisConfig `yaml:"config"`
}

// StoreSettings selects the database backend
type StoreSettings struct {
	Type      string `ini:"type"`
	Directory string `ini:"directory"`
}

// MetricsSettings configures the prometheus endpoint
type MetricsSettings struct {
	ListenAddr string `ini:"listen_addr"`
}
