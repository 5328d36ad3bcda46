package config

const (
	DefaultGenesisPath  = "genesis.yml"
	DefaultSettingsPath = "settings.ini"
	DefaultDataDir      = "./data"
	DefaultStoreType    = "leveldb"
	DefaultMetricsAddr  = ":9091"
)
