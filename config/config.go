package config

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"github.com/mr-tron/base58"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadGenesisConfig reads and parses the genesis.yml file
func LoadGenesisConfig(path string) (*GenesisConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		log.Printf("[config] Failed to open file: %v", err)
		return nil, err
	}
	defer file.Close()

	var cfgFile ConfigFile
	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfgFile); err != nil {
		log.Printf("[config] Failed to decode YAML: %v", err)
		return nil, err
	}
	log.Printf("[config] Loaded genesis: token=%s (%s), admin=%s", cfgFile.Config.Token.Name, cfgFile.Config.Token.Symbol, cfgFile.Config.Admin.Address)
	return &cfgFile.Config, nil
}

// LoadStoreSettings reads store settings from an .ini file
func LoadStoreSettings(path string) (*StoreSettings, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	storeSection := cfg.Section("store")
	storeCfg := &StoreSettings{}
	err = storeSection.MapTo(storeCfg)
	if err != nil {
		return nil, err
	}
	return storeCfg, nil
}

// LoadMetricsSettings reads metrics settings from an .ini file
func LoadMetricsSettings(path string) (*MetricsSettings, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	metricsSection := cfg.Section("metrics")
	metricsCfg := &MetricsSettings{}
	err = metricsSection.MapTo(metricsCfg)
	if err != nil {
		return nil, err
	}
	return metricsCfg, nil
}

// LoadEd25519PrivKey loads an Ed25519 private key from a file (expects hex encoding)
func LoadEd25519PrivKey(path string) (ed25519.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	key, err := hex.DecodeString(string(data))
	if err != nil {
		return nil, err
	}
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key size: %d", len(key))
	}
	return ed25519.PrivateKey(key), nil
}

// GenerateKeypair creates a fresh Ed25519 keypair and returns the base58
// address derived from the public key plus the hex-encoded private key.
func GenerateKeypair() (addr string, privHex string, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", err
	}
	return base58.Encode(pub), hex.EncodeToString(priv), nil
}

// AddressFromPrivKey derives the base58 address for a loaded private key
func AddressFromPrivKey(priv ed25519.PrivateKey) string {
	return base58.Encode(priv.Public().(ed25519.PublicKey))
}
