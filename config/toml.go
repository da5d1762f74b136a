package config

import (
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	ConfigName = "config"
	ConfigFile = ConfigName + ".toml"
	envPrefix  = "GXWALLET"
)

// LoadConfig reads config.toml from dir on top of the defaults. A missing
// file is not an error. GXWALLET_* environment variables override both.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()
	if dir != "" {
		cfg.DataDir = dir
	}

	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType("toml")
	v.AddConfigPath(cfg.DataDir)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return cfg, errors.Wrap(err, "read config")
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("DataDir", cfg.DataDir)
	v.SetDefault("ChainID", cfg.ChainID)
	v.SetDefault("Platform", cfg.Platform)
	v.SetDefault("HostVersion", cfg.HostVersion)
	v.SetDefault("RPC.Endpoint", cfg.RPC.Endpoint)
	v.SetDefault("RPC.Timeout", cfg.RPC.Timeout)
	v.SetDefault("RPC.CallsPerSecond", cfg.RPC.CallsPerSecond)
	v.SetDefault("RPC.BreakerMaxFailures", cfg.RPC.BreakerMaxFailures)
	v.SetDefault("Chain.CoreSymbol", cfg.Chain.CoreSymbol)
	v.SetDefault("Chain.ExpirationSeconds", cfg.Chain.ExpirationSeconds)
	v.SetDefault("Faucet.Addr", cfg.Faucet.Addr)
	v.SetDefault("Log.Dir", cfg.Log.Dir)
	v.SetDefault("Log.Level", cfg.Log.Level)
	v.SetDefault("Log.MaxAgeDays", cfg.Log.MaxAgeDays)
}

type tomlRPC struct {
	Endpoint           string `toml:"Endpoint"`
	Timeout            string `toml:"Timeout"`
	CallsPerSecond     int64  `toml:"CallsPerSecond"`
	BreakerMaxFailures int64  `toml:"BreakerMaxFailures"`
}

type tomlChain struct {
	CoreSymbol        string `toml:"CoreSymbol"`
	ExpirationSeconds int64  `toml:"ExpirationSeconds"`
}

type tomlFaucet struct {
	Addr string `toml:"Addr"`
}

type tomlLog struct {
	Dir        string `toml:"Dir"`
	Level      string `toml:"Level"`
	MaxAgeDays int64  `toml:"MaxAgeDays"`
}

type tomlConfig struct {
	DataDir     string     `toml:"DataDir"`
	ChainID     string     `toml:"ChainID"`
	Platform    string     `toml:"Platform"`
	HostVersion string     `toml:"HostVersion"`
	RPC         tomlRPC    `toml:"RPC"`
	Chain       tomlChain  `toml:"Chain"`
	Faucet      tomlFaucet `toml:"Faucet"`
	Log         tomlLog    `toml:"Log"`
}

// WriteConfigFile stores cfg as dir/config.toml
func WriteConfigFile(dir string, cfg Config, mode os.FileMode) error {
	data, err := toml.Marshal(tomlConfig{
		DataDir:     cfg.DataDir,
		ChainID:     cfg.ChainID,
		Platform:    cfg.Platform,
		HostVersion: cfg.HostVersion,
		RPC: tomlRPC{
			Endpoint:           cfg.RPC.Endpoint,
			Timeout:            cfg.RPC.Timeout.String(),
			CallsPerSecond:     int64(cfg.RPC.CallsPerSecond),
			BreakerMaxFailures: int64(cfg.RPC.BreakerMaxFailures),
		},
		Chain: tomlChain{
			CoreSymbol:        cfg.Chain.CoreSymbol,
			ExpirationSeconds: int64(cfg.Chain.ExpirationSeconds),
		},
		Faucet: tomlFaucet{Addr: cfg.Faucet.Addr},
		Log: tomlLog{
			Dir:        cfg.Log.Dir,
			Level:      cfg.Log.Level,
			MaxAgeDays: int64(cfg.Log.MaxAgeDays),
		},
	})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return ioutil.WriteFile(filepath.Join(dir, ConfigFile), data, mode)
}
