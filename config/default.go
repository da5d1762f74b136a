package config

import (
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
)

const (
	DefaultRPCEndPoint = "wss://node1.gxb.io"
	DefaultFaucetAddr  = "https://opengateway.gxb.io"
	DefaultChainID     = "4f7d07969c446f8342033acb3ab2ae5044cbe0fde93db02de75bd17fa8fd84b8"
)

type RPCConfig struct {
	Endpoint           string
	Timeout            time.Duration
	CallsPerSecond     int
	BreakerMaxFailures uint32
}

type ChainConfig struct {
	CoreSymbol        string
	ExpirationSeconds uint32
}

type FaucetConfig struct {
	Addr string
}

type LogConfig struct {
	Dir        string
	Level      string
	MaxAgeDays uint32
}

// Config is everything the wallet needs at startup
type Config struct {
	DataDir string
	ChainID string
	// Platform is the embedding host: ios, android or web
	Platform    string
	HostVersion string

	RPC    RPCConfig
	Chain  ChainConfig
	Faucet FaucetConfig
	Log    LogConfig
}

// DefaultConfig contains reasonable default settings.
func DefaultConfig() Config {
	return Config{
		DataDir:  DefaultDataDir(),
		ChainID:  DefaultChainID,
		Platform: "web",
		RPC: RPCConfig{
			Endpoint:           DefaultRPCEndPoint,
			Timeout:            15 * time.Second,
			CallsPerSecond:     20,
			BreakerMaxFailures: 5,
		},
		Chain: ChainConfig{
			CoreSymbol:        "GXC",
			ExpirationSeconds: 30,
		},
		Faucet: FaucetConfig{
			Addr: DefaultFaucetAddr,
		},
		Log: LogConfig{
			Level:      "info",
			MaxAgeDays: 7,
		},
	}
}

func DefaultDataDir() string {
	home, err := homedir.Dir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".gxwallet")
}
