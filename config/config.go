// Package config loads the pipeline's external-interface settings: WebSocket
// endpoints and subgraph credentials, read from a YAML file with environment
// variables taking precedence — the same two-layer shape as the reference
// client's own config.yaml. No config file ships with this module; a missing
// file leaves the defaults and environment values in place.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	envWSSURLs             = "WSS_URLS"
	envTheGraphAPIKey      = "THEGRAPH_API_KEY"
	envTheGraphBaseURL     = "THEGRAPH_BASE_URL"
	envUniswapV2SubgraphID = "UNISWAP_V2_SUBGRAPH_ID"
	envUniswapV3SubgraphID = "UNISWAP_V3_SUBGRAPH_ID"
	envCoinGeckoAPIKey     = "COINGECKO_API_KEY"

	defaultTheGraphBaseURL     = "https://gateway.thegraph.com/api"
	defaultUniswapV2SubgraphID = "A3Np3RQbaBA6oKJgiwDJeo5T3zrYfGHPWFYayMwtNDum"
	defaultUniswapV3SubgraphID = "5zvR82QoaXYFyDEKLZ9t6v9adgnptxYpKpSbxtgVENFV"
)

// Config holds every externally supplied setting the core needs: WSS
// endpoints to dial and subgraph credentials used by the (external)
// catalogue loader.
type Config struct {
	WSSURLs []string `yaml:"wss_urls"`

	TheGraphAPIKey      string `yaml:"thegraph_api_key"`
	TheGraphBaseURL     string `yaml:"thegraph_base_url"`
	UniswapV2SubgraphID string `yaml:"uniswap_v2_subgraph_id"`
	UniswapV3SubgraphID string `yaml:"uniswap_v3_subgraph_id"`

	CoinGeckoAPIKey string `yaml:"coingecko_api_key"`

	// WSSURLsWarning is set when WSS_URLS was not configured and the
	// documented single-placeholder-endpoint fallback was used instead.
	WSSURLsWarning string `yaml:"-"`
}

// Load reads path (if it exists; a missing file is not an error, since every
// setting also has an environment or documented fallback), then applies
// environment variable overrides on top.
func Load(path string) (*Config, error) {
	cfg := &Config{
		TheGraphBaseURL:     defaultTheGraphBaseURL,
		UniswapV2SubgraphID: defaultUniswapV2SubgraphID,
		UniswapV3SubgraphID: defaultUniswapV3SubgraphID,
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envWSSURLs); v != "" {
		cfg.WSSURLs = splitAndTrim(v)
	}
	if len(cfg.WSSURLs) == 0 {
		cfg.WSSURLs = []string{"wss://example-default-endpoint.invalid/ws"}
		cfg.WSSURLsWarning = "WSS_URLS not set; using a single placeholder endpoint"
	}

	if v := os.Getenv(envTheGraphAPIKey); v != "" {
		cfg.TheGraphAPIKey = v
	}
	if v := os.Getenv(envTheGraphBaseURL); v != "" {
		cfg.TheGraphBaseURL = v
	}
	if v := os.Getenv(envUniswapV2SubgraphID); v != "" {
		cfg.UniswapV2SubgraphID = v
	}
	if v := os.Getenv(envUniswapV3SubgraphID); v != "" {
		cfg.UniswapV3SubgraphID = v
	}
	if v := os.Getenv(envCoinGeckoAPIKey); v != "" {
		cfg.CoinGeckoAPIKey = v
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
