package config

import "fmt"

// KeyStatus describes whether a provider API key is configured.
type KeyStatus struct {
	Name   string // provider name
	Source string // env var or config path the key is read from
	IsSet  bool
	Masked string // masked form safe to print
}

// CheckAPIKeys reports the configuration state of every provider key.
// Yahoo needs no key, so only Alpha Vantage appears here.
func CheckAPIKeys(cfg *Config) []KeyStatus {
	key := cfg.Providers.AlphaVantage.APIKey
	return []KeyStatus{
		{
			Name:   "alphavantage",
			Source: "ALPHAVANTAGE_API_KEY",
			IsSet:  key != "",
			Masked: maskKey(key),
		},
	}
}

// maskKey hides the middle of an API key for display.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 6 {
		return "***"
	}
	return fmt.Sprintf("%s...%s", key[:3], key[len(key)-3:])
}
