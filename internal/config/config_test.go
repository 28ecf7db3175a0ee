package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// Run from a temp dir so a stray finsheet.yaml in the working
	// directory cannot leak into the test.
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg.Providers.AlphaVantage.BaseURL; got != "https://www.alphavantage.co" {
		t.Errorf("alphavantage base_url = %q", got)
	}
	if got := cfg.Providers.AlphaVantage.RequestsPerMinute; got != 5 {
		t.Errorf("alphavantage requests_per_minute = %d, want 5", got)
	}
	if got := cfg.Providers.Yahoo.BaseURL; got != "https://query1.finance.yahoo.com" {
		t.Errorf("yahoo base_url = %q", got)
	}
	if got := cfg.Providers.Yahoo.RequestsPerMinute; got != 30 {
		t.Errorf("yahoo requests_per_minute = %d, want 30", got)
	}
	if got := cfg.Fetch.Years; got != 15 {
		t.Errorf("fetch.years = %d, want 15", got)
	}
	if got := cfg.Fetch.Report; got != "annual" {
		t.Errorf("fetch.report = %q, want annual", got)
	}
	if got := cfg.Fetch.TimeoutSeconds; got != 30 {
		t.Errorf("fetch.timeout_seconds = %d, want 30", got)
	}
	if got := cfg.Cache.TTLHours; got != 24 {
		t.Errorf("cache.ttl_hours = %d, want 24", got)
	}
	if cfg.Cache.Dir == "" {
		t.Error("cache.dir default must not be empty")
	}
	if got := cfg.Export.Dir; got != "." {
		t.Errorf("export.dir = %q, want .", got)
	}
	if got := cfg.Logging.Level; got != "info" {
		t.Errorf("logging.level = %q, want info", got)
	}
	if got := cfg.Logging.Format; got != "text" {
		t.Errorf("logging.format = %q, want text", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("FINSHEET_FETCH_YEARS", "5")
	t.Setenv("FINSHEET_LOGGING_LEVEL", "debug")
	t.Setenv("FINSHEET_PROVIDERS_ALPHAVANTAGE_API_KEY", "prefixed-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Fetch.Years; got != 5 {
		t.Errorf("fetch.years = %d, want 5 from env", got)
	}
	if got := cfg.Logging.Level; got != "debug" {
		t.Errorf("logging.level = %q, want debug from env", got)
	}
	if got := cfg.Providers.AlphaVantage.APIKey; got != "prefixed-key" {
		t.Errorf("api key = %q, want prefixed-key", got)
	}
}

func TestLoadBareAPIKeyEnv(t *testing.T) {
	chdir(t, t.TempDir())

	// The documented variable name wins over the prefixed one.
	t.Setenv("FINSHEET_PROVIDERS_ALPHAVANTAGE_API_KEY", "prefixed-key")
	t.Setenv("ALPHAVANTAGE_API_KEY", "bare-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Providers.AlphaVantage.APIKey; got != "bare-key" {
		t.Errorf("api key = %q, want bare-key", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "finsheet.yaml")
	body := `
providers:
  alphavantage:
    api_key: file-key
    requests_per_minute: 2
fetch:
  years: 7
  report: quarterly
cache:
  dir: /tmp/finsheet-test-cache
  ttl_hours: 6
logging:
  level: warn
  format: json
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if got := cfg.Providers.AlphaVantage.APIKey; got != "file-key" {
		t.Errorf("api key = %q, want file-key", got)
	}
	if got := cfg.Providers.AlphaVantage.RequestsPerMinute; got != 2 {
		t.Errorf("requests_per_minute = %d, want 2", got)
	}
	if got := cfg.Fetch.Years; got != 7 {
		t.Errorf("fetch.years = %d, want 7", got)
	}
	if got := cfg.Fetch.Report; got != "quarterly" {
		t.Errorf("fetch.report = %q, want quarterly", got)
	}
	if got := cfg.Cache.Dir; got != "/tmp/finsheet-test-cache" {
		t.Errorf("cache.dir = %q", got)
	}
	if got := cfg.Cache.TTLHours; got != 6 {
		t.Errorf("cache.ttl_hours = %d, want 6", got)
	}
	if got := cfg.Logging.Format; got != "json" {
		t.Errorf("logging.format = %q, want json", got)
	}
	// Values absent from the file keep their defaults.
	if got := cfg.Providers.Yahoo.RequestsPerMinute; got != 30 {
		t.Errorf("yahoo requests_per_minute = %d, want default 30", got)
	}
	if got := cfg.Fetch.TimeoutSeconds; got != 30 {
		t.Errorf("fetch.timeout_seconds = %d, want default 30", got)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestCheckAPIKeys(t *testing.T) {
	cfg := &Config{}
	cfg.Providers.AlphaVantage.APIKey = "demo12345678"

	statuses := CheckAPIKeys(cfg)
	if len(statuses) != 1 {
		t.Fatalf("got %d statuses, want 1", len(statuses))
	}
	st := statuses[0]
	if st.Name != "alphavantage" {
		t.Errorf("name = %q", st.Name)
	}
	if !st.IsSet {
		t.Error("IsSet = false, want true")
	}
	if st.Masked != "dem...678" {
		t.Errorf("masked = %q, want dem...678", st.Masked)
	}

	cfg.Providers.AlphaVantage.APIKey = ""
	st = CheckAPIKeys(cfg)[0]
	if st.IsSet {
		t.Error("IsSet = true for empty key")
	}
	if st.Masked != "(not set)" {
		t.Errorf("masked = %q, want (not set)", st.Masked)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "(not set)"},
		{"abc", "***"},
		{"abcdef", "***"},
		{"abcdefg", "abc...efg"},
		{"THISISALONGKEY", "THI...KEY"},
	}
	for _, tt := range tests {
		if got := maskKey(tt.key); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

// chdir switches the working directory for the duration of a test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}
