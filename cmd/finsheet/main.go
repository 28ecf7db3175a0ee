// finsheet - financial statements and year-end closing prices as Excel workbooks.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/finsheet/finsheet/internal/cache"
	"github.com/finsheet/finsheet/internal/config"
	"github.com/finsheet/finsheet/internal/export"
	"github.com/finsheet/finsheet/internal/infra"
	"github.com/finsheet/finsheet/internal/providers/alphavantage"
	"github.com/finsheet/finsheet/internal/providers/yahoo"
	"github.com/finsheet/finsheet/internal/service"
	"github.com/finsheet/finsheet/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "finsheet",
	Short: "finsheet - fundamentals and prices, one workbook per ticker",
	Long: `finsheet fetches income statement, balance sheet, and cash flow data
from Alpha Vantage, year-end closing prices from Yahoo Finance, and
writes everything to a single Excel workbook with one sheet per dataset.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file is optional; absence is not an error.
		_ = godotenv.Load()

		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		levelOverride, _ := cmd.Flags().GetString("log-level")
		setupLogging(cfg, levelOverride)

		infra.SetHTTPTimeout(time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: search ./finsheet.yaml, ~/.finsheet/)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(validateKeyCmd)
	rootCmd.AddCommand(statusCmd)
}

// setupLogging configures the global zerolog logger from config, with an
// optional level override from the command line.
func setupLogging(cfg *config.Config, levelOverride string) {
	name := cfg.Logging.Level
	if levelOverride != "" {
		name = levelOverride
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

// buildStatementClient constructs the Alpha Vantage client from config.
func buildStatementClient() *alphavantage.Client {
	return alphavantage.New(alphavantage.Options{
		APIKey:            cfg.Providers.AlphaVantage.APIKey,
		BaseURL:           cfg.Providers.AlphaVantage.BaseURL,
		RequestsPerMinute: cfg.Providers.AlphaVantage.RequestsPerMinute,
	})
}

// buildService wires providers, cache, and the fetch service from config.
func buildService() *service.Service {
	statements := buildStatementClient()
	prices := yahoo.New(yahoo.Options{
		BaseURL:           cfg.Providers.Yahoo.BaseURL,
		RequestsPerMinute: cfg.Providers.Yahoo.RequestsPerMinute,
	})
	store := cache.NewStore(cache.Options{
		DiskDir: cfg.Cache.Dir,
		DiskTTL: time.Duration(cfg.Cache.TTLHours) * time.Hour,
	})
	if removed := store.PruneDisk(); removed > 0 {
		log.Debug().Int("removed", removed).Msg("pruned stale cache entries")
	}
	return service.New(statements, prices, store)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("finsheet %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Fetch Command ---

var fetchCmd = &cobra.Command{
	Use:   "fetch [symbol]",
	Short: "Fetch statements and prices for a ticker and export to Excel",
	Long: `Fetch the three financial statements and year-end closing prices for a
ticker, then write them to an Excel workbook with one sheet per dataset.

Examples:
  finsheet fetch AAPL
  finsheet fetch MSFT --report quarterly --years 5
  finsheet fetch BRK.B --out /tmp/berkshire.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reportFlag, _ := cmd.Flags().GetString("report")
		years, _ := cmd.Flags().GetInt("years")
		out, _ := cmd.Flags().GetString("out")

		if reportFlag == "" {
			reportFlag = cfg.Fetch.Report
		}
		report, err := models.ParseReportType(reportFlag)
		if err != nil {
			return err
		}
		if years == 0 {
			years = cfg.Fetch.Years
		}
		req, err := models.NewFetchRequest(args[0], report, years)
		if err != nil {
			return err
		}

		svc := buildService()

		fmt.Printf("🔍 Fetching %s (%s, up to %d years)\n", req.Symbol, req.Report, req.Years)
		bundle, err := svc.Bundle(cmd.Context(), req)
		if err != nil {
			return err
		}

		if out == "" {
			out = filepath.Join(cfg.Export.Dir, export.DefaultFilename(req.Symbol))
		}
		if err := export.ToFile(bundle, out); err != nil {
			return err
		}

		for _, st := range models.AllStatementTypes() {
			fmt.Printf("   %-22s %d periods\n", st.DisplayName()+":", len(bundle.Statements[st]))
		}
		fmt.Printf("   %-22s %d years\n", "Closing prices:", len(bundle.Prices))
		fmt.Printf("✅ Wrote %s\n", out)
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("report", "", "report type: annual or quarterly (default from config)")
	fetchCmd.Flags().Int("years", 0, "number of most recent years to include (default from config)")
	fetchCmd.Flags().String("out", "", "output file path (default: <export dir>/<SYMBOL>_financials.xlsx)")
}

// --- Validate-Key Command ---

var validateKeyCmd = &cobra.Command{
	Use:   "validate-key",
	Short: "Check that the configured Alpha Vantage API key works",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := buildStatementClient()
		fmt.Printf("🔑 Checking %s API key...\n", client.Info().Name)
		if err := client.ValidateKey(cmd.Context()); err != nil {
			return fmt.Errorf("key validation failed: %w", err)
		}
		fmt.Println("✅ API key is valid")
		return nil
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and API key status",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  finsheet - Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version: %s (%s)\n", version, commit)
		fmt.Println()

		// Config summary
		fmt.Println("  Configuration:")
		fmt.Printf("    Statements:  alphavantage (%s)\n", cfg.Providers.AlphaVantage.BaseURL)
		fmt.Printf("    Prices:      yahoo (%s)\n", cfg.Providers.Yahoo.BaseURL)
		fmt.Printf("    Fetch:       %s, up to %d years\n", cfg.Fetch.Report, cfg.Fetch.Years)
		fmt.Printf("    Cache:       %s (TTL %dh)\n", cfg.Cache.Dir, cfg.Cache.TTLHours)
		fmt.Printf("    Export dir:  %s\n", cfg.Export.Dir)
		fmt.Println()

		// API keys status
		fmt.Println("  API Keys:")
		for _, k := range config.CheckAPIKeys(cfg) {
			status := "❌ not set"
			if k.IsSet {
				status = fmt.Sprintf("✅ set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-15s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
