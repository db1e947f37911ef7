// Package cmd implements the vader CLI command tree.
// This file defines the root command and registers all global persistent flags.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/astrandb/vader/internal/app"
	"github.com/astrandb/vader/internal/config"
)

// globalFlags holds the parsed values of all persistent (global) flags.
// Commands read from this struct via the deps they receive.
var globalFlags struct {
	UserAgent string
	Format    string
	Out       string
	Timeout   string
	Rate      float64
	Quiet     bool
	Verbose   bool
	Debug     bool
}

// rootCmd is the base command. Running `vader` with no subcommand
// prints help.
var rootCmd = &cobra.Command{
	Use:   "vader",
	Short: "vader — SMHI weather forecast CLI",
	Long: `vader is a command-line tool for retrieving point weather forecasts
from the SMHI (Swedish Meteorological and Hydrological Institute)
open data API and summarising them per day.

Forecast data © SMHI, licensed under Creative Commons Attribution 4.0;
https://opendata.smhi.se/

Quick start:
  vader config init                        # create a config.json with your location
  vader forecast --lon 16.158 --lat 58.581 # daily forecast for Norrköping
  vader forecast --hourly                  # raw hourly entries`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildDeps resolves config and constructs the dependency container.
// Called at the start of each command's RunE.
func buildDeps() (*app.Deps, error) {
	cfg, err := config.Load(globalFlags.UserAgent)
	if err != nil {
		return nil, err
	}

	// Apply CLI flag overrides
	cfg.Quiet = globalFlags.Quiet
	cfg.Verbose = globalFlags.Verbose
	cfg.Debug = globalFlags.Debug

	if globalFlags.Format != "" {
		cfg.Format = globalFlags.Format
	}
	if globalFlags.Timeout != "" {
		if d, err2 := time.ParseDuration(globalFlags.Timeout); err2 == nil {
			cfg.Timeout = d
		}
	}
	if globalFlags.Rate > 0 {
		cfg.Rate = globalFlags.Rate
	}

	return app.New(cfg), nil
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&globalFlags.UserAgent, "user-agent", "",
		"User-Agent header sent to the API (overrides env VADER_USER_AGENT and config.json)")
	pf.StringVar(&globalFlags.Format, "format", "",
		"output format: table|json|jsonl|csv|tsv (default: table)")
	pf.StringVar(&globalFlags.Out, "out", "",
		"write output to file instead of stdout")
	pf.StringVar(&globalFlags.Timeout, "timeout", "",
		"HTTP request timeout (e.g. 30s, 2m)")
	pf.Float64Var(&globalFlags.Rate, "rate", 0,
		"max API requests per second (default: 2.0)")
	pf.BoolVar(&globalFlags.Quiet, "quiet", false,
		"suppress informational logging (overrides --verbose)")
	pf.BoolVar(&globalFlags.Verbose, "verbose", false,
		"show timing stats after output")
	pf.BoolVar(&globalFlags.Debug, "debug", false,
		"log HTTP requests and responses")
}
