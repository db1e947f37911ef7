package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/astrandb/vader/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vader configuration",
}

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config.json template in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFile
		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteFile(path, config.Template()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s — add your location (lon/lat) to it.\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the fully-resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		cfg := deps.Config

		location := "(not set)"
		if cfg.HasLonLat {
			location = fmt.Sprintf("%g, %g", cfg.Lon, cfg.Lat)
		}
		source := cfg.ConfigPath
		if source == "" {
			source = "(no config.json found)"
		}

		printSimpleTable(cmd.OutOrStdout(), []string{"SETTING", "VALUE"}, func(add func(...string)) {
			add("User-Agent", cfg.UserAgent)
			add("Location (lon, lat)", location)
			add("Format", cfg.Format)
			add("Timeout", cfg.Timeout.String())
			add("Rate", strconv.FormatFloat(cfg.Rate, 'f', -1, 64))
			add("Config file", source)
		})
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config.json")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
