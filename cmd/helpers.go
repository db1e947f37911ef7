package cmd

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/astrandb/vader/internal/config"
	"github.com/astrandb/vader/internal/render"
)

// resolveFormat returns the effective format string, falling back to "table".
func resolveFormat(cfgFormat string) string {
	if globalFlags.Format != "" {
		return globalFlags.Format
	}
	if cfgFormat != "" {
		return cfgFormat
	}
	return render.FormatTable
}

// shouldLogStats reports whether post-render stats logging is enabled:
// --verbose asks for it, --quiet wins over it.
func shouldLogStats(cfg *config.Config) bool {
	return cfg.Verbose && !cfg.Quiet
}

// applyLocation copies --lon/--lat onto the config when both were passed
// explicitly, so flags beat env and config.json. Passing only one of the
// two flags leaves the configured location untouched; Validate reports the
// missing location if nothing else provided one.
func applyLocation(cmd *cobra.Command, cfg *config.Config, lon, lat float64) {
	if cmd.Flags().Changed("lon") && cmd.Flags().Changed("lat") {
		cfg.Lon = lon
		cfg.Lat = lat
		cfg.HasLonLat = true
	}
}

// printSimpleTable renders a simple table with headers using tablewriter.
// The fill callback is called with an append function for row values.
func printSimpleTable(w io.Writer, headers []string, fill func(add func(...string))) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(headers)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)

	fill(func(cols ...string) {
		tw.Append(cols)
	})
	tw.Render()
}
