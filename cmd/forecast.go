package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/astrandb/vader/internal/forecast"
	"github.com/astrandb/vader/internal/model"
	"github.com/astrandb/vader/internal/render"
)

var (
	forecastLon    float64
	forecastLat    float64
	forecastHourly bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Fetch and summarise the point forecast for a location",
	Long: `Fetch the SMHI point forecast and reduce it to one record per day.

The first record is always the unaggregated current-conditions entry
(the earliest time step of the series). Each following record summarises
one calendar day: min/max temperature over the day, total and mean
precipitation, and the remaining fields taken from the entry closest to
local noon.

With --hourly the raw per-entry records are printed instead, one per
time step, without daily aggregation.`,
	Example: `  vader forecast --lon 16.158 --lat 58.581
  vader forecast --hourly --format jsonl
  vader forecast --format csv --out forecast.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		applyLocation(cmd, deps.Config, forecastLon, forecastLat)
		if err := deps.Config.Validate(); err != nil {
			return err
		}

		start := time.Now()
		pf, err := deps.Client.GetPointForecast(cmd.Context(), deps.Config.Lon, deps.Config.Lat)
		if err != nil {
			return err
		}

		var entries []model.ForecastEntry
		kind := model.KindDaily
		if forecastHourly {
			entries, err = forecast.Entries(pf)
			kind = model.KindHourly
		} else {
			entries, err = forecast.Build(pf)
		}
		if err != nil {
			return err
		}

		result := &model.Result{
			Kind:        kind,
			GeneratedAt: time.Now(),
			Command:     fmt.Sprintf("forecast --lon %g --lat %g", deps.Config.Lon, deps.Config.Lat),
			Data:        entries,
			Stats: model.ResultStats{
				DurationMs: time.Since(start).Milliseconds(),
				Items:      len(entries),
			},
		}

		format := resolveFormat(deps.Config.Format)
		if err := render.RenderTo(globalFlags.Out, result, format); err != nil {
			return err
		}
		if shouldLogStats(deps.Config) {
			deps.Logger.Info("forecast complete",
				"items", len(entries), "duration_ms", result.Stats.DurationMs)
		}
		return nil
	},
}

func init() {
	forecastCmd.Flags().Float64Var(&forecastLon, "lon", 0, "longitude in decimal degrees (east positive)")
	forecastCmd.Flags().Float64Var(&forecastLat, "lat", 0, "latitude in decimal degrees (north positive)")
	forecastCmd.Flags().BoolVar(&forecastHourly, "hourly", false, "print raw hourly entries instead of daily summaries")

	rootCmd.AddCommand(forecastCmd)
}
