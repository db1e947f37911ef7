package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astrandb/vader/internal/chart"
	"github.com/astrandb/vader/internal/forecast"
	"github.com/astrandb/vader/internal/model"
)

var (
	chartLon    float64
	chartLat    float64
	chartSeries string
	chartWidth  int
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render an ASCII chart of the daily forecast",
	Long: `Fetch the point forecast and draw one bar per forecast day.

Series options:  temp (daily max temperature, °C)
                 temp-min (daily min temperature, °C)
                 precip (daily total precipitation, mm)
                 wind (representative wind speed, m/s)`,
	Example: `  vader chart --lon 16.158 --lat 58.581
  vader chart --series precip --width 60`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		applyLocation(cmd, deps.Config, chartLon, chartLat)
		if err := deps.Config.Validate(); err != nil {
			return err
		}

		pf, err := deps.Client.GetPointForecast(cmd.Context(), deps.Config.Lon, deps.Config.Lat)
		if err != nil {
			return err
		}
		records, err := forecast.Build(pf)
		if err != nil {
			return err
		}

		// Skip the current-conditions record; the chart is per-day.
		days := records[1:]
		title, points, err := chartPoints(chartSeries, days)
		if err != nil {
			return err
		}
		return chart.Bar(os.Stdout, title, points, chart.BarOptions{Width: chartWidth})
	},
}

// chartPoints maps the daily records onto a labeled value series.
// The series name is validated up front so an unknown name errors even
// for an empty day list.
func chartPoints(series string, days []model.ForecastEntry) (string, []chart.Point, error) {
	var title string
	var value func(model.ForecastEntry) float64
	switch series {
	case "temp":
		title = "daily max temperature (°C)"
		value = func(d model.ForecastEntry) float64 { return float64(d.TemperatureMax) }
	case "temp-min":
		title = "daily min temperature (°C)"
		value = func(d model.ForecastEntry) float64 { return float64(d.TemperatureMin) }
	case "precip":
		title = "daily total precipitation (mm)"
		value = func(d model.ForecastEntry) float64 { return d.TotalPrecipitation }
	case "wind":
		title = "wind speed (m/s)"
		value = func(d model.ForecastEntry) float64 { return d.WindSpeed }
	default:
		return "", nil, fmt.Errorf("unknown series %q (use temp, temp-min, precip or wind)", series)
	}

	points := make([]chart.Point, 0, len(days))
	for _, d := range days {
		points = append(points, chart.Point{
			Label: d.ValidTime.Format("Mon 02"),
			Value: value(d),
		})
	}
	return title, points, nil
}

func init() {
	chartCmd.Flags().Float64Var(&chartLon, "lon", 0, "longitude in decimal degrees (east positive)")
	chartCmd.Flags().Float64Var(&chartLat, "lat", 0, "latitude in decimal degrees (north positive)")
	chartCmd.Flags().StringVar(&chartSeries, "series", "temp", "series to chart: temp|temp-min|precip|wind")
	chartCmd.Flags().IntVar(&chartWidth, "width", 0, "chart width in characters (default: $COLUMNS or 80)")

	rootCmd.AddCommand(chartCmd)
}
