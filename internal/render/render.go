// Package render converts Result values into human-readable or
// machine-parseable output. Each format is a separate function; the
// top-level Render dispatcher selects based on the format string.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/astrandb/vader/internal/model"
	"github.com/astrandb/vader/internal/util"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatCSV   = "csv"
	FormatTSV   = "tsv"
)

// Render writes result to w in the specified format.
func Render(w io.Writer, result *model.Result, format string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, result)
	case FormatJSONL:
		return renderJSONL(w, result)
	case FormatCSV:
		return renderDelimited(w, result, ',')
	case FormatTSV:
		return renderDelimited(w, result, '\t')
	default:
		return renderTable(w, result)
	}
}

// RenderTo writes to stdout by default; if path is non-empty, writes to file.
func RenderTo(path string, result *model.Result, format string) error {
	if path == "" {
		return Render(os.Stdout, result, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return Render(f, result, format)
}

// entriesOf extracts the forecast payload from a result.
func entriesOf(result *model.Result) ([]model.ForecastEntry, error) {
	entries, ok := result.Data.([]model.ForecastEntry)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for %s", result.Kind)
	}
	return entries, nil
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

func renderJSON(w io.Writer, result *model.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// ─── JSONL ────────────────────────────────────────────────────────────────────

// renderJSONL emits one forecast entry per line, without the envelope —
// the canonical pipe format.
func renderJSONL(w io.Writer, result *model.Result) error {
	switch result.Kind {
	case model.KindDaily, model.KindHourly:
		entries, err := entriesOf(result)
		if err != nil {
			return renderJSON(w, result)
		}
		enc := json.NewEncoder(w)
		for _, e := range entries {
			if err := enc.Encode(e); err != nil {
				return err
			}
		}
		return nil
	default:
		return json.NewEncoder(w).Encode(result.Data)
	}
}

// ─── CSV / TSV ────────────────────────────────────────────────────────────────

var csvHeader = []string{
	"valid_time", "temperature", "temperature_min", "temperature_max",
	"humidity", "pressure", "thunder", "cloudiness",
	"precipitation_category", "mean_precipitation", "total_precipitation",
	"wind_direction", "wind_speed", "wind_gust", "visibility", "symbol",
}

func renderDelimited(w io.Writer, result *model.Result, sep rune) error {
	entries, err := entriesOf(result)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = sep
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{
			e.ValidTime.Format("2006-01-02T15:04:05Z"),
			strconv.Itoa(e.Temperature),
			strconv.Itoa(e.TemperatureMin),
			strconv.Itoa(e.TemperatureMax),
			strconv.Itoa(e.Humidity),
			strconv.Itoa(e.Pressure),
			strconv.Itoa(e.Thunder),
			strconv.Itoa(e.Cloudiness),
			strconv.Itoa(e.PrecipitationCategory),
			util.FormatFloat(e.MeanPrecipitation),
			util.FormatFloat(e.TotalPrecipitation),
			strconv.Itoa(e.WindDirection),
			util.FormatFloat(e.WindSpeed),
			util.FormatFloat(e.WindGust),
			util.FormatFloat(e.Visibility),
			strconv.Itoa(e.Symbol),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ─── Table ────────────────────────────────────────────────────────────────────

func renderTable(w io.Writer, result *model.Result) error {
	switch result.Kind {
	case model.KindDaily, model.KindHourly:
		entries, err := entriesOf(result)
		if err != nil {
			return err
		}
		return renderForecastTable(w, result.Kind, entries)
	default:
		// Fallback: JSON
		return renderJSON(w, result)
	}
}

func renderForecastTable(w io.Writer, kind string, entries []model.ForecastEntry) error {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"TIME", "TEMP", "MIN", "MAX", "PRECIP MM", "WIND", "CLOUD", "SYMBOL"})
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})
	tw.SetAutoWrapText(false)

	timeFmt := "2006-01-02 15:04"
	if kind == model.KindHourly {
		timeFmt = "Mon 15:04"
	}

	for _, e := range entries {
		tw.Append([]string{
			e.ValidTime.Format(timeFmt),
			fmt.Sprintf("%d°", e.Temperature),
			fmt.Sprintf("%d°", e.TemperatureMin),
			fmt.Sprintf("%d°", e.TemperatureMax),
			util.FormatFloat(e.TotalPrecipitation),
			fmt.Sprintf("%s %.1f m/s", util.Compass(e.WindDirection), e.WindSpeed),
			fmt.Sprintf("%d%%", e.Cloudiness),
			strconv.Itoa(e.Symbol),
		})
	}
	tw.Render()
	return nil
}
