// Package forecast reshapes a raw SMHI point forecast time series into
// per-day aggregated forecast records. Every function here is a pure
// transform: no I/O, no shared state, safe for concurrent use on
// independent inputs. A transform either succeeds for the whole series or
// fails — there are no partial results.
package forecast

import (
	"errors"
	"fmt"
	"time"

	"github.com/astrandb/vader/internal/model"
	"github.com/astrandb/vader/internal/smhi"
	"github.com/astrandb/vader/internal/util"
)

// ErrMalformed reports a response that does not match the metfcst contract:
// a missing or empty timeSeries, an unparseable validTime, or a time step
// that lacks one of the required parameters.
var ErrMalformed = errors.New("malformed forecast data")

// validTimeLayout is the exact timestamp format of the validTime field.
const validTimeLayout = "2006-01-02T15:04:05Z"

// requiredParams are the parameter names every time step must carry.
var requiredParams = []string{
	"t", "r", "msl", "tstm", "tcc_mean", "Wsymb2",
	"pcat", "pmean", "ws", "wd", "vis", "gust",
}

// ─── Per-Entry Parsing ────────────────────────────────────────────────────────

// stepValues holds the twelve recognised parameters of one time step,
// extracted before any rounding or unit conversion except the documented
// octa-to-percent mapping for cloudiness.
type stepValues struct {
	temperature           float64 // °C
	humidity              int     // %
	pressure              int     // hPa
	thunder               int     // %
	cloudiness            int     // %, converted from octas
	symbol                int
	precipitationCategory int
	meanPrecipitation     float64 // mm/h
	windSpeed             float64 // m/s
	windDirection         int     // degrees
	visibility            float64 // km
	windGust              float64 // m/s
}

// parseValues extracts the recognised parameters from one time step.
// Unrecognised parameter names are ignored. A required parameter that is
// absent (or present with an empty values list) fails the whole transform;
// each time step must be self-contained, nothing carries over from its
// neighbours.
func parseValues(params []smhi.Parameter) (stepValues, error) {
	byName := make(map[string]float64, len(params))
	for _, p := range params {
		if len(p.Values) == 0 {
			continue
		}
		if _, ok := byName[p.Name]; !ok {
			byName[p.Name] = p.Values[0]
		}
	}

	for _, name := range requiredParams {
		if _, ok := byName[name]; !ok {
			return stepValues{}, fmt.Errorf("%w: time step missing parameter %q", ErrMalformed, name)
		}
	}

	return stepValues{
		temperature:           byName["t"],
		humidity:              int(byName["r"]),
		pressure:              int(byName["msl"]),
		thunder:               int(byName["tstm"]),
		cloudiness:            octaToPercent(int(byName["tcc_mean"])),
		symbol:                int(byName["Wsymb2"]),
		precipitationCategory: int(byName["pcat"]),
		meanPrecipitation:     byName["pmean"],
		windSpeed:             byName["ws"],
		windDirection:         int(byName["wd"]),
		visibility:            byName["vis"],
		windGust:              byName["gust"],
	}, nil
}

// octaToPercent converts cloud cover octas (0 clear .. 8 overcast) to a
// percentage, rounding half away from zero. Values outside 0..8 mean the
// cover could not be determined and map to 100%.
func octaToPercent(octa int) int {
	if octa >= 0 && octa <= 8 {
		return util.RoundInt(100 * float64(octa) / 8)
	}
	return 100
}

// newEntry builds one hourly forecast record from parsed step values.
// Temperature is rounded to the nearest integer and written to all three
// temperature fields; the aggregation step overwrites max/min for daily
// records. Total precipitation is the mean intensity spread over the hours
// since the previous time step.
func newEntry(validTime time.Time, v stepValues, hoursSincePrev float64) model.ForecastEntry {
	temp := util.RoundInt(v.temperature)
	return model.ForecastEntry{
		ValidTime:             validTime,
		Temperature:           temp,
		TemperatureMax:        temp,
		TemperatureMin:        temp,
		Humidity:              v.humidity,
		Pressure:              v.pressure,
		Thunder:               v.thunder,
		Cloudiness:            v.cloudiness,
		PrecipitationCategory: v.precipitationCategory,
		WindDirection:         v.windDirection,
		WindSpeed:             v.windSpeed,
		Visibility:            v.visibility,
		WindGust:              v.windGust,
		MeanPrecipitation:     util.Round1(v.meanPrecipitation),
		TotalPrecipitation:    util.Round2(v.meanPrecipitation * hoursSincePrev),
		Symbol:                v.symbol,
	}
}

// ─── Series Parsing ───────────────────────────────────────────────────────────

// Entries converts the raw time series into one hourly record per time step,
// in input order. The first step has no predecessor and is assigned a
// one-hour precipitation window.
func Entries(pf *smhi.PointForecast) ([]model.ForecastEntry, error) {
	if pf == nil || len(pf.TimeSeries) == 0 {
		return nil, fmt.Errorf("%w: empty time series", ErrMalformed)
	}

	out := make([]model.ForecastEntry, 0, len(pf.TimeSeries))
	var prev time.Time

	for i, step := range pf.TimeSeries {
		validTime, err := time.Parse(validTimeLayout, step.ValidTime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid validTime %q", ErrMalformed, step.ValidTime)
		}

		values, err := parseValues(step.Parameters)
		if err != nil {
			return nil, fmt.Errorf("time step %s: %w", step.ValidTime, err)
		}

		hours := 1.0
		if i > 0 {
			hours = validTime.Sub(prev).Hours()
		}

		out = append(out, newEntry(validTime, values, hours))
		prev = validTime
	}
	return out, nil
}

// ─── Daily Aggregation ────────────────────────────────────────────────────────

// dayGroup collects the hourly entries of one calendar day, in input order.
// Days are keyed by day-of-month: a series crossing a month boundary folds
// equal day numbers into one group. Callers that feed longer series must
// account for that.
type dayGroup struct {
	day     int
	entries []model.ForecastEntry
}

// groupByDay buckets entries by day-of-month in first-appearance order.
func groupByDay(entries []model.ForecastEntry) []dayGroup {
	var groups []dayGroup
	index := make(map[int]int)

	for _, e := range entries {
		day := e.ValidTime.Day()
		gi, ok := index[day]
		if !ok {
			gi = len(groups)
			index[day] = gi
			groups = append(groups, dayGroup{day: day})
		}
		groups[gi].entries = append(groups[gi].entries, e)
	}
	return groups
}

// summarizeDay reduces one day's entries to a single record. The
// representative entry is the first one at hour 12, or the day's first entry
// when the series starts past noon. The aggregate fields are written onto a
// copy; the hourly entries are left untouched.
func summarizeDay(entries []model.ForecastEntry) model.ForecastEntry {
	rep := entries[0]
	repFound := false

	maxTemp := entries[0].Temperature
	minTemp := entries[0].Temperature
	var totalPrecipitation float64

	for _, e := range entries {
		if e.Temperature > maxTemp {
			maxTemp = e.Temperature
		}
		if e.Temperature < minTemp {
			minTemp = e.Temperature
		}
		if !repFound && e.ValidTime.Hour() == 12 {
			rep = e
			repFound = true
		}
		totalPrecipitation += e.TotalPrecipitation
	}

	rep.TemperatureMax = maxTemp
	rep.TemperatureMin = minTemp
	rep.TotalPrecipitation = totalPrecipitation
	rep.MeanPrecipitation = totalPrecipitation / 24
	return rep
}

// Build produces the daily forecast sequence from a raw point forecast.
//
// The first record is an unaggregated copy of the earliest time step — the
// current conditions. Every day group then contributes one aggregated
// record, in the order days first appear in the series, so the result always
// holds 1 + number-of-day-groups records.
func Build(pf *smhi.PointForecast) ([]model.ForecastEntry, error) {
	entries, err := Entries(pf)
	if err != nil {
		return nil, err
	}

	groups := groupByDay(entries)

	out := make([]model.ForecastEntry, 0, len(groups)+1)
	out = append(out, entries[0])
	for _, g := range groups {
		out = append(out, summarizeDay(g.entries))
	}
	return out, nil
}
