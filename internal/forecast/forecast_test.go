package forecast_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/astrandb/vader/internal/forecast"
	"github.com/astrandb/vader/internal/smhi"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

// paramOrder fixes the parameter order in generated steps so tests are
// deterministic regardless of map iteration.
var paramOrder = []string{
	"t", "r", "msl", "tstm", "tcc_mean", "Wsymb2",
	"pcat", "pmean", "ws", "wd", "vis", "gust",
}

// makeStep builds one fully-populated time step. Entries in over replace the
// default parameter values.
func makeStep(validTime string, over map[string]float64) smhi.TimeStep {
	values := map[string]float64{
		"t": 15.0, "r": 80, "msl": 1013, "tstm": 10, "tcc_mean": 4,
		"Wsymb2": 3, "pcat": 1, "pmean": 1.0, "ws": 5.5, "wd": 180,
		"vis": 10.5, "gust": 8.2,
	}
	for k, v := range over {
		values[k] = v
	}
	step := smhi.TimeStep{ValidTime: validTime}
	for _, name := range paramOrder {
		step.Parameters = append(step.Parameters, smhi.Parameter{
			Name:   name,
			Unit:   "-",
			Values: []float64{values[name]},
		})
	}
	return step
}

// hourlyDay builds count hourly steps for one calendar day starting at hour 0.
func hourlyDay(day string, count int, over map[string]float64) []smhi.TimeStep {
	steps := make([]smhi.TimeStep, 0, count)
	for h := 0; h < count; h++ {
		steps = append(steps, makeStep(fmt.Sprintf("%sT%02d:00:00Z", day, h), over))
	}
	return steps
}

// response wraps steps in a PointForecast.
func response(steps ...[]smhi.TimeStep) *smhi.PointForecast {
	pf := &smhi.PointForecast{}
	for _, s := range steps {
		pf.TimeSeries = append(pf.TimeSeries, s...)
	}
	return pf
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04:05Z", s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return ts
}

// ─── End-to-End Scenarios ─────────────────────────────────────────────────────

func TestBuildTwoDayHourlySeries(t *testing.T) {
	// 2 days x 24 hourly entries, pmean constant at 1.0, noon present.
	pf := response(
		hourlyDay("2026-08-20", 24, nil),
		hourlyDay("2026-08-21", 24, nil),
	)

	out, err := forecast.Build(pf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 records (current + 2 days), got %d", len(out))
	}

	// Record 0 is the unaggregated current-conditions entry.
	if got, want := out[0].ValidTime, mustTime(t, "2026-08-20T00:00:00Z"); !got.Equal(want) {
		t.Errorf("current conditions time: got %v, want %v", got, want)
	}
	if out[0].TotalPrecipitation != 1.0 {
		t.Errorf("first entry precipitation window: got %g, want 1.0 (pmean * 1h default)", out[0].TotalPrecipitation)
	}

	// Each aggregated day: 24 entries x 1.0 mm/h x 1h.
	for i, rec := range out[1:] {
		if rec.TotalPrecipitation != 24.0 {
			t.Errorf("day %d total precipitation: got %g, want 24.0", i+1, rec.TotalPrecipitation)
		}
		if rec.MeanPrecipitation != 1.0 {
			t.Errorf("day %d mean precipitation: got %g, want 1.0", i+1, rec.MeanPrecipitation)
		}
		if rec.ValidTime.Hour() != 12 {
			t.Errorf("day %d representative hour: got %d, want 12", i+1, rec.ValidTime.Hour())
		}
	}
}

func TestBuildOutputLength(t *testing.T) {
	tests := []struct {
		name  string
		steps []smhi.TimeStep
		want  int
	}{
		{"single entry", hourlyDay("2026-08-20", 1, nil), 2},
		{"one full day", hourlyDay("2026-08-20", 24, nil), 2},
		{"three partial days", append(append(
			hourlyDay("2026-08-20", 6, nil),
			hourlyDay("2026-08-21", 6, nil)...),
			hourlyDay("2026-08-22", 6, nil)...), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := forecast.Build(response(tt.steps))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("output length: got %d, want %d", len(out), tt.want)
			}
		})
	}
}

func TestBuildFirstRecordIndependentOfAggregation(t *testing.T) {
	// The day warms up after midnight; the current-conditions record must
	// keep the first entry's values, not the day's extremes.
	steps := []smhi.TimeStep{
		makeStep("2026-08-20T00:00:00Z", map[string]float64{"t": 10.0}),
		makeStep("2026-08-20T12:00:00Z", map[string]float64{"t": 25.0}),
		makeStep("2026-08-20T18:00:00Z", map[string]float64{"t": 5.0}),
	}

	out, err := forecast.Build(response(steps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}

	cur := out[0]
	if cur.Temperature != 10 || cur.TemperatureMax != 10 || cur.TemperatureMin != 10 {
		t.Errorf("current conditions temps: got %d/%d/%d, want 10/10/10",
			cur.Temperature, cur.TemperatureMax, cur.TemperatureMin)
	}

	day := out[1]
	if day.TemperatureMax != 25 || day.TemperatureMin != 5 {
		t.Errorf("day extremes: got max %d min %d, want 25/5", day.TemperatureMax, day.TemperatureMin)
	}
	if day.Temperature != 25 {
		t.Errorf("representative temperature: got %d, want 25 (noon entry)", day.Temperature)
	}
}

func TestBuildRepresentativeFallsBackToFirstEntry(t *testing.T) {
	// Series starts past noon: no hour-12 entry for the day.
	steps := []smhi.TimeStep{
		makeStep("2026-08-20T14:00:00Z", map[string]float64{"t": 20.0, "Wsymb2": 5}),
		makeStep("2026-08-20T15:00:00Z", map[string]float64{"t": 18.0, "Wsymb2": 6}),
		makeStep("2026-08-20T16:00:00Z", map[string]float64{"t": 16.0, "Wsymb2": 7}),
	}

	out, err := forecast.Build(response(steps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day := out[1]
	if got, want := day.ValidTime, mustTime(t, "2026-08-20T14:00:00Z"); !got.Equal(want) {
		t.Errorf("representative time: got %v, want first entry %v", got, want)
	}
	if day.Symbol != 5 {
		t.Errorf("representative symbol: got %d, want 5 (from first entry)", day.Symbol)
	}
	if day.TemperatureMax != 20 || day.TemperatureMin != 16 {
		t.Errorf("aggregates not overwritten: got max %d min %d, want 20/16", day.TemperatureMax, day.TemperatureMin)
	}
}

func TestBuildTemperatureBounds(t *testing.T) {
	temps := []float64{12.4, 17.6, -2.5, 9.9, 3.0, 21.49}
	steps := make([]smhi.TimeStep, 0, len(temps))
	for i, temp := range temps {
		steps = append(steps, makeStep(
			fmt.Sprintf("2026-08-20T%02d:00:00Z", i+6),
			map[string]float64{"t": temp},
		))
	}

	out, err := forecast.Build(response(steps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	day := out[1]
	if day.TemperatureMax < day.TemperatureMin {
		t.Fatalf("max %d < min %d", day.TemperatureMax, day.TemperatureMin)
	}
	// Rounded per-entry temperatures: 12, 18, -3, 10, 3, 21.
	if day.TemperatureMax != 21 {
		t.Errorf("max: got %d, want 21 (21.49 rounds down)", day.TemperatureMax)
	}
	if day.TemperatureMin != -3 {
		t.Errorf("min: got %d, want -3 (half away from zero)", day.TemperatureMin)
	}
}

func TestBuildMeanIsTotalOver24(t *testing.T) {
	steps := append(
		hourlyDay("2026-08-20", 24, map[string]float64{"pmean": 0.3}),
		hourlyDay("2026-08-21", 8, map[string]float64{"pmean": 2.7})...,
	)

	out, err := forecast.Build(response(steps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, rec := range out[1:] {
		if got, want := rec.MeanPrecipitation, rec.TotalPrecipitation/24; got != want {
			t.Errorf("day %d: mean %g != total/24 %g", i+1, got, want)
		}
	}
}

func TestBuildPrecipitationWindowUsesStepGap(t *testing.T) {
	// Three-hour spacing: each entry after the first spreads pmean over 3h.
	steps := []smhi.TimeStep{
		makeStep("2026-08-20T00:00:00Z", map[string]float64{"pmean": 0.5}),
		makeStep("2026-08-20T03:00:00Z", map[string]float64{"pmean": 0.5}),
		makeStep("2026-08-20T06:00:00Z", map[string]float64{"pmean": 0.5}),
	}

	entries, err := forecast.Entries(response(steps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries[0].TotalPrecipitation != 0.5 {
		t.Errorf("first entry: got %g, want 0.5 (1h default window)", entries[0].TotalPrecipitation)
	}
	for i, e := range entries[1:] {
		if e.TotalPrecipitation != 1.5 {
			t.Errorf("entry %d: got %g, want 1.5 (0.5 mm/h over 3h)", i+1, e.TotalPrecipitation)
		}
	}
}

func TestBuildMonthBoundary(t *testing.T) {
	// Day-of-month grouping: 31 Aug and 1 Sep are distinct groups, but the
	// same day number in two different months folds into one group.
	t.Run("adjacent days across months stay separate", func(t *testing.T) {
		steps := append(
			hourlyDay("2026-08-31", 24, nil),
			hourlyDay("2026-09-01", 24, nil)...,
		)
		out, err := forecast.Build(response(steps))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out) != 3 {
			t.Errorf("expected 3 records, got %d", len(out))
		}
	})

	t.Run("equal day numbers fold", func(t *testing.T) {
		steps := append(
			hourlyDay("2026-08-20", 2, nil),
			hourlyDay("2026-09-20", 2, nil)...,
		)
		out, err := forecast.Build(response(steps))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out) != 2 {
			t.Errorf("expected 2 records (both months share day 20), got %d", len(out))
		}
	})
}

// ─── Error Conditions ─────────────────────────────────────────────────────────

func TestBuildEmptySeries(t *testing.T) {
	for _, pf := range []*smhi.PointForecast{nil, {}} {
		_, err := forecast.Build(pf)
		if !errors.Is(err, forecast.ErrMalformed) {
			t.Errorf("empty series: got %v, want ErrMalformed", err)
		}
	}
}

func TestBuildMissingParameter(t *testing.T) {
	step := makeStep("2026-08-20T00:00:00Z", nil)
	var trimmed []smhi.Parameter
	for _, p := range step.Parameters {
		if p.Name != "msl" {
			trimmed = append(trimmed, p)
		}
	}
	step.Parameters = trimmed

	_, err := forecast.Build(response([]smhi.TimeStep{step}))
	if !errors.Is(err, forecast.ErrMalformed) {
		t.Fatalf("missing parameter: got %v, want ErrMalformed", err)
	}
	if !strings.Contains(err.Error(), "msl") {
		t.Errorf("error should name the missing parameter, got: %v", err)
	}
}

func TestBuildEmptyParameterValues(t *testing.T) {
	step := makeStep("2026-08-20T00:00:00Z", nil)
	for i := range step.Parameters {
		if step.Parameters[i].Name == "pmean" {
			step.Parameters[i].Values = nil
		}
	}

	_, err := forecast.Build(response([]smhi.TimeStep{step}))
	if !errors.Is(err, forecast.ErrMalformed) {
		t.Errorf("empty values: got %v, want ErrMalformed", err)
	}
}

func TestBuildBadValidTime(t *testing.T) {
	tests := []string{
		"2026-08-20 12:00:00",
		"2026-08-20T12:00:00+02:00",
		"not-a-timestamp",
		"",
	}
	for _, ts := range tests {
		steps := []smhi.TimeStep{makeStep(ts, nil)}
		_, err := forecast.Build(response(steps))
		if !errors.Is(err, forecast.ErrMalformed) {
			t.Errorf("validTime %q: got %v, want ErrMalformed", ts, err)
		}
	}
}

// ─── Unit Conversions ─────────────────────────────────────────────────────────

func TestCloudinessOctaMapping(t *testing.T) {
	tests := []struct {
		octa float64
		want int
	}{
		{0, 0},
		{1, 13}, // 12.5 rounds half away from zero
		{2, 25},
		{3, 38},
		{4, 50},
		{5, 63},
		{6, 75},
		{7, 88},
		{8, 100},
		{9, 100},  // out of range
		{-1, 100}, // out of range
	}
	for _, tt := range tests {
		steps := []smhi.TimeStep{makeStep("2026-08-20T00:00:00Z", map[string]float64{"tcc_mean": tt.octa})}
		entries, err := forecast.Entries(response(steps))
		if err != nil {
			t.Fatalf("octa %g: unexpected error: %v", tt.octa, err)
		}
		if entries[0].Cloudiness != tt.want {
			t.Errorf("octa %g: got %d%%, want %d%%", tt.octa, entries[0].Cloudiness, tt.want)
		}
	}
}

func TestTemperatureRounding(t *testing.T) {
	tests := []struct {
		temp float64
		want int
	}{
		{1.4, 1},
		{1.5, 2}, // half away from zero
		{-1.5, -2},
		{-1.4, -1},
		{0.0, 0},
	}
	for _, tt := range tests {
		steps := []smhi.TimeStep{makeStep("2026-08-20T00:00:00Z", map[string]float64{"t": tt.temp})}
		entries, err := forecast.Entries(response(steps))
		if err != nil {
			t.Fatalf("temp %g: unexpected error: %v", tt.temp, err)
		}
		if entries[0].Temperature != tt.want {
			t.Errorf("temp %g: got %d, want %d", tt.temp, entries[0].Temperature, tt.want)
		}
	}
}

func TestMeanPrecipitationStoredWithOneDecimal(t *testing.T) {
	steps := []smhi.TimeStep{makeStep("2026-08-20T00:00:00Z", map[string]float64{"pmean": 0.44999})}
	entries, err := forecast.Entries(response(steps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries[0].MeanPrecipitation != 0.4 {
		t.Errorf("mean precipitation: got %g, want 0.4", entries[0].MeanPrecipitation)
	}
	if entries[0].TotalPrecipitation != 0.45 {
		t.Errorf("total precipitation: got %g, want 0.45 (two decimals)", entries[0].TotalPrecipitation)
	}
}

func TestEntriesIgnoreUnknownParameters(t *testing.T) {
	step := makeStep("2026-08-20T00:00:00Z", nil)
	step.Parameters = append(step.Parameters, smhi.Parameter{
		Name:   "tcc_low",
		Values: []float64{3},
	})

	entries, err := forecast.Entries(response([]smhi.TimeStep{step}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}
