// Package model defines the canonical data types used throughout vader.
// These types are the single source of truth for forecast records and the
// result envelope that every command returns.
package model

import (
	"time"
)

// ─── Forecast Types ───────────────────────────────────────────────────────────

// ForecastEntry is one forecast record.
//
// For hourly (raw) records the three temperature fields are equal and the
// precipitation fields hold per-entry values. For daily aggregated records,
// TemperatureMax/TemperatureMin and TotalPrecipitation/MeanPrecipitation
// summarise the whole day while the remaining fields come from the day's
// representative entry (the one at local noon when present).
type ForecastEntry struct {
	ValidTime             time.Time `json:"valid_time"`
	Temperature           int       `json:"temperature"`
	TemperatureMax        int       `json:"temperature_max"`
	TemperatureMin        int       `json:"temperature_min"`
	Humidity              int       `json:"humidity"`
	Pressure              int       `json:"pressure"`
	Thunder               int       `json:"thunder"`
	Cloudiness            int       `json:"cloudiness"`
	PrecipitationCategory int       `json:"precipitation_category"`
	WindDirection         int       `json:"wind_direction"`
	WindSpeed             float64   `json:"wind_speed"`
	Visibility            float64   `json:"horizontal_visibility"`
	WindGust              float64   `json:"wind_gust"`
	MeanPrecipitation     float64   `json:"mean_precipitation"`
	TotalPrecipitation    float64   `json:"total_precipitation"`
	Symbol                int       `json:"symbol"`
}

// ─── Result Envelope ─────────────────────────────────────────────────────────

// ResultStats carries performance metadata for a command result.
type ResultStats struct {
	DurationMs int64 `json:"duration_ms"`
	Items      int   `json:"items"`
}

// Result is the uniform envelope returned by every command.
// The Data field holds the typed payload; Kind identifies what is in it.
// Renderers switch on Kind to format output appropriately.
type Result struct {
	Kind        string      `json:"kind"`
	GeneratedAt time.Time   `json:"generated_at"`
	Command     string      `json:"command"`
	Data        interface{} `json:"data"`
	Warnings    []string    `json:"warnings,omitempty"`
	Stats       ResultStats `json:"stats"`
}

// Kind constants for Result.Kind.
const (
	KindDaily  = "forecast_daily"
	KindHourly = "forecast_hourly"
)
