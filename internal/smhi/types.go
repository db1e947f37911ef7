package smhi

import "time"

// PointForecast is the raw response of the metfcst point forecast endpoint.
// ValidTime stays a string here; strict parsing happens in the forecast
// package so that a bad timestamp surfaces as a data-format error there.
type PointForecast struct {
	ApprovedTime  time.Time  `json:"approvedTime"`
	ReferenceTime time.Time  `json:"referenceTime"`
	Geometry      Geometry   `json:"geometry"`
	TimeSeries    []TimeStep `json:"timeSeries"`
}

// Geometry is the GeoJSON-style point the forecast was computed for.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// TimeStep is one timestamped entry of the forecast time series.
type TimeStep struct {
	ValidTime  string      `json:"validTime"`
	Parameters []Parameter `json:"parameters"`
}

// Parameter is one named value within a time step. Values always carries at
// least one element for well-formed responses; the first element is the one
// that matters for point forecasts.
type Parameter struct {
	Name      string    `json:"name"`
	LevelType string    `json:"levelType"`
	Level     int       `json:"level"`
	Unit      string    `json:"unit"`
	Values    []float64 `json:"values"`
}
