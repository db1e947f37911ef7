// Package config handles loading and resolving vader configuration.
// Resolution order (first non-empty value wins):
//  1. CLI flags
//  2. Environment variables (VADER_USER_AGENT, VADER_LON, VADER_LAT)
//  3. config.json in the current working directory
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	DefaultConfigFile = "config.json"
	DefaultFormat     = "table"
	DefaultTimeout    = 30 * time.Second
	DefaultRate       = 2.0
	DefaultUserAgent  = "vader-cli/1.0"
	EnvUserAgent      = "VADER_USER_AGENT"
	EnvLon            = "VADER_LON"
	EnvLat            = "VADER_LAT"
)

// File is the on-disk representation of config.json.
// Lon/Lat are pointers so an absent coordinate stays distinguishable
// from 0,0 (a real, if wet, location).
type File struct {
	UserAgent     string   `json:"user_agent"`
	DefaultFormat string   `json:"default_format"`
	Timeout       string   `json:"timeout"`
	Rate          float64  `json:"rate"`
	BaseURL       string   `json:"base_url"`
	Lon           *float64 `json:"lon,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
}

// Config is the fully-resolved runtime configuration.
// All callers use this struct; the File is only read during loading.
type Config struct {
	UserAgent  string
	Format     string
	Timeout    time.Duration
	Rate       float64
	BaseURL    string
	Lon        float64
	Lat        float64
	HasLonLat  bool
	ConfigPath string // path of the config.json that was loaded (empty if none found)

	// Runtime overrides set from CLI flags after Load()
	Quiet   bool
	Verbose bool
	Debug   bool
}

// Load resolves configuration from all sources.
// flagUserAgent is the value of --user-agent (empty string if not set).
func Load(flagUserAgent string) (*Config, error) {
	cfg := &Config{
		UserAgent: DefaultUserAgent,
		Format:    DefaultFormat,
		Timeout:   DefaultTimeout,
		Rate:      DefaultRate,
	}

	// Layer 1: config.json (lowest priority)
	if f, path, err := loadFile(); err == nil {
		applyFile(cfg, f, path)
	}

	// Layer 2: environment variables
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}
	if lon, lat, ok, err := lonLatFromEnv(); err != nil {
		return nil, err
	} else if ok {
		cfg.Lon, cfg.Lat = lon, lat
		cfg.HasLonLat = true
	}

	// Layer 3: CLI flag (highest priority)
	if flagUserAgent != "" {
		cfg.UserAgent = flagUserAgent
	}

	return cfg, nil
}

// Validate returns an error if the resolved location is unusable.
func (c *Config) Validate() error {
	if !c.HasLonLat {
		return errors.New(
			"no location set.\n\n" +
				"Set it one of these ways:\n" +
				"  1. CLI flags:       vader forecast --lon 16.158 --lat 58.581\n" +
				"  2. Environment:     export VADER_LON=16.158 VADER_LAT=58.581\n" +
				"  3. config.json:     {\"lon\": 16.158, \"lat\": 58.581}",
		)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %g out of range [-180, 180]", c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %g out of range [-90, 90]", c.Lat)
	}
	return nil
}

// lonLatFromEnv reads the coordinate pair from the environment.
// Setting only one of the two variables is an error.
func lonLatFromEnv() (lon, lat float64, ok bool, err error) {
	lonStr := os.Getenv(EnvLon)
	latStr := os.Getenv(EnvLat)
	if lonStr == "" && latStr == "" {
		return 0, 0, false, nil
	}
	if lonStr == "" || latStr == "" {
		return 0, 0, false, fmt.Errorf("%s and %s must be set together", EnvLon, EnvLat)
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid %s %q", EnvLon, lonStr)
	}
	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("invalid %s %q", EnvLat, latStr)
	}
	return lon, lat, true, nil
}

// loadFile attempts to read config.json from the current working directory.
func loadFile() (*File, string, error) {
	path, err := filepath.Abs(DefaultConfigFile)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("config.json not found at %s", path)
		}
		return nil, "", fmt.Errorf("reading config.json: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, "", fmt.Errorf("parsing config.json: %w", err)
	}
	return &f, path, nil
}

// applyFile copies values from a parsed File into cfg,
// skipping any fields that are zero/empty.
func applyFile(cfg *Config, f *File, path string) {
	cfg.ConfigPath = path
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.DefaultFormat != "" {
		cfg.Format = f.DefaultFormat
	}
	if f.Timeout != "" {
		if d, err := time.ParseDuration(f.Timeout); err == nil {
			cfg.Timeout = d
		}
	}
	if f.Rate > 0 {
		cfg.Rate = f.Rate
	}
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.Lon != nil && f.Lat != nil {
		cfg.Lon, cfg.Lat = *f.Lon, *f.Lat
		cfg.HasLonLat = true
	}
}

// Template returns a File populated with sensible defaults, suitable for
// writing an initial config.json via `vader config init`.
func Template() File {
	return File{
		UserAgent:     DefaultUserAgent,
		DefaultFormat: DefaultFormat,
		Timeout:       "30s",
		Rate:          DefaultRate,
	}
}

// WriteFile serialises a File to the given path.
func WriteFile(path string, f File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0600)
}
