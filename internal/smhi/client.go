// Package smhi implements the HTTP client for the SMHI open data
// meteorological forecast (metfcst) API. All methods are context-aware and
// respect the shared rate limiter. Requests are never retried: a failed or
// non-success response is reported to the caller as-is.
package smhi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://opendata-download-metfcst.smhi.se/api/category/pmp3g/version/2"

// StatusError is returned when the API answers with a non-success status.
// The status code is preserved so callers can distinguish throttling,
// out-of-coverage coordinates (404) and server-side failures.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("forecast fetch failed: HTTP %d", e.StatusCode)
}

// Client is the SMHI metfcst API HTTP client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
	debug      bool
}

// NewClient creates a Client with the given identification and timeout.
// logger may be nil, in which case client logging is discarded.
func NewClient(baseURL, userAgent string, timeout time.Duration, ratePerSec float64, logger *slog.Logger, debug bool) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	burst := int(ratePerSec)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
		log:     logger,
		debug:   debug,
	}
}

// GetPointForecast fetches the forecast time series for one coordinate.
// Coordinates are formatted with six decimal places, the precision the
// endpoint accepts.
func (c *Client) GetPointForecast(ctx context.Context, lon, lat float64) (*PointForecast, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/geotype/point/lon/%s/lat/%s/data.json",
		c.baseURL, formatCoord(lon), formatCoord(lat))

	if c.debug {
		c.log.Debug("smhi request", "url", reqURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	if c.debug {
		c.log.Debug("smhi response", "status", resp.StatusCode, "bytes", len(body))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var pf PointForecast
	if err := json.Unmarshal(body, &pf); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &pf, nil
}

// formatCoord renders a coordinate with six decimal places.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
