package locator

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the locator endpoint queried for provider markers.
const DefaultBaseURL = "https://eziz.org/iframes/genxml.php"

// Config configures a Client. The zero value is usable; unset fields fall
// back to defaults.
type Config struct {
	BaseURL   string
	UserAgent string
	// Timeout bounds each request. Defaults to 10 seconds.
	Timeout time.Duration
	// RequestsPerSecond paces calls to the endpoint. Defaults to 2.
	RequestsPerSecond float64
}

// Client queries the locator endpoint. It is safe for sequential reuse; a
// single underlying http.Client carries connection state across calls.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 2
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "vfc-cli/1.0"
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Fetch issues one request for the given coordinate and radius in miles and
// parses the response into providers. No retry is attempted; callers decide
// how a failed point degrades.
func (c *Client) Fetch(ctx context.Context, lat, lng float64, radius int) ([]Provider, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "locator: rate limiter wait")
	}

	params := url.Values{
		"lat":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lng":    {strconv.FormatFloat(lng, 'f', -1, 64)},
		"radius": {strconv.Itoa(radius)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "locator: build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "locator: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("locator: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "locator: read body")
	}

	return ParseMarkers(string(body))
}
