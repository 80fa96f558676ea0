package opencage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Upstream responses above this size are treated as failures.
const maxBody = 1 << 20

// Client forwards geocoding queries to the OpenCage API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Geocode runs query (an address, or "lat,lng" for reverse lookups) and
// returns the raw JSON body.
func (c *Client) Geocode(ctx context.Context, query string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse geocoder URL: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("key", c.apiKey)
	q.Set("no_annotations", "1")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return "", fmt.Errorf("read geocoder body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}
	if len(body) > maxBody {
		return "", fmt.Errorf("geocoder body exceeds %d bytes", maxBody)
	}
	return string(body), nil
}
