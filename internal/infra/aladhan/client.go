// File: internal/infra/aladhan/client.go
package aladhan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"telegram-prayer-reminder/internal/domain"
	"telegram-prayer-reminder/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

var _ adapter.TimetableAPI = (*Client)(nil)

// Client fetches prayer timings from the aladhan timingsByCity endpoint.
// No retries here; failures bubble up as domain.ErrProviderUnavailable and
// the caller decides whether to come back later.
type Client struct {
	baseURL string
	method  int
	client  *http.Client
	log     *zerolog.Logger
}

func NewClient(baseURL string, method int, logger *zerolog.Logger) *Client {
	compLog := logger.With().Str("component", "AladhanClient").Logger()
	return &Client{
		baseURL: baseURL,
		method:  method,
		client:  &http.Client{Timeout: 15 * time.Second},
		log:     &compLog,
	}
}

func (c *Client) FetchTimings(ctx context.Context, city, country string) (map[string]string, error) {
	q := url.Values{}
	q.Set("city", city)
	q.Set("country", country)
	q.Set("method", strconv.Itoa(c.method))
	endpoint := fmt.Sprintf("%s/v1/timingsByCity?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrProviderUnavailable, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var out struct {
		Data struct {
			Timings map[string]string `json:"timings"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrProviderUnavailable, err)
	}
	if len(out.Data.Timings) == 0 {
		return nil, fmt.Errorf("%w: response has no timings", domain.ErrProviderUnavailable)
	}

	c.log.Debug().Str("city", city).Str("country", country).Int("timings", len(out.Data.Timings)).Msg("fetched timetable")
	return out.Data.Timings, nil
}
