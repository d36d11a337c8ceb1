package ephemref

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPProvider queries a reference ephemeris HTTP service. The service is
// expected to answer GET <base>/longitude?body=<name>&at=<RFC3339> with a
// JSON object carrying the longitude in degrees.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

type longitudeResponse struct {
	Body         string  `json:"body"`
	LongitudeDeg float64 `json:"longitude_deg"`
}

// NewHTTPProvider creates a provider against a service base URL. A zero
// timeout defaults to 30 seconds.
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Name() string {
	return fmt.Sprintf("http:%s", p.baseURL)
}

// LongitudeDeg fetches one body/instant pair from the service.
func (p *HTTPProvider) LongitudeDeg(ctx context.Context, body string, t time.Time) (float64, error) {
	q := url.Values{}
	q.Set("body", body)
	q.Set("at", t.UTC().Format(time.RFC3339))
	reqURL := fmt.Sprintf("%s/longitude?%s", p.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build ephemeris request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("ephemeris request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("ephemeris service returned %d for %s at %v: %s",
			resp.StatusCode, body, t, msg)
	}

	var lr longitudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return 0, fmt.Errorf("failed to decode ephemeris response: %w", err)
	}
	if lr.LongitudeDeg < 0 || lr.LongitudeDeg >= 360 {
		return 0, fmt.Errorf("ephemeris service returned out-of-range longitude %v for %s", lr.LongitudeDeg, body)
	}
	return lr.LongitudeDeg, nil
}
