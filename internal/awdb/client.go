// Package awdb is a thin client for the USDA AWDB REST API. It builds query
// parameters, issues one HTTP GET per logical query and decodes the JSON
// responses into wire types. It never retries; callers decide whether to
// re-invoke.
package awdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the public AWDB v1 endpoint.
const DefaultBaseURL = "https://wcc.sc.egov.usda.gov/awdbRestApi/services/v1"

const defaultTimeout = 30 * time.Second

// Client issues queries against an AWDB endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new AWDB client for the given base URL. An empty base
// URL selects the public endpoint.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetReferenceData fetches the element, duration and network code tables.
func (c *Client) GetReferenceData(ctx context.Context) (*ReferenceData, error) {
	ref := new(ReferenceData)
	if err := c.get(ctx, "reference-data", nil, ref); err != nil {
		return nil, err
	}

	return ref, nil
}

// GetStations fetches station metadata for the given query.
func (c *Client) GetStations(ctx context.Context, q StationsQuery) ([]StationMetadata, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var stations []StationMetadata
	if err := c.get(ctx, "stations", q.Values(), &stations); err != nil {
		return nil, err
	}

	return stations, nil
}

// GetData fetches element time series for the given query.
func (c *Client) GetData(ctx context.Context, q DataQuery) ([]StationData, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var data []StationData
	if err := c.get(ctx, "data", q.Values(), &data); err != nil {
		return nil, err
	}

	for _, sd := range data {
		if sd.StationTriplet == "" {
			return nil, &DataFormatError{
				URL: c.endpointURL("data", q.Values()),
				Err: fmt.Errorf("data entry is missing stationTriplet"),
			}
		}
	}

	return data, nil
}

// GetForecasts fetches forecast publications for the given query.
func (c *Client) GetForecasts(ctx context.Context, q ForecastsQuery) ([]ForecastData, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	var forecasts []ForecastData
	if err := c.get(ctx, "forecasts", q.Values(), &forecasts); err != nil {
		return nil, err
	}

	return forecasts, nil
}

// get decodes one GET response into out. The body is read in full before
// decoding so a malformed payload never yields a partial result.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	requestURL := c.endpointURL(endpoint, params)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &NetworkError{URL: requestURL, Err: fmt.Errorf("expected status code 200 but got %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{URL: requestURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &DataFormatError{URL: requestURL, Err: err}
	}

	return nil
}

func (c *Client) endpointURL(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return fmt.Sprintf("%s/%s", c.baseURL, endpoint)
	}

	return fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())
}
