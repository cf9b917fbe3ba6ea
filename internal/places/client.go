// Package places is a thin client over a Google-Places-style search provider.
// It translates requests and responses and maps provider status strings to
// errors; it holds no state and applies no caching or retries — transient
// provider failures surface immediately for the caller to retry.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultBaseURL is the production provider endpoint.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// maxNearbyRadius is the provider-side radius ceiling in meters.
const maxNearbyRadius = 50000

// detailFields is the fixed field set requested by Details.
const detailFields = "name,formatted_address,formatted_phone_number,geometry," +
	"rating,reviews,photos,price_level,opening_hours,website,types,user_ratings_total"

// StatusError reports a provider response whose status is neither OK nor
// ZERO_RESULTS. Handlers map it to 502.
type StatusError struct {
	Status string
}

func (e *StatusError) Error() string {
	return "places: provider status " + e.Status
}

// Place is one search or nearby result.
type Place struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address,omitempty"`
	Vicinity         string   `json:"vicinity,omitempty"`
	Rating           float64  `json:"rating,omitempty"`
	UserRatingsTotal int      `json:"user_ratings_total,omitempty"`
	PriceLevel       int      `json:"price_level,omitempty"`
	Types            []string `json:"types,omitempty"`
	Geometry         Geometry `json:"geometry"`
	Photos           []Photo  `json:"photos,omitempty"`
}

// Geometry carries the place location.
type Geometry struct {
	Location LatLng `json:"location"`
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Photo is a provider photo reference usable with PhotoURL.
type Photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
}

// Review is a user review returned by Details.
type Review struct {
	AuthorName string  `json:"author_name"`
	Rating     float64 `json:"rating"`
	Text       string  `json:"text"`
	Time       int64   `json:"time"`
}

// OpeningHours is the subset of provider hours data the frontend renders.
type OpeningHours struct {
	OpenNow     bool     `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

// Details is the full record returned by the details endpoint.
type Details struct {
	Place
	FormattedPhoneNumber string        `json:"formatted_phone_number,omitempty"`
	Website              string        `json:"website,omitempty"`
	Reviews              []Review      `json:"reviews,omitempty"`
	OpeningHours         *OpeningHours `json:"opening_hours,omitempty"`
}

// Prediction is one autocomplete suggestion.
type Prediction struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

// Client talks to the provider. The zero value is not usable; construct with
// NewClient.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the provider endpoint. Tests point it at an
// httptest.Server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// NewClient constructs a Client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchResponse is the provider envelope for list endpoints.
type searchResponse struct {
	Status  string  `json:"status"`
	Results []Place `json:"results"`
}

// Search performs a text search. An empty result set (ZERO_RESULTS) is
// success with an empty slice, not an error.
func (c *Client) Search(ctx context.Context, query, placeType string) ([]Place, error) {
	params := url.Values{"query": {query}, "key": {c.apiKey}}
	if placeType != "" {
		params.Set("type", placeType)
	}

	var resp searchResponse
	if err := c.get(ctx, "/textsearch/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, &StatusError{Status: resp.Status}
	}
	if resp.Results == nil {
		return []Place{}, nil
	}
	return resp.Results, nil
}

// detailsResponse is the provider envelope for the details endpoint.
type detailsResponse struct {
	Status string  `json:"status"`
	Result Details `json:"result"`
}

// Details fetches the fixed field set for one place.
func (c *Client) Details(ctx context.Context, placeID string) (Details, error) {
	params := url.Values{
		"place_id": {placeID},
		"fields":   {detailFields},
		"key":      {c.apiKey},
	}

	var resp detailsResponse
	if err := c.get(ctx, "/details/json", params, &resp); err != nil {
		return Details{}, err
	}
	if resp.Status != "OK" {
		return Details{}, &StatusError{Status: resp.Status}
	}
	return resp.Result, nil
}

// Nearby searches around a coordinate. The radius is clamped to the
// provider's 50 km maximum before the call.
func (c *Client) Nearby(ctx context.Context, lat, lng float64, radius int, placeType string) ([]Place, error) {
	if radius <= 0 {
		radius = 5000
	}
	if radius > maxNearbyRadius {
		radius = maxNearbyRadius
	}

	params := url.Values{
		"location": {strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)},
		"radius":   {strconv.Itoa(radius)},
		"key":      {c.apiKey},
	}
	if placeType != "" {
		params.Set("type", placeType)
	}

	var resp searchResponse
	if err := c.get(ctx, "/nearbysearch/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, &StatusError{Status: resp.Status}
	}
	if resp.Results == nil {
		return []Place{}, nil
	}
	return resp.Results, nil
}

// autocompleteResponse is the provider envelope for autocomplete.
type autocompleteResponse struct {
	Status      string       `json:"status"`
	Predictions []Prediction `json:"predictions"`
}

// Autocomplete returns suggestions for a partial input. types restricts the
// prediction kinds (e.g. "(cities)").
func (c *Client) Autocomplete(ctx context.Context, input, types string) ([]Prediction, error) {
	params := url.Values{"input": {input}, "key": {c.apiKey}}
	if types != "" {
		params.Set("types", types)
	}

	var resp autocompleteResponse
	if err := c.get(ctx, "/autocomplete/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
		return nil, &StatusError{Status: resp.Status}
	}
	if resp.Predictions == nil {
		return []Prediction{}, nil
	}
	return resp.Predictions, nil
}

// PhotoURL builds the photo fetch URL for a photo reference. Pure string
// construction, no network call. maxWidth <= 0 defaults to 400.
func (c *Client) PhotoURL(photoReference string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 400
	}
	params := url.Values{
		"maxwidth":        {strconv.Itoa(maxWidth)},
		"photo_reference": {photoReference},
		"key":             {c.apiKey},
	}
	return c.baseURL + "/photo?" + params.Encode()
}

// get issues a GET against the provider and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("places: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("places: decode response: %w", err)
	}
	return nil
}
