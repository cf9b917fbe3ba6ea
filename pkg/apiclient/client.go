// Package apiclient provides a typed client for the GlobeTrotter REST API.
// The trip-planning orchestrator in pkg/planner drives it, and external tools
// can use it directly.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Client is a client for the GlobeTrotter API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Config holds client configuration. BaseURL should include the /api prefix,
// e.g. "http://localhost:8080/api".
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// New creates a new API client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken replaces the bearer token used for authenticated calls.
// Login sets it automatically on success.
func (c *Client) SetToken(token string) { c.token = token }

// APIError is a non-2xx response from the server, carrying the decoded error
// envelope when the body had one.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// =============================================================================
// Request/Response Types
// =============================================================================

// SignupRequest registers a new account.
type SignupRequest struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	City        string `json:"city,omitempty"`
}

// LoginRequest exchanges credentials for a bearer token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the public view of an account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token,omitempty"`
}

// AddCityRequest adds a catalog city.
type AddCityRequest struct {
	Name            string   `json:"name"`
	Country         string   `json:"country"`
	CostIndex       *float64 `json:"costIndex,omitempty"`
	PopularityScore *float64 `json:"popularityScore,omitempty"`
}

// City is a catalog city.
type City struct {
	ID      int32  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// CreateTripRequest creates a trip.
type CreateTripRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	StartDate   *openapi_types.Date `json:"startDate,omitempty"`
	EndDate     *openapi_types.Date `json:"endDate,omitempty"`
	IsPublic    bool                `json:"isPublic,omitempty"`
}

// Trip is a created trip.
type Trip struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Title     string     `json:"title"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// NewStop is one element of the bulk stop-add request.
type NewStop struct {
	CityID    int32               `json:"cityId"`
	StartDate *openapi_types.Date `json:"startDate,omitempty"`
	EndDate   *openapi_types.Date `json:"endDate,omitempty"`
	Order     int                 `json:"order"`
}

// AddStopsRequest bulk-adds stops to a trip.
type AddStopsRequest struct {
	Stops []NewStop `json:"stops"`
}

// Stop is a created stop.
type Stop struct {
	ID     uuid.UUID `json:"id"`
	TripID uuid.UUID `json:"tripId"`
	CityID int32     `json:"cityId"`
	Order  int       `json:"order"`
}

// =============================================================================
// API Methods
// =============================================================================

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/users/signup", req, &resp); err != nil {
		return nil, fmt.Errorf("apiclient.Signup: %w", err)
	}
	return &resp, nil
}

// Login authenticates and stores the returned token on the client for
// subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.post(ctx, "/users/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, fmt.Errorf("apiclient.Login: %w", err)
	}
	c.token = resp.Token
	return &resp, nil
}

// AddCity adds a catalog city and returns it with its assigned id.
func (c *Client) AddCity(ctx context.Context, req AddCityRequest) (*City, error) {
	var resp City
	if err := c.post(ctx, "/trips/city-add", req, &resp); err != nil {
		return nil, fmt.Errorf("apiclient.AddCity: %w", err)
	}
	return &resp, nil
}

// CreateTrip creates a trip owned by the authenticated user.
func (c *Client) CreateTrip(ctx context.Context, req CreateTripRequest) (*Trip, error) {
	var resp Trip
	if err := c.post(ctx, "/trips", req, &resp); err != nil {
		return nil, fmt.Errorf("apiclient.CreateTrip: %w", err)
	}
	return &resp, nil
}

// AddStops bulk-adds stops to a trip and returns the trip's complete stop
// list.
func (c *Client) AddStops(ctx context.Context, tripID uuid.UUID, req AddStopsRequest) ([]Stop, error) {
	var resp []Stop
	if err := c.post(ctx, "/trips/"+tripID.String()+"/stops", req, &resp); err != nil {
		return nil, fmt.Errorf("apiclient.AddStops: %w", err)
	}
	return resp, nil
}

// post marshals body, sends it, and decodes a 2xx response into out.
// Non-2xx responses come back as *APIError.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBody, &envelope) == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
