package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client preconfigured
// for talking to the notes REST API.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://localhost:8080", 5*time.Second)
//	resp, err := client.AuthR(token).Get("/api/notes")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an HTTPClient sending requests relative to baseURL.
// A zero timeout leaves requests unbounded.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

// AuthR returns a new request that authenticates with the given bearer token.
func (c *HTTPClient) AuthR(token string) *resty.Request {
	return c.R().SetAuthToken(token)
}
