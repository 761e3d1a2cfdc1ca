// Package spotify provides a wrapper around the Spotify Web API.
package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"
	"golang.org/x/time/rate"
)

// maxTracksPerRequest is the Spotify API limit for audio feature batches.
const maxTracksPerRequest = 100

// requestsPerSecond caps outgoing catalog API calls per client.
const requestsPerSecond = 10

// Client wraps the Spotify API client with convenience methods and a
// rate limiter shared across all calls.
type Client struct {
	api     *spotify.Client
	limiter *rate.Limiter
}

// New creates a new Spotify client wrapper.
// The underlying client should already be authenticated.
func New(api *spotify.Client) *Client {
	return &Client{
		api:     api,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

// Profile is the authenticated user's profile.
type Profile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// CurrentUser returns the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*Profile, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}
	return &Profile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}, nil
}
