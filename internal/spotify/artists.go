package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/acrane/wrapped-so-far/internal/personality"
)

// TopArtists returns the user's top artists for the given time range.
// A non-positive limit falls back to DefaultLimit.
func (c *Client) TopArtists(ctx context.Context, tr TimeRange, limit int) ([]personality.Artist, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	page, err := c.api.CurrentUsersTopArtists(ctx, spotify.Limit(limit), spotify.Timerange(tr.toRange()))
	if err != nil {
		return nil, fmt.Errorf("fetching top artists: %w", err)
	}

	artists := make([]personality.Artist, len(page.Artists))
	for i, a := range page.Artists {
		artists[i] = convertArtist(a)
	}
	return artists, nil
}

// convertArtist converts a Spotify FullArtist to the domain type.
func convertArtist(a spotify.FullArtist) personality.Artist {
	return personality.Artist{
		ID:         a.ID.String(),
		Name:       a.Name,
		Genres:     a.Genres,
		Popularity: int(a.Popularity),
	}
}
