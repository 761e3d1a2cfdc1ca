package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/acrane/wrapped-so-far/internal/personality"
)

// TopTracks returns the user's top tracks for the given time range.
// A non-positive limit falls back to DefaultLimit.
func (c *Client) TopTracks(ctx context.Context, tr TimeRange, limit int) ([]personality.Track, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	page, err := c.api.CurrentUsersTopTracks(ctx, spotify.Limit(limit), spotify.Timerange(tr.toRange()))
	if err != nil {
		return nil, fmt.Errorf("fetching top tracks: %w", err)
	}

	tracks := make([]personality.Track, len(page.Tracks))
	for i, t := range page.Tracks {
		tracks[i] = convertTrack(t)
	}
	return tracks, nil
}

// RecentlyPlayed returns the user's play history, most recent first.
// Track popularity is not part of the play history payload and stays
// zero on these entries.
func (c *Client) RecentlyPlayed(ctx context.Context, limit int) ([]RecentTrack, error) {
	if limit <= 0 {
		limit = 50 // API maximum
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	items, err := c.api.PlayerRecentlyPlayedOpt(ctx, &spotify.RecentlyPlayedOptions{Limit: spotify.Numeric(limit)})
	if err != nil {
		return nil, fmt.Errorf("fetching recently played: %w", err)
	}

	recent := make([]RecentTrack, len(items))
	for i, item := range items {
		recent[i] = RecentTrack{
			PlayedAt: item.PlayedAt,
			Track:    convertSimpleTrack(item.Track),
		}
	}
	return recent, nil
}

// convertTrack converts a Spotify FullTrack to the domain type.
func convertTrack(t spotify.FullTrack) personality.Track {
	return personality.Track{
		ID:         t.ID.String(),
		Name:       t.Name,
		Artists:    convertSimpleArtists(t.Artists),
		Album:      t.Album.Name,
		DurationMs: int(t.Duration),
		Popularity: int(t.Popularity),
	}
}

// convertSimpleTrack converts a play-history track, which carries no
// popularity or album detail.
func convertSimpleTrack(t spotify.SimpleTrack) personality.Track {
	return personality.Track{
		ID:         t.ID.String(),
		Name:       t.Name,
		Artists:    convertSimpleArtists(t.Artists),
		DurationMs: int(t.Duration),
	}
}

// convertSimpleArtists converts embedded artist stubs. Genres and
// popularity are only present on full artist objects.
func convertSimpleArtists(in []spotify.SimpleArtist) []personality.Artist {
	artists := make([]personality.Artist, len(in))
	for i, a := range in {
		artists[i] = personality.Artist{
			ID:   a.ID.String(),
			Name: a.Name,
		}
	}
	return artists
}
