package spotify

import (
	"context"
	"fmt"

	"github.com/zmb3/spotify/v2"

	"github.com/acrane/wrapped-so-far/internal/personality"
)

// AudioFeatures retrieves audio features for the given track IDs.
// Requests are batched at the API limit of 100 IDs. Tracks without
// available features are skipped, so the result can be shorter than
// the input.
func (c *Client) AudioFeatures(ctx context.Context, trackIDs []string) ([]personality.AudioFeatures, error) {
	if len(trackIDs) == 0 {
		return nil, nil
	}

	ids := make([]spotify.ID, len(trackIDs))
	for i, id := range trackIDs {
		ids[i] = spotify.ID(id)
	}

	features := make([]personality.AudioFeatures, 0, len(ids))
	total := len(ids)

	for i := 0; i < total; i += maxTracksPerRequest {
		end := min(i+maxTracksPerRequest, total)
		batch := ids[i:end]

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		batchFeatures, err := c.api.GetAudioFeatures(ctx, batch...)
		if err != nil {
			return nil, fmt.Errorf("fetching audio features (batch %d-%d): %w", i+1, end, err)
		}

		for _, f := range batchFeatures {
			if f == nil {
				continue // Track has no audio features
			}
			features = append(features, convertAudioFeatures(f))
		}
	}

	return features, nil
}

// convertAudioFeatures converts the wire feature vector to the domain type.
func convertAudioFeatures(f *spotify.AudioFeatures) personality.AudioFeatures {
	return personality.AudioFeatures{
		ID:               f.ID.String(),
		Danceability:     float64(f.Danceability),
		Energy:           float64(f.Energy),
		Valence:          float64(f.Valence),
		Tempo:            float64(f.Tempo),
		Acousticness:     float64(f.Acousticness),
		Instrumentalness: float64(f.Instrumentalness),
		Liveness:         float64(f.Liveness),
		Speechiness:      float64(f.Speechiness),
	}
}
