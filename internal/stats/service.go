// Package stats computes descriptive listening statistics from a user's
// catalog data: top genres, hourly listening trends, average audio
// features, and an overall mood score.
package stats

import (
	"sort"
	"time"

	"github.com/acrane/wrapped-so-far/internal/personality"
)

// DefaultTopGenres is how many genres Summarize keeps.
const DefaultTopGenres = 10

// Play is one recently played track occurrence.
type Play struct {
	TrackID    string
	PlayedAt   time.Time
	DurationMs int
}

// GenreCount is a genre tag with its occurrence count.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// Summary aggregates a user's listening statistics.
type Summary struct {
	TotalListeningTimeMs int                `json:"total_listening_time_ms"`
	TopGenres            []GenreCount       `json:"top_genres"`
	ListeningTrends      map[int]int        `json:"listening_trends"`
	AverageFeatures      map[string]float64 `json:"average_features"`
	MoodScore            float64            `json:"mood_score"`
}

// featureKeys lists every audio feature descriptor that gets averaged.
var featureKeys = []string{
	"danceability",
	"energy",
	"valence",
	"tempo",
	"acousticness",
	"instrumentalness",
	"liveness",
	"speechiness",
}

// Summarize computes the full statistics summary. The mood score is the
// mean of average valence and average energy.
func Summarize(artists []personality.Artist, features []personality.AudioFeatures, plays []Play) Summary {
	avg := AverageFeatures(features)
	return Summary{
		TotalListeningTimeMs: TotalListeningTime(plays),
		TopGenres:            TopGenres(artists, DefaultTopGenres),
		ListeningTrends:      ListeningTrends(plays),
		AverageFeatures:      avg,
		MoodScore:            (avg["valence"] + avg["energy"]) / 2,
	}
}

// TopGenres counts genre tags across all artists and returns the n most
// common, most frequent first. Ties break alphabetically so output is
// deterministic.
func TopGenres(artists []personality.Artist, n int) []GenreCount {
	counts := make(map[string]int)
	for _, a := range artists {
		for _, g := range a.Genres {
			counts[g]++
		}
	}

	genres := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		genres = append(genres, GenreCount{Genre: genre, Count: count})
	}

	sort.Slice(genres, func(i, j int) bool {
		if genres[i].Count != genres[j].Count {
			return genres[i].Count > genres[j].Count
		}
		return genres[i].Genre < genres[j].Genre
	})

	if n > 0 && len(genres) > n {
		genres = genres[:n]
	}
	return genres
}

// ListeningTrends buckets plays by hour of day. All 24 buckets are
// present in the result even when empty.
func ListeningTrends(plays []Play) map[int]int {
	trends := make(map[int]int, 24)
	for hour := 0; hour < 24; hour++ {
		trends[hour] = 0
	}
	for _, p := range plays {
		if p.PlayedAt.IsZero() {
			continue
		}
		trends[p.PlayedAt.Hour()]++
	}
	return trends
}

// AverageFeatures computes the mean of every audio feature descriptor.
// Returns an empty map when there are no feature vectors.
func AverageFeatures(features []personality.AudioFeatures) map[string]float64 {
	if len(features) == 0 {
		return map[string]float64{}
	}

	sums := make(map[string]float64, len(featureKeys))
	for _, f := range features {
		sums["danceability"] += f.Danceability
		sums["energy"] += f.Energy
		sums["valence"] += f.Valence
		sums["tempo"] += f.Tempo
		sums["acousticness"] += f.Acousticness
		sums["instrumentalness"] += f.Instrumentalness
		sums["liveness"] += f.Liveness
		sums["speechiness"] += f.Speechiness
	}

	n := float64(len(features))
	averages := make(map[string]float64, len(featureKeys))
	for _, key := range featureKeys {
		averages[key] = sums[key] / n
	}
	return averages
}

// TotalListeningTime sums the durations of all plays in milliseconds.
func TotalListeningTime(plays []Play) int {
	var total int
	for _, p := range plays {
		total += p.DurationMs
	}
	return total
}
