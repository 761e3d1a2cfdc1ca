// Package personality derives a listener personality breakdown from
// catalog data: artist genres, popularity scores, and audio features.
package personality

import (
	"math"
	"slices"
)

// Category is one of the six fixed listener archetypes.
type Category string

// The closed archetype set. Sub-scorers only ever contribute to these.
const (
	Performative  Category = "performative"
	AvantGarde    Category = "avant_garde"
	Pandering     Category = "pandering"
	Sophisticated Category = "sophisticated"
	Explorer      Category = "explorer"
	Trendsetter   Category = "trendsetter"
)

// categories fixes iteration order so output is deterministic and ties
// keep their insertion order through the stable sort.
var categories = []Category{
	Performative,
	AvantGarde,
	Pandering,
	Sophisticated,
	Explorer,
	Trendsetter,
}

// Sub-scorer weights. Must sum to 1.0.
const (
	popularityWeight = 0.3
	genreWeight      = 0.3
	audioWeight      = 0.25
	diversityWeight  = 0.15
)

// visibilityThreshold is the percentage floor below which a category is
// omitted from the result.
const visibilityThreshold = 5.0

// Score is one scored archetype in the breakdown.
type Score struct {
	Category    Category `json:"category"`
	Percentage  float64  `json:"percentage"`
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
}

// Analyze scores the listener's catalog data against the six archetypes
// and returns the significant ones, ordered by percentage descending.
// It is a pure function: no side effects, never errors, and empty
// inputs yield an empty result.
func Analyze(artists []Artist, tracks []Track, features []AudioFeatures) []Score {
	popularity := popularityScores(artists, tracks)
	genre := genreScores(artists)
	audio := audioFeatureScores(features)
	diversity := diversityScores(artists)

	totals := make(map[Category]float64, len(categories))
	var sum float64
	for _, c := range categories {
		totals[c] = popularity[c]*popularityWeight +
			genre[c]*genreWeight +
			audio[c]*audioWeight +
			diversity[c]*diversityWeight
		sum += totals[c]
	}

	// Guard the divisor: all-zero totals normalize to all-zero
	// percentages, which the visibility filter then drops.
	if sum == 0 {
		sum = 1
	}

	results := make([]Score, 0, len(categories))
	for _, c := range categories {
		percentage := totals[c] / sum * 100
		if percentage <= visibilityThreshold {
			continue
		}
		p := profiles[c]
		results = append(results, Score{
			Category:    c,
			Percentage:  math.Round(percentage*10) / 10,
			Description: p.Description,
			Traits:      p.Traits,
		})
	}

	slices.SortStableFunc(results, func(a, b Score) int {
		switch {
		case a.Percentage > b.Percentage:
			return -1
		case a.Percentage < b.Percentage:
			return 1
		default:
			return 0
		}
	})

	return results
}

// popularityScores scores the combined artist+track popularity mean.
// Zero popularity values are excluded from the mean rather than counted
// as zero; with no nonzero values it contributes nothing.
func popularityScores(artists []Artist, tracks []Track) map[Category]float64 {
	var sum, count float64
	for _, a := range artists {
		if a.Popularity != 0 {
			sum += float64(a.Popularity)
			count++
		}
	}
	for _, t := range tracks {
		if t.Popularity != 0 {
			sum += float64(t.Popularity)
			count++
		}
	}
	if count == 0 {
		return map[Category]float64{}
	}

	avg := sum / count
	switch {
	case avg >= 70:
		return map[Category]float64{Performative: 0.8, Pandering: 0.6}
	case avg <= 30:
		return map[Category]float64{AvantGarde: 0.7, Sophisticated: 0.5}
	default:
		return map[Category]float64{Explorer: 0.6}
	}
}

// audioFeatureScores scores the mean audio feature profile. Rules are
// evaluated independently, so several can fire for one input set.
// Tempo, liveness and speechiness stay in the data model but do not
// contribute to any rule.
func audioFeatureScores(features []AudioFeatures) map[Category]float64 {
	if len(features) == 0 {
		return map[Category]float64{}
	}

	var energy, danceability, valence, acousticness, instrumentalness float64
	for _, f := range features {
		energy += f.Energy
		danceability += f.Danceability
		valence += f.Valence
		acousticness += f.Acousticness
		instrumentalness += f.Instrumentalness
	}
	n := float64(len(features))
	energy /= n
	danceability /= n
	valence /= n
	acousticness /= n
	instrumentalness /= n

	scores := make(map[Category]float64)

	// High energy plus high danceability reads as crowd-pleasing.
	if energy > 0.7 && danceability > 0.7 {
		scores[Pandering] = 0.7
		scores[Performative] = 0.5
	}

	// Acoustic and quiet reads as sophisticated.
	if acousticness > 0.6 && energy < 0.4 {
		scores[Sophisticated] = 0.8
	}

	if instrumentalness > 0.5 {
		scores[AvantGarde] = 0.6
	}

	// Extreme valence in either direction stacks onto avant_garde.
	if valence < 0.3 || valence > 0.9 {
		scores[AvantGarde] += 0.4
	}

	return scores
}

// diversityScores scores the ratio of unique genre tags to total genre
// tags across all artists. Both thresholds are strict, and the middle
// band contributes nothing. With no genre tags at all it contributes
// nothing either.
func diversityScores(artists []Artist) map[Category]float64 {
	var total int
	unique := make(map[string]struct{})
	for _, a := range artists {
		for _, g := range a.Genres {
			total++
			unique[g] = struct{}{}
		}
	}
	if total == 0 {
		return map[Category]float64{}
	}

	ratio := float64(len(unique)) / float64(total)
	switch {
	case ratio > 0.7:
		return map[Category]float64{Explorer: 0.8, Trendsetter: 0.5}
	case ratio < 0.3:
		return map[Category]float64{Pandering: 0.6}
	default:
		return map[Category]float64{}
	}
}
