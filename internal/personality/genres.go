package personality

import "strings"

// genreWeights maps genre keywords to category weight contributions.
// A tag matches a keyword when the keyword, or any whitespace-delimited
// word of it, appears as a substring of the lowercased tag. Every match
// adds the keyword's full weight map, so one tag can count toward
// several keywords ("k-pop" hits both "pop" and "k-pop").
var genreWeights = map[string]map[Category]float64{
	// Mainstream/Popular genres
	"pop":        {Performative: 0.8, Pandering: 0.6},
	"top 40":     {Performative: 0.9, Pandering: 0.8},
	"mainstream": {Performative: 0.8, Pandering: 0.7},

	// Experimental/Avant-garde genres
	"experimental": {AvantGarde: 0.9, Sophisticated: 0.7},
	"noise":        {AvantGarde: 0.8, Sophisticated: 0.6},
	"ambient":      {AvantGarde: 0.6, Sophisticated: 0.8},
	"drone":        {AvantGarde: 0.7, Sophisticated: 0.7},
	"free jazz":    {AvantGarde: 0.8, Sophisticated: 0.9},

	// Sophisticated genres
	"classical":     {Sophisticated: 0.9, AvantGarde: 0.3},
	"jazz":          {Sophisticated: 0.8, Explorer: 0.6},
	"baroque":       {Sophisticated: 0.9, AvantGarde: 0.4},
	"opera":         {Sophisticated: 0.8, Performative: 0.4},
	"chamber music": {Sophisticated: 0.9, AvantGarde: 0.3},

	// Explorer genres (diverse/world music)
	"world":      {Explorer: 0.8, Sophisticated: 0.5},
	"afrobeat":   {Explorer: 0.7, Trendsetter: 0.6},
	"k-pop":      {Explorer: 0.6, Trendsetter: 0.8},
	"bossa nova": {Explorer: 0.7, Sophisticated: 0.6},
	"cumbia":     {Explorer: 0.8, Trendsetter: 0.5},

	// Trendsetter genres
	"hyperpop":    {Trendsetter: 0.9, AvantGarde: 0.6},
	"phonk":       {Trendsetter: 0.8, Explorer: 0.5},
	"drill":       {Trendsetter: 0.7, Performative: 0.6},
	"bedroom pop": {Trendsetter: 0.6, Sophisticated: 0.7},
}

// genreScores scores the flattened multiset of all artist genre tags
// against the keyword table, then normalizes by the total tag count
// (not unique tags). With no genre tags it contributes nothing.
func genreScores(artists []Artist) map[Category]float64 {
	var allGenres []string
	for _, a := range artists {
		allGenres = append(allGenres, a.Genres...)
	}
	if len(allGenres) == 0 {
		return map[Category]float64{}
	}

	scores := make(map[Category]float64, len(categories))
	for _, genre := range allGenres {
		tag := strings.ToLower(genre)
		for keyword, weights := range genreWeights {
			if !matchesKeyword(tag, keyword) {
				continue
			}
			for category, weight := range weights {
				scores[category] += weight
			}
		}
	}

	for category := range scores {
		scores[category] /= float64(len(allGenres))
	}
	return scores
}

// matchesKeyword reports whether a lowercased genre tag matches a
// keyword: the whole keyword as a substring, or any single word of it.
func matchesKeyword(tag, keyword string) bool {
	if strings.Contains(tag, keyword) {
		return true
	}
	for _, word := range strings.Fields(keyword) {
		if strings.Contains(tag, word) {
			return true
		}
	}
	return false
}
