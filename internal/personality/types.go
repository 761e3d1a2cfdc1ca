package personality

// Artist is a catalog artist with its genre tags and popularity.
type Artist struct {
	ID         string
	Name       string
	Genres     []string
	Popularity int // 0-100
}

// Track is a catalog track with its artists and popularity.
type Track struct {
	ID         string
	Name       string
	Artists    []Artist
	Album      string
	DurationMs int
	Popularity int // 0-100
}

// AudioFeatures is the per-track descriptor vector from the catalog API.
// All values are on a 0.0-1.0 scale except Tempo, which is BPM.
type AudioFeatures struct {
	ID               string
	Danceability     float64
	Energy           float64
	Valence          float64
	Tempo            float64
	Acousticness     float64
	Instrumentalness float64
	Liveness         float64
	Speechiness      float64
}
