package personality

import (
	"math"
	"testing"
)

func TestAnalyzeEmptyInput(t *testing.T) {
	got := Analyze(nil, nil, nil)
	if len(got) != 0 {
		t.Errorf("Analyze(nil, nil, nil) returned %d scores, want 0", len(got))
	}
}

func TestAnalyzeWeightsSumToOne(t *testing.T) {
	sum := popularityWeight + genreWeight + audioWeight + diversityWeight
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("sub-scorer weights sum to %v, want 1.0", sum)
	}
}

func TestAnalyzeClassicalListener(t *testing.T) {
	artists := []Artist{
		{ID: "a1", Name: "Glenn Gould", Genres: []string{"classical"}},
	}

	got := Analyze(artists, nil, nil)

	if len(got) == 0 {
		t.Fatal("expected scores for classical listener, got none")
	}
	if got[0].Category != Sophisticated {
		t.Errorf("top category = %q, want %q", got[0].Category, Sophisticated)
	}

	// Genre weights 0.9 vs 0.3 must keep sophisticated ahead of avant_garde.
	var sophisticated, avantGarde float64
	for _, s := range got {
		switch s.Category {
		case Sophisticated:
			sophisticated = s.Percentage
		case AvantGarde:
			avantGarde = s.Percentage
		}
	}
	if sophisticated <= avantGarde {
		t.Errorf("sophisticated (%.1f) should outrank avant_garde (%.1f)", sophisticated, avantGarde)
	}
}

func TestAnalyzeMainstreamListener(t *testing.T) {
	// Popularity mean (80+60+75)/3 = 71.67 triggers the mainstream branch.
	artists := []Artist{
		{ID: "a1", Genres: []string{"pop", "rock"}, Popularity: 80},
		{ID: "a2", Genres: []string{"jazz", "blues"}, Popularity: 60},
	}
	tracks := []Track{
		{ID: "t1", Popularity: 75},
	}

	got := Analyze(artists, tracks, nil)

	found := make(map[Category]float64)
	for _, s := range got {
		found[s.Category] = s.Percentage
	}
	if _, ok := found[Performative]; !ok {
		t.Error("expected performative in results")
	}
	if _, ok := found[Pandering]; !ok {
		t.Error("expected pandering in results")
	}
}

func TestAnalyzeFiltersInsignificantCategories(t *testing.T) {
	// Nine classical tags and one opera tag: performative gets a raw
	// genre score of 0.4/10 which lands under the 5% floor after
	// weighting, while opera's sophisticated weight keeps that on top.
	genres := make([]string, 0, 10)
	for i := 0; i < 9; i++ {
		genres = append(genres, "classical")
	}
	genres = append(genres, "opera")

	artists := []Artist{{ID: "a1", Genres: genres}}

	got := Analyze(artists, nil, nil)

	for _, s := range got {
		if s.Category == Performative {
			t.Errorf("performative (%.1f%%) should have been filtered", s.Percentage)
		}
	}
	if len(got) == 0 || got[0].Category != Sophisticated {
		t.Fatalf("expected sophisticated on top, got %+v", got)
	}
}

func TestAnalyzeOrderingAndRounding(t *testing.T) {
	artists := []Artist{{ID: "a1", Genres: []string{"classical"}}}

	got := Analyze(artists, nil, nil)

	for i := 1; i < len(got); i++ {
		if got[i].Percentage > got[i-1].Percentage {
			t.Errorf("scores out of order: %v before %v", got[i-1], got[i])
		}
	}
	for _, s := range got {
		rounded := math.Round(s.Percentage*10) / 10
		if s.Percentage != rounded {
			t.Errorf("percentage %v not rounded to one decimal", s.Percentage)
		}
	}
}

func TestAnalyzePercentagesSumAtMost100(t *testing.T) {
	tests := []struct {
		name    string
		artists []Artist
		tracks  []Track
		feats   []AudioFeatures
	}{
		{
			name:    "genre heavy",
			artists: []Artist{{Genres: []string{"pop", "jazz", "noise", "cumbia"}}},
		},
		{
			name:   "popularity only",
			tracks: []Track{{Popularity: 90}, {Popularity: 85}},
		},
		{
			name:  "audio only",
			feats: []AudioFeatures{{Energy: 0.9, Danceability: 0.9, Valence: 0.95, Instrumentalness: 0.8}},
		},
		{
			name:    "everything",
			artists: []Artist{{Genres: []string{"hyperpop", "drill"}, Popularity: 20}},
			tracks:  []Track{{Popularity: 25}},
			feats:   []AudioFeatures{{Energy: 0.2, Acousticness: 0.9, Valence: 0.1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.artists, tt.tracks, tt.feats)
			var sum float64
			for _, s := range got {
				if s.Percentage < 0 {
					t.Errorf("negative percentage for %s: %v", s.Category, s.Percentage)
				}
				sum += s.Percentage
			}
			// Rounding can push the sum a hair over 100.
			if sum > 100.1 {
				t.Errorf("percentages sum to %v, want <= 100", sum)
			}
		})
	}
}

func TestAnalyzeAttachesProfileCopy(t *testing.T) {
	artists := []Artist{{Genres: []string{"classical"}}}

	for _, s := range Analyze(artists, nil, nil) {
		if s.Description == "" {
			t.Errorf("%s has empty description", s.Category)
		}
		if len(s.Traits) == 0 {
			t.Errorf("%s has no traits", s.Category)
		}
	}
}

func TestPopularityScores(t *testing.T) {
	tests := []struct {
		name    string
		artists []Artist
		tracks  []Track
		want    map[Category]float64
	}{
		{
			name:    "average at 70 boundary is mainstream",
			artists: []Artist{{Popularity: 70}},
			want:    map[Category]float64{Performative: 0.8, Pandering: 0.6},
		},
		{
			name:    "just under 70 is explorer band",
			artists: []Artist{{Popularity: 69}, {Popularity: 70}},
			want:    map[Category]float64{Explorer: 0.6},
		},
		{
			name:    "average at 30 boundary is obscure",
			artists: []Artist{{Popularity: 30}},
			want:    map[Category]float64{AvantGarde: 0.7, Sophisticated: 0.5},
		},
		{
			name:    "combined artist and track mean",
			artists: []Artist{{Popularity: 80}, {Popularity: 60}},
			tracks:  []Track{{Popularity: 75}},
			want:    map[Category]float64{Performative: 0.8, Pandering: 0.6},
		},
		{
			name:    "zero popularity excluded from mean",
			artists: []Artist{{Popularity: 0}, {Popularity: 80}},
			want:    map[Category]float64{Performative: 0.8, Pandering: 0.6},
		},
		{
			name:    "all zero contributes nothing",
			artists: []Artist{{Popularity: 0}},
			tracks:  []Track{{Popularity: 0}},
			want:    map[Category]float64{},
		},
		{
			name: "no input contributes nothing",
			want: map[Category]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := popularityScores(tt.artists, tt.tracks)
			assertScoreMap(t, got, tt.want)
		})
	}
}

func TestAudioFeatureScores(t *testing.T) {
	tests := []struct {
		name  string
		feats []AudioFeatures
		want  map[Category]float64
	}{
		{
			name: "no features contributes nothing",
			want: map[Category]float64{},
		},
		{
			name: "energetic and danceable",
			feats: []AudioFeatures{
				{Energy: 0.8, Danceability: 0.8, Valence: 0.5},
			},
			want: map[Category]float64{Pandering: 0.7, Performative: 0.5},
		},
		{
			name: "acoustic and quiet",
			feats: []AudioFeatures{
				{Acousticness: 0.7, Energy: 0.3, Valence: 0.5},
			},
			want: map[Category]float64{Sophisticated: 0.8},
		},
		{
			name: "instrumental",
			feats: []AudioFeatures{
				{Instrumentalness: 0.6, Energy: 0.5, Valence: 0.5},
			},
			want: map[Category]float64{AvantGarde: 0.6},
		},
		{
			name: "low valence alone",
			feats: []AudioFeatures{
				{Valence: 0.2, Energy: 0.5},
			},
			want: map[Category]float64{AvantGarde: 0.4},
		},
		{
			name: "rules stack: instrumental plus extreme valence",
			feats: []AudioFeatures{
				{Energy: 0.8, Danceability: 0.8, Instrumentalness: 0.6, Valence: 0.95},
			},
			want: map[Category]float64{
				Pandering:    0.7,
				Performative: 0.5,
				AvantGarde:   1.0, // 0.6 + 0.4
			},
		},
		{
			name: "averaged across vectors",
			feats: []AudioFeatures{
				{Energy: 0.9, Danceability: 0.9, Valence: 0.5},
				{Energy: 0.7, Danceability: 0.7, Valence: 0.5},
			},
			// Means are 0.8/0.8, still above both 0.7 thresholds.
			want: map[Category]float64{Pandering: 0.7, Performative: 0.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := audioFeatureScores(tt.feats)
			assertScoreMap(t, got, tt.want)
		})
	}
}

func TestDiversityScores(t *testing.T) {
	tests := []struct {
		name    string
		artists []Artist
		want    map[Category]float64
	}{
		{
			name: "no genres contributes nothing",
			want: map[Category]float64{},
		},
		{
			name: "high diversity",
			artists: []Artist{
				{Genres: []string{"a", "b", "c", "d", "e", "f", "g", "h", "a", "b"}},
			},
			want: map[Category]float64{Explorer: 0.8, Trendsetter: 0.5},
		},
		{
			name: "ratio exactly 0.7 fires neither branch",
			artists: []Artist{
				{Genres: []string{"a", "b", "c", "d", "e", "f", "g", "a", "a", "a"}},
			},
			want: map[Category]float64{},
		},
		{
			name: "low diversity",
			artists: []Artist{
				{Genres: []string{"a", "a", "a", "a", "a", "b", "b", "b", "b", "b"}},
			},
			want: map[Category]float64{Pandering: 0.6},
		},
		{
			name: "ratio exactly 0.3 fires neither branch",
			artists: []Artist{
				{Genres: []string{"a", "a", "a", "a", "b", "b", "b", "c", "c", "c"}},
			},
			want: map[Category]float64{},
		},
		{
			name: "genres counted across artists",
			artists: []Artist{
				{Genres: []string{"a", "a"}},
				{Genres: []string{"a", "a", "a", "a", "a", "a"}},
			},
			want: map[Category]float64{Pandering: 0.6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diversityScores(tt.artists)
			assertScoreMap(t, got, tt.want)
		})
	}
}

// assertScoreMap compares two category score maps with a float tolerance.
func assertScoreMap(t *testing.T, got, want map[Category]float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("got %d categories (%v), want %d (%v)", len(got), got, len(want), want)
		return
	}
	for category, w := range want {
		g, ok := got[category]
		if !ok {
			t.Errorf("missing category %s", category)
			continue
		}
		if math.Abs(g-w) > 1e-9 {
			t.Errorf("%s = %v, want %v", category, g, w)
		}
	}
}
