package stats

import (
	"testing"

	"github.com/acrane/wrapped-so-far/internal/personality"
)

func TestMoodName(t *testing.T) {
	tests := []struct {
		name     string
		centroid map[string]float64
		want     string
	}{
		{
			name:     "high energy high valence",
			centroid: map[string]float64{"energy": 0.8, "valence": 0.7, "acousticness": 0.2},
			want:     "Upbeat & Bright",
		},
		{
			name:     "high energy low valence",
			centroid: map[string]float64{"energy": 0.8, "valence": 0.3, "acousticness": 0.2},
			want:     "Dark & Driving",
		},
		{
			name:     "low energy high valence",
			centroid: map[string]float64{"energy": 0.4, "valence": 0.7, "acousticness": 0.2},
			want:     "Mellow & Warm",
		},
		{
			name:     "low energy low valence",
			centroid: map[string]float64{"energy": 0.3, "valence": 0.3, "acousticness": 0.2},
			want:     "Quiet & Blue",
		},
		{
			name:     "acoustic modifier",
			centroid: map[string]float64{"energy": 0.4, "valence": 0.7, "acousticness": 0.8},
			want:     "Mellow & Warm (Acoustic)",
		},
		{
			name:     "boundary energy exactly 0.6 is low",
			centroid: map[string]float64{"energy": 0.6, "valence": 0.7, "acousticness": 0.2},
			want:     "Mellow & Warm",
		},
		{
			name:     "boundary acousticness exactly 0.6 no modifier",
			centroid: map[string]float64{"energy": 0.8, "valence": 0.7, "acousticness": 0.6},
			want:     "Upbeat & Bright",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := moodName(tt.centroid)
			if got != tt.want {
				t.Errorf("moodName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClusterMoodsTooFewTracks(t *testing.T) {
	tracks := []MoodTrack{
		{Track: personality.Track{ID: "t1"}, Features: personality.AudioFeatures{Energy: 0.5}},
	}

	got := ClusterMoods(tracks, MoodConfig{NumClusters: 3, MinClusterSize: 1})
	if got != nil {
		t.Errorf("expected nil for fewer tracks than clusters, got %d clusters", len(got))
	}
}

func TestClusterMoodsEmpty(t *testing.T) {
	if got := ClusterMoods(nil, DefaultMoodConfig()); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}

func TestClusterMoodsSeparatesDistinctGroups(t *testing.T) {
	// Two tight groups in feature space plus defaults low enough that
	// both survive the minimum size check.
	var tracks []MoodTrack
	for i := 0; i < 5; i++ {
		tracks = append(tracks, MoodTrack{
			Track:    personality.Track{ID: "hot" + string(rune('a'+i))},
			Features: personality.AudioFeatures{Energy: 0.9, Valence: 0.85, Danceability: 0.8, Acousticness: 0.05},
		})
	}
	for i := 0; i < 5; i++ {
		tracks = append(tracks, MoodTrack{
			Track:    personality.Track{ID: "calm" + string(rune('a'+i))},
			Features: personality.AudioFeatures{Energy: 0.1, Valence: 0.15, Danceability: 0.2, Acousticness: 0.9},
		})
	}

	got := ClusterMoods(tracks, MoodConfig{NumClusters: 2, MinClusterSize: 2})

	if len(got) != 2 {
		t.Fatalf("got %d clusters, want 2", len(got))
	}
	total := 0
	for _, c := range got {
		if c.Name == "" {
			t.Error("cluster has empty name")
		}
		if len(c.Centroid) != len(moodFeatures) {
			t.Errorf("centroid has %d axes, want %d", len(c.Centroid), len(moodFeatures))
		}
		total += len(c.Tracks)
	}
	if total != len(tracks) {
		t.Errorf("clusters cover %d tracks, want %d", total, len(tracks))
	}
}
