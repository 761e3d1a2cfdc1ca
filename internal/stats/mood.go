package stats

import (
	"fmt"
	"slices"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/acrane/wrapped-so-far/internal/personality"
)

// MoodConfig holds clustering parameters for mood detection.
type MoodConfig struct {
	NumClusters    int // Number of clusters to create (default: 3)
	MinClusterSize int // Clusters smaller than this are dropped
}

// DefaultMoodConfig returns the recommended default configuration.
func DefaultMoodConfig() MoodConfig {
	return MoodConfig{
		NumClusters:    3,
		MinClusterSize: 2,
	}
}

// MoodTrack pairs a track with its audio feature vector.
type MoodTrack struct {
	Track    personality.Track
	Features personality.AudioFeatures
}

// MoodCluster is a group of tracks with a similar feel.
type MoodCluster struct {
	Name     string              `json:"name"`
	Tracks   []personality.Track `json:"tracks"`
	Centroid map[string]float64  `json:"centroid"`
}

// moodFeatures defines the feature axes used for clustering, in
// coordinate order.
var moodFeatures = []string{"energy", "valence", "danceability", "acousticness"}

// moodObservation wraps a MoodTrack to implement clusters.Observation.
type moodObservation struct {
	track  *MoodTrack
	coords clusters.Coordinates
}

func (o moodObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o moodObservation) Distance(point clusters.Coordinates) float64 {
	return o.coords.Distance(point)
}

// ClusterMoods groups tracks by audio feature similarity using k-means
// and labels each group from its centroid. Returns nil when there are
// fewer tracks than clusters or clustering fails.
func ClusterMoods(tracks []MoodTrack, cfg MoodConfig) []MoodCluster {
	if cfg.NumClusters <= 0 {
		cfg.NumClusters = DefaultMoodConfig().NumClusters
	}
	if len(tracks) < cfg.NumClusters {
		return nil
	}

	var obs clusters.Observations
	for i := range tracks {
		t := &tracks[i]
		obs = append(obs, moodObservation{
			track: t,
			coords: clusters.Coordinates{
				t.Features.Energy,
				t.Features.Valence,
				t.Features.Danceability,
				t.Features.Acousticness,
			},
		})
	}

	km := kmeans.New()
	result, err := km.Partition(obs, cfg.NumClusters)
	if err != nil {
		fmt.Printf("Warning: mood clustering failed: %v\n", err)
		return nil
	}

	var moods []MoodCluster
	for _, cluster := range result {
		var clusterTracks []personality.Track
		for _, o := range cluster.Observations {
			if mo, ok := o.(moodObservation); ok {
				clusterTracks = append(clusterTracks, mo.track.Track)
			}
		}
		if len(clusterTracks) < cfg.MinClusterSize {
			continue
		}

		centroid := make(map[string]float64, len(moodFeatures))
		for i, name := range moodFeatures {
			centroid[name] = cluster.Center[i]
		}

		moods = append(moods, MoodCluster{
			Name:     moodName(centroid),
			Tracks:   clusterTracks,
			Centroid: centroid,
		})
	}

	// Largest clusters first.
	slices.SortStableFunc(moods, func(a, b MoodCluster) int {
		return len(b.Tracks) - len(a.Tracks)
	})

	return moods
}

// moodName labels a centroid using energy/valence quadrants, with an
// acoustic modifier when acousticness dominates.
func moodName(centroid map[string]float64) string {
	highEnergy := centroid["energy"] > 0.6
	highValence := centroid["valence"] > 0.5

	var name string
	switch {
	case highEnergy && highValence:
		name = "Upbeat & Bright"
	case highEnergy:
		name = "Dark & Driving"
	case highValence:
		name = "Mellow & Warm"
	default:
		name = "Quiet & Blue"
	}

	if centroid["acousticness"] > 0.6 {
		name += " (Acoustic)"
	}
	return name
}
