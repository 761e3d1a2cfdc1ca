package spotify

import (
	"fmt"
	"time"

	"github.com/zmb3/spotify/v2"

	"github.com/acrane/wrapped-so-far/internal/personality"
)

// DefaultLimit is the default page size for top artist/track requests.
const DefaultLimit = 20

// TimeRange selects the aggregation window for top artist/track lists.
type TimeRange string

// Aggregation windows supported by the catalog API.
const (
	ShortTerm  TimeRange = "short_term"
	MediumTerm TimeRange = "medium_term"
	LongTerm   TimeRange = "long_term"
)

// ParseTimeRange maps a query value to a TimeRange. Empty input
// defaults to MediumTerm.
func ParseTimeRange(s string) (TimeRange, error) {
	switch TimeRange(s) {
	case "":
		return MediumTerm, nil
	case ShortTerm, MediumTerm, LongTerm:
		return TimeRange(s), nil
	default:
		return "", fmt.Errorf("invalid time range %q", s)
	}
}

// toRange converts a TimeRange to the underlying client's range type.
func (tr TimeRange) toRange() spotify.Range {
	switch tr {
	case ShortTerm:
		return spotify.ShortTermRange
	case LongTerm:
		return spotify.LongTermRange
	default:
		return spotify.MediumTermRange
	}
}

// RecentTrack is one entry from the user's play history.
type RecentTrack struct {
	PlayedAt time.Time         `json:"played_at"`
	Track    personality.Track `json:"track"`
}
