package db

import (
	"time"

	"github.com/google/uuid"
)

// User represents a Spotify user profile.
type User struct {
	ID          string
	DisplayName string
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Session represents an authenticated web session.
type Session struct {
	ID           string
	UserID       string
	AccessToken  string
	RefreshToken string
	TokenExpiry  time.Time
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Snapshot represents one personality analysis run for a user.
type Snapshot struct {
	ID        uuid.UUID
	UserID    string
	TimeRange string
	CreatedAt time.Time
}

// SnapshotScore is a single category result within a snapshot.
// Position preserves the ranked order of the analysis.
type SnapshotScore struct {
	SnapshotID uuid.UUID
	Category   string
	Percentage float64
	Position   int
}
