package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepository handles personality snapshot database operations.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// Create inserts a snapshot with its category scores in one transaction.
func (r *SnapshotRepository) Create(ctx context.Context, snapshot *Snapshot, scores []SnapshotScore) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	snapshotQuery := `
		INSERT INTO personality_snapshots (id, user_id, time_range, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	if snapshot.ID == uuid.Nil {
		snapshot.ID = uuid.New()
	}
	err = tx.QueryRow(ctx, snapshotQuery,
		snapshot.ID,
		snapshot.UserID,
		snapshot.TimeRange,
	).Scan(&snapshot.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	scoreQuery := `
		INSERT INTO snapshot_scores (snapshot_id, category, percentage, position)
		VALUES ($1, $2, $3, $4)
	`
	for _, score := range scores {
		_, err = tx.Exec(ctx, scoreQuery,
			snapshot.ID,
			score.Category,
			score.Percentage,
			score.Position,
		)
		if err != nil {
			return fmt.Errorf("inserting snapshot score: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Get retrieves a snapshot by ID.
func (r *SnapshotRepository) Get(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	query := `
		SELECT id, user_id, time_range, created_at
		FROM personality_snapshots
		WHERE id = $1
	`
	var snapshot Snapshot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&snapshot.ID,
		&snapshot.UserID,
		&snapshot.TimeRange,
		&snapshot.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}
	return &snapshot, nil
}

// GetForUser retrieves all snapshots for a user, newest first.
func (r *SnapshotRepository) GetForUser(ctx context.Context, userID string) ([]Snapshot, error) {
	query := `
		SELECT id, user_id, time_range, created_at
		FROM personality_snapshots
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying user snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snapshot Snapshot
		if err := rows.Scan(
			&snapshot.ID,
			&snapshot.UserID,
			&snapshot.TimeRange,
			&snapshot.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}

// GetScores retrieves the category scores for a snapshot in ranked order.
func (r *SnapshotRepository) GetScores(ctx context.Context, snapshotID uuid.UUID) ([]SnapshotScore, error) {
	query := `
		SELECT snapshot_id, category, percentage, position
		FROM snapshot_scores
		WHERE snapshot_id = $1
		ORDER BY position
	`
	rows, err := r.pool.Query(ctx, query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("querying snapshot scores: %w", err)
	}
	defer rows.Close()

	var scores []SnapshotScore
	for rows.Next() {
		var score SnapshotScore
		if err := rows.Scan(
			&score.SnapshotID,
			&score.Category,
			&score.Percentage,
			&score.Position,
		); err != nil {
			return nil, fmt.Errorf("scanning snapshot score: %w", err)
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// DeleteForUser removes all snapshots for a user.
func (r *SnapshotRepository) DeleteForUser(ctx context.Context, userID string) error {
	query := `DELETE FROM personality_snapshots WHERE user_id = $1`
	_, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("deleting user snapshots: %w", err)
	}
	return nil
}
