package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/srijanmishra08/playlist-recommender/internal/models"
	"github.com/srijanmishra08/playlist-recommender/internal/shared"
)

// HistoryRepository persists summaries of generated playlists.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new [HistoryRepository] with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record inserts a summary row for a generated playlist and returns the
// stored record with its generated id and timestamp.
func (r *HistoryRepository) Record(userID string, playlist *models.GeneratedPlaylist) (*models.PlaylistRecord, error) {
	record := &models.PlaylistRecord{
		ID:         shared.GenerateID(),
		UserID:     userID,
		Name:       playlist.Name,
		TrackCount: len(playlist.Tracks),
		Fallback:   playlist.Fallback,
		CreatedAt:  time.Now().UTC(),
	}

	query := `
		INSERT INTO playlist_history (id, user_id, name, track_count, fallback, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, record.ID, record.UserID, record.Name, record.TrackCount, record.Fallback, record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert history record: %w", err)
	}

	return record, nil
}

// Recent retrieves the most recently generated playlists, newest first.
func (r *HistoryRepository) Recent(limit int) ([]models.PlaylistRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, name, track_count, fallback, created_at
		FROM playlist_history
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []models.PlaylistRecord
	for rows.Next() {
		var record models.PlaylistRecord
		err := rows.Scan(&record.ID, &record.UserID, &record.Name, &record.TrackCount, &record.Fallback, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// ForUser retrieves a user's generated playlists, newest first.
func (r *HistoryRepository) ForUser(userID string, limit int) ([]models.PlaylistRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, user_id, name, track_count, fallback, created_at
		FROM playlist_history
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []models.PlaylistRecord
	for rows.Next() {
		var record models.PlaylistRecord
		err := rows.Scan(&record.ID, &record.UserID, &record.Name, &record.TrackCount, &record.Fallback, &record.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}
