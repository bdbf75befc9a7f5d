package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sandevgo/coregate/internal/core"
)

type FeedbackRepo struct {
	db *sql.DB
}

func NewFeedbackRepo(db *sql.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// StoreFeedback persists a storage-format feedback record (the map shape
// produced by feedback.Canonical.ToStorageFormat).
func (r *FeedbackRepo) StoreFeedback(ctx context.Context, record map[string]any) error {
	generationID, _ := record["generation_id"].(int)
	command, _ := record["command"].(string)
	userID, _ := record["user_id"].(string)
	comment, _ := record["comment"].(string)

	createdAt := time.Now().UTC()
	if ts, ok := record["timestamp"].(time.Time); ok {
		createdAt = ts
	}

	query := `INSERT INTO feedback (generation_id, command, user_id, comment, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, generationID, command, userID, sql.NullString{String: comment, Valid: comment != ""}, createdAt); err != nil {
		return fmt.Errorf("%w: insert feedback: %v", core.ErrStorage, err)
	}
	return nil
}
