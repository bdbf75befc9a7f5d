package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandevgo/coregate/internal/core"
	"github.com/sandevgo/coregate/pkg/log"
)

// defaultModuleReadCap bounds module-scoped context reads. Older rows stay
// in the table for full-history audit but never surface in module
// enrichment.
const defaultModuleReadCap = 5

type InteractionsRepo struct {
	db        *sql.DB
	moduleCap int
}

func NewInteractionsRepo(db *sql.DB, moduleCap int) *InteractionsRepo {
	if moduleCap <= 0 {
		moduleCap = defaultModuleReadCap
	}
	return &InteractionsRepo{db: db, moduleCap: moduleCap}
}

func (r *InteractionsRepo) StoreInteraction(ctx context.Context, userID string, request, response map[string]any) error {
	if userID == "" {
		return fmt.Errorf("%w: empty user id", core.ErrStorage)
	}

	reqJSON, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", core.ErrStorage, err)
	}
	respJSON, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("%w: marshal response: %v", core.ErrStorage, err)
	}

	module := ""
	if m, ok := request["module"].(string); ok {
		module = m
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", core.ErrStorage, err)
	}
	defer tx.Rollback()

	query := `INSERT INTO interactions (user_id, module, request, response, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, userID, module, string(reqJSON), string(respJSON), time.Now().UTC()); err != nil {
		return fmt.Errorf("%w: insert interaction: %v", core.ErrStorage, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", core.ErrStorage, err)
	}
	return nil
}

// GetContext returns up to limit most recent interactions for a user,
// newest first. Unknown users get an empty slice, never an error.
func (r *InteractionsRepo) GetContext(ctx context.Context, userID string, limit int) ([]core.Interaction, error) {
	if userID == "" || limit <= 0 {
		return []core.Interaction{}, nil
	}

	query := `SELECT id, user_id, module, request, response, created_at FROM interactions WHERE user_id = ? ORDER BY id DESC LIMIT ?`
	return r.query(ctx, query, userID, limit)
}

// GetModuleContext is a module-scoped read, hard-capped at the retention
// limit regardless of the requested one.
func (r *InteractionsRepo) GetModuleContext(ctx context.Context, userID, module string, limit int) ([]core.Interaction, error) {
	if userID == "" || limit <= 0 {
		return []core.Interaction{}, nil
	}
	if limit > r.moduleCap {
		limit = r.moduleCap
	}

	query := `SELECT id, user_id, module, request, response, created_at FROM interactions WHERE user_id = ? AND module = ? ORDER BY id DESC LIMIT ?`
	return r.query(ctx, query, userID, module, limit)
}

// GetUserHistory returns the full ordered history, newest first. Used for
// audit rather than prompt enrichment, so no warm cap applies.
func (r *InteractionsRepo) GetUserHistory(ctx context.Context, userID string) ([]core.Interaction, error) {
	if userID == "" {
		return []core.Interaction{}, nil
	}

	query := `SELECT id, user_id, module, request, response, created_at FROM interactions WHERE user_id = ? ORDER BY id DESC`
	return r.query(ctx, query, userID)
}

func (r *InteractionsRepo) query(ctx context.Context, query string, args ...any) ([]core.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query interactions: %v", core.ErrStorage, err)
	}
	defer rows.Close()

	interactions := make([]core.Interaction, 0)
	for rows.Next() {
		var it core.Interaction
		var reqStr, respStr sql.NullString

		if err := rows.Scan(&it.ID, &it.UserID, &it.Module, &reqStr, &respStr, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan interaction: %v", core.ErrStorage, err)
		}

		if reqStr.Valid && reqStr.String != "" {
			if err := json.Unmarshal([]byte(reqStr.String), &it.Request); err != nil {
				return nil, fmt.Errorf("%w: unmarshal request: %v", core.ErrStorage, err)
			}
		}
		if respStr.Valid && respStr.String != "" {
			if err := json.Unmarshal([]byte(respStr.String), &it.Response); err != nil {
				return nil, fmt.Errorf("%w: unmarshal response: %v", core.ErrStorage, err)
			}
		}

		interactions = append(interactions, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStorage, err)
	}

	log.FromCtx(ctx).Debug().Int("count", len(interactions)).Msg("loaded interactions")
	return interactions, nil
}
