package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*InteractionsRepo, *FeedbackRepo) {
	t.Helper()
	repo, sink := newTestRepoWithCap(t, 0)
	return repo, sink
}

func newTestRepoWithCap(t *testing.T, moduleCap int) (*InteractionsRepo, *FeedbackRepo) {
	t.Helper()

	ctx := context.Background()
	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "coregate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewInteractionsRepo(db, moduleCap), NewFeedbackRepo(db)
}

func storeN(t *testing.T, repo *InteractionsRepo, userID, module string, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		err := repo.StoreInteraction(ctx,
			userID,
			map[string]any{"module": module, "intent": "generate", "iteration": float64(i)},
			map[string]any{"status": "success", "content": fmt.Sprintf("content_%d", i)},
		)
		require.NoError(t, err)
	}
}

func TestStoreInteraction_Roundtrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	request := map[string]any{
		"module": "creator",
		"intent": "generate",
		"data":   map[string]any{"topic": "test", "goal": "test"},
	}
	response := map[string]any{
		"status": "success",
		"result": map[string]any{"content": "test content"},
	}

	require.NoError(t, repo.StoreInteraction(ctx, "u1", request, response))

	got, err := repo.GetContext(ctx, "u1", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, "u1", got[0].UserID)
	assert.Equal(t, "creator", got[0].Module)
	assert.Equal(t, request, got[0].Request)
	assert.Equal(t, response, got[0].Response)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestStoreInteraction_EmptyUser(t *testing.T) {
	repo, _ := newTestRepo(t)

	err := repo.StoreInteraction(context.Background(), "", map[string]any{}, map[string]any{})
	assert.Error(t, err)
}

func TestGetContext_BoundedRecency(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	storeN(t, repo, "u1", "creator", 7)

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 0, want: 0},
		{limit: 1, want: 1},
		{limit: 3, want: 3},
		{limit: 7, want: 7},
		{limit: 100, want: 7},
	}

	for _, tt := range tests {
		got, err := repo.GetContext(ctx, "u1", tt.limit)
		require.NoError(t, err)
		assert.Len(t, got, tt.want, "limit %d", tt.limit)

		// Newest first, strictly descending insertion order
		for i := 1; i < len(got); i++ {
			assert.Greater(t, got[i-1].ID, got[i].ID)
			assert.False(t, got[i-1].CreatedAt.Before(got[i].CreatedAt))
		}
		if len(got) > 0 {
			assert.Equal(t, float64(6), got[0].Request["iteration"], "most recent interaction first")
		}
	}
}

func TestGetContext_UnknownUser(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.GetContext(context.Background(), "nobody", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetModuleContext_CapEnforced(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	storeN(t, repo, "u1", "creator", 8)
	storeN(t, repo, "u1", "finance", 2)

	// Requested limit above the retention cap collapses to 5
	got, err := repo.GetModuleContext(ctx, "u1", "creator", 10)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, float64(7), got[0].Request["iteration"])

	for _, it := range got {
		assert.Equal(t, "creator", it.Module)
	}

	// Other module rows unaffected
	got, err = repo.GetModuleContext(ctx, "u1", "finance", 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestGetModuleContext_ConfiguredCap(t *testing.T) {
	repo, _ := newTestRepoWithCap(t, 2)
	ctx := context.Background()

	storeN(t, repo, "u1", "creator", 6)

	got, err := repo.GetModuleContext(ctx, "u1", "creator", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, float64(5), got[0].Request["iteration"])

	// Warm reads ignore the module cap
	got, err = repo.GetContext(ctx, "u1", 4)
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestGetUserHistory_NoCap(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	storeN(t, repo, "u1", "creator", 8)
	storeN(t, repo, "u2", "creator", 1)

	history, err := repo.GetUserHistory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 8, "audit history surfaces everything")

	for i := 1; i < len(history); i++ {
		assert.Greater(t, history[i-1].ID, history[i].ID)
	}
}

func TestUsersAreIsolated(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	storeN(t, repo, "u1", "creator", 3)
	storeN(t, repo, "u2", "creator", 2)

	got, err := repo.GetContext(ctx, "u2", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, it := range got {
		assert.Equal(t, "u2", it.UserID)
	}
}

func TestStoreFeedback(t *testing.T) {
	_, sink := newTestRepo(t)
	ctx := context.Background()

	err := sink.StoreFeedback(ctx, map[string]any{
		"generation_id": 123,
		"command":       "+1",
		"user_id":       "fb_user",
		"comment":       "solid",
	})
	require.NoError(t, err)

	err = sink.StoreFeedback(ctx, map[string]any{
		"generation_id": 124,
		"command":       "-2",
		"user_id":       "fb_user",
	})
	require.NoError(t, err)
}
