package gateway

import (
	"context"

	"github.com/sandevgo/coregate/internal/core"
	"github.com/sandevgo/coregate/pkg/log"
)

// recentHistoryCap bounds how much external history gets attached to a
// creator request.
const recentHistoryCap = 5

// CreatorRouter pre-warms creator flows with related context and forwards
// feedback to the external content service. With Noopur disabled every
// path falls back to the local interaction store.
type CreatorRouter struct {
	noopur    core.ContentService // nil when the feature flag is off
	store     core.InteractionRepository
	warmLimit int
}

func NewCreatorRouter(noopur core.ContentService, store core.InteractionRepository, warmLimit int) *CreatorRouter {
	if warmLimit <= 0 {
		warmLimit = DefaultOptions().WarmContextLimit
	}
	return &CreatorRouter{
		noopur:    noopur,
		store:     store,
		warmLimit: warmLimit,
	}
}

// Prewarm attaches recent history and related context to the request data.
// All injected keys yield to caller-supplied ones, and every failure
// degrades to an unenriched request.
func (r *CreatorRouter) Prewarm(ctx context.Context, userID string, data map[string]any) []core.Interaction {
	logger := log.FromCtx(ctx)

	topic := stringField(data, "topic")
	goal := stringField(data, "goal")
	genType := stringField(data, "type")
	if genType == "" {
		genType = "story"
	}

	if r.noopur != nil {
		if history, err := r.noopur.History(ctx); err == nil {
			if len(history) > recentHistoryCap {
				history = history[:recentHistoryCap]
			}
			setIfAbsent(data, "recent_history", history)
		} else {
			logger.Debug().Err(err).Msg("noopur history unavailable")
		}

		if topic != "" && goal != "" {
			payload := map[string]any{"topic": topic, "goal": goal, "type": genType}
			resp, err := r.noopur.Generate(ctx, payload)
			if err == nil {
				if related, ok := resp["related_context"]; ok {
					setIfAbsent(data, "related_context", related)
				}
				if _, ok := resp["generated_text"]; ok {
					setIfAbsent(data, "generation_metadata", map[string]any{
						"source":               "external",
						"can_provide_feedback": true,
					})
				}
				return nil
			}
			logger.Debug().Err(err).Msg("noopur generate unavailable, falling back to local context")
		}
	}

	// Fallback: local warm context
	if r.store == nil || userID == "" {
		return nil
	}
	history, err := r.store.GetContext(ctx, userID, r.warmLimit)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load warm context")
		return nil
	}
	if len(history) > 0 {
		setIfAbsent(data, "related_context", contextItems(history))
	}
	return history
}

// ForwardFeedback normalizes the payload shape and forwards it to Noopur.
func (r *CreatorRouter) ForwardFeedback(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if r.noopur == nil {
		return map[string]any{"status": "disabled"}, nil
	}

	body := payload
	if id, ok := payload["id"]; ok {
		if fb, ok := payload["feedback"]; ok {
			body = map[string]any{"id": id, "feedback": fb}
		}
	} else if genID, ok := payload["generation_id"]; ok {
		if cmd, ok := payload["command"]; ok {
			body = map[string]any{"generation_id": genID, "command": cmd}
		}
	}

	return r.noopur.Feedback(ctx, body)
}

// stringField reads a key from the payload, falling back to the nested
// "data" object the legacy request shape used.
func stringField(data map[string]any, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	if nested, ok := data["data"].(map[string]any); ok {
		if v, ok := nested[key].(string); ok {
			return v
		}
	}
	return ""
}
