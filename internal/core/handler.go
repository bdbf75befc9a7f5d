package core

import "context"

// Handler is the capability contract every module implements. History is
// the warm context the gateway fetched for context-aware modules; nil
// otherwise.
type Handler interface {
	Name() string
	// ContextAware reports whether the gateway should enrich the request
	// with stored context before invoking the handler.
	ContextAware() bool
	Handle(ctx context.Context, intent, userID string, data map[string]any, history []Interaction) (Result, error)
}

// ContentService is the external generation service the creator flows
// lean on when enabled. All methods may fail; callers degrade to local data.
type ContentService interface {
	Generate(ctx context.Context, payload map[string]any) (map[string]any, error)
	Feedback(ctx context.Context, payload map[string]any) (map[string]any, error)
	History(ctx context.Context) ([]map[string]any, error)
}
