package core

import "context"

type InteractionRepository interface {
	StoreInteraction(ctx context.Context, userID string, request, response map[string]any) error
	GetContext(ctx context.Context, userID string, limit int) ([]Interaction, error)
	GetModuleContext(ctx context.Context, userID, module string, limit int) ([]Interaction, error)
	GetUserHistory(ctx context.Context, userID string) ([]Interaction, error)
}

type FeedbackRepository interface {
	StoreFeedback(ctx context.Context, record map[string]any) error
}
