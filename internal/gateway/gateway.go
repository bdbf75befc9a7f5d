package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/coregate/internal/core"
	"github.com/sandevgo/coregate/internal/feedback"
	"github.com/sandevgo/coregate/pkg/log"
)

const (
	IntentFeedback = "feedback"

	defaultSuccessMessage  = "Request processed successfully"
	defaultFeedbackMessage = "Feedback recorded"
)

type Options struct {
	WarmContextLimit int
	EnrichTimeout    time.Duration
}

func DefaultOptions() Options {
	return Options{
		WarmContextLimit: 3,
		EnrichTimeout:    2 * time.Second,
	}
}

// Gateway resolves module handlers, enriches requests with stored context,
// normalizes handler results into the standard envelope and records every
// interaction. Every path terminates in a Response; nothing escapes as a
// raw failure.
type Gateway struct {
	registry *Registry
	store    core.InteractionRepository
	sink     core.FeedbackRepository
	creator  *CreatorRouter
	opts     Options
}

func New(registry *Registry, store core.InteractionRepository, sink core.FeedbackRepository, creator *CreatorRouter, opts Options) *Gateway {
	if opts.WarmContextLimit <= 0 {
		opts.WarmContextLimit = DefaultOptions().WarmContextLimit
	}
	if opts.EnrichTimeout <= 0 {
		opts.EnrichTimeout = DefaultOptions().EnrichTimeout
	}
	return &Gateway{
		registry: registry,
		store:    store,
		sink:     sink,
		creator:  creator,
		opts:     opts,
	}
}

func (g *Gateway) ProcessRequest(ctx context.Context, module, intent, userID string, data map[string]any) core.Response {
	logger := log.FromCtx(ctx).With().
		Str("request_id", uuid.NewString()).
		Str("module", module).
		Str("intent", intent).
		Logger()
	ctx = logger.WithContext(ctx)

	if data == nil {
		data = map[string]any{}
	}

	handler, ok := g.registry.Resolve(module)
	if !ok {
		logger.Warn().Msg("module not registered")
		return core.NewError(fmt.Sprintf("%s: %s", core.ErrUnknownModule.Error(), module))
	}

	var resp core.Response
	if intent == IntentFeedback {
		resp = g.handleFeedback(ctx, data)
	} else {
		var history []core.Interaction
		if handler.ContextAware() {
			history = g.enrich(ctx, userID, data)
		}
		resp = g.invoke(ctx, handler, intent, userID, data, history)
	}

	g.record(ctx, userID, module, intent, data, resp)
	return resp
}

// ValidateFeedback constructs a canonical feedback record from raw data.
// The returned error carries every violated constraint.
func (g *Gateway) ValidateFeedback(data map[string]any) (*feedback.Canonical, error) {
	fb, err := feedback.New(data)
	if err != nil {
		return nil, fmt.Errorf("feedback rejected: %w", err)
	}
	return fb, nil
}

// enrich fetches warm context under a bounded timeout. Failures and
// timeouts degrade to an unenriched request, never a failed one.
func (g *Gateway) enrich(ctx context.Context, userID string, data map[string]any) []core.Interaction {
	ectx, cancel := context.WithTimeout(ctx, g.opts.EnrichTimeout)
	defer cancel()

	return g.creator.Prewarm(ectx, userID, data)
}

func (g *Gateway) invoke(ctx context.Context, handler core.Handler, intent, userID string, data map[string]any, history []core.Interaction) (resp core.Response) {
	defer func() {
		if r := recover(); r != nil {
			log.FromCtx(ctx).Error().Any("panic", r).Msg("handler panicked")
			resp = core.NewError(fmt.Sprintf("module %s failed to process the request", handler.Name()))
		}
	}()

	result, err := handler.Handle(ctx, intent, userID, data, history)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("handler failed")
		return core.NewError(fmt.Sprintf("module %s failed: %v", handler.Name(), err))
	}

	// A handler that emits its own envelope passes through untouched.
	if result.Envelope != nil {
		return *result.Envelope
	}
	return core.NewSuccess(defaultSuccessMessage, result.Payload)
}

// handleFeedback takes its identity from the submission itself; the
// dispatch-level user id only tags the recorded interaction.
func (g *Gateway) handleFeedback(ctx context.Context, data map[string]any) core.Response {
	fb, err := feedback.New(data)
	if err != nil {
		var verr *feedback.ValidationError
		if errors.As(err, &verr) {
			return core.NewError("Invalid feedback schema: " + strings.Join(verr.Violations, "; "))
		}
		return core.NewError("Invalid feedback schema: " + err.Error())
	}

	record := fb.ToStorageFormat()
	if g.sink != nil {
		if err := g.sink.StoreFeedback(ctx, record); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("failed to store feedback")
		}
	}

	if g.creator != nil {
		if _, err := g.creator.ForwardFeedback(ctx, fb.ToNoopurFormat()); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Msg("failed to forward feedback")
		}
	}

	return core.NewSuccess(defaultFeedbackMessage, map[string]any{"feedback_data": record})
}

// record appends the interaction best-effort: a storage failure is logged
// and the computed response still goes back to the caller.
func (g *Gateway) record(ctx context.Context, userID, module, intent string, data map[string]any, resp core.Response) {
	request := map[string]any{
		"module": module,
		"intent": intent,
		"data":   data,
	}
	response := map[string]any{
		"status":  resp.Status,
		"message": resp.Message,
		"result":  resp.Result,
	}

	if err := g.store.StoreInteraction(ctx, userID, request, response); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to store interaction")
	}
}

func setIfAbsent(data map[string]any, key string, value any) {
	if _, ok := data[key]; !ok {
		data[key] = value
	}
}

func contextItems(interactions []core.Interaction) []map[string]any {
	items := make([]map[string]any, 0, len(interactions))
	for _, it := range interactions {
		items = append(items, map[string]any{
			"request":   it.Request,
			"response":  it.Response,
			"timestamp": it.CreatedAt,
		})
	}
	return items
}
