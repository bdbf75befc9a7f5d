package modules

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/coregate/internal/core"
)

// Finance produces report payloads for the finance module.
type Finance struct{}

func NewFinance() *Finance {
	return &Finance{}
}

func (f *Finance) Name() string { return "finance" }

func (f *Finance) ContextAware() bool { return false }

func (f *Finance) Handle(ctx context.Context, intent, userID string, data map[string]any, history []core.Interaction) (core.Result, error) {
	switch intent {
	case "generate":
		return f.generateReport(userID, data)
	default:
		return core.Result{}, fmt.Errorf("unsupported intent: %s", intent)
	}
}

func (f *Finance) generateReport(userID string, data map[string]any) (core.Result, error) {
	reportType, _ := data["report_type"].(string)
	if reportType == "" {
		reportType = "summary"
	}
	period, _ := data["period"].(string)
	if period == "" {
		period = "current"
	}

	return core.Raw(map[string]any{
		"report": map[string]any{
			"type":         reportType,
			"period":       period,
			"prepared_for": userID,
			"generated_at": time.Now().UTC().Format(time.RFC3339),
			"sections":     []string{"overview", "income", "expenses", "outlook"},
		},
	}), nil
}
