package modules

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/coregate/internal/core"
)

// Creator generates content payloads. It is the only context-aware module:
// the gateway injects related_context/recent_history before invocation.
type Creator struct{}

func NewCreator() *Creator {
	return &Creator{}
}

func (c *Creator) Name() string { return "creator" }

func (c *Creator) ContextAware() bool { return true }

func (c *Creator) Handle(ctx context.Context, intent, userID string, data map[string]any, history []core.Interaction) (core.Result, error) {
	switch intent {
	case "generate":
		return c.generate(data, history)
	default:
		return core.Result{}, fmt.Errorf("unsupported intent: %s", intent)
	}
}

func (c *Creator) generate(data map[string]any, history []core.Interaction) (core.Result, error) {
	topic, _ := data["topic"].(string)
	if topic == "" {
		return core.Result{}, fmt.Errorf("topic is required")
	}
	goal, _ := data["goal"].(string)
	genType, _ := data["type"].(string)
	if genType == "" {
		genType = "story"
	}

	var parts []string
	parts = append(parts, fmt.Sprintf("A %s about %s", genType, topic))
	if goal != "" {
		parts = append(parts, fmt.Sprintf("aimed at: %s", goal))
	}
	if len(history) > 0 {
		parts = append(parts, fmt.Sprintf("informed by %d earlier interactions", len(history)))
	}

	result := map[string]any{
		"content": strings.Join(parts, ", "),
		"type":    genType,
		"topic":   topic,
	}
	if related, ok := data["related_context"]; ok {
		result["context_used"] = related
	}
	return core.Raw(result), nil
}
