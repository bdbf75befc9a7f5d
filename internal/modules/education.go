package modules

import (
	"context"
	"fmt"

	"github.com/sandevgo/coregate/internal/core"
)

// Education builds lesson and quiz payloads for the education module.
type Education struct{}

func NewEducation() *Education {
	return &Education{}
}

func (e *Education) Name() string { return "education" }

func (e *Education) ContextAware() bool { return false }

func (e *Education) Handle(ctx context.Context, intent, userID string, data map[string]any, history []core.Interaction) (core.Result, error) {
	topic, _ := data["topic"].(string)
	if topic == "" {
		topic = "general knowledge"
	}
	level, _ := data["level"].(string)
	if level == "" {
		level = "beginner"
	}

	switch intent {
	case "generate", "lesson":
		return core.Raw(map[string]any{
			"lesson": map[string]any{
				"topic":    topic,
				"level":    level,
				"outline":  []string{"introduction", "core concepts", "examples", "recap"},
				"duration": "15m",
			},
		}), nil
	case "quiz":
		return core.Raw(map[string]any{
			"quiz": map[string]any{
				"topic":     topic,
				"level":     level,
				"questions": 5,
			},
		}), nil
	default:
		return core.Result{}, fmt.Errorf("unsupported intent: %s", intent)
	}
}
