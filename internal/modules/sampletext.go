package modules

import (
	"context"
	"strings"

	"github.com/sandevgo/coregate/internal/core"
)

// SampleText counts words in the input text. It predates the raw-result
// contract and still emits a full envelope; the gateway passes that
// through without re-wrapping.
type SampleText struct{}

func NewSampleText() *SampleText {
	return &SampleText{}
}

func (s *SampleText) Name() string { return "sample_text" }

func (s *SampleText) ContextAware() bool { return false }

func (s *SampleText) Handle(ctx context.Context, intent, userID string, data map[string]any, history []core.Interaction) (core.Result, error) {
	inputText, _ := data["input_text"].(string)
	wordCount := len(strings.Fields(inputText))

	return core.Wrapped(core.NewSuccess("Text processed successfully", map[string]any{
		"word_count": wordCount,
	})), nil
}
