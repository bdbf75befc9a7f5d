package modules

import (
	"context"
	"testing"

	"github.com/sandevgo/coregate/internal/core"
)

func TestNewHandlers(t *testing.T) {
	handlers := NewHandlers()

	want := map[string]bool{"finance": false, "education": false, "creator": true, "sample_text": false}
	if len(handlers) != len(want) {
		t.Fatalf("handlers = %d, want %d", len(handlers), len(want))
	}
	for _, h := range handlers {
		aware, ok := want[h.Name()]
		if !ok {
			t.Errorf("unexpected handler %s", h.Name())
			continue
		}
		if h.ContextAware() != aware {
			t.Errorf("%s ContextAware = %v, want %v", h.Name(), h.ContextAware(), aware)
		}
	}
}

func TestFinance_Generate(t *testing.T) {
	f := NewFinance()

	res, err := f.Handle(context.Background(), "generate", "u1", map[string]any{"report_type": "quarterly"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Envelope != nil {
		t.Fatal("finance returns a raw payload, not an envelope")
	}

	report, ok := res.Payload["report"].(map[string]any)
	if !ok {
		t.Fatalf("payload = %v", res.Payload)
	}
	if report["type"] != "quarterly" || report["prepared_for"] != "u1" {
		t.Errorf("report = %v", report)
	}
}

func TestFinance_UnknownIntent(t *testing.T) {
	f := NewFinance()

	if _, err := f.Handle(context.Background(), "sing", "u1", map[string]any{}, nil); err == nil {
		t.Error("expected error for unsupported intent")
	}
}

func TestEducation_Intents(t *testing.T) {
	e := NewEducation()
	ctx := context.Background()

	tests := []struct {
		intent  string
		wantKey string
		wantErr bool
	}{
		{intent: "generate", wantKey: "lesson"},
		{intent: "lesson", wantKey: "lesson"},
		{intent: "quiz", wantKey: "quiz"},
		{intent: "dance", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.intent, func(t *testing.T) {
			res, err := e.Handle(ctx, tt.intent, "u1", map[string]any{"topic": "Go", "level": "advanced"}, nil)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := res.Payload[tt.wantKey]; !ok {
				t.Errorf("payload = %v, want key %s", res.Payload, tt.wantKey)
			}
		})
	}
}

func TestCreator_Generate(t *testing.T) {
	c := NewCreator()

	history := []core.Interaction{{UserID: "u1", Module: "creator"}}
	data := map[string]any{
		"topic":           "Machine Learning",
		"goal":            "Create tutorial",
		"type":            "article",
		"related_context": []any{"earlier work"},
	}

	res, err := c.Handle(context.Background(), "generate", "u1", data, history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Payload["type"] != "article" || res.Payload["topic"] != "Machine Learning" {
		t.Errorf("payload = %v", res.Payload)
	}
	if _, ok := res.Payload["context_used"]; !ok {
		t.Error("injected context should surface in the result")
	}
}

func TestCreator_RequiresTopic(t *testing.T) {
	c := NewCreator()

	if _, err := c.Handle(context.Background(), "generate", "u1", map[string]any{}, nil); err == nil {
		t.Error("expected error when topic is missing")
	}
}

func TestSampleText_WordCount(t *testing.T) {
	s := NewSampleText()

	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "empty", input: "", want: 0},
		{name: "single", input: "hello", want: 1},
		{name: "sentence", input: "the quick brown fox", want: 4},
		{name: "extra whitespace", input: "  spaced   out  ", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Handle(context.Background(), "process", "u1", map[string]any{"input_text": tt.input}, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// sample_text still emits a complete envelope
			if res.Envelope == nil {
				t.Fatal("sample_text must return a wrapped envelope")
			}
			if res.Envelope.Status != core.StatusSuccess {
				t.Errorf("status = %s", res.Envelope.Status)
			}
			if res.Envelope.Result["word_count"] != tt.want {
				t.Errorf("word_count = %v, want %d", res.Envelope.Result["word_count"], tt.want)
			}
		})
	}
}
