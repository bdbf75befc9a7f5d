package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sandevgo/coregate/internal/core"
)

var validate = validator.New()

// Canonical is the normalized feedback submission. Constructed through New
// and never mutated afterwards; downstream shapes are derived, not edits.
type Canonical struct {
	GenerationID int       `json:"generation_id" validate:"required,gt=0"`
	Command      string    `json:"command" validate:"required,oneof=+2 +1 -1 -2"`
	UserID       string    `json:"user_id" validate:"required"`
	Comment      string    `json:"comment" validate:"omitempty,max=500"`
	Timestamp    time.Time `json:"timestamp"`
}

// ValidationError carries every violated constraint, not just the first.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", core.ErrInvalidFeedback.Error(), strings.Join(e.Violations, "; "))
}

func (e *ValidationError) Unwrap() error {
	return core.ErrInvalidFeedback
}

// New builds a Canonical from a raw submission and validates all four
// structural constraints together. Any violation rejects the whole
// submission; there is no partial acceptance.
func New(raw map[string]any) (*Canonical, error) {
	var violations []string

	c := &Canonical{}

	if v, ok := raw["generation_id"]; ok {
		id, err := toInt(v)
		if err != nil {
			violations = append(violations, "generation_id must be an integer")
		} else {
			c.GenerationID = id
		}
	}

	if v, ok := raw["command"].(string); ok {
		c.Command = v
	}
	if v, ok := raw["user_id"].(string); ok {
		c.UserID = v
	}
	if v, ok := raw["comment"].(string); ok {
		c.Comment = v
	}

	switch ts := raw["timestamp"].(type) {
	case time.Time:
		c.Timestamp = ts
	case string:
		if parsed, err := time.Parse(time.RFC3339, ts); err == nil {
			c.Timestamp = parsed
		} else {
			violations = append(violations, "timestamp must be RFC3339")
		}
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				violations = append(violations, describe(fe))
			}
		} else {
			violations = append(violations, err.Error())
		}
	}

	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}
	return c, nil
}

// ToStorageFormat is the persisted shape; it keeps the timestamp.
func (c *Canonical) ToStorageFormat() map[string]any {
	return map[string]any{
		"generation_id": c.GenerationID,
		"command":       c.Command,
		"user_id":       c.UserID,
		"comment":       c.Comment,
		"timestamp":     c.Timestamp,
	}
}

// ToNoopurFormat is the external-forwarding shape. Noopur does not accept
// a timestamp, so the key is excluded entirely.
func (c *Canonical) ToNoopurFormat() map[string]any {
	return map[string]any{
		"generation_id": c.GenerationID,
		"command":       c.Command,
		"user_id":       c.UserID,
		"comment":       c.Comment,
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Field() {
	case "GenerationID":
		return "generation_id must be a positive integer"
	case "Command":
		return "command must be one of +2, +1, -1, -2"
	case "UserID":
		return "user_id must be a non-empty string"
	case "Comment":
		return "comment must be at most 500 characters"
	default:
		return fe.Error()
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, err
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}
