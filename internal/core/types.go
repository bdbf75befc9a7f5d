package core

import "time"

const (
	CoregateName      = "Coregate"
	CoregateUserAgent = "Coregate-Gateway/0.1"
	CoregateVersion   = "0.1.0"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the uniform envelope returned to every caller,
// regardless of which module produced the result.
type Response struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Result  map[string]any `json:"result"`
}

func NewSuccess(message string, result map[string]any) Response {
	if result == nil {
		result = map[string]any{}
	}
	return Response{Status: StatusSuccess, Message: message, Result: result}
}

func NewError(message string) Response {
	return Response{Status: StatusError, Message: message, Result: map[string]any{}}
}

// Interaction is one persisted request/response pair for a user.
// Rows are immutable once written.
type Interaction struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"user_id"`
	Module    string         `json:"module"`
	Request   map[string]any `json:"request"`
	Response  map[string]any `json:"response"`
	CreatedAt time.Time      `json:"created_at"`
}

// Result is what a handler hands back to the gateway. Exactly one of the
// two shapes is set: a raw payload the gateway wraps into a Response, or a
// complete envelope the gateway passes through untouched (historic module
// behavior).
type Result struct {
	Payload  map[string]any
	Envelope *Response
}

// Raw returns a result the gateway will wrap into a success envelope.
func Raw(payload map[string]any) Result {
	return Result{Payload: payload}
}

// Wrapped returns a result that already carries its own envelope.
func Wrapped(resp Response) Result {
	return Result{Envelope: &resp}
}
