package errors

import (
	"encoding/json"
	"fmt"
)

// getHTTPErrorCategory maps HTTP status codes to error categories.
func getHTTPErrorCategory(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// Unexpected status codes - be conservative and retry
		return Recoverable
	}
}

// NewHTTPError builds an APIError for a non-success response.
// body is the decoded response value: parsed JSON, raw text, or nil.
func NewHTTPError(statusCode int, body any) *APIError {
	return &APIError{
		Category:   getHTTPErrorCategory(statusCode),
		StatusCode: statusCode,
		Message:    MessageFor(statusCode, body),
		Body:       body,
	}
}

// NewNetworkError wraps a transport failure for operation op.
func NewNetworkError(op string, err error) *NetworkError {
	return &NetworkError{Op: op, Underlying: err}
}

// MessageFor picks the user-facing message for an error body, preferring
// "detail", then "message", then the body itself, then "HTTP <status>".
func MessageFor(statusCode int, body any) string {
	if obj, ok := body.(map[string]any); ok {
		if msg := textOf(obj["detail"]); msg != "" {
			return msg
		}
		if msg := textOf(obj["message"]); msg != "" {
			return msg
		}
	}
	if msg := textOf(body); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

// textOf renders a JSON value as message text. Strings are used as-is;
// other non-empty values (FastAPI validation lists, objects) are re-encoded.
func textOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
	case float64:
		if t == 0 {
			return ""
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
