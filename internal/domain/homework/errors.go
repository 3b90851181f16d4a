// internal/domain/homework/errors.go
package homework

import (
	"fmt"
	"unicode/utf8"
)

// NetworkError means the request never produced an HTTP response.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteServiceError is a non-2xx answer from the homework API.
type RemoteServiceError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

// maxBodyInError bounds how much of a response body ends up in error text and chat reports.
// The full body stays available in RemoteServiceError.Body.
const maxBodyInError = 300

func (e *RemoteServiceError) Error() string {
	return fmt.Sprintf("endpoint %s returned status %d: %s", e.Endpoint, e.StatusCode, shorten(e.Body, maxBodyInError))
}

func shorten(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + "…"
		}
		n++
	}
	return s
}

// MalformedResponseError means the body was empty or not JSON.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed API response: %s: %v", e.Reason, e.Err)
	}
	return "malformed API response: " + e.Reason
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// SchemaError is a payload that parsed fine but does not have the documented shape.
type SchemaError struct {
	Key    string // empty when the value itself has the wrong type
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Key == "" {
		return "unexpected API response: " + e.Reason
	}
	return fmt.Sprintf("unexpected API response: key %q: %s", e.Key, e.Reason)
}

// UnknownStatusError is a homework status missing from the verdict table.
type UnknownStatusError struct {
	Status string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unexpected homework status: %q", e.Status)
}

// NotificationDeliveryError is a failed send to the chat. It is only ever logged.
type NotificationDeliveryError struct {
	ChatID string
	Err    error
}

func (e *NotificationDeliveryError) Error() string {
	return fmt.Sprintf("message to chat %s was not delivered: %v", e.ChatID, e.Err)
}

func (e *NotificationDeliveryError) Unwrap() error { return e.Err }
