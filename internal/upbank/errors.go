package upbank

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TransportError reports a failed HTTP exchange: the request could not be
// sent or completed, or the server answered with a non-2xx status.
type TransportError struct {
	URL        string
	StatusCode int        // 0 when no response was received
	APIErrors  []APIError // decoded from the error body, if it had one
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
	}
	msg := fmt.Sprintf("GET %s: status %d", e.URL, e.StatusCode)
	if len(e.APIErrors) > 0 {
		details := make([]string, 0, len(e.APIErrors))
		for _, ae := range e.APIErrors {
			details = append(details, ae.String())
		}
		msg += ": " + strings.Join(details, "; ")
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that does not match the expected
// page shape. No entities from the walk are returned alongside it.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// CancelledError reports a walk aborted by its context. It unwraps to
// context.Canceled or context.DeadlineExceeded.
type CancelledError struct {
	URL string
	Err error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("GET %s: cancelled: %v", e.URL, e.Err)
}

func (e *CancelledError) Unwrap() error { return e.Err }

// APIError is one entry of the API's error document.
type APIError struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e APIError) String() string {
	if e.Detail == "" {
		return e.Title
	}
	return e.Title + " - " + e.Detail
}

type errorDocument struct {
	Errors []APIError `json:"errors"`
}

// parseAPIErrors decodes an error body. It returns nil when the body is not
// an error document.
func parseAPIErrors(body []byte) []APIError {
	var doc errorDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil
	}
	return doc.Errors
}
