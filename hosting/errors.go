package hosting

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// RequestError is returned when the hosting API answers with a non-2xx
// status, or when a polled operation completes with an error payload.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// NewRequestError builds a RequestError from a response status and body,
// extracting the vendor message when present.
func NewRequestError(statusCode int, body []byte) *RequestError {
	return &RequestError{
		StatusCode: statusCode,
		Message:    errorMessage(body, statusCode),
	}
}

// ListNotFoundError is returned when the first page of a list endpoint
// reports that the requested collection does not exist. Unlike
// single-resource gets, a missing collection is never treated as empty.
type ListNotFoundError struct {
	Kind string
}

func (e *ListNotFoundError) Error() string {
	return fmt.Sprintf("could not find %s", e.Kind)
}

// errorBody is the vendor error envelope carried by non-2xx responses.
type errorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// errorMessage extracts the vendor error message from a response body,
// falling back to the HTTP status text.
func errorMessage(body []byte, statusCode int) string {
	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return http.StatusText(statusCode)
}
