package backend

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ErrUnauthorized matches any APIError produced by a 401 response.
var ErrUnauthorized = errors.New("backend: unauthorized")

const (
	genericMessage = "Request failed"
	loginMessage   = "Login failed"
)

// APIError describes a failed call to the admin API. Status is zero when the request
// never produced a response.
type APIError struct {
	Status   int
	Detail   string
	Method   string
	Path     string
	Err      error
	fallback string
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message() + ": " + e.Err.Error()
	}
	return e.Message()
}

// Message is the text shown to the admin: the server-provided detail, or a generic
// fallback when the response carried none.
func (e *APIError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.fallback != "" {
		return e.fallback
	}
	return genericMessage
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Message extracts the admin-facing message from any error returned by the client.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

// parseDetail reads the error message from a FastAPI-style body. detail may be a plain
// string or a list of validation errors; the first message wins.
func parseDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if msg := rawMessage(envelope.Detail); msg != "" {
		return msg
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return rawMessage(envelope.Error)
}

func rawMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		for _, item := range items {
			if item.Msg != "" {
				return item.Msg
			}
		}
		return ""
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Message
	}
	return ""
}
