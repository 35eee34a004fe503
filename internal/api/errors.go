package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// AuthError reports rejected credentials, an expired or invalid token,
// or a registration conflict.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error (%d): %s", e.Status, e.Message)
}

// Reason returns the remote message, or a generic fallback when the
// remote sent none.
func (e *AuthError) Reason() string {
	if e.Message != "" {
		return e.Message
	}
	return "authentication failed"
}

// NotFoundError reports a missing catalog entity.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "not found"
}

// ValidationError reports input the remote service refused.
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("invalid request (%d)", e.Status)
}

// remoteMessage extracts the error text from the API envelope, which is
// either {"message": ...} or {"error": ...}.
func remoteMessage(body io.Reader) string {
	var env struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 4<<10)).Decode(&env); err != nil {
		return ""
	}
	if env.Message != "" {
		return env.Message
	}
	return env.Error
}

// classify maps a non-2xx response to the error taxonomy.
func classify(resp *http.Response) error {
	msg := remoteMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusConflict:
		return &AuthError{Status: resp.StatusCode, Message: msg}
	case http.StatusNotFound:
		return &NotFoundError{Message: msg}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return &ValidationError{Status: resp.StatusCode, Message: msg}
	}
	if msg == "" {
		msg = resp.Status
	}
	return fmt.Errorf("remote API: %s", msg)
}
