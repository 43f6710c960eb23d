package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the standard response wrapper. Exactly one of the payload
// fields (Data, Tasks, Groups, Users) is set per endpoint; Message and
// IntMessage are alternative message slots kept for compatibility with
// older clients that read intMessage on the auth endpoints.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message,omitempty"`
	IntMessage string `json:"intMessage,omitempty"`
	Data       any    `json:"data,omitempty"`
	Tasks      any    `json:"tasks,omitempty"`
	Groups     any    `json:"groups,omitempty"`
	Users      any    `json:"users,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JSON sends an envelope with the given status code. The envelope's
// StatusCode field is always overwritten with the HTTP status actually sent.
func JSON(w http.ResponseWriter, status int, env Envelope) {
	env.StatusCode = status
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(env)
}

// Message sends a message-only envelope.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Message: message})
}

// Common error responses
func BadRequest(w http.ResponseWriter, message string) {
	Message(w, http.StatusBadRequest, message)
}

func Unauthorized(w http.ResponseWriter, message string) {
	Message(w, http.StatusUnauthorized, message)
}

func Forbidden(w http.ResponseWriter, message string) {
	Message(w, http.StatusForbidden, message)
}

func NotFound(w http.ResponseWriter, message string) {
	Message(w, http.StatusNotFound, message)
}

func Conflict(w http.ResponseWriter, message string) {
	Message(w, http.StatusConflict, message)
}

// InternalError surfaces the underlying error text alongside the message so
// the caller can see what the store reported.
func InternalError(w http.ResponseWriter, message string, err error) {
	env := Envelope{Message: message}
	if err != nil {
		env.Error = err.Error()
	}
	JSON(w, http.StatusInternalServerError, env)
}
