package middleware

import (
	"encoding/json"
	"net/http"
)

// errorBody mirrors the REST error envelope so middleware rejections look
// like handler errors to clients.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func reject(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Code: code, Message: message}}) //nolint:errcheck
}
