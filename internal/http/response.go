package http

import (
	"net/http"

	"fitness-tracker/backend/internal/httpjson"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	httpjson.Write(w, status, v)
}

func Fail(w http.ResponseWriter, status int, msg string) {
	httpjson.Error(w, status, msg)
}

// OK writes {"success": true} merged with extra fields.
func OK(w http.ResponseWriter, status int, extra map[string]any) {
	body := map[string]any{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	WriteJSON(w, status, body)
}
