package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const maxBodyBytes = 1 << 20

var ErrEmptyBody = errors.New("empty body")

type errorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func Write(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Read decodes a single JSON document from the request body. Unknown fields
// are tolerated because the web client sends whole form objects.
func Read(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}
	return nil
}

func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, errorBody{Success: false, Message: msg})
}
