package httputil

import (
	"encoding/json"
	"net/http"
)

// errorEnvelope is the wire shape of every failure response.
type errorEnvelope struct {
	Error string `json:"error"`
}

// RespondJSON writes a JSON response with the given status code. The payload
// is marshaled first so an encoding failure cannot produce a partial body
// after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondError writes the JSON error envelope {"error": detail}.
func RespondError(w http.ResponseWriter, status int, detail string) {
	payload, err := json.Marshal(errorEnvelope{Error: detail})
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
