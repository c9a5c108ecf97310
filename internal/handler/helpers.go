package handler

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/rs/zerolog/log"
)

// StatusResponse is the wire format the site's forms expect: a boolean flag
// plus a human-readable German message.
type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("handler: failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"message":"Interner Fehler"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("handler: failed to write JSON response")
	}
}

func respondWithStatus(w http.ResponseWriter, code int, success bool, message string) {
	respondWithJSON(w, code, StatusResponse{Success: success, Message: message})
}

// ClientIP returns the socket peer's host. Forwarding headers are
// client-controlled and are deliberately ignored, so the rate limiter
// cannot be keyed on a value the caller chooses.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
