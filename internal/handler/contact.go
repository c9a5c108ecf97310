package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/tricast360/tricast360-server/internal/contact"
)

type ContactHandler struct {
	svc contact.Service
}

func NewContactHandler(svc contact.Service) *ContactHandler {
	return &ContactHandler{svc: svc}
}

func (h *ContactHandler) RegisterRoutes(router chi.Router) {
	router.Post("/contact", h.handleSubmit)
}

func (h *ContactHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission

	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		log.Warn().Err(err).Msg("handler: failed to decode contact submission")
		respondWithStatus(w, http.StatusBadRequest, false, "Ungültige Anfrage")
		return
	}

	err := h.svc.Submit(r.Context(), &sub, ClientIP(r))
	switch {
	case errors.Is(err, contact.ErrConsentRequired):
		respondWithStatus(w, http.StatusBadRequest, false, contact.MsgConsentRequired)
	case err != nil:
		respondWithStatus(w, http.StatusInternalServerError, false, contact.MsgDeliveryFailed)
	default:
		respondWithStatus(w, http.StatusOK, true, contact.MsgSuccess)
	}
}
