package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/tricast360/tricast360-server/internal/configurator"
	"github.com/tricast360/tricast360-server/internal/consent"
	"github.com/tricast360/tricast360-server/internal/storage"
)

// DraftHandler exposes the single-slot persistence the shop page relies on:
// the committed configuration and the cookie-consent decision.
type DraftHandler struct {
	store storage.Store
}

func NewDraftHandler(store storage.Store) *DraftHandler {
	return &DraftHandler{store: store}
}

func (h *DraftHandler) RegisterRoutes(router chi.Router) {
	router.Get("/configurator/draft", h.handleGetDraft)
	router.Put("/configurator/draft", h.handlePutDraft)
	router.Delete("/configurator/draft", h.handleDeleteDraft)
	router.Get("/consent", h.handleGetConsent)
	router.Put("/consent", h.handlePutConsent)
}

func (h *DraftHandler) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := configurator.LoadDraft(h.store)
	switch {
	case errors.Is(err, storage.ErrSlotEmpty):
		respondWithStatus(w, http.StatusNotFound, false, "Keine gespeicherte Konfiguration")
	case errors.Is(err, configurator.ErrDraftVersion):
		respondWithStatus(w, http.StatusConflict, false, "Gespeicherte Konfiguration ist nicht mehr lesbar")
	case err != nil:
		respondWithStatus(w, http.StatusInternalServerError, false, "Interner Fehler")
	default:
		respondWithJSON(w, http.StatusOK, draft)
	}
}

func (h *DraftHandler) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	var draft configurator.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondWithStatus(w, http.StatusBadRequest, false, "Ungültige Anfrage")
		return
	}

	if draft.SchemaVersion == 0 {
		draft.SchemaVersion = configurator.DraftSchemaVersion
	}

	if err := configurator.SaveDraft(h.store, &draft); err != nil {
		respondWithStatus(w, http.StatusInternalServerError, false, "Interner Fehler")
		return
	}

	respondWithStatus(w, http.StatusOK, true, "Konfiguration gespeichert")
}

func (h *DraftHandler) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := configurator.ClearDraft(h.store); err != nil {
		respondWithStatus(w, http.StatusInternalServerError, false, "Interner Fehler")
		return
	}

	respondWithStatus(w, http.StatusOK, true, "Konfiguration gelöscht")
}

func (h *DraftHandler) handleGetConsent(w http.ResponseWriter, r *http.Request) {
	prefs, err := consent.Load(h.store)
	switch {
	case errors.Is(err, storage.ErrSlotEmpty):
		respondWithStatus(w, http.StatusNotFound, false, "Keine Einwilligung gespeichert")
	case err != nil:
		respondWithStatus(w, http.StatusInternalServerError, false, "Interner Fehler")
	default:
		respondWithJSON(w, http.StatusOK, prefs)
	}
}

func (h *DraftHandler) handlePutConsent(w http.ResponseWriter, r *http.Request) {
	var prefs consent.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		respondWithStatus(w, http.StatusBadRequest, false, "Ungültige Anfrage")
		return
	}

	if prefs.Timestamp.IsZero() {
		prefs.Timestamp = time.Now()
	}

	if err := consent.Save(h.store, prefs); err != nil {
		respondWithStatus(w, http.StatusInternalServerError, false, "Interner Fehler")
		return
	}

	respondWithJSON(w, http.StatusOK, prefs.Normalized())
}
