package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tricast360/tricast360-server/internal/catalog"
	"github.com/tricast360/tricast360-server/internal/configurator"
)

// QuoteHandler prices raw configurator selections server-side, with the same
// arithmetic the shop page uses.
type QuoteHandler struct {
	cat *catalog.Catalog
}

func NewQuoteHandler(cat *catalog.Catalog) *QuoteHandler {
	return &QuoteHandler{cat: cat}
}

func (h *QuoteHandler) RegisterRoutes(router chi.Router) {
	router.Post("/configurator/quote", h.handleQuote)
	router.Get("/configurator/catalog", h.handleCatalog)
}

func (h *QuoteHandler) handleQuote(w http.ResponseWriter, r *http.Request) {
	var sel configurator.Selection

	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		respondWithStatus(w, http.StatusBadRequest, false, "Ungültige Anfrage")
		return
	}

	quote, err := configurator.BuildQuote(h.cat, sel)
	switch {
	case errors.Is(err, configurator.ErrInvalidQuantity):
		respondWithStatus(w, http.StatusBadRequest, false, "Stückzahl muss eine positive Zahl sein")
	case errors.Is(err, catalog.ErrSetNotFound),
		errors.Is(err, catalog.ErrAddOnNotFound),
		errors.Is(err, catalog.ErrPanelNotFound):
		respondWithStatus(w, http.StatusBadRequest, false, "Unbekannte Auswahl")
	case err != nil:
		respondWithStatus(w, http.StatusInternalServerError, false, "Interner Fehler")
	default:
		respondWithJSON(w, http.StatusOK, quote)
	}
}

type catalogResponse struct {
	Sets   []catalog.ProductSet       `json:"sets"`
	AddOns []catalog.AddOn            `json:"add_ons"`
	Panels []catalog.WerbetafelOption `json:"werbetafel_options"`
}

func (h *QuoteHandler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, catalogResponse{
		Sets:   h.cat.Sets(),
		AddOns: h.cat.AddOns(),
		Panels: h.cat.Panels(),
	})
}
