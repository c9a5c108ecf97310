package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tricast360/tricast360-server/internal/catalog"
	"github.com/tricast360/tricast360-server/internal/configurator"
	"github.com/tricast360/tricast360-server/internal/order"
)

type CreateOrderRequest struct {
	Customer      order.Customer     `json:"customer"`
	Item          configurator.Draft `json:"item"`
	PaymentMethod string             `json:"payment_method"`
	AGBAccepted   bool               `json:"agb_accepted"`
}

type UpdateOrderStatusRequest struct {
	Status order.Status `json:"status" validate:"required"`
}

type ValidationErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

type OrderHandler struct {
	svc      order.Service
	validate *validator.Validate
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{
		svc:      svc,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Post("/orders", h.handleCreate)
	router.Get("/orders/{id}", h.handleGetByID)
	router.Patch("/orders/{id}/status", h.handleUpdateStatus)
}

func (h *OrderHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		log.Warn().Err(err).Msg("handler: failed to decode order request")
		respondWithStatus(w, http.StatusBadRequest, false, "Ungültige Anfrage")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Success: false,
				Message: "Bitte prüfen Sie Ihre Angaben",
				Details: formatValidationErrors(validationErrors),
			})
		} else {
			log.Error().Err(err).Msg("handler: unexpected validation error type")
			respondWithStatus(w, http.StatusInternalServerError, false, "Interner Fehler")
		}
		return
	}

	o := &order.Order{
		Customer:      req.Customer,
		Item:          req.Item,
		PaymentMethod: req.PaymentMethod,
		AGBAccepted:   req.AGBAccepted,
	}

	if err := h.svc.Create(r.Context(), o); err != nil {
		respondOrderError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) handleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithStatus(w, http.StatusBadRequest, false, "Ungültige Bestellnummer")
		return
	}

	o, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		respondOrderError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.FromString(chi.URLParam(r, "id"))
	if err != nil {
		respondWithStatus(w, http.StatusBadRequest, false, "Ungültige Bestellnummer")
		return
	}

	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Status == "" {
		respondWithStatus(w, http.StatusBadRequest, false, "Ungültige Anfrage")
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, req.Status); err != nil {
		respondOrderError(w, err)
		return
	}

	respondWithStatus(w, http.StatusOK, true, "Status aktualisiert")
}

func respondOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		respondWithStatus(w, http.StatusNotFound, false, "Bestellung nicht gefunden")
	case errors.Is(err, order.ErrAGBNotAccepted):
		respondWithStatus(w, http.StatusBadRequest, false, "Bitte akzeptieren Sie die AGB")
	case errors.Is(err, order.ErrTotalMismatch),
		errors.Is(err, configurator.ErrInvalidQuantity),
		errors.Is(err, catalog.ErrSetNotFound),
		errors.Is(err, catalog.ErrAddOnNotFound),
		errors.Is(err, catalog.ErrPanelNotFound):
		respondWithStatus(w, http.StatusBadRequest, false, "Ungültige Konfiguration")
	case errors.Is(err, order.ErrInvalidStatusTransition):
		respondWithStatus(w, http.StatusConflict, false, "Statuswechsel nicht zulässig")
	default:
		log.Error().Err(err).Msg("handler: order operation failed")
		respondWithStatus(w, http.StatusInternalServerError, false, "Interner Fehler")
	}
}

func formatValidationErrors(errs validator.ValidationErrors) []string {
	details := make([]string, 0, len(errs))
	for _, e := range errs {
		details = append(details, fmt.Sprintf("%s: failed on '%s'", e.Namespace(), e.Tag()))
	}

	return details
}
