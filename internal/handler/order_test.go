package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tricast360/tricast360-server/internal/handler"
	"github.com/tricast360/tricast360-server/internal/order"
)

type mockOrderService struct {
	createFunc       func(ctx context.Context, o *order.Order) error
	getByIDFunc      func(ctx context.Context, id uuid.UUID) (*order.Order, error)
	updateStatusFunc func(ctx context.Context, id uuid.UUID, newStatus order.Status) error
}

func (m *mockOrderService) Create(ctx context.Context, o *order.Order) error {
	return m.createFunc(ctx, o)
}

func (m *mockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus order.Status) error {
	return m.updateStatusFunc(ctx, id, newStatus)
}

func newOrderRouter(svc order.Service) *chi.Mux {
	r := chi.NewRouter()
	handler.NewOrderHandler(svc).RegisterRoutes(r)
	return r
}

const validOrderBody = `{
  "customer": {
    "first_name": "Max",
    "last_name": "Mustermann",
    "email": "max@example.com",
    "address": "Musterstraße 1",
    "city": "Berlin",
    "zip_code": "10115",
    "country": "Deutschland"
  },
  "item": {
    "schema_version": 1,
    "set_id": "set-s",
    "set_name": "Set S (5er Set)",
    "quantity": 1,
    "total_price": 399
  },
  "agb_accepted": true
}`

func TestOrderHandler_Create(t *testing.T) {
	svc := &mockOrderService{
		createFunc: func(ctx context.Context, o *order.Order) error {
			o.ID = uuid.Must(uuid.NewV4())
			o.Status = order.StatusNew
			o.TotalPrice = 399
			return nil
		},
	}
	router := newOrderRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(validOrderBody))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got order.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, order.StatusNew, got.Status)
}

func TestOrderHandler_Create_ValidationFails(t *testing.T) {
	svc := &mockOrderService{
		createFunc: func(ctx context.Context, o *order.Order) error {
			t.Fatal("service must not be called for invalid payloads")
			return nil
		},
	}
	router := newOrderRouter(svc)

	body := `{"customer":{"first_name":"M"},"item":{"set_id":"set-s","quantity":1},"agb_accepted":true}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp handler.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Details)
}

func TestOrderHandler_Create_InvalidConfiguration(t *testing.T) {
	svc := &mockOrderService{
		createFunc: func(ctx context.Context, o *order.Order) error {
			return fmt.Errorf("service: %w", order.ErrTotalMismatch)
		},
	}
	router := newOrderRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(validOrderBody))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_GetByID(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	svc := &mockOrderService{
		getByIDFunc: func(ctx context.Context, got uuid.UUID) (*order.Order, error) {
			assert.Equal(t, id, got)
			return &order.Order{ID: id, Status: order.StatusNew}, nil
		},
	}
	router := newOrderRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+id.String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderHandler_GetByID_NotFound(t *testing.T) {
	svc := &mockOrderService{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
			return nil, order.ErrNotFound
		},
	}
	router := newOrderRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.Must(uuid.NewV4()).String(), nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandler_GetByID_BadID(t *testing.T) {
	router := newOrderRouter(&mockOrderService{})

	req := httptest.NewRequest(http.MethodGet, "/orders/keine-uuid", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	tests := []struct {
		name     string
		body     string
		svcErr   error
		wantCode int
	}{
		{name: "ok", body: `{"status":"PROCESSING"}`, wantCode: http.StatusOK},
		{name: "invalid_transition", body: `{"status":"DELIVERED"}`, svcErr: order.ErrInvalidStatusTransition, wantCode: http.StatusConflict},
		{name: "not_found", body: `{"status":"PROCESSING"}`, svcErr: order.ErrNotFound, wantCode: http.StatusNotFound},
		{name: "empty_status", body: `{}`, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockOrderService{
				updateStatusFunc: func(ctx context.Context, got uuid.UUID, newStatus order.Status) error {
					return tt.svcErr
				},
			}
			router := newOrderRouter(svc)

			req := httptest.NewRequest(http.MethodPatch, "/orders/"+id.String()+"/status", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
