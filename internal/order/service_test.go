package order_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tricast360/tricast360-server/internal/catalog"
	"github.com/tricast360/tricast360-server/internal/configurator"
	"github.com/tricast360/tricast360-server/internal/order"
)

type mockRepository struct {
	createFunc       func(ctx context.Context, o *order.Order) error
	getByIDFunc      func(ctx context.Context, id uuid.UUID) (*order.Order, error)
	updateStatusFunc func(ctx context.Context, id uuid.UUID, newStatus order.Status) error
}

func (m *mockRepository) Create(ctx context.Context, o *order.Order) error {
	return m.createFunc(ctx, o)
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus order.Status) error {
	return m.updateStatusFunc(ctx, id, newStatus)
}

func validOrder() *order.Order {
	return &order.Order{
		Customer: order.Customer{
			FirstName: "Max",
			LastName:  "Mustermann",
			Email:     "max@example.com",
			Address:   "Musterstraße 1",
			City:      "Berlin",
			ZipCode:   "10115",
			Country:   "Deutschland",
		},
		Item: configurator.Draft{
			SchemaVersion: configurator.DraftSchemaVersion,
			SetID:         "set-m",
			SetName:       "Set M (7er Set)",
			BasePrice:     559,
			AddOns:        []configurator.DraftAddOn{{ID: "verstarkung", Name: "Verstärkung", Price: 50}},
			Werbetafel:    &configurator.DraftPanel{ID: "werbetafel-m", Name: "Werbetafel Set M (7er Set)", Price: 39},
			Quantity:      3,
			TotalPrice:    1944,
		},
		AGBAccepted: true,
	}
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(o *order.Order)
		createFunc func(ctx context.Context, o *order.Order) error
		wantErrIs  error
	}{
		{
			name: "success",
		},
		{
			name:      "agb_not_accepted",
			mutate:    func(o *order.Order) { o.AGBAccepted = false },
			wantErrIs: order.ErrAGBNotAccepted,
		},
		{
			name:      "total_mismatch",
			mutate:    func(o *order.Order) { o.Item.TotalPrice = 1999 },
			wantErrIs: order.ErrTotalMismatch,
		},
		{
			name:      "unknown_set",
			mutate:    func(o *order.Order) { o.Item.SetID = "set-3xl" },
			wantErrIs: catalog.ErrSetNotFound,
		},
		{
			name:      "zero_quantity",
			mutate:    func(o *order.Order) { o.Item.Quantity = 0 },
			wantErrIs: configurator.ErrInvalidQuantity,
		},
		{
			name:   "repository_failure",
			mutate: func(o *order.Order) {},
			createFunc: func(ctx context.Context, o *order.Order) error {
				return errors.New("connection lost")
			},
			wantErrIs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := validOrder()
			if tt.mutate != nil {
				tt.mutate(o)
			}

			createFunc := tt.createFunc
			if createFunc == nil {
				createFunc = func(ctx context.Context, o *order.Order) error { return nil }
			}
			repo := &mockRepository{createFunc: createFunc}
			svc := order.NewService(repo, catalog.Default())

			err := svc.Create(context.Background(), o)

			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			if tt.createFunc != nil {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, o.ID)
			assert.Equal(t, order.StatusNew, o.Status)
			assert.Equal(t, 1944.0, o.TotalPrice)
			assert.Equal(t, "invoice", o.PaymentMethod)
			assert.False(t, o.CreatedAt.IsZero())
		})
	}
}

func TestService_Create_NoPanelReprices(t *testing.T) {
	o := validOrder()
	o.Item.Werbetafel = nil
	o.Item.AddOns = nil
	o.Item.SetID = "set-s"
	o.Item.Quantity = 1
	o.Item.TotalPrice = 399

	repo := &mockRepository{createFunc: func(ctx context.Context, o *order.Order) error { return nil }}
	svc := order.NewService(repo, catalog.Default())

	require.NoError(t, svc.Create(context.Background(), o))
	assert.Equal(t, 399.0, o.TotalPrice)
}

func TestService_GetByID(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	repo := &mockRepository{
		getByIDFunc: func(ctx context.Context, got uuid.UUID) (*order.Order, error) {
			assert.Equal(t, id, got)
			return &order.Order{ID: id, Status: order.StatusNew}, nil
		},
	}
	svc := order.NewService(repo, catalog.Default())

	o, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, o.ID)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := &mockRepository{
		getByIDFunc: func(ctx context.Context, id uuid.UUID) (*order.Order, error) {
			return nil, order.ErrNotFound
		},
	}
	svc := order.NewService(repo, catalog.Default())

	_, err := svc.GetByID(context.Background(), uuid.Must(uuid.NewV4()))
	assert.ErrorIs(t, err, order.ErrNotFound)
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   order.Status
		next      order.Status
		wantErrIs error
		wantCall  bool
	}{
		{name: "new_to_processing", current: order.StatusNew, next: order.StatusProcessing, wantCall: true},
		{name: "new_to_cancelled", current: order.StatusNew, next: order.StatusCancelled, wantCall: true},
		{name: "processing_to_shipped", current: order.StatusProcessing, next: order.StatusShipped, wantCall: true},
		{name: "same_status_noop", current: order.StatusNew, next: order.StatusNew},
		{name: "new_to_delivered_invalid", current: order.StatusNew, next: order.StatusDelivered, wantErrIs: order.ErrInvalidStatusTransition},
		{name: "delivered_is_terminal", current: order.StatusDelivered, next: order.StatusProcessing, wantErrIs: order.ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := uuid.Must(uuid.NewV4())
			called := false

			repo := &mockRepository{
				getByIDFunc: func(ctx context.Context, got uuid.UUID) (*order.Order, error) {
					return &order.Order{ID: id, Status: tt.current}, nil
				},
				updateStatusFunc: func(ctx context.Context, got uuid.UUID, newStatus order.Status) error {
					called = true
					assert.Equal(t, tt.next, newStatus)
					return nil
				},
			}
			svc := order.NewService(repo, catalog.Default())

			err := svc.UpdateStatus(context.Background(), id, tt.next)

			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCall, called)
		})
	}
}
