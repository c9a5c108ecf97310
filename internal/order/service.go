// Package order accepts committed shop configurations as orders and stores
// them for manual fulfilment.
package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tricast360/tricast360-server/internal/catalog"
	"github.com/tricast360/tricast360-server/internal/configurator"
)

var (
	ErrNotFound                = errors.New("order not found")
	ErrAGBNotAccepted          = errors.New("terms and conditions must be accepted")
	ErrTotalMismatch           = errors.New("order total does not match catalog pricing")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

var allowedTransitions = map[Status]map[Status]bool{
	StatusNew: {
		StatusProcessing: true,
		StatusCancelled:  true,
	},
	StatusProcessing: {
		StatusShipped:   true,
		StatusCancelled: true,
	},
	StatusShipped: {
		StatusDelivered: true,
	},
	StatusDelivered: {},
	StatusCancelled: {},
}

const defaultPaymentMethod = "invoice"

type Service interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus Status) error
}

type service struct {
	repo Repository
	cat  *catalog.Catalog
	now  func() time.Time
}

func NewService(repo Repository, cat *catalog.Catalog) Service {
	return &service{repo: repo, cat: cat, now: time.Now}
}

// Create verifies the submitted configuration against the catalog, reprices
// it server-side and persists it with status NEW.
func (s *service) Create(ctx context.Context, o *Order) error {
	if !o.AGBAccepted {
		return ErrAGBNotAccepted
	}

	sel := configurator.Selection{
		SetID:        o.Item.SetID,
		WerbetafelID: catalog.PanelNone,
		Quantity:     o.Item.Quantity,
	}
	for _, a := range o.Item.AddOns {
		sel.AddOnIDs = append(sel.AddOnIDs, a.ID)
	}
	if o.Item.Werbetafel != nil {
		sel.WerbetafelID = o.Item.Werbetafel.ID
	}

	quote, err := configurator.BuildQuote(s.cat, sel)
	if err != nil {
		return fmt.Errorf("service: failed to price order item: %w", err)
	}

	if math.Abs(quote.Total-o.Item.TotalPrice) > 0.005 {
		log.Warn().
			Float64("client_total", o.Item.TotalPrice).
			Float64("catalog_total", quote.Total).
			Msg("service: rejecting order with mismatched total")
		return fmt.Errorf("%w: got %.2f, expected %.2f", ErrTotalMismatch, o.Item.TotalPrice, quote.Total)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("service: failed to generate order id: %w", err)
	}

	now := s.now().UTC()
	o.ID = id
	o.TotalPrice = quote.Total
	o.Status = StatusNew
	o.CreatedAt = now
	o.UpdatedAt = now
	if o.PaymentMethod == "" {
		o.PaymentMethod = defaultPaymentMethod
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error().Err(err).Msg("service: failed to create order in repository")
		return fmt.Errorf("service: failed to create order: %w", err)
	}

	log.Info().Stringer("order_id", o.ID).Float64("total", o.TotalPrice).Msg("service: order created")

	return nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		log.Error().Err(err).Stringer("order_id", id).Msg("service: failed to fetch order")
		return nil, fmt.Errorf("service: failed to fetch order: %w", err)
	}

	return o, nil
}

// UpdateStatus enforces the linear fulfilment state machine. Setting the
// current status again is a no-op.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus Status) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("service: failed to get order for status update: %w", err)
	}

	if current.Status == newStatus {
		log.Info().Stringer("order_id", id).Stringer("status", newStatus).Msg("service: order status unchanged")
		return nil
	}

	if !allowedTransitions[current.Status][newStatus] {
		log.Warn().
			Stringer("order_id", id).
			Stringer("current_status", current.Status).
			Stringer("new_status", newStatus).
			Msg("service: invalid status transition attempt")
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("service: failed to update order status: %w", err)
	}

	log.Info().Stringer("order_id", id).Stringer("old_status", current.Status).Stringer("new_status", newStatus).Msg("service: order status updated")

	return nil
}
