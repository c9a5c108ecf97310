package order

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/tricast360/tricast360-server/internal/configurator"
)

type Status string

const (
	StatusNew        Status = "NEW"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

// Customer is the checkout contact block from the warenkorb page.
type Customer struct {
	FirstName string `json:"first_name" db:"first_name" validate:"required,min=2"`
	LastName  string `json:"last_name" db:"last_name" validate:"required,min=2"`
	Email     string `json:"email" db:"email" validate:"required,email"`
	Phone     string `json:"phone" db:"phone"`
	Company   string `json:"company" db:"company"`
	Address   string `json:"address" db:"address" validate:"required"`
	City      string `json:"city" db:"city" validate:"required"`
	ZipCode   string `json:"zip_code" db:"zip_code" validate:"required"`
	Country   string `json:"country" db:"country" validate:"required"`
}

// Order is one submitted configuration plus checkout details. Item carries
// the committed draft; its total is verified against the catalog before the
// order is accepted.
type Order struct {
	ID            uuid.UUID           `json:"id"`
	Customer      Customer            `json:"customer"`
	Item          configurator.Draft  `json:"item"`
	PaymentMethod string              `json:"payment_method"`
	AGBAccepted   bool                `json:"agb_accepted"`
	TotalPrice    float64             `json:"total_price"`
	Status        Status              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
