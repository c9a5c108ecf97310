package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tricast360/tricast360-server/internal/configurator"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, newStatus Status) error
}

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// orderRow flattens Order into the orders table; the configuration is kept as
// one JSONB document.
type orderRow struct {
	ID            string    `db:"id"`
	FirstName     string    `db:"first_name"`
	LastName      string    `db:"last_name"`
	Email         string    `db:"email"`
	Phone         string    `db:"phone"`
	Company       string    `db:"company"`
	Address       string    `db:"address"`
	City          string    `db:"city"`
	ZipCode       string    `db:"zip_code"`
	Country       string    `db:"country"`
	Config        []byte    `db:"config"`
	PaymentMethod string    `db:"payment_method"`
	AGBAccepted   bool      `db:"agb_accepted"`
	TotalPrice    float64   `db:"total_price"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func toRow(o *Order) (*orderRow, error) {
	config, err := json.Marshal(o.Item)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to marshal order config: %w", err)
	}

	return &orderRow{
		ID:            o.ID.String(),
		FirstName:     o.Customer.FirstName,
		LastName:      o.Customer.LastName,
		Email:         o.Customer.Email,
		Phone:         o.Customer.Phone,
		Company:       o.Customer.Company,
		Address:       o.Customer.Address,
		City:          o.Customer.City,
		ZipCode:       o.Customer.ZipCode,
		Country:       o.Customer.Country,
		Config:        config,
		PaymentMethod: o.PaymentMethod,
		AGBAccepted:   o.AGBAccepted,
		TotalPrice:    o.TotalPrice,
		Status:        o.Status.String(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}, nil
}

func fromRow(row *orderRow) (*Order, error) {
	id, err := uuid.FromString(row.ID)
	if err != nil {
		return nil, fmt.Errorf("repository: invalid order id %q: %w", row.ID, err)
	}

	var item configurator.Draft
	if err := json.Unmarshal(row.Config, &item); err != nil {
		return nil, fmt.Errorf("repository: failed to unmarshal order config: %w", err)
	}

	return &Order{
		ID: id,
		Customer: Customer{
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Phone:     row.Phone,
			Company:   row.Company,
			Address:   row.Address,
			City:      row.City,
			ZipCode:   row.ZipCode,
			Country:   row.Country,
		},
		Item:          item,
		PaymentMethod: row.PaymentMethod,
		AGBAccepted:   row.AGBAccepted,
		TotalPrice:    row.TotalPrice,
		Status:        Status(row.Status),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

func (r *PostgresRepository) Create(ctx context.Context, o *Order) error {
	row, err := toRow(o)
	if err != nil {
		return err
	}

	query := `INSERT INTO orders (id, first_name, last_name, email, phone, company, address, city, zip_code, country,
                                  config, payment_method, agb_accepted, total_price, status, created_at, updated_at)
              VALUES (:id, :first_name, :last_name, :email, :phone, :company, :address, :city, :zip_code, :country,
                      :config, :payment_method, :agb_accepted, :total_price, :status, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("repository: failed to create order: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var row orderRow
	query := `SELECT * FROM orders WHERE id = $1`

	err := r.db.GetContext(ctx, &row, query, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("repository: failed to get order by id: %w", err)
	}

	return fromRow(&row)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus Status) error {
	query := `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, newStatus.String(), time.Now().UTC(), id.String())
	if err != nil {
		return fmt.Errorf("repository: failed to update order status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
