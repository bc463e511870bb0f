package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/crateworks/debt_ledger_app/internal/apperrors"
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portsrepo "github.com/crateworks/debt_ledger_app/internal/core/ports/repositories"
	"github.com/crateworks/debt_ledger_app/internal/models"
	"github.com/crateworks/debt_ledger_app/internal/utils/mapping"
	"github.com/crateworks/debt_ledger_app/internal/utils/pagination"
)

type PgxCustomerRepository struct {
	db *pgxpool.Pool
}

func newPgxCustomerRepository(db *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{db: db}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, name, phone, custom_unit_price, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	var phone sql.NullString
	var customPrice decimal.NullDecimal

	err := row.Scan(
		&c.CustomerID,
		&c.Name,
		&phone,
		&customPrice,
		&c.IsActive,
		&c.CreatedAt,
		&c.CreatedBy,
		&c.LastUpdatedAt,
		&c.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		c.Phone = phone.String
	}
	if customPrice.Valid {
		c.CustomUnitPrice = &customPrice.Decimal
	}
	return &c, nil
}

// SaveCustomer persists a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.db.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		nullableString(m.Phone),
		m.CustomUnitPrice,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert customer "+m.CustomerID, err)
	}
	return nil
}

// UpdateCustomer updates an existing customer's details.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		UPDATE customers
		SET name = $2, phone = $3, custom_unit_price = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE customer_id = $1;
	`
	ct, err := r.db.Exec(ctx, query,
		m.CustomerID,
		m.Name,
		nullableString(m.Phone),
		m.CustomUnitPrice,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update customer "+m.CustomerID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCustomer marks a customer inactive (soft delete).
func (r *PgxCustomerRepository) DeactivateCustomer(ctx context.Context, customerID string, deactivatedAt time.Time, deactivatedBy string) error {
	query := `
		UPDATE customers
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE customer_id = $1;
	`
	ct, err := r.db.Exec(ctx, query, customerID, deactivatedAt, deactivatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate customer "+customerID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCustomerByID retrieves a specific customer by their ID.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	m, err := scanCustomer(r.db.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}
	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

// ListCustomers retrieves a token-paginated list of customers ordered by
// creation time descending.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, limit int, nextToken *string) ([]domain.Customer, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + customerColumns + ` FROM customers`
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		baseQuery += ` WHERE created_at < $1`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query customers", err)
	}
	defer rows.Close()

	customers := make([]models.Customer, 0, fetchLimit)
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		customers = append(customers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}

	var nextTokenVal *string
	if len(customers) > limit {
		token := pagination.EncodeDateBasedToken(customers[limit-1].CreatedAt)
		nextTokenVal = &token
		customers = customers[:limit]
	}

	return mapping.ToDomainCustomerSlice(customers), nextTokenVal, nil
}

// nullableString maps empty strings to SQL NULL.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
