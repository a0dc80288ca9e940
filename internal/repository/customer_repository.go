package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cine-reservas/internal/model"
)

const customerColumns = `id, document_number, name, lastname, age, phone_number, email, status, created_at, updated_at`

// CustomerRepo provides lookups and CRUD for customers.  The store
// composition covers everything the reservation core needs: the
// cancellation notifier re-reads customers through GetByID after a
// cascade to build its fan-out payloads.  GetByDocument and GetByEmail
// serve the front-desk lookups.
type CustomerRepo struct {
	*Store[model.Customer]
}

// NewCustomerRepo returns a CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{Store: NewStore(db, Descriptor[model.Customer]{
		Table:         "customers",
		SelectColumns: []string{"id", "document_number", "name", "lastname", "age", "phone_number", "email", "status", "created_at", "updated_at"},
		InsertColumns: []string{"document_number", "name", "lastname", "age", "phone_number", "email"},
		StateColumn:   "status",
		ActiveValue:   string(model.RecordActive),
		InactiveValue: string(model.RecordInactive),
		Scan:          scanCustomer,
		InsertArgs: func(c *model.Customer) []any {
			return []any{c.DocumentNumber, c.Name, c.Lastname, c.Age, c.PhoneNumber, c.Email}
		},
		SetID: func(c *model.Customer, id uint64) { c.ID = id },
	})}
}

func scanCustomer(row Scanner) (*model.Customer, error) {
	var c model.Customer
	var phone, email sql.NullString
	if err := row.Scan(&c.ID, &c.DocumentNumber, &c.Name, &c.Lastname, &c.Age, &phone, &email, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if phone.Valid {
		p := phone.String
		c.PhoneNumber = &p
	}
	if email.Valid {
		e := email.String
		c.Email = &e
	}
	return &c, nil
}

// GetByDocument returns the active customer holding the given document
// number.  The column is unique, so at most one row can match.
func (r *CustomerRepo) GetByDocument(ctx context.Context, document string) (*model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers
	           WHERE document_number = ? AND status = 'ACTIVE'`
	c, err := scanCustomer(r.DB().QueryRowContext(ctx, q, document))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// GetByEmail returns an active customer by email address.  Email is
// optional and not constrained unique, so the lowest id wins when
// several customers share one.
func (r *CustomerRepo) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers
	           WHERE email = ? AND status = 'ACTIVE' ORDER BY id LIMIT 1`
	c, err := scanCustomer(r.DB().QueryRowContext(ctx, q, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
