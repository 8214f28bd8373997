package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lorrc/supporthub-backend/internal/core/domain"
	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// CustomerRepository is the secondary adapter for customer persistence.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

var _ ports.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(pool *pgxpool.Pool) ports.CustomerRepository {
	return &CustomerRepository{pool: pool}
}

const customerColumns = `id, name, email, created_at`

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	const query = `
        INSERT INTO customers (name, email, created_at)
        VALUES ($1, $2, $3)
        RETURNING ` + customerColumns

	var c domain.Customer
	err := GetDBTX(ctx, r.pool).QueryRow(ctx, query, customer.Name, customer.Email, customer.CreatedAt).
		Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrCustomerEmailTaken
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	var c domain.Customer
	err := GetDBTX(ctx, r.pool).QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	rows, err := GetDBTX(ctx, r.pool).Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Customer, error) {
		var c domain.Customer
		err := row.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
		return &c, err
	})
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	const query = `
        UPDATE customers SET name = $1, email = $2
        WHERE id = $3
        RETURNING ` + customerColumns

	var c domain.Customer
	err := GetDBTX(ctx, r.pool).QueryRow(ctx, query, customer.Name, customer.Email, customer.ID).
		Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt)
	if err != nil {
		switch {
		case isNoRows(err):
			return nil, apperrors.ErrCustomerNotFound
		case isUniqueViolation(err):
			return nil, apperrors.ErrCustomerEmailTaken
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := GetDBTX(ctx, r.pool).Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return apperrors.ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1 AND id <> $2)`

	var taken bool
	err := GetDBTX(ctx, r.pool).QueryRow(ctx, query, email, excludeID).Scan(&taken)
	return taken, err
}
