// internal/repository/postgres/address_repo.go
package postgres

import (
	"context"

	"crm-service/internal/domain/address"
	"crm-service/internal/domain/customer"

	"github.com/jackc/pgx/v5"
)

const addressColumns = `id, customer_id, address_line, city, state, pin_code, is_primary, created_at, updated_at`

type AddressRepository struct {
	db *DB
}

func NewAddressRepository(db *DB) *AddressRepository {
	return &AddressRepository{db: db}
}

func scanAddress(row pgx.Row, a *address.Address) error {
	return row.Scan(
		&a.ID, &a.CustomerID, &a.AddressLine, &a.City, &a.State, &a.PinCode,
		&a.IsPrimary, &a.CreatedAt, &a.UpdatedAt,
	)
}

func insertAddress(ctx context.Context, q Querier, a *address.Address) error {
	query := `
		INSERT INTO addresses (customer_id, address_line, city, state, pin_code, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, a.CustomerID, a.AddressLine, a.City, a.State, a.PinCode, a.IsPrimary).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapError(err, "create address")
}

// Create inserts the address only if its customer exists at insert time.
// A missing customer yields xerrors.ErrNotFound and no row is written.
func (r *AddressRepository) Create(ctx context.Context, a *address.Address) error {
	query := `
		INSERT INTO addresses (customer_id, address_line, city, state, pin_code, is_primary)
		SELECT $1::bigint, $2, $3, $4, $5, $6
		WHERE EXISTS (SELECT 1 FROM customers WHERE id = $1::bigint)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, a.CustomerID, a.AddressLine, a.City, a.State, a.PinCode, a.IsPrimary).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	return mapError(err, "create address")
}

// ListByCustomer returns primary addresses first, then newest first.
func (r *AddressRepository) ListByCustomer(ctx context.Context, customerID int64) ([]address.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM addresses
		WHERE customer_id = $1
		ORDER BY is_primary DESC, created_at DESC, id DESC
	`
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, mapError(err, "list addresses")
	}
	defer rows.Close()

	addresses := []address.Address{}
	for rows.Next() {
		var a address.Address
		if err := scanAddress(rows, &a); err != nil {
			return nil, mapError(err, "scan address")
		}
		addresses = append(addresses, a)
	}
	return addresses, mapError(rows.Err(), "list addresses")
}

func (r *AddressRepository) FindByID(ctx context.Context, id int64) (*address.Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses WHERE id = $1`

	var a address.Address
	if err := scanAddress(r.db.QueryRow(ctx, query, id), &a); err != nil {
		return nil, mapError(err, "find address")
	}
	return &a, nil
}

// Update overwrites the editable fields of address id and refreshes updated_at.
// customer_id is never changed.
func (r *AddressRepository) Update(ctx context.Context, id int64, a *address.Address) error {
	query := `
		UPDATE addresses
		SET address_line = $1, city = $2, state = $3, pin_code = $4, is_primary = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, customer_id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, a.AddressLine, a.City, a.State, a.PinCode, a.IsPrimary, id).
		Scan(&a.ID, &a.CustomerID, &a.CreatedAt, &a.UpdatedAt)
	return mapError(err, "update address")
}

func (r *AddressRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err, "delete address")
	}
	return result.RowsAffected() > 0, nil
}

// ListCustomersWithMultipleAddresses returns customers owning more than one
// address, most addresses first.
func (r *AddressRepository) ListCustomersWithMultipleAddresses(ctx context.Context) ([]customer.ListItem, error) {
	query := `
		SELECT ` + customerColumns + `, COUNT(a.id) AS address_count
		FROM customers c
		INNER JOIN addresses a ON a.customer_id = c.id
		GROUP BY c.id
		HAVING COUNT(a.id) > 1
		ORDER BY address_count DESC, c.id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapError(err, "list customers with multiple addresses")
	}
	defer rows.Close()

	customers := []customer.ListItem{}
	for rows.Next() {
		var item customer.ListItem
		if err := scanCustomer(rows, &item.Customer, &item.AddressCount); err != nil {
			return nil, mapError(err, "scan customer")
		}
		customers = append(customers, item)
	}
	return customers, mapError(rows.Err(), "list customers with multiple addresses")
}

func (r *AddressRepository) CountCustomersWithMultipleAddresses(ctx context.Context) (int64, error) {
	query := `
		SELECT COUNT(*) FROM (
			SELECT customer_id
			FROM addresses
			GROUP BY customer_id
			HAVING COUNT(*) > 1
		) multi
	`
	var n int64
	err := r.db.QueryRow(ctx, query).Scan(&n)
	return n, mapError(err, "count customers with multiple addresses")
}
