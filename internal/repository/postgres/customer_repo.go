// internal/repository/postgres/customer_repo.go
package postgres

import (
	"context"
	"fmt"

	"crm-service/internal/domain/address"
	"crm-service/internal/domain/customer"

	"github.com/jackc/pgx/v5"
)

const customerColumns = `c.id, c.first_name, c.last_name, c.phone_number, c.email, c.created_at, c.updated_at`

type CustomerRepository struct {
	db *DB
}

func NewCustomerRepository(db *DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func scanCustomer(row pgx.Row, c *customer.Customer, extra ...any) error {
	dest := append([]any{
		&c.ID, &c.FirstName, &c.LastName, &c.PhoneNumber, &c.Email, &c.CreatedAt, &c.UpdatedAt,
	}, extra...)
	return row.Scan(dest...)
}

func insertCustomer(ctx context.Context, q Querier, c *customer.Customer) error {
	query := `
		INSERT INTO customers (first_name, last_name, phone_number, email)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query, c.FirstName, c.LastName, c.PhoneNumber, c.Email).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapError(err, "create customer")
}

// Create inserts a customer and fills in its generated fields.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	return insertCustomer(ctx, r.db, c)
}

// CreateWithAddress inserts a customer and its first address in one transaction.
func (r *CustomerRepository) CreateWithAddress(ctx context.Context, c *customer.Customer, a *address.Address) error {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := insertCustomer(ctx, tx, c); err != nil {
		return err
	}

	a.CustomerID = c.ID
	if err := insertAddress(ctx, tx, a); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// FindByID returns xerrors.ErrNotFound when no customer has the id.
func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers c WHERE c.id = $1`

	var c customer.Customer
	if err := scanCustomer(r.db.QueryRow(ctx, query, id), &c); err != nil {
		return nil, mapError(err, "find customer")
	}
	return &c, nil
}

// List returns one page of customers, newest first, and the total number of
// customers matching the search term.
func (r *CustomerRepository) List(ctx context.Context, filters *customer.CustomerListFilters) ([]customer.ListItem, int64, error) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(c.first_name ILIKE $%d OR c.last_name ILIKE $%d OR c.phone_number ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, containsPattern(filters.Search))
		argPos++
	}

	where := whereClause(conditions)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM customers c %s", where)
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, mapError(err, "count customers")
	}

	query := fmt.Sprintf(`
		SELECT %s, COUNT(a.id) AS address_count
		FROM customers c
		LEFT JOIN addresses a ON a.customer_id = c.id
		%s
		GROUP BY c.id
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $%d OFFSET $%d
	`, customerColumns, where, argPos, argPos+1)

	args = append(args, filters.Limit, pageOffset(filters.Page, filters.Limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError(err, "list customers")
	}
	defer rows.Close()

	customers := []customer.ListItem{}
	for rows.Next() {
		var item customer.ListItem
		if err := scanCustomer(rows, &item.Customer, &item.AddressCount); err != nil {
			return nil, 0, mapError(err, "scan customer")
		}
		customers = append(customers, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "list customers")
	}

	return customers, total, nil
}

// Update overwrites the editable fields of customer id and refreshes
// updated_at. The generated fields of c are filled from the stored row.
func (r *CustomerRepository) Update(ctx context.Context, id int64, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, phone_number = $3, email = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, c.FirstName, c.LastName, c.PhoneNumber, c.Email, id).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapError(err, "update customer")
}

// Delete removes the customer and, through the foreign key, its addresses.
// It reports whether a row was removed.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return false, mapError(err, "delete customer")
	}
	return result.RowsAffected() > 0, nil
}

// SearchByLocation returns customers owning at least one address whose city,
// state, pin code or address line contains the term, case-insensitively.
// The representative address is the first matching one by primary flag then id.
func (r *CustomerRepository) SearchByLocation(ctx context.Context, filters *customer.LocationSearchFilters) ([]customer.LocationMatch, int64, error) {
	match := `(a.city ILIKE $1 OR a.state ILIKE $1 OR a.pin_code ILIKE $1 OR a.address_line ILIKE $1)`
	pattern := containsPattern(filters.Search)

	countQuery := `SELECT COUNT(DISTINCT a.customer_id) FROM addresses a WHERE ` + match
	var total int64
	if err := r.db.QueryRow(ctx, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, mapError(err, "count location matches")
	}

	query := fmt.Sprintf(`
		SELECT %s, rep.city, rep.state, rep.pin_code, m.address_count
		FROM (
			SELECT a.customer_id, COUNT(*) AS address_count
			FROM addresses a
			WHERE %s
			GROUP BY a.customer_id
		) m
		JOIN customers c ON c.id = m.customer_id
		JOIN LATERAL (
			SELECT a.city, a.state, a.pin_code
			FROM addresses a
			WHERE a.customer_id = c.id AND %s
			ORDER BY a.is_primary DESC, a.id ASC
			LIMIT 1
		) rep ON TRUE
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $2 OFFSET $3
	`, customerColumns, match, match)

	rows, err := r.db.Query(ctx, query, pattern, filters.Limit, pageOffset(filters.Page, filters.Limit))
	if err != nil {
		return nil, 0, mapError(err, "search customers by location")
	}
	defer rows.Close()

	matches := []customer.LocationMatch{}
	for rows.Next() {
		var m customer.LocationMatch
		if err := scanCustomer(rows, &m.Customer, &m.City, &m.State, &m.PinCode, &m.AddressCount); err != nil {
			return nil, 0, mapError(err, "scan location match")
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(err, "search customers by location")
	}

	return matches, total, nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, mapError(err, "count customers")
}

// CountCreatedThisMonth counts customers created since the first day of the
// current calendar month.
func (r *CustomerRepository) CountCreatedThisMonth(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM customers WHERE created_at >= date_trunc('month', NOW())`
	var n int64
	err := r.db.QueryRow(ctx, query).Scan(&n)
	return n, mapError(err, "count customers this month")
}

// TopCities ranks cities by the number of distinct customers with an address there.
func (r *CustomerRepository) TopCities(ctx context.Context, limit int) ([]customer.CityStat, error) {
	query := `
		SELECT a.city, COUNT(DISTINCT a.customer_id) AS customer_count
		FROM addresses a
		GROUP BY a.city
		ORDER BY customer_count DESC, a.city ASC
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, mapError(err, "get location stats")
	}
	defer rows.Close()

	stats := []customer.CityStat{}
	for rows.Next() {
		var s customer.CityStat
		if err := rows.Scan(&s.City, &s.CustomerCount); err != nil {
			return nil, mapError(err, "scan location stat")
		}
		stats = append(stats, s)
	}
	return stats, mapError(rows.Err(), "get location stats")
}

func (r *CustomerRepository) Recent(ctx context.Context, limit int) ([]customer.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers c ORDER BY c.created_at DESC, c.id DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, mapError(err, "get recent customers")
	}
	defer rows.Close()

	customers := []customer.Customer{}
	for rows.Next() {
		var c customer.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, mapError(err, "scan customer")
		}
		customers = append(customers, c)
	}
	return customers, mapError(rows.Err(), "get recent customers")
}
