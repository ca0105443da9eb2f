// internal/repository/memory/store.go
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"crm-service/internal/domain/address"
	"crm-service/internal/domain/customer"
	xerrors "crm-service/internal/pkg/errors"
)

// Store keeps customers and addresses in process memory with the same
// uniqueness, cascade and ordering rules as the PostgreSQL schema.
type Store struct {
	mu             sync.RWMutex
	customers      map[int64]customer.Customer
	addresses      map[int64]address.Address
	nextCustomerID int64
	nextAddressID  int64
	now            func() time.Time
}

func NewStore() *Store {
	return &Store{
		customers: make(map[int64]customer.Customer),
		addresses: make(map[int64]address.Address),
		now:       time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{s: s} }

func (s *Store) Addresses() *AddressRepository { return &AddressRepository{s: s} }

// conflictLocked reports whether another customer already uses the phone
// number or the (non-null) email.
func (s *Store) conflictLocked(id int64, c *customer.Customer) bool {
	for _, other := range s.customers {
		if other.ID == id {
			continue
		}
		if other.PhoneNumber == c.PhoneNumber {
			return true
		}
		if c.Email != nil && other.Email != nil && *other.Email == *c.Email {
			return true
		}
	}
	return false
}

func (s *Store) insertCustomerLocked(c *customer.Customer) error {
	if s.conflictLocked(0, c) {
		return xerrors.Wrap(xerrors.ErrConflict, "create customer")
	}
	s.nextCustomerID++
	now := s.now()
	c.ID, c.CreatedAt, c.UpdatedAt = s.nextCustomerID, now, now
	s.customers[c.ID] = cloneCustomer(*c)
	return nil
}

func (s *Store) insertAddressLocked(a *address.Address) error {
	if _, ok := s.customers[a.CustomerID]; !ok {
		return xerrors.ErrNotFound
	}
	s.nextAddressID++
	now := s.now()
	a.ID, a.CreatedAt, a.UpdatedAt = s.nextAddressID, now, now
	s.addresses[a.ID] = *a
	return nil
}

func (s *Store) addressCountLocked(customerID int64) int64 {
	var n int64
	for _, a := range s.addresses {
		if a.CustomerID == customerID {
			n++
		}
	}
	return n
}

// newestFirst orders customers by created_at then id, both descending.
func newestFirst(list []customer.Customer) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
}

func (s *Store) sortedCustomersLocked() []customer.Customer {
	list := make([]customer.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		list = append(list, cloneCustomer(c))
	}
	newestFirst(list)
	return list
}

func cloneCustomer(c customer.Customer) customer.Customer {
	if c.Email != nil {
		email := *c.Email
		c.Email = &email
	}
	return c
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

func page[T any](items []T, page, limit int) []T {
	if limit < 1 {
		return []T{}
	}
	if page < 1 {
		page = 1
	}
	if page-1 >= (len(items)+limit-1)/limit {
		return []T{}
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
