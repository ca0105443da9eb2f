// internal/repository/memory/customer_repo.go
package memory

import (
	"context"
	"sort"

	"crm-service/internal/domain/address"
	"crm-service/internal/domain/customer"
	xerrors "crm-service/internal/pkg/errors"
)

type CustomerRepository struct {
	s *Store
}

func (r *CustomerRepository) Create(_ context.Context, c *customer.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertCustomerLocked(c)
}

func (r *CustomerRepository) CreateWithAddress(_ context.Context, c *customer.Customer, a *address.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.insertCustomerLocked(c); err != nil {
		return err
	}
	a.CustomerID = c.ID
	return r.s.insertAddressLocked(a)
}

func (r *CustomerRepository) FindByID(_ context.Context, id int64) (*customer.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.customers[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	c = cloneCustomer(c)
	return &c, nil
}

func (r *CustomerRepository) List(_ context.Context, filters *customer.CustomerListFilters) ([]customer.ListItem, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []customer.ListItem{}
	for _, c := range r.s.sortedCustomersLocked() {
		if filters.Search != "" &&
			!containsFold(c.FirstName, filters.Search) &&
			!containsFold(c.LastName, filters.Search) &&
			!containsFold(c.PhoneNumber, filters.Search) {
			continue
		}
		matched = append(matched, customer.ListItem{Customer: c, AddressCount: r.s.addressCountLocked(c.ID)})
	}
	return page(matched, filters.Page, filters.Limit), int64(len(matched)), nil
}

func (r *CustomerRepository) Update(_ context.Context, id int64, c *customer.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.customers[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	if r.s.conflictLocked(id, c) {
		return xerrors.Wrap(xerrors.ErrConflict, "update customer")
	}

	stored.FirstName, stored.LastName, stored.PhoneNumber, stored.Email = c.FirstName, c.LastName, c.PhoneNumber, c.Email
	stored.UpdatedAt = r.s.now()
	r.s.customers[id] = cloneCustomer(stored)

	c.ID, c.CreatedAt, c.UpdatedAt = stored.ID, stored.CreatedAt, stored.UpdatedAt
	return nil
}

func (r *CustomerRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[id]; !ok {
		return false, nil
	}
	delete(r.s.customers, id)
	for aid, a := range r.s.addresses {
		if a.CustomerID == id {
			delete(r.s.addresses, aid)
		}
	}
	return true, nil
}

func (r *CustomerRepository) SearchByLocation(_ context.Context, filters *customer.LocationSearchFilters) ([]customer.LocationMatch, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	byCustomer := map[int64][]address.Address{}
	for _, a := range r.s.addresses {
		if containsFold(a.City, filters.Search) || containsFold(a.State, filters.Search) ||
			containsFold(a.PinCode, filters.Search) || containsFold(a.AddressLine, filters.Search) {
			byCustomer[a.CustomerID] = append(byCustomer[a.CustomerID], a)
		}
	}

	matched := []customer.LocationMatch{}
	for _, c := range r.s.sortedCustomersLocked() {
		hits := byCustomer[c.ID]
		if len(hits) == 0 {
			continue
		}
		sort.Slice(hits, func(i, j int) bool {
			if hits[i].IsPrimary != hits[j].IsPrimary {
				return hits[i].IsPrimary
			}
			return hits[i].ID < hits[j].ID
		})
		rep := hits[0]
		matched = append(matched, customer.LocationMatch{
			Customer:     c,
			City:         rep.City,
			State:        rep.State,
			PinCode:      rep.PinCode,
			AddressCount: int64(len(hits)),
		})
	}
	return page(matched, filters.Page, filters.Limit), int64(len(matched)), nil
}

func (r *CustomerRepository) Count(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.customers)), nil
}

func (r *CustomerRepository) CountCreatedThisMonth(context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	now := r.s.now()
	start := startOfMonth(now)
	var n int64
	for _, c := range r.s.customers {
		if !c.CreatedAt.Before(start) {
			n++
		}
	}
	return n, nil
}

func (r *CustomerRepository) TopCities(_ context.Context, limit int) ([]customer.CityStat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := map[string]map[int64]struct{}{}
	for _, a := range r.s.addresses {
		if seen[a.City] == nil {
			seen[a.City] = map[int64]struct{}{}
		}
		seen[a.City][a.CustomerID] = struct{}{}
	}

	stats := make([]customer.CityStat, 0, len(seen))
	for city, ids := range seen {
		stats = append(stats, customer.CityStat{City: city, CustomerCount: int64(len(ids))})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].CustomerCount != stats[j].CustomerCount {
			return stats[i].CustomerCount > stats[j].CustomerCount
		}
		return stats[i].City < stats[j].City
	})
	return page(stats, 1, limit), nil
}

func (r *CustomerRepository) Recent(_ context.Context, limit int) ([]customer.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return page(r.s.sortedCustomersLocked(), 1, limit), nil
}
