// internal/repository/memory/address_repo.go
package memory

import (
	"context"
	"sort"

	"crm-service/internal/domain/address"
	"crm-service/internal/domain/customer"
	xerrors "crm-service/internal/pkg/errors"
)

type AddressRepository struct {
	s *Store
}

func (r *AddressRepository) Create(_ context.Context, a *address.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.insertAddressLocked(a)
}

func (r *AddressRepository) ListByCustomer(_ context.Context, customerID int64) ([]address.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := []address.Address{}
	for _, a := range r.s.addresses {
		if a.CustomerID == customerID {
			list = append(list, a)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].IsPrimary != list[j].IsPrimary {
			return list[i].IsPrimary
		}
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (r *AddressRepository) FindByID(_ context.Context, id int64) (*address.Address, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.addresses[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return &a, nil
}

func (r *AddressRepository) Update(_ context.Context, id int64, a *address.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.addresses[id]
	if !ok {
		return xerrors.ErrNotFound
	}
	stored.AddressLine, stored.City, stored.State, stored.PinCode, stored.IsPrimary =
		a.AddressLine, a.City, a.State, a.PinCode, a.IsPrimary
	stored.UpdatedAt = r.s.now()
	r.s.addresses[id] = stored

	*a = stored
	return nil
}

func (r *AddressRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.addresses[id]; !ok {
		return false, nil
	}
	delete(r.s.addresses, id)
	return true, nil
}

func (r *AddressRepository) ListCustomersWithMultipleAddresses(context.Context) ([]customer.ListItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	list := []customer.ListItem{}
	for _, c := range r.s.customers {
		if n := r.s.addressCountLocked(c.ID); n > 1 {
			list = append(list, customer.ListItem{Customer: cloneCustomer(c), AddressCount: n})
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AddressCount != list[j].AddressCount {
			return list[i].AddressCount > list[j].AddressCount
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (r *AddressRepository) CountCustomersWithMultipleAddresses(ctx context.Context) (int64, error) {
	list, err := r.ListCustomersWithMultipleAddresses(ctx)
	return int64(len(list)), err
}
