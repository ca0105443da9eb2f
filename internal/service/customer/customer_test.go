package customer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"crm-service/internal/domain/address"
	"crm-service/internal/domain/customer"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T) (*CustomerService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return NewCustomerService(store.Customers(), store.Addresses(), zap.NewNop()), store
}

func ashaRequest() *customer.CreateCustomerRequest {
	return &customer.CreateCustomerRequest{
		FirstName:   "Asha",
		LastName:    "Rao",
		PhoneNumber: "9876543210",
		Email:       "a@x.com",
	}
}

func TestCreateCustomer(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	created, err := svc.CreateCustomer(ctx, ashaRequest())
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.FirstName)
	assert.Equal(t, "Rao", got.LastName)
	require.NotNil(t, got.Email)
	assert.Equal(t, "a@x.com", *got.Email)
	assert.Empty(t, got.Addresses)
}

func TestCreateCustomerBlankEmailIsNull(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	first := ashaRequest()
	first.Email = ""
	c1, err := svc.CreateCustomer(ctx, first)
	require.NoError(t, err)
	assert.Nil(t, c1.Email)

	second := ashaRequest()
	second.PhoneNumber = "9876543211"
	second.Email = ""
	_, err = svc.CreateCustomer(ctx, second)
	assert.NoError(t, err, "two customers without email must not collide")
}

func TestCreateCustomerDuplicatePhone(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	first, err := svc.CreateCustomer(ctx, ashaRequest())
	require.NoError(t, err)

	dup := ashaRequest()
	dup.FirstName = "Other"
	dup.Email = "other@x.com"
	_, err = svc.CreateCustomer(ctx, dup)
	assert.ErrorIs(t, err, xerrors.ErrConflict)

	got, err := svc.GetCustomer(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.FirstName)
}

func TestCreateCustomerValidation(t *testing.T) {
	svc, _ := newService(t)

	req := ashaRequest()
	req.PhoneNumber = "123"
	_, err := svc.CreateCustomer(context.Background(), req)

	ve, ok := xerrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, MsgValidationFailed, ve.Message)
	assert.Equal(t, []string{"Phone number must be a valid 10-digit Indian mobile number"}, ve.Errors)
}

func TestCreateCustomerWithAddress(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	req := ashaRequest()
	req.Address = &address.CreateAddressRequest{
		AddressLine: "12 MG Road",
		City:        "Pune",
		State:       "Maharashtra",
		PinCode:     "411001",
	}

	created, err := svc.CreateCustomer(ctx, req)
	require.NoError(t, err)

	got, err := svc.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Addresses, 1)
	assert.True(t, got.Addresses[0].IsPrimary)
	assert.Equal(t, "Pune", got.Addresses[0].City)
}

func TestCreateCustomerInvalidAddressPersistsNothing(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	req := ashaRequest()
	req.Address = &address.CreateAddressRequest{
		AddressLine: "12 MG Road",
		State:       "Maharashtra",
		PinCode:     "411001",
	}

	_, err := svc.CreateCustomer(ctx, req)
	ve, ok := xerrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, MsgAddressValidationFailed, ve.Message)
	assert.Equal(t, []string{"City must be at least 2 characters long"}, ve.Errors)

	n, err := store.Customers().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListCustomersNormalizesPaging(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	for i := 0; i < 12; i++ {
		req := ashaRequest()
		req.PhoneNumber = fmt.Sprintf("98765432%02d", i)
		req.Email = ""
		_, err := svc.CreateCustomer(ctx, req)
		require.NoError(t, err)
	}

	resp, err := svc.ListCustomers(ctx, &customer.CustomerListFilters{Page: -3, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, DefaultLimit, resp.Limit)
	assert.Len(t, resp.Customers, 10)
	assert.EqualValues(t, 12, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)

	resp, err = svc.ListCustomers(ctx, &customer.CustomerListFilters{Page: 1, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, resp.Limit)
	assert.Len(t, resp.Customers, 12)
	assert.Equal(t, 1, resp.TotalPages)
}

func TestNormalizePageKeepsOffsetInRange(t *testing.T) {
	page, limit := normalizePage(100000000000000001, 100)
	assert.Equal(t, 100, limit)
	assert.Equal(t, math.MaxInt/100, page)
	assert.Positive(t, (page-1)*limit)

	page, _ = normalizePage(math.MaxInt, 1)
	assert.Equal(t, math.MaxInt, page)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, totalPages(0, 10))
	assert.Equal(t, 1, totalPages(10, 10))
	assert.Equal(t, 2, totalPages(11, 10))
}

func TestSearchByLocationRequiresTerm(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.SearchByLocation(context.Background(), &customer.LocationSearchFilters{Search: "   "})
	ve, ok := xerrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, MsgSearchTermRequired, ve.Message)
	assert.Empty(t, ve.Errors)
}

func TestSearchByLocation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	req := ashaRequest()
	req.Address = &address.CreateAddressRequest{AddressLine: "1 Marine Drive", City: "Mumbai", State: "Maharashtra", PinCode: "400001"}
	_, err := svc.CreateCustomer(ctx, req)
	require.NoError(t, err)

	resp, err := svc.SearchByLocation(ctx, &customer.LocationSearchFilters{Search: "MUMBAI"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, resp.Total)
	require.Len(t, resp.Customers, 1)
	assert.Equal(t, "Mumbai", resp.Customers[0].City)
	assert.Equal(t, DefaultLimit, resp.Limit)
}

func TestUpdateCustomer(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	_, err := svc.UpdateCustomer(ctx, 99, &customer.UpdateCustomerRequest{FirstName: "x"})
	assert.ErrorIs(t, err, xerrors.ErrNotFound, "unknown id wins over invalid input")

	created, err := svc.CreateCustomer(ctx, ashaRequest())
	require.NoError(t, err)

	_, err = svc.UpdateCustomer(ctx, created.ID, &customer.UpdateCustomerRequest{
		FirstName: "Asha", LastName: "Rao", PhoneNumber: "123",
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)

	updated, err := svc.UpdateCustomer(ctx, created.ID, &customer.UpdateCustomerRequest{
		FirstName: "Asha", LastName: "Iyer", PhoneNumber: "9876543219",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Iyer", updated.LastName)
	assert.Nil(t, updated.Email)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestDeleteCustomer(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t)

	req := ashaRequest()
	req.Address = &address.CreateAddressRequest{AddressLine: "12 MG Road", City: "Pune", State: "MH", PinCode: "411001"}
	created, err := svc.CreateCustomer(ctx, req)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(ctx, created.ID))

	_, err = svc.GetCustomer(ctx, created.ID)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	addrs, err := store.Addresses().ListByCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, addrs)

	assert.ErrorIs(t, svc.DeleteCustomer(ctx, created.ID), xerrors.ErrNotFound)
}

// vanishingRepo finds every stored customer but deletes none, as when a
// concurrent request removes the row between the lookup and the delete.
type vanishingRepo struct {
	CustomerRepository
}

func (vanishingRepo) Delete(context.Context, int64) (bool, error) {
	return false, nil
}

func TestDeleteCustomerRemovedConcurrently(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := NewCustomerService(vanishingRepo{CustomerRepository: store.Customers()}, store.Addresses(), zap.NewNop())

	created, err := svc.CreateCustomer(ctx, ashaRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteCustomer(ctx, created.ID), xerrors.ErrNotFound)
}

type failingRepo struct {
	CustomerRepository
	err error
}

func (f failingRepo) List(context.Context, *customer.CustomerListFilters) ([]customer.ListItem, int64, error) {
	return nil, 0, f.err
}

func TestListCustomersPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("db down")
	store := memory.NewStore()
	svc := NewCustomerService(failingRepo{CustomerRepository: store.Customers(), err: boom}, store.Addresses(), zap.NewNop())

	_, err := svc.ListCustomers(context.Background(), &customer.CustomerListFilters{})
	assert.ErrorIs(t, err, boom)
}
