package address

import (
	"context"
	"testing"

	"crm-service/internal/domain/address"
	"crm-service/internal/domain/customer"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*AddressService, *memory.Store, int64) {
	t.Helper()
	store := memory.NewStore()
	c := &customer.Customer{FirstName: "Asha", LastName: "Rao", PhoneNumber: "9876543210"}
	require.NoError(t, store.Customers().Create(context.Background(), c))
	return NewAddressService(store.Addresses(), store.Customers(), zap.NewNop()), store, c.ID
}

func validRequest(customerID int64) *address.CreateAddressRequest {
	return &address.CreateAddressRequest{
		CustomerID:  customerID,
		AddressLine: "12 MG Road",
		City:        "Pune",
		State:       "Maharashtra",
		PinCode:     "411001",
	}
}

func TestCreateAddress(t *testing.T) {
	ctx := context.Background()
	svc, _, customerID := setup(t)

	a, err := svc.CreateAddress(ctx, validRequest(customerID))
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.False(t, a.IsPrimary, "is_primary defaults to false")

	got, err := svc.GetAddress(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, customerID, got.CustomerID)
}

func TestCreateAddressUnknownCustomer(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	req := validRequest(999)
	req.PinCode = "bad"
	_, err := svc.CreateAddress(ctx, req)
	assert.ErrorIs(t, err, xerrors.ErrNotFound, "existence is checked before validation")

	list, err := svc.ListByCustomer(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateAddressValidation(t *testing.T) {
	svc, _, customerID := setup(t)

	req := validRequest(customerID)
	req.City = "P"
	req.PinCode = "41100"
	_, err := svc.CreateAddress(context.Background(), req)

	ve, ok := xerrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, MsgValidationFailed, ve.Message)
	assert.Equal(t, []string{
		"City must be at least 2 characters long",
		"Pin code must be a valid 6-digit number",
	}, ve.Errors)
}

func TestUpdateAddress(t *testing.T) {
	ctx := context.Background()
	svc, _, customerID := setup(t)

	_, err := svc.UpdateAddress(ctx, 42, &address.UpdateAddressRequest{})
	assert.ErrorIs(t, err, xerrors.ErrNotFound)

	a, err := svc.CreateAddress(ctx, validRequest(customerID))
	require.NoError(t, err)

	updated, err := svc.UpdateAddress(ctx, a.ID, &address.UpdateAddressRequest{
		AddressLine: "7 FC Road",
		City:        "Pune",
		State:       "Maharashtra",
		PinCode:     "411004",
		IsPrimary:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, customerID, updated.CustomerID)
	assert.Equal(t, "411004", updated.PinCode)
	assert.True(t, updated.IsPrimary)

	_, err = svc.UpdateAddress(ctx, a.ID, &address.UpdateAddressRequest{AddressLine: "x"})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestDeleteAddress(t *testing.T) {
	ctx := context.Background()
	svc, _, customerID := setup(t)

	a, err := svc.CreateAddress(ctx, validRequest(customerID))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAddress(ctx, a.ID))
	assert.ErrorIs(t, svc.DeleteAddress(ctx, a.ID), xerrors.ErrNotFound)
}

type vanishingRepo struct {
	AddressRepository
}

func (vanishingRepo) Delete(context.Context, int64) (bool, error) {
	return false, nil
}

func TestDeleteAddressRemovedConcurrently(t *testing.T) {
	ctx := context.Background()
	svc, store, customerID := setup(t)

	a, err := svc.CreateAddress(ctx, validRequest(customerID))
	require.NoError(t, err)

	svc = NewAddressService(vanishingRepo{AddressRepository: store.Addresses()}, store.Customers(), zap.NewNop())
	assert.ErrorIs(t, svc.DeleteAddress(ctx, a.ID), xerrors.ErrNotFound)
}

func TestListCustomersWithMultipleAddresses(t *testing.T) {
	ctx := context.Background()
	svc, _, customerID := setup(t)

	_, err := svc.CreateAddress(ctx, validRequest(customerID))
	require.NoError(t, err)

	list, err := svc.ListCustomersWithMultipleAddresses(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.CreateAddress(ctx, validRequest(customerID))
	require.NoError(t, err)

	list, err = svc.ListCustomersWithMultipleAddresses(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.EqualValues(t, 2, list[0].AddressCount)
}
