// internal/service/address/address.go
package address

import (
	"context"

	"crm-service/internal/domain/address"
	"crm-service/internal/domain/customer"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/validation"

	"go.uber.org/zap"
)

const MsgValidationFailed = "Validation failed"

type AddressRepository interface {
	Create(ctx context.Context, a *address.Address) error
	ListByCustomer(ctx context.Context, customerID int64) ([]address.Address, error)
	FindByID(ctx context.Context, id int64) (*address.Address, error)
	Update(ctx context.Context, id int64, a *address.Address) error
	Delete(ctx context.Context, id int64) (bool, error)
	ListCustomersWithMultipleAddresses(ctx context.Context) ([]customer.ListItem, error)
}

// CustomerFinder checks that an address owner exists.
type CustomerFinder interface {
	FindByID(ctx context.Context, id int64) (*customer.Customer, error)
}

type AddressService struct {
	addressRepo  AddressRepository
	customerRepo CustomerFinder
	logger       *zap.Logger
}

func NewAddressService(addressRepo AddressRepository, customerRepo CustomerFinder, logger *zap.Logger) *AddressService {
	return &AddressService{
		addressRepo:  addressRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func addressInput(line, city, state, pin string) validation.AddressInput {
	return validation.AddressInput{AddressLine: line, City: city, State: state, PinCode: pin}
}

// CreateAddress adds an address to an existing customer. An unknown customer
// is reported as xerrors.ErrNotFound before the input is validated.
func (s *AddressService) CreateAddress(ctx context.Context, req *address.CreateAddressRequest) (*address.Address, error) {
	if _, err := s.customerRepo.FindByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	if errs := validation.Address(addressInput(req.AddressLine, req.City, req.State, req.PinCode)); len(errs) > 0 {
		return nil, xerrors.NewValidationError(MsgValidationFailed, errs...)
	}

	a := req.ToAddress(req.CustomerID)
	// The insert re-checks the customer, so a concurrent delete still yields ErrNotFound.
	if err := s.addressRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("address created",
		zap.Int64("address_id", a.ID),
		zap.Int64("customer_id", a.CustomerID),
	)
	return a, nil
}

func (s *AddressService) GetAddress(ctx context.Context, id int64) (*address.Address, error) {
	return s.addressRepo.FindByID(ctx, id)
}

// ListByCustomer never fails for an unknown customer; it returns no addresses.
func (s *AddressService) ListByCustomer(ctx context.Context, customerID int64) ([]address.Address, error) {
	return s.addressRepo.ListByCustomer(ctx, customerID)
}

func (s *AddressService) ListCustomersWithMultipleAddresses(ctx context.Context) ([]customer.ListItem, error) {
	return s.addressRepo.ListCustomersWithMultipleAddresses(ctx)
}

func (s *AddressService) UpdateAddress(ctx context.Context, id int64, req *address.UpdateAddressRequest) (*address.Address, error) {
	if _, err := s.addressRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if errs := validation.Address(addressInput(req.AddressLine, req.City, req.State, req.PinCode)); len(errs) > 0 {
		return nil, xerrors.NewValidationError(MsgValidationFailed, errs...)
	}

	a := req.ToAddress()
	if err := s.addressRepo.Update(ctx, id, a); err != nil {
		return nil, err
	}

	s.logger.Info("address updated", zap.Int64("address_id", id))
	return a, nil
}

func (s *AddressService) DeleteAddress(ctx context.Context, id int64) error {
	if _, err := s.addressRepo.FindByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.addressRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return xerrors.ErrNotFound
	}

	s.logger.Info("address deleted", zap.Int64("address_id", id))
	return nil
}
