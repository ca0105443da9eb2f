// internal/service/customer/customer.go
package customer

import (
	"context"
	"fmt"
	"math"
	"strings"

	"crm-service/internal/domain/address"
	"crm-service/internal/domain/customer"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/validation"

	"go.uber.org/zap"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	MsgValidationFailed        = "Validation failed"
	MsgAddressValidationFailed = "Address validation failed"
	MsgSearchTermRequired      = "Search term is required"
)

// CustomerRepository is the storage the service needs for customers.
type CustomerRepository interface {
	CreateWithAddress(ctx context.Context, c *customer.Customer, a *address.Address) error
	Create(ctx context.Context, c *customer.Customer) error
	FindByID(ctx context.Context, id int64) (*customer.Customer, error)
	List(ctx context.Context, filters *customer.CustomerListFilters) ([]customer.ListItem, int64, error)
	Update(ctx context.Context, id int64, c *customer.Customer) error
	Delete(ctx context.Context, id int64) (bool, error)
	SearchByLocation(ctx context.Context, filters *customer.LocationSearchFilters) ([]customer.LocationMatch, int64, error)
}

// AddressLister loads a customer's addresses for the detail view.
type AddressLister interface {
	ListByCustomer(ctx context.Context, customerID int64) ([]address.Address, error)
}

type CustomerService struct {
	customerRepo CustomerRepository
	addressRepo  AddressLister
	logger       *zap.Logger
}

func NewCustomerService(customerRepo CustomerRepository, addressRepo AddressLister, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		logger:       logger,
	}
}

func customerInput(firstName, lastName, phone, email string) validation.CustomerInput {
	return validation.CustomerInput{
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phone,
		Email:       email,
	}
}

// CreateCustomer validates the customer and, when present, the embedded
// address before writing anything. Both rows are inserted in one transaction;
// the embedded address always becomes the primary one.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *customer.CreateCustomerRequest) (*customer.Customer, error) {
	if errs := validation.Customer(customerInput(req.FirstName, req.LastName, req.PhoneNumber, req.Email)); len(errs) > 0 {
		return nil, xerrors.NewValidationError(MsgValidationFailed, errs...)
	}

	c := req.ToCustomer()

	if req.Address == nil {
		if err := s.customerRepo.Create(ctx, c); err != nil {
			return nil, err
		}
		s.logger.Info("customer created", zap.Int64("customer_id", c.ID))
		return c, nil
	}

	addrErrs := validation.Address(validation.AddressInput{
		AddressLine: req.Address.AddressLine,
		City:        req.Address.City,
		State:       req.Address.State,
		PinCode:     req.Address.PinCode,
	})
	if len(addrErrs) > 0 {
		return nil, xerrors.NewValidationError(MsgAddressValidationFailed, addrErrs...)
	}

	a := req.Address.ToAddress(0)
	a.IsPrimary = true

	if err := s.customerRepo.CreateWithAddress(ctx, c, a); err != nil {
		return nil, err
	}

	s.logger.Info("customer created",
		zap.Int64("customer_id", c.ID),
		zap.Int64("address_id", a.ID),
	)
	return c, nil
}

// GetCustomer returns the customer with all of its addresses.
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*customer.Detail, error) {
	c, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	addresses, err := s.addressRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load addresses: %w", err)
	}

	return &customer.Detail{Customer: *c, Addresses: addresses}, nil
}

// normalizePage applies the default page and limit, caps the limit and keeps
// (page-1)*limit within int so far pages come back empty.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ListCustomers returns one page of customers, newest first.
func (s *CustomerService) ListCustomers(ctx context.Context, filters *customer.CustomerListFilters) (*customer.CustomerListResponse, error) {
	filters.Page, filters.Limit = normalizePage(filters.Page, filters.Limit)
	filters.Search = strings.TrimSpace(filters.Search)

	customers, total, err := s.customerRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &customer.CustomerListResponse{
		Customers:  customers,
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages(total, filters.Limit),
	}, nil
}

// SearchByLocation lists customers with an address matching the term.
func (s *CustomerService) SearchByLocation(ctx context.Context, filters *customer.LocationSearchFilters) (*customer.LocationSearchResponse, error) {
	filters.Search = strings.TrimSpace(filters.Search)
	if filters.Search == "" {
		return nil, xerrors.NewValidationError(MsgSearchTermRequired)
	}
	filters.Page, filters.Limit = normalizePage(filters.Page, filters.Limit)

	matches, total, err := s.customerRepo.SearchByLocation(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &customer.LocationSearchResponse{
		Customers:  matches,
		Total:      total,
		Page:       filters.Page,
		Limit:      filters.Limit,
		TotalPages: totalPages(total, filters.Limit),
	}, nil
}

// UpdateCustomer replaces the editable fields of an existing customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, req *customer.UpdateCustomerRequest) (*customer.Customer, error) {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if errs := validation.Customer(customerInput(req.FirstName, req.LastName, req.PhoneNumber, req.Email)); len(errs) > 0 {
		return nil, xerrors.NewValidationError(MsgValidationFailed, errs...)
	}

	c := req.ToCustomer()
	if err := s.customerRepo.Update(ctx, id, c); err != nil {
		return nil, err
	}

	s.logger.Info("customer updated", zap.Int64("customer_id", id))
	return c, nil
}

// DeleteCustomer removes the customer and its addresses.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if _, err := s.customerRepo.FindByID(ctx, id); err != nil {
		return err
	}

	deleted, err := s.customerRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return xerrors.ErrNotFound
	}

	s.logger.Info("customer deleted", zap.Int64("customer_id", id))
	return nil
}
