// internal/service/dashboard/dashboard.go
package dashboard

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/domain/customer"

	"go.uber.org/zap"
)

const (
	topCitiesLimit       = 5
	recentCustomersLimit = 5
)

type CustomerStats interface {
	Count(ctx context.Context) (int64, error)
	CountCreatedThisMonth(ctx context.Context) (int64, error)
	TopCities(ctx context.Context, limit int) ([]customer.CityStat, error)
	Recent(ctx context.Context, limit int) ([]customer.Customer, error)
}

type AddressStats interface {
	CountCustomersWithMultipleAddresses(ctx context.Context) (int64, error)
}

type Summary struct {
	TotalCustomers     int64               `json:"total_customers"`
	ThisMonthCustomers int64               `json:"this_month_customers"`
	LocationStats      []customer.CityStat `json:"location_stats"`
	MultipleAddresses  int64               `json:"multiple_addresses"`
	RecentCustomers    []customer.Customer `json:"recent_customers"`
	LastUpdated        time.Time           `json:"last_updated"`
}

type DashboardService struct {
	customers CustomerStats
	addresses AddressStats
	logger    *zap.Logger
	now       func() time.Time
}

func NewDashboardService(customers CustomerStats, addresses AddressStats, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		customers: customers,
		addresses: addresses,
		logger:    logger,
		now:       time.Now,
	}
}

// Summary gathers the dashboard figures. Any failing query fails the whole summary.
func (s *DashboardService) Summary(ctx context.Context) (*Summary, error) {
	var (
		out Summary
		err error
	)

	if out.TotalCustomers, err = s.customers.Count(ctx); err != nil {
		return nil, fmt.Errorf("total customers: %w", err)
	}
	if out.ThisMonthCustomers, err = s.customers.CountCreatedThisMonth(ctx); err != nil {
		return nil, fmt.Errorf("this month customers: %w", err)
	}
	if out.LocationStats, err = s.customers.TopCities(ctx, topCitiesLimit); err != nil {
		return nil, fmt.Errorf("location stats: %w", err)
	}
	if out.MultipleAddresses, err = s.addresses.CountCustomersWithMultipleAddresses(ctx); err != nil {
		return nil, fmt.Errorf("multiple addresses: %w", err)
	}
	if out.RecentCustomers, err = s.customers.Recent(ctx, recentCustomersLimit); err != nil {
		return nil, fmt.Errorf("recent customers: %w", err)
	}

	out.LastUpdated = s.now().UTC()
	s.logger.Debug("dashboard summary built",
		zap.Int64("total_customers", out.TotalCustomers),
		zap.Int("cities", len(out.LocationStats)),
	)
	return &out, nil
}
