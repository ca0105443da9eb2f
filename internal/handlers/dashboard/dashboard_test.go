package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"crm-service/internal/domain/customer"
	"crm-service/internal/repository/memory"
	service "crm-service/internal/service/dashboard"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingCount struct {
	service.CustomerStats
}

func (failingCount) Count(context.Context) (int64, error) {
	return 0, errors.New("relation \"customers\" does not exist")
}

func serve(stats service.CustomerStats, addresses service.AddressStats) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	h := NewDashboardHandler(service.NewDashboardService(stats, addresses, zap.NewNop()), zap.NewNop())

	r := gin.New()
	r.GET("/api/dashboard", h.GetDashboard)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
	return w
}

func TestGetDashboard(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Customers().Create(context.Background(),
		&customer.Customer{FirstName: "Asha", LastName: "Rao", PhoneNumber: "9876543210"}))

	w := serve(store.Customers(), store.Addresses())

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_customers":1`)
	assert.Contains(t, w.Body.String(), `"recent_customers":[{`)
}

func TestGetDashboardFailure(t *testing.T) {
	store := memory.NewStore()

	w := serve(failingCount{store.Customers()}, store.Addresses())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Failed to load dashboard data"}`, w.Body.String())
}
