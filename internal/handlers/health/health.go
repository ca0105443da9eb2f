// internal/handlers/health/health.go
package health

import (
	"context"
	"net/http"
	"time"

	"crm-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	MsgHealthy  = "Server is running successfully!"
	MsgDegraded = "Database is unreachable"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Status struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

type HealthHandler struct {
	db      Pinger
	version string
	timeout time.Duration
	logger  *zap.Logger
}

func NewHealthHandler(db Pinger, version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, version: version, timeout: 2 * time.Second, logger: logger}
}

// Check answers 200 when the database responds to a ping and 503 otherwise.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := Status{Status: "ok", Database: "up", Version: h.version, Timestamp: time.Now().UTC()}

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		status.Status, status.Database = "degraded", "down"
		response.Error(c, http.StatusServiceUnavailable, MsgDegraded, nil, status)
		return
	}

	response.Success(c, http.StatusOK, MsgHealthy, status)
}
