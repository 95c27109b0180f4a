package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"invex/internal/config"
)

const readinessPingTimeout = 2 * time.Second

// Pinger is the part of *sqlx.DB readiness needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db      Pinger
	issuers config.IssuersConfig
}

// NewHealthHandler creates a new HealthHandler. db is nil when persistence is disabled.
func NewHealthHandler(db Pinger, issuers config.IssuersConfig) *HealthHandler {
	return &HealthHandler{db: db, issuers: issuers}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The service is ready when every issuer has a canonical
// name to classify by and the run store, if enabled, answers a ping.
func (h *HealthHandler) Readiness(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if missing := h.unnamedIssuers(); len(missing) > 0 {
		checks["issuers"] = "missing: " + strings.Join(missing, ", ")
		ready = false
	} else {
		checks["issuers"] = "ok"
	}

	if h.db == nil {
		checks["database"] = "disabled"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessPingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			logrus.WithError(err).Warn("readiness: run store not reachable")
			checks["database"] = "unreachable"
			ready = false
		} else {
			checks["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}

func (h *HealthHandler) unnamedIssuers() []string {
	var missing []string
	for _, issuer := range []struct{ key, name string }{
		{"mogli", h.issuers.Mogli},
		{"sdi", h.issuers.SDI},
		{"jll", h.issuers.JLL},
	} {
		if strings.TrimSpace(issuer.name) == "" {
			missing = append(missing, issuer.key)
		}
	}
	return missing
}
