package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sasha-the-architect/nuxtjs-boilerplate-sub002/internal/services"
)

// HealthChecker is satisfied by services.HealthService.
type HealthChecker interface {
	CheckHealth() *services.HealthStatus
}

// A degraded service is still operational.
var healthStatusCodes = map[string]int{
	"healthy":   http.StatusOK,
	"degraded":  http.StatusOK,
	"unhealthy": http.StatusServiceUnavailable,
}

type HealthHandler struct {
	logger  *logrus.Logger
	checker HealthChecker
}

func NewHealthHandler(logger *logrus.Logger, checker HealthChecker) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		checker: checker,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := h.checker.CheckHealth()

	httpStatus, ok := healthStatusCodes[status.Status]
	if !ok {
		httpStatus = http.StatusInternalServerError
	}
	if httpStatus != http.StatusOK {
		h.logger.WithFields(logrus.Fields{
			"status":   status.Status,
			"critical": status.Critical,
		}).Warn("Health check failed")
	}

	c.JSON(httpStatus, status)
}
