package handler

import (
	"errors"

	"matson-tracker/internal/core/logger"
	"matson-tracker/internal/features/status/domain"
	"matson-tracker/internal/features/status/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StatusHandler handles HTTP requests for shipment status operations.
type StatusHandler struct {
	service ports.StatusService
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(service ports.StatusService) *StatusHandler {
	return &StatusHandler{
		service: service,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// HealthCheck godoc
// @Summary Health check
// @Description Returns static liveness information for the service
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *StatusHandler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "matson-tracker-api",
	})
}

// GetStatus godoc
// @Summary Get the last known shipment status
// @Description Returns the last cached shipment status record
// @Tags status
// @Produce json
// @Success 200 {object} domain.StatusRecord
// @Failure 500 {object} ErrorResponse
// @Router /status [get]
func (h *StatusHandler) GetStatus(c *fiber.Ctx) error {
	record, err := h.service.GetStatus(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStatusUnavailable) {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
				Message: "status unavailable",
				RayID:   c.Locals("requestid").(string),
			})
		}

		logger.Get().Error("Failed to read status cache", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(record)
}

// TriggerPoll godoc
// @Summary Trigger one poll cycle
// @Description Runs one fetch, extract, decide, notify, cache cycle on demand
// @Tags status
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /poll [post]
func (h *StatusHandler) TriggerPoll(c *fiber.Ctx) error {
	if err := h.service.RunCycle(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(fiber.Map{
		"message": "poll cycle completed",
	})
}

// TriggerCurrentStatus godoc
// @Summary Send a current-status notification
// @Description Fetches the current status and emails it, bypassing the schedule
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /notify/status [post]
func (h *StatusHandler) TriggerCurrentStatus(c *fiber.Ctx) error {
	if err := h.service.NotifyCurrentStatus(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   c.Locals("requestid").(string),
		})
	}

	return c.JSON(fiber.Map{
		"message": "current status notification sent",
	})
}

// TriggerTest godoc
// @Summary Send a test notification
// @Description Sends a static test notification email
// @Tags notifications
// @Produce json
// @Success 200 {object} map[string]string
// @Router /notify/test [post]
func (h *StatusHandler) TriggerTest(c *fiber.Ctx) error {
	h.service.SendTestNotification(c.Context())

	return c.JSON(fiber.Map{
		"message": "test notification sent",
	})
}
