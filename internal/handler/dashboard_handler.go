package handler

import (
	"strconv"

	"go-expiry-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDashboardStats returns overview statistics for the rows the user can see
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	stats, err := h.service.GetDashboardStats(c.UserContext(), v)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// GetExpiryTimeline returns per-day expiry counts
// Query params: days (default 7)
func (h *DashboardHandler) GetExpiryTimeline(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	days, err := strconv.Atoi(c.Query("days", strconv.Itoa(service.DefaultTimelineDays)))
	if err != nil || days <= 0 {
		days = service.DefaultTimelineDays
	}

	data, err := h.service.GetExpiryTimeline(c.UserContext(), v, days)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"period": len(data),
		"data":   data,
	})
}

// GetDiscounts lists rows due for an expiry discount
func (h *DashboardHandler) GetDiscounts(c *fiber.Ctx) error {
	v, err := viewer(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	data, err := h.service.GetDiscounts(c.UserContext(), v)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(data)
}
