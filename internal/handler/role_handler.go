package handler

import (
	"go-expiry-tracker/internal/model"

	"github.com/gofiber/fiber/v2"
)

// RoleHandler serves the static role table
type RoleHandler struct{}

func NewRoleHandler() *RoleHandler {
	return &RoleHandler{}
}

// GetRoles returns all available roles with their privileges
// GET /api/v1/roles
func (h *RoleHandler) GetRoles(c *fiber.Ctx) error {
	roles := make([]model.RoleInfo, 0, len(model.Roles))
	for _, r := range model.Roles {
		roles = append(roles, r.Info())
	}
	return c.JSON(roles)
}

// GetPrivileges lists every privilege
// GET /api/v1/privileges
func (h *RoleHandler) GetPrivileges(c *fiber.Ctx) error {
	return c.JSON(model.DefaultPrivileges)
}
