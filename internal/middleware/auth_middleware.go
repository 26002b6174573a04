package middleware

import (
	"context"
	"errors"
	"strings"

	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/service"
	"go-expiry-tracker/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// Authenticator resolves a bearer token to the user it was issued to
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (*model.User, error)
}

// BearerToken extracts the token from "Authorization: Bearer <token>"
func BearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", jwt.ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization format. Use: Bearer <token>")
	}
	return parts[1], nil
}

// authMessage keeps session errors readable and hides everything else
func authMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrMissingToken),
		errors.Is(err, service.ErrSessionSuperseded),
		errors.Is(err, service.ErrSessionTimeout),
		errors.Is(err, service.ErrUserInactive):
		return err.Error()
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	}
	return "Invalid or expired token"
}

// SetUser stores the authenticated user in the request locals
func SetUser(c *fiber.Ctx, user *model.User) {
	c.Locals("user_id", user.ID.String())
	c.Locals("user_email", user.Email)
	c.Locals("user_name", user.Username)
	c.Locals("user_role", string(user.Role))
	c.Locals("user_privileges", user.Role.Privileges())
}

// RequireAuth validates the bearer token and sets user info in context
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := BearerToken(c)
		if err != nil {
			if errors.Is(err, jwt.ErrMissingToken) {
				return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
			}
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}

		user, err := auth.Authenticate(c.UserContext(), tokenString)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": authMessage(err)})
		}

		SetUser(c, user)
		return c.Next()
	}
}

// HasPrivilege reports whether the authenticated user holds code
func HasPrivilege(c *fiber.Ctx, code string) bool {
	privileges, _ := c.Locals("user_privileges").([]string)
	for _, p := range privileges {
		if p == code {
			return true
		}
	}
	return false
}

// RequirePrivilege checks if the authenticated user has the required privilege
func RequirePrivilege(requiredPrivilege string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("user_privileges").([]string); !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}
		if HasPrivilege(c, requiredPrivilege) {
			return c.Next()
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires '" + requiredPrivilege + "' privilege",
		})
	}
}

// RequireAnyPrivilege checks if the user has at least one of the specified privileges
func RequireAnyPrivilege(requiredPrivileges ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := c.Locals("user_privileges").([]string); !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No privileges found"})
		}
		for _, p := range requiredPrivileges {
			if HasPrivilege(c, p) {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(requiredPrivileges, ", ") + " privileges",
		})
	}
}

// RequireRole admits only the listed roles
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("user_role").(string)
		for _, r := range roles {
			if string(r) == role {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Forbidden: role not allowed"})
	}
}
