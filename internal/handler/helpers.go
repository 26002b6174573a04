package handler

import (
	"errors"
	"strconv"

	"go-expiry-tracker/internal/barcode"
	"go-expiry-tracker/internal/middleware"
	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/service"
	"go-expiry-tracker/pkg/jwt"
	"go-expiry-tracker/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// getUserID returns the authenticated user's id (set by RequireAuth)
func getUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

func getUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(getUserID(c))
}

// viewer builds the inventory requester from the auth locals
func viewer(c *fiber.Ctx) (service.Viewer, error) {
	id, err := getUserUUID(c)
	if err != nil {
		return service.Viewer{}, err
	}
	return service.Viewer{
		UserID:  id,
		ViewAll: middleware.HasPrivilege(c, model.PrivProductViewAll),
	}, nil
}

func parseUUID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(param))
}

// optionalBool parses ?name=true|false; absent yields nil
func optionalBool(c *fiber.Ctx, name string) (*bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// respondError maps service sentinels to HTTP statuses. Anything unknown is
// logged and reported as 500 without leaking details.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, validator.ErrValidation),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidDay),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrSelfDelete),
		errors.Is(err, barcode.ErrUnsupported):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive),
		errors.Is(err, service.ErrSessionSuperseded),
		errors.Is(err, service.ErrSessionTimeout),
		errors.Is(err, jwt.ErrInvalidToken),
		errors.Is(err, jwt.ErrMissingToken):
		status = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrNotOwner):
		status = fiber.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBrandNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrProductNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrBrandExists),
		errors.Is(err, service.ErrCategoryExists),
		errors.Is(err, service.ErrDuplicateCode):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		return c.Status(status).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	log.Debug().Err(err).Int("status", status).Str("path", c.Path()).Msg("request rejected")
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
