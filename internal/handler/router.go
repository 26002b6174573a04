package handler

import (
	"go-expiry-tracker/internal/middleware"
	"go-expiry-tracker/internal/model"
	"go-expiry-tracker/internal/ws"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles every HTTP handler the API exposes
type Handlers struct {
	Auth      *AuthHandler
	Brand     *BrandHandler
	Category  *CategoryHandler
	User      *UserHandler
	Inventory *InventoryHandler
	Dashboard *DashboardHandler
	Role      *RoleHandler
}

// SetupRoutes mounts the REST API under /api/v1, the websocket at /ws and
// a health check at /health
func SetupRoutes(app *fiber.App, h Handlers, auth middleware.Authenticator, hub *ws.Hub) {
	requireAuth := middleware.RequireAuth(auth)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "ws_clients": hub.ClientCount()})
	})

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/reset-password", h.Auth.ResetPassword)
	authGroup.Post("/validate-token", h.Auth.ValidateToken)
	authGroup.Post("/logout", requireAuth, h.Auth.Logout)
	authGroup.Get("/session", requireAuth, h.Auth.Session)
	authGroup.Post("/heartbeat", requireAuth, h.Auth.Heartbeat)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequirePrivilege(model.PrivDashboardView), h.Dashboard.GetDashboardStats)
	protected.Get("/dashboard/expiry-timeline", middleware.RequirePrivilege(model.PrivDashboardView), h.Dashboard.GetExpiryTimeline)
	protected.Get("/dashboard/discounts", middleware.RequirePrivilege(model.PrivDashboardView), h.Dashboard.GetDiscounts)

	// Inventory
	protected.Get("/products", middleware.RequirePrivilege(model.PrivProductView), h.Inventory.GetProducts)
	protected.Post("/products", middleware.RequirePrivilege(model.PrivProductCreate), h.Inventory.CreateProduct)
	protected.Patch("/products/:id/taken-out", middleware.RequirePrivilege(model.PrivProductUpdate), h.Inventory.ToggleTakenOut)
	protected.Delete("/products/:id", middleware.RequirePrivilege(model.PrivProductDelete), h.Inventory.DeleteProduct)
	protected.Get("/catalog", middleware.RequirePrivilege(model.PrivProductView), h.Inventory.GetCatalog)
	protected.Post("/catalog", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.Inventory.CreateCatalogProduct)
	protected.Put("/catalog/:code", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.Inventory.UpdateCatalogProduct)
	protected.Delete("/catalog/:code", middleware.RequireRole(model.RoleAdmin, model.RoleManager), h.Inventory.DeleteCatalogProduct)
	protected.Get("/catalog/:code/barcode.png", middleware.RequirePrivilege(model.PrivProductView), h.Inventory.GetBarcode)
	protected.Get("/lookup/:code", middleware.RequireAnyPrivilege(model.PrivProductView, model.PrivProductCreate), h.Inventory.Lookup)

	// Brands (options before :id)
	protected.Get("/brands/options", middleware.RequireAnyPrivilege(model.PrivBrandView, model.PrivProductCreate), h.Brand.GetOptions)
	protected.Get("/brands", middleware.RequirePrivilege(model.PrivBrandView), h.Brand.GetBrands)
	protected.Get("/brands/:id", middleware.RequirePrivilege(model.PrivBrandView), h.Brand.GetBrand)
	protected.Post("/brands", middleware.RequirePrivilege(model.PrivBrandCreate), h.Brand.CreateBrand)
	protected.Put("/brands/:id", middleware.RequirePrivilege(model.PrivBrandUpdate), h.Brand.UpdateBrand)
	protected.Delete("/brands/:id", middleware.RequirePrivilege(model.PrivBrandDelete), h.Brand.DeleteBrand)

	// Categories
	protected.Get("/categories/options", middleware.RequireAnyPrivilege(model.PrivCategoryView, model.PrivProductCreate), h.Category.GetOptions)
	protected.Get("/categories", middleware.RequirePrivilege(model.PrivCategoryView), h.Category.GetCategories)
	protected.Get("/categories/:id", middleware.RequirePrivilege(model.PrivCategoryView), h.Category.GetCategory)
	protected.Post("/categories", middleware.RequirePrivilege(model.PrivCategoryCreate), h.Category.CreateCategory)
	protected.Put("/categories/:id", middleware.RequirePrivilege(model.PrivCategoryUpdate), h.Category.UpdateCategory)
	protected.Delete("/categories/:id", middleware.RequirePrivilege(model.PrivCategoryDelete), h.Category.DeleteCategory)
	protected.Post("/categories/:id/discount-days", middleware.RequirePrivilege(model.PrivCategoryUpdate), h.Category.AddDiscountDay)
	protected.Delete("/categories/:id/discount-days/:day", middleware.RequirePrivilege(model.PrivCategoryUpdate), h.Category.RemoveDiscountDay)

	// User management
	protected.Get("/users", middleware.RequirePrivilege(model.PrivUserView), h.User.GetUsers)
	protected.Get("/users/:id", middleware.RequirePrivilege(model.PrivUserView), h.User.GetUser)
	protected.Post("/users", middleware.RequirePrivilege(model.PrivUserCreate), h.User.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege(model.PrivUserUpdate), h.User.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege(model.PrivUserDelete), h.User.DeleteUser)

	// Roles and privileges
	protected.Get("/roles", h.Role.GetRoles)
	protected.Get("/privileges", h.Role.GetPrivileges)

	// WebSocket
	app.Use("/ws", WSUpgrade(auth))
	app.Get("/ws", WSHandler(hub))
}
