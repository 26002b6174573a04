package model

// Privilege represents a permission carried in the session token
type Privilege struct {
	Code string `json:"code"` // e.g., "product:create"
	Name string `json:"name"` // e.g., "Create Product"
}

const (
	PrivUserView   = "user:view"
	PrivUserCreate = "user:create"
	PrivUserUpdate = "user:update"
	PrivUserDelete = "user:delete"

	PrivBrandView   = "brand:view"
	PrivBrandCreate = "brand:create"
	PrivBrandUpdate = "brand:update"
	PrivBrandDelete = "brand:delete"

	PrivCategoryView   = "category:view"
	PrivCategoryCreate = "category:create"
	PrivCategoryUpdate = "category:update"
	PrivCategoryDelete = "category:delete"

	PrivProductView    = "product:view"
	PrivProductViewAll = "product:view_all"
	PrivProductCreate  = "product:create"
	PrivProductUpdate  = "product:update"
	PrivProductDelete  = "product:delete"

	PrivDashboardView = "dashboard:view"
)

// DefaultPrivileges is every privilege known to the system
var DefaultPrivileges = []Privilege{
	// User management
	{Code: PrivUserView, Name: "View User"},
	{Code: PrivUserCreate, Name: "Create User"},
	{Code: PrivUserUpdate, Name: "Update User"},
	{Code: PrivUserDelete, Name: "Delete User"},
	// Brands
	{Code: PrivBrandView, Name: "View Brand"},
	{Code: PrivBrandCreate, Name: "Create Brand"},
	{Code: PrivBrandUpdate, Name: "Update Brand"},
	{Code: PrivBrandDelete, Name: "Delete Brand"},
	// Categories
	{Code: PrivCategoryView, Name: "View Category"},
	{Code: PrivCategoryCreate, Name: "Create Category"},
	{Code: PrivCategoryUpdate, Name: "Update Category"},
	{Code: PrivCategoryDelete, Name: "Delete Category"},
	// Inventory
	{Code: PrivProductView, Name: "View Own Products"},
	{Code: PrivProductViewAll, Name: "View All Products"},
	{Code: PrivProductCreate, Name: "Create Product"},
	{Code: PrivProductUpdate, Name: "Update Product"},
	{Code: PrivProductDelete, Name: "Delete Product"},
	// Dashboard
	{Code: PrivDashboardView, Name: "View Dashboard"},
}

func PrivilegeCodes(privileges []Privilege) []string {
	codes := make([]string, len(privileges))
	for i, p := range privileges {
		codes[i] = p.Code
	}
	return codes
}
