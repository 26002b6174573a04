package model

// Role is the user's access level
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Roles lists every role, most privileged first
var Roles = []Role{RoleAdmin, RoleManager, RoleStaff}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// Privileges returns the privilege codes granted to the role
func (r Role) Privileges() []string {
	switch r {
	case RoleAdmin:
		return PrivilegeCodes(DefaultPrivileges)
	case RoleManager:
		var codes []string
		for _, p := range DefaultPrivileges {
			// user writes and cross-owner inventory stay admin-only
			if p.Code == PrivUserCreate || p.Code == PrivUserUpdate || p.Code == PrivUserDelete || p.Code == PrivProductViewAll {
				continue
			}
			codes = append(codes, p.Code)
		}
		return codes
	case RoleStaff:
		return []string{
			PrivBrandView,
			PrivCategoryView,
			PrivProductView,
			PrivProductCreate,
			PrivProductUpdate,
			PrivProductDelete,
			PrivDashboardView,
		}
	}
	return nil
}

// RoleInfo is the API representation of a role
type RoleInfo struct {
	Code       Role     `json:"code"`
	Name       string   `json:"name"`
	Privileges []string `json:"privileges"`
}

var roleNames = map[Role]string{
	RoleAdmin:   "Administrator",
	RoleManager: "Manager",
	RoleStaff:   "Staff",
}

func (r Role) Info() RoleInfo {
	return RoleInfo{Code: r, Name: roleNames[r], Privileges: r.Privileges()}
}
