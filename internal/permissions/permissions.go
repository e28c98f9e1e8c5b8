// Package permissions is the static catalog of permission codes gating the
// API. Codes are grouped by category; AdminAll is a wildcard satisfying any
// check.
package permissions

// Code is a permission code as stored in the permissions table.
type Code string

// Inventory permissions.
const (
	ManageInventory  Code = "manage_inventory"
	ViewInventory    Code = "view_inventory"
	ManageShoes      Code = "manage_shoes"
	ViewShoes        Code = "view_shoes"
	ManageVariants   Code = "manage_variants"
	ViewVariants     Code = "view_variants"
	ManageBrands     Code = "manage_brands"
	ViewBrands       Code = "view_brands"
	ManageCategories Code = "manage_categories"
	ViewCategories   Code = "view_categories"
	ManageSizes      Code = "manage_sizes"
	ViewSizes        Code = "view_sizes"
	ManageStocks     Code = "manage_stocks"
)

// Sales permissions.
const (
	ManageSales Code = "manage_sales"
	ViewSales   Code = "view_sales"
)

// User management permissions.
const (
	ManageUsers Code = "manage_users"
	ViewUsers   Code = "view_users"
)

// Point-of-sale permissions.
const (
	UsePOS        Code = "use_pos"
	PrintReceipts Code = "print_receipts"
)

// Management permissions. AdminAll is the wildcard granted to superadmin
// sessions.
const (
	ManageRoles           Code = "manage_roles"
	ManageRolePermissions Code = "manage_roles_permissions"
	RequestReports        Code = "request_reports"
	AdminAll              Code = "admin_all"
)

// Category labels as stored alongside each permission row.
const (
	CategoryInventory  = "inventory"
	CategorySales      = "sales"
	CategoryUsers      = "users"
	CategoryPOS        = "pos"
	CategoryManagement = "management"
)

// Catalog maps every known permission code to its category.
var Catalog = map[Code]string{
	ManageInventory:  CategoryInventory,
	ViewInventory:    CategoryInventory,
	ManageShoes:      CategoryInventory,
	ViewShoes:        CategoryInventory,
	ManageVariants:   CategoryInventory,
	ViewVariants:     CategoryInventory,
	ManageBrands:     CategoryInventory,
	ViewBrands:       CategoryInventory,
	ManageCategories: CategoryInventory,
	ViewCategories:   CategoryInventory,
	ManageSizes:      CategoryInventory,
	ViewSizes:        CategoryInventory,
	ManageStocks:     CategoryInventory,

	ManageSales: CategorySales,
	ViewSales:   CategorySales,

	ManageUsers: CategoryUsers,
	ViewUsers:   CategoryUsers,

	UsePOS:        CategoryPOS,
	PrintReceipts: CategoryPOS,

	ManageRoles:           CategoryManagement,
	ManageRolePermissions: CategoryManagement,
	RequestReports:        CategoryManagement,
	AdminAll:              CategoryManagement,
}

// Check reports whether the held set satisfies any of the required codes.
// AdminAll always satisfies, including an empty required set.
func Check(held []Code, required ...Code) bool {
	for _, h := range held {
		if h == AdminAll {
			return true
		}
	}

	for _, r := range required {
		for _, h := range held {
			if h == r {
				return true
			}
		}
	}

	return false
}

// FromStrings converts raw permission codes from the credential store.
func FromStrings(codes []string) []Code {
	out := make([]Code, len(codes))
	for i, c := range codes {
		out[i] = Code(c)
	}
	return out
}
