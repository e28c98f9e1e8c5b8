package service

import (
	"github.com/syande/shoestore-service/internal/permissions"
)

// MenuEntry is one sidebar navigation item with the permission codes that
// make it visible.
type MenuEntry struct {
	Href        string             `json:"href"`
	Caption     string             `json:"caption"`
	Icon        string             `json:"icon"`
	Permissions []permissions.Code `json:"-"`
}

// menuTree is the static navigation catalog, keyed by sidebar category.
var menuTree = map[string][]MenuEntry{
	"Inventory": {
		{
			Href:    "/manage/inventory/shoes",
			Caption: "Shoes",
			Icon:    "fa-shoe-prints",
			Permissions: []permissions.Code{
				permissions.AdminAll,
				permissions.ManageInventory,
				permissions.ViewInventory,
				permissions.ViewShoes,
				permissions.ManageShoes,
			},
		},
		{
			Href:    "/manage/inventory/variants",
			Caption: "Variants",
			Icon:    "fa-cubes-stacked",
			Permissions: []permissions.Code{
				permissions.AdminAll,
				permissions.ManageInventory,
				permissions.ViewInventory,
				permissions.ViewVariants,
				permissions.ManageVariants,
			},
		},
		{
			Href:    "/manage/inventory/brands",
			Caption: "Brands",
			Icon:    "fa-tag",
			Permissions: []permissions.Code{
				permissions.AdminAll,
				permissions.ManageInventory,
				permissions.ViewInventory,
				permissions.ViewBrands,
				permissions.ManageBrands,
			},
		},
		{
			Href:    "/manage/inventory/sizes",
			Caption: "Sizes",
			Icon:    "fa-ruler",
			Permissions: []permissions.Code{
				permissions.AdminAll,
				permissions.ManageInventory,
				permissions.ViewInventory,
				permissions.ViewSizes,
				permissions.ManageSizes,
			},
		},
		{
			Href:    "/manage/inventory/categories",
			Caption: "Categories",
			Icon:    "fa-rectangle-list",
			Permissions: []permissions.Code{
				permissions.AdminAll,
				permissions.ManageInventory,
				permissions.ViewInventory,
				permissions.ViewCategories,
				permissions.ManageCategories,
			},
		},
	},
	"Sales": {
		{
			Href:    "/manage/sales/",
			Caption: "Sales",
			Icon:    "fa-arrow-trend-up",
			Permissions: []permissions.Code{
				permissions.AdminAll,
				permissions.ManageSales,
				permissions.ViewSales,
			},
		},
		{
			Href:    "/manage/returns/",
			Caption: "Returns",
			Icon:    "fa-right-left",
			Permissions: []permissions.Code{
				permissions.AdminAll,
				permissions.ManageInventory,
				permissions.ManageSales,
				permissions.ViewSales,
			},
		},
	},
	"Management": {
		{
			Href:    "/manage/users/",
			Caption: "Users",
			Icon:    "fa-users",
			Permissions: []permissions.Code{
				permissions.AdminAll,
				permissions.ManageUsers,
				permissions.ViewUsers,
			},
		},
		{
			Href:    "/manage/roles/",
			Caption: "Roles",
			Icon:    "fa-user-group",
			Permissions: []permissions.Code{
				permissions.AdminAll,
				permissions.ManageRoles,
				permissions.ManageRolePermissions,
			},
		},
	},
}

// MenuCategories lists the known sidebar categories.
func MenuCategories() []string {
	return []string{"Inventory", "Sales", "Management"}
}

// FilterMenu keeps the entries of a category the held permission set may
// see. Unknown categories yield an empty slice.
func FilterMenu(held []permissions.Code, category string) []MenuEntry {
	entries := menuTree[category]

	filtered := make([]MenuEntry, 0, len(entries))
	for _, entry := range entries {
		if permissions.Check(held, entry.Permissions...) {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}
