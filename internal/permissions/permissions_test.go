package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	held := []Code{ViewSales, UsePOS}

	assert.True(t, Check(held, ViewSales))
	assert.True(t, Check(held, ManageSales, UsePOS))
	assert.False(t, Check(held, ManageSales))
	assert.False(t, Check(held))
	assert.False(t, Check(nil, ViewSales))
}

func TestCheckWildcard(t *testing.T) {
	held := []Code{AdminAll}

	assert.True(t, Check(held, ManageUsers))
	assert.True(t, Check(held, ManageSales, ViewSales))
	// The wildcard satisfies even an empty requirement.
	assert.True(t, Check(held))
}

func TestCatalogCoversAllCodes(t *testing.T) {
	for _, code := range []Code{
		ManageInventory, ViewInventory, ManageShoes, ViewShoes,
		ManageVariants, ViewVariants, ManageBrands, ViewBrands,
		ManageCategories, ViewCategories, ManageSizes, ViewSizes, ManageStocks,
		ManageSales, ViewSales, ManageUsers, ViewUsers,
		UsePOS, PrintReceipts,
		ManageRoles, ManageRolePermissions, RequestReports, AdminAll,
	} {
		assert.Contains(t, Catalog, code)
	}
}

func TestFromStrings(t *testing.T) {
	codes := FromStrings([]string{"view_sales", "use_pos"})
	assert.Equal(t, []Code{ViewSales, UsePOS}, codes)
}
