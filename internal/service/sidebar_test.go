package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/syande/shoestore-service/internal/permissions"
)

func TestFilterMenuByPermission(t *testing.T) {
	held := []permissions.Code{permissions.ViewSales}

	entries := FilterMenu(held, "Sales")
	captions := make([]string, 0, len(entries))
	for _, e := range entries {
		captions = append(captions, e.Caption)
	}
	assert.Equal(t, []string{"Sales", "Returns"}, captions)

	// Sales permissions grant nothing under Management.
	assert.Empty(t, FilterMenu(held, "Management"))
}

func TestFilterMenuWildcard(t *testing.T) {
	held := []permissions.Code{permissions.AdminAll}

	for _, category := range MenuCategories() {
		entries := FilterMenu(held, category)
		assert.Equal(t, len(menuTree[category]), len(entries), category)
	}
}

func TestFilterMenuUnknownCategory(t *testing.T) {
	entries := FilterMenu([]permissions.Code{permissions.AdminAll}, "Nope")
	assert.Empty(t, entries)
}

func TestFilterMenuNoPermissions(t *testing.T) {
	for _, category := range MenuCategories() {
		assert.Empty(t, FilterMenu(nil, category))
	}
}
