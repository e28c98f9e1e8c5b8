package handler

import (
	"net/http"

	"github.com/syande/shoestore-service/internal/api"
	"github.com/syande/shoestore-service/internal/models"
	"github.com/syande/shoestore-service/internal/service"
)

// InventoryHandler handles catalog requests: brands, categories, sizes,
// shoes and variants.
type InventoryHandler struct {
	catalogService *service.CatalogService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(catalogService *service.CatalogService) *InventoryHandler {
	return &InventoryHandler{
		catalogService: catalogService,
	}
}

func (h *InventoryHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalogService.ListBrands(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "brands", brands)
}

func (h *InventoryHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req models.BrandRequest
	if !decodeValid(w, r, &req) {
		return
	}

	brand, err := h.catalogService.CreateBrand(r.Context(), req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, "brand created", brand)
}

func (h *InventoryHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.BrandRequest
	if !decodeValid(w, r, &req) {
		return
	}

	if err := h.catalogService.UpdateBrand(r.Context(), id, req); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "brand updated", nil)
}

func (h *InventoryHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteBrand(r.Context(), id); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "brand deleted", nil)
}

func (h *InventoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "categories", categories)
}

func (h *InventoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if !decodeValid(w, r, &req) {
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, "category created", category)
}

func (h *InventoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CategoryRequest
	if !decodeValid(w, r, &req) {
		return
	}

	if err := h.catalogService.UpdateCategory(r.Context(), id, req); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "category updated", nil)
}

func (h *InventoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "category deleted", nil)
}

func (h *InventoryHandler) ListSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.catalogService.ListSizes(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "sizes", sizes)
}

func (h *InventoryHandler) CreateSize(w http.ResponseWriter, r *http.Request) {
	var req models.SizeRequest
	if !decodeValid(w, r, &req) {
		return
	}

	size, err := h.catalogService.CreateSize(r.Context(), req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, "size created", size)
}

func (h *InventoryHandler) DeleteSize(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteSize(r.Context(), id); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "size deleted", nil)
}

// ListShoes lists shoes with optional search and paging query parameters.
func (h *InventoryHandler) ListShoes(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	shoes, err := h.catalogService.ListShoes(r.Context(), search, limit, offset)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "shoes", shoes)
}

func (h *InventoryHandler) CountShoes(w http.ResponseWriter, r *http.Request) {
	count, err := h.catalogService.CountShoes(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "shoe count", struct {
		Count int `json:"count"`
	}{Count: count})
}

func (h *InventoryHandler) PopularShoes(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 10)

	shoes, err := h.catalogService.PopularShoes(r.Context(), limit)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "popular shoes", shoes)
}

func (h *InventoryHandler) GetShoe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	shoe, err := h.catalogService.GetShoe(r.Context(), id)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "shoe", shoe)
}

func (h *InventoryHandler) CreateShoe(w http.ResponseWriter, r *http.Request) {
	var req models.ShoeRequest
	if !decodeValid(w, r, &req) {
		return
	}

	shoe, err := h.catalogService.CreateShoe(r.Context(), req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, "shoe created", shoe)
}

func (h *InventoryHandler) UpdateShoe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.ShoeRequest
	if !decodeValid(w, r, &req) {
		return
	}

	if err := h.catalogService.UpdateShoe(r.Context(), id, req); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "shoe updated", nil)
}

func (h *InventoryHandler) DeleteShoe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteShoe(r.Context(), id); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "shoe deleted", nil)
}

func (h *InventoryHandler) ShoeVariants(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	variants, err := h.catalogService.VariantsForShoe(r.Context(), id)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "shoe variants", variants)
}

func (h *InventoryHandler) ListVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := h.catalogService.ListVariants(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "variants", variants)
}

func (h *InventoryHandler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	var req models.VariantRequest
	if !decodeValid(w, r, &req) {
		return
	}

	variant, err := h.catalogService.CreateVariant(r.Context(), req)
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusCreated, "variant created", variant)
}

func (h *InventoryHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.VariantRequest
	if !decodeValid(w, r, &req) {
		return
	}

	if err := h.catalogService.UpdateVariant(r.Context(), id, req); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "variant updated", nil)
}

func (h *InventoryHandler) DeleteVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteVariant(r.Context(), id); err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "variant deleted", nil)
}

// LowStockVariants lists variants at or below the configured threshold.
func (h *InventoryHandler) LowStockVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := h.catalogService.LowStockVariants(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}
	api.Respond(w, http.StatusOK, "low stock variants", variants)
}
