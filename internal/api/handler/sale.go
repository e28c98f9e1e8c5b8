package handler

import (
	"net/http"

	"github.com/syande/shoestore-service/internal/api"
	"github.com/syande/shoestore-service/internal/middleware"
	"github.com/syande/shoestore-service/internal/models"
	"github.com/syande/shoestore-service/internal/service"
)

// SaleHandler handles sale and return requests.
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

// CreateSale records a sale for the logged-in cashier. The superadmin
// maintenance login has no user row and cannot act as a cashier.
func (h *SaleHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req models.SaleRequest
	if !decodeValid(w, r, &req) {
		return
	}

	sess, ok := middleware.GetSession(r.Context())
	if !ok {
		api.RespondError(w, service.ErrUnauthorized)
		return
	}

	sess.Lock()
	userID := sess.UserID
	sess.Unlock()

	if userID == nil {
		api.RespondError(w, service.ErrForbidden)
		return
	}

	sale, err := h.saleService.RecordSale(r.Context(), *userID, req)
	if err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusCreated, "sale recorded", sale)
}

// ListSales lists recent sales.
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.saleService.ListSales(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "sales", sales)
}

// GetSale retrieves one sale with its items.
func (h *SaleHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(r.Context(), id)
	if err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "sale", sale)
}

// SaleItems lists the line items of one sale.
func (h *SaleHandler) SaleItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.saleService.SaleItems(r.Context(), id)
	if err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "sale items", items)
}

// UpdateSale rewrites a sale header.
func (h *SaleHandler) UpdateSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.SaleUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	req.SaleID = id

	if err := h.saleService.UpdateSale(r.Context(), req); err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "sale updated", nil)
}

// DeleteSale removes a sale and its items.
func (h *SaleHandler) DeleteSale(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(r.Context(), id); err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "sale deleted", nil)
}

// CreateReturn records a return against an existing sale.
func (h *SaleHandler) CreateReturn(w http.ResponseWriter, r *http.Request) {
	var req models.ReturnRequest
	if !decodeValid(w, r, &req) {
		return
	}

	ret, err := h.saleService.RecordReturn(r.Context(), req)
	if err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusCreated, "return recorded", ret)
}

// ListReturns lists all returns.
func (h *SaleHandler) ListReturns(w http.ResponseWriter, r *http.Request) {
	returns, err := h.saleService.ListReturns(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "returns", returns)
}

// GetReturn retrieves one return.
func (h *SaleHandler) GetReturn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ret, err := h.saleService.GetReturn(r.Context(), id)
	if err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "return", ret)
}

// UpdateReturn rewrites a return.
func (h *SaleHandler) UpdateReturn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.ReturnUpdateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	req.ReturnID = id

	if err := h.saleService.UpdateReturn(r.Context(), req); err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "return updated", nil)
}

// DeleteReturn removes a return.
func (h *SaleHandler) DeleteReturn(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.saleService.DeleteReturn(r.Context(), id); err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "return deleted", nil)
}

// Summary reports all-time sales totals.
func (h *SaleHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.saleService.Summary(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "sales summary", summary)
}

// MonthlySummary reports per-month sales rollups.
func (h *SaleHandler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	months, err := h.saleService.MonthlySummary(r.Context())
	if err != nil {
		api.RespondError(w, err)
		return
	}

	api.Respond(w, http.StatusOK, "monthly sales", months)
}
