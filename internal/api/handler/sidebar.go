package handler

import (
	"net/http"

	"github.com/syande/shoestore-service/internal/api"
	"github.com/syande/shoestore-service/internal/middleware"
	"github.com/syande/shoestore-service/internal/service"
)

// SidebarHandler serves the permission-filtered navigation menu.
type SidebarHandler struct{}

// NewSidebarHandler creates a new sidebar handler
func NewSidebarHandler() *SidebarHandler {
	return &SidebarHandler{}
}

// Categories lists the known sidebar categories.
func (h *SidebarHandler) Categories(w http.ResponseWriter, r *http.Request) {
	api.Respond(w, http.StatusOK, "sidebar categories", service.MenuCategories())
}

// Menu returns the entries of one category the session may see. An unknown
// category is not an error; it just filters to nothing.
func (h *SidebarHandler) Menu(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	held, ok := middleware.GetPermissions(r.Context())
	if !ok {
		api.RespondError(w, service.ErrUnauthorized)
		return
	}

	api.Respond(w, http.StatusOK, "sidebar", service.FilterMenu(held, category))
}
