// internal/router/router.go
package router

import (
	"net/http"

	"github.com/syande/shoestore-service/internal/api/handler"
	"github.com/syande/shoestore-service/internal/middleware"
	"github.com/syande/shoestore-service/internal/permissions"
	"github.com/syande/shoestore-service/internal/service"
	"github.com/syande/shoestore-service/internal/session"
	"github.com/syande/shoestore-service/internal/websockets"
)

// Services bundles everything the router wires handlers to.
type Services struct {
	Auth       *service.AuthService
	Sale       *service.SaleService
	Catalog    *service.CatalogService
	Management *service.ManagementService
}

// Router handles HTTP routing
type Router struct {
	mux      *http.ServeMux
	services Services
	hub      *websockets.Hub

	store      *session.Store
	cookieName string

	chain func(http.Handler) http.Handler
}

// New creates a new router. Every route passes through the logger and the
// session cookie middleware; protected routes add auth and permission checks
// per route.
func New(services Services, store *session.Store, cookieName string, hub *websockets.Hub) *Router {
	r := &Router{
		mux:        http.NewServeMux(),
		services:   services,
		hub:        hub,
		store:      store,
		cookieName: cookieName,
	}

	withSession := middleware.WithSession(store, cookieName)
	r.chain = func(next http.Handler) http.Handler {
		return middleware.Logger(withSession(next))
	}

	r.setupRoutes()

	return r
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// authed gates a route on a live authenticated session.
func (r *Router) authed(h http.HandlerFunc) http.Handler {
	return r.chain(middleware.RequireAuth(r.services.Auth)(h))
}

// protected gates a route on a live session holding any of the given codes.
func (r *Router) protected(h http.HandlerFunc, codes ...permissions.Code) http.Handler {
	return r.chain(
		middleware.RequireAuth(r.services.Auth)(
			middleware.RequirePermission(r.services.Auth, codes...)(h),
		),
	)
}

// setupRoutes sets up the routes for the router
func (r *Router) setupRoutes() {
	auth := handler.NewAuthHandler(r.services.Auth, r.store, r.cookieName)
	sale := handler.NewSaleHandler(r.services.Sale)
	inventory := handler.NewInventoryHandler(r.services.Catalog)
	user := handler.NewUserHandler(r.services.Management)
	sidebar := handler.NewSidebarHandler()
	ws := handler.NewWebSocketHandler(r.hub)

	// Public routes: the session middleware runs so the OTP machine has a
	// session to write to, but no auth is required.
	r.mux.Handle("POST /api/auth/request_otp", r.chain(http.HandlerFunc(auth.RequestOTP)))
	r.mux.Handle("POST /api/auth/verify_otp", r.chain(http.HandlerFunc(auth.VerifyOTP)))
	r.mux.Handle("POST /api/auth/register", r.chain(http.HandlerFunc(auth.Register)))
	r.mux.Handle("POST /api/auth/login", r.chain(http.HandlerFunc(auth.Login)))
	r.mux.Handle("POST /api/auth/logout", r.chain(http.HandlerFunc(auth.Logout)))

	r.mux.Handle("GET /ws", r.authed(ws.Serve))

	// Sidebar: any authenticated user; entries are filtered by the
	// permission set rather than gated on one code.
	sidebarMenu := middleware.RequireAuth(r.services.Auth)(
		middleware.WithPermissions(r.services.Auth)(http.HandlerFunc(sidebar.Menu)),
	)
	r.mux.Handle("GET /api/sidebar", r.authed(sidebar.Categories))
	r.mux.Handle("GET /api/sidebar/{category}", r.chain(sidebarMenu))

	// viewInventory builds the read-access code set for one catalog area:
	// the blanket inventory codes plus the area's own view/manage pair.
	viewInventory := func(extra ...permissions.Code) []permissions.Code {
		codes := []permissions.Code{permissions.ManageInventory, permissions.ViewInventory}
		return append(codes, extra...)
	}

	// Brands
	r.mux.Handle("GET /api/brands", r.protected(inventory.ListBrands,
		viewInventory(permissions.ViewBrands, permissions.ManageBrands)...))
	r.mux.Handle("POST /api/brands", r.protected(inventory.CreateBrand,
		permissions.ManageInventory, permissions.ManageBrands))
	r.mux.Handle("PUT /api/brands/{id}", r.protected(inventory.UpdateBrand,
		permissions.ManageInventory, permissions.ManageBrands))
	r.mux.Handle("DELETE /api/brands/{id}", r.protected(inventory.DeleteBrand,
		permissions.ManageInventory, permissions.ManageBrands))

	// Categories
	r.mux.Handle("GET /api/categories", r.protected(inventory.ListCategories,
		viewInventory(permissions.ViewCategories, permissions.ManageCategories)...))
	r.mux.Handle("POST /api/categories", r.protected(inventory.CreateCategory,
		permissions.ManageInventory, permissions.ManageCategories))
	r.mux.Handle("PUT /api/categories/{id}", r.protected(inventory.UpdateCategory,
		permissions.ManageInventory, permissions.ManageCategories))
	r.mux.Handle("DELETE /api/categories/{id}", r.protected(inventory.DeleteCategory,
		permissions.ManageInventory, permissions.ManageCategories))

	// Sizes
	r.mux.Handle("GET /api/sizes", r.protected(inventory.ListSizes,
		viewInventory(permissions.ViewSizes, permissions.ManageSizes)...))
	r.mux.Handle("POST /api/sizes", r.protected(inventory.CreateSize,
		permissions.ManageInventory, permissions.ManageSizes))
	r.mux.Handle("DELETE /api/sizes/{id}", r.protected(inventory.DeleteSize,
		permissions.ManageInventory, permissions.ManageSizes))

	// Shoes
	viewShoes := viewInventory(permissions.ViewShoes, permissions.ManageShoes)
	r.mux.Handle("GET /api/shoes", r.protected(inventory.ListShoes, viewShoes...))
	r.mux.Handle("GET /api/shoes/count", r.protected(inventory.CountShoes, viewShoes...))
	r.mux.Handle("GET /api/shoes/popular", r.protected(inventory.PopularShoes,
		viewInventory(permissions.ViewShoes, permissions.ManageShoes,
			permissions.ViewSales, permissions.RequestReports)...))
	r.mux.Handle("GET /api/shoes/{id}", r.protected(inventory.GetShoe, viewShoes...))
	r.mux.Handle("GET /api/shoes/{id}/variants", r.protected(inventory.ShoeVariants, viewShoes...))
	r.mux.Handle("POST /api/shoes", r.protected(inventory.CreateShoe,
		permissions.ManageInventory, permissions.ManageShoes))
	r.mux.Handle("PUT /api/shoes/{id}", r.protected(inventory.UpdateShoe,
		permissions.ManageInventory, permissions.ManageShoes))
	r.mux.Handle("DELETE /api/shoes/{id}", r.protected(inventory.DeleteShoe,
		permissions.ManageInventory, permissions.ManageShoes))

	// Variants
	viewVariants := viewInventory(permissions.ViewVariants, permissions.ManageVariants)
	r.mux.Handle("GET /api/variants", r.protected(inventory.ListVariants, viewVariants...))
	r.mux.Handle("GET /api/variants/low-stock", r.protected(inventory.LowStockVariants,
		viewInventory(permissions.ViewVariants, permissions.ManageVariants,
			permissions.ManageStocks)...))
	r.mux.Handle("POST /api/variants", r.protected(inventory.CreateVariant,
		permissions.ManageInventory, permissions.ManageVariants))
	r.mux.Handle("PUT /api/variants/{id}", r.protected(inventory.UpdateVariant,
		permissions.ManageInventory, permissions.ManageVariants, permissions.ManageStocks))
	r.mux.Handle("DELETE /api/variants/{id}", r.protected(inventory.DeleteVariant,
		permissions.ManageInventory, permissions.ManageVariants))

	// Sales
	r.mux.Handle("POST /api/sales/add", r.protected(sale.CreateSale,
		permissions.ManageSales, permissions.UsePOS))
	r.mux.Handle("GET /api/sales", r.protected(sale.ListSales,
		permissions.ManageSales, permissions.ViewSales))
	r.mux.Handle("GET /api/sales/summary", r.protected(sale.Summary,
		permissions.ViewSales, permissions.RequestReports))
	r.mux.Handle("GET /api/sales/summary/monthly", r.protected(sale.MonthlySummary,
		permissions.ViewSales, permissions.RequestReports))
	r.mux.Handle("GET /api/sales/{id}", r.protected(sale.GetSale,
		permissions.ManageSales, permissions.ViewSales))
	r.mux.Handle("GET /api/sales/{id}/items", r.protected(sale.SaleItems,
		permissions.ManageSales, permissions.ViewSales))
	r.mux.Handle("PUT /api/sales/{id}", r.protected(sale.UpdateSale, permissions.ManageSales))
	r.mux.Handle("DELETE /api/sales/{id}", r.protected(sale.DeleteSale, permissions.ManageSales))

	// Returns
	r.mux.Handle("POST /api/returns", r.protected(sale.CreateReturn,
		permissions.ManageSales, permissions.UsePOS))
	r.mux.Handle("GET /api/returns", r.protected(sale.ListReturns,
		permissions.ManageSales, permissions.ViewSales))
	r.mux.Handle("GET /api/returns/{id}", r.protected(sale.GetReturn,
		permissions.ManageSales, permissions.ViewSales))
	r.mux.Handle("PUT /api/returns/{id}", r.protected(sale.UpdateReturn, permissions.ManageSales))
	r.mux.Handle("DELETE /api/returns/{id}", r.protected(sale.DeleteReturn, permissions.ManageSales))

	// Users
	r.mux.Handle("GET /api/users", r.protected(user.ListUsers,
		permissions.ManageUsers, permissions.ViewUsers))
	r.mux.Handle("PUT /api/users/password", r.authed(user.ChangePassword))
	r.mux.Handle("GET /api/users/{id}", r.protected(user.GetUser,
		permissions.ManageUsers, permissions.ViewUsers))
	r.mux.Handle("GET /api/users/{id}/phones", r.protected(user.UserPhones,
		permissions.ManageUsers, permissions.ViewUsers))
	r.mux.Handle("GET /api/users/{id}/emails", r.protected(user.UserEmails,
		permissions.ManageUsers, permissions.ViewUsers))
	r.mux.Handle("GET /api/users/{id}/roles", r.protected(user.UserRoles,
		permissions.ManageUsers, permissions.ViewUsers, permissions.ManageRoles))
	r.mux.Handle("POST /api/users/{id}/roles", r.protected(user.AssignRole, permissions.ManageRoles))
	r.mux.Handle("DELETE /api/users/{id}", r.protected(user.DeleteUser, permissions.ManageUsers))

	// Roles and permissions
	r.mux.Handle("GET /api/roles", r.protected(user.ListRoles,
		permissions.ManageRoles, permissions.ManageRolePermissions))
	r.mux.Handle("POST /api/roles", r.protected(user.CreateRole, permissions.ManageRoles))
	r.mux.Handle("DELETE /api/roles/{id}", r.protected(user.DeleteRole, permissions.ManageRoles))
	r.mux.Handle("POST /api/roles/{id}/permissions", r.protected(user.GrantPermission,
		permissions.ManageRolePermissions))

	// Admin assignment tables
	r.mux.Handle("GET /api/admin/permissions", r.protected(user.ListPermissions,
		permissions.ManageRoles, permissions.ManageRolePermissions))
	r.mux.Handle("GET /api/admin/user-roles", r.protected(user.ListUserRoles,
		permissions.ManageUsers, permissions.ManageRoles))
	r.mux.Handle("GET /api/admin/role-permissions", r.protected(user.ListRolePermissions,
		permissions.ManageRoles, permissions.ManageRolePermissions))
}
