package handler

import "github.com/gofiber/fiber/v2"

type Handlers struct {
	Auth      *AuthHandler
	Menu      *MenuHandler
	Order     *OrderHandler
	Stock     *StockHandler
	Revenue   *RevenueHandler
	Dashboard *DashboardHandler
}

// RegisterRoutes mounts the REST API on api. Routes wrapped with admin need
// a bearer token.
func RegisterRoutes(api fiber.Router, h Handlers, admin fiber.Handler) {
	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/verify", h.Auth.Verify)

	menu := api.Group("/menu")
	menu.Get("/", h.Menu.GetMenu)
	menu.Get("/category/:category", h.Menu.GetMenuByCategory)
	menu.Get("/:id", h.Menu.GetMenuItem)
	menu.Put("/:id", admin, h.Menu.UpdateMenuItem)

	orders := api.Group("/orders")
	orders.Post("/", h.Order.CreateOrder)
	orders.Get("/", admin, h.Order.GetOrders)
	orders.Get("/:id", h.Order.GetOrder)
	orders.Patch("/:id/status", admin, h.Order.UpdateStatus)

	// ============ ADMIN ROUTES ============
	stock := api.Group("/stock", admin)
	stock.Get("/", h.Stock.GetStock)
	stock.Post("/update", h.Stock.BulkUpdate)
	stock.Put("/:id", h.Stock.UpdateOne)

	revenue := api.Group("/revenue", admin)
	revenue.Get("/daily", h.Revenue.GetDaily)
	revenue.Put("/cash", h.Revenue.SetCashReceived)
	revenue.Post("/verify", h.Revenue.Verify)
	revenue.Get("/history", h.Revenue.History)

	dashboard := api.Group("/dashboard", admin)
	dashboard.Get("/stats", h.Dashboard.GetDashboardStats)
	dashboard.Get("/sales", h.Dashboard.GetSalesTrend)
}
