package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/retail-inventory/internal/application/analytics"
	"github.com/jhoicas/retail-inventory/internal/application/auth"
	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/application/reports"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ItemUC      *inventory.ItemUseCase
	StocktakeUC *inventory.StocktakeUseCase
	SearchUC    *usecase.SearchUseCase
	LocationUC  *usecase.LocationUseCase
	CategoryUC  *usecase.CategoryUseCase
	StaffUC     *usecase.StaffUseCase
	BusinessUC  *usecase.BusinessUseCase
	ReportUC    *reports.ReportUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWTSecret   string
	Cookie      SessionCookie
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authMW := AuthMiddleware(deps.JWTSecret, deps.Cookie.Name)

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Rutas protegidas (cookie de sesión o Bearer)
	protected := api.Group("/", authMW)

	searchHandler := NewSearchHandler(deps.SearchUC)
	search := protected.Group("/search")
	search.Get("/items", searchHandler.Items)
	search.Get("/categories", searchHandler.Categories)
	search.Get("/locations", searchHandler.Locations)

	inventoryHandler := NewInventoryHandler(deps.ItemUC, deps.StocktakeUC, deps.SearchUC)
	inv := protected.Group("/inventory")
	inv.Post("/items", inventoryHandler.CreateItem)
	inv.Get("/items/:id", inventoryHandler.GetItem)
	inv.Put("/items/:id", inventoryHandler.UpdateItem)
	inv.Delete("/items/:id", inventoryHandler.DeleteItem)
	inv.Post("/stocktake", inventoryHandler.Stocktake)
	inv.Get("/recent", inventoryHandler.Recent)

	locationHandler := NewLocationHandler(deps.LocationUC)
	locations := protected.Group("/locations")
	locations.Get("/", locationHandler.List)
	locations.Post("/", locationHandler.Create)
	locations.Post("/upload-image", locationHandler.UploadImage)
	locations.Get("/:id", locationHandler.Get)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	reportHandler := NewReportHandler(deps.ReportUC)
	rep := protected.Group("/reports")
	rep.Get("/low-stock", reportHandler.LowStock)
	rep.Get("/low-stock/pdf", reportHandler.LowStockPDF)
	rep.Get("/space-utilisation", reportHandler.SpaceUtilisation)
	rep.Get("/space-utilisation/pdf", reportHandler.SpaceUtilisationPDF)
	rep.Get("/snapshots", reportHandler.Snapshots)

	settings := protected.Group("/settings")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	settings.Get("/categories", categoryHandler.List)
	settings.Post("/categories", categoryHandler.Create)
	settings.Put("/categories/:id", categoryHandler.Update)
	settings.Delete("/categories/:id", categoryHandler.Delete)

	settingsHandler := NewSettingsHandler(deps.StaffUC, deps.BusinessUC)
	users := settings.Group("/users", RequireAdmin())
	users.Get("/", settingsHandler.ListUsers)
	users.Post("/", settingsHandler.CreateUser)
	users.Put("/:id", settingsHandler.UpdateUser)
	users.Delete("/:id", settingsHandler.DeleteUser)
	settings.Get("/business", settingsHandler.GetBusiness)
	settings.Put("/business", RequireAdmin(), settingsHandler.UpdateBusiness)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}
