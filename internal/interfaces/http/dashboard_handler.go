package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/retail-inventory/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve las métricas del negocio.
// GET /api/dashboard
//
// Respuesta: DashboardSummaryDTO (totalItems, spaceUtilization, lowStockItems,
// totalValue, locationsAtRisk). Siempre en vivo.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
