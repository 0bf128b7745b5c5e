package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/almacen-kardex/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve totales del inventario, productos con stock bajo y últimos movimientos.
// GET /api/dashboard/summary
//
// No requiere parámetros; considera todos los productos (activos e inactivos).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
