package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-inventory/internal/application/reports"
)

// ReportHandler reportes en vivo o sobre un snapshot (?snapshotId=), en JSON o PDF.
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Reporte de bajo stock
// @Tags         reports
// @Security     Session
// @Produce      json
// @Param        snapshotId  query  string  false  "snapshot histórico; vacío = datos en vivo"
// @Success      200  {object}  dto.LowStockReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext(), GetTenant(c), c.Query("snapshotId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SpaceUtilisation godoc
// @Summary      Reporte de utilización de espacio
// @Tags         reports
// @Security     Session
// @Produce      json
// @Param        snapshotId  query  string  false  "snapshot histórico; vacío = datos en vivo"
// @Success      200  {object}  dto.SpaceUtilisationReport
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/space-utilisation [get]
func (h *ReportHandler) SpaceUtilisation(c *fiber.Ctx) error {
	out, err := h.uc.SpaceUtilisation(c.UserContext(), GetTenant(c), c.Query("snapshotId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Snapshots godoc
// @Summary      Snapshots disponibles
// @Tags         reports
// @Security     Session
// @Produce      json
// @Success      200  {array}  dto.SnapshotResponse
// @Router       /api/reports/snapshots [get]
func (h *ReportHandler) Snapshots(c *fiber.Ctx) error {
	out, err := h.uc.ListSnapshots(c.UserContext(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStockPDF godoc
// @Summary      Reporte de bajo stock en PDF
// @Tags         reports
// @Security     Session
// @Produce      application/pdf
// @Param        snapshotId  query  string  false  "snapshot histórico"
// @Success      200  {file}  binary
// @Router       /api/reports/low-stock/pdf [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.LowStockPDF(c.UserContext(), GetTenant(c), c.Query("snapshotId"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, data, filename)
}

// SpaceUtilisationPDF godoc
// @Summary      Reporte de utilización de espacio en PDF
// @Tags         reports
// @Security     Session
// @Produce      application/pdf
// @Param        snapshotId  query  string  false  "snapshot histórico"
// @Success      200  {file}  binary
// @Router       /api/reports/space-utilisation/pdf [get]
func (h *ReportHandler) SpaceUtilisationPDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.SpaceUtilisationPDF(c.UserContext(), GetTenant(c), c.Query("snapshotId"))
	if err != nil {
		return respondError(c, err)
	}
	return sendPDF(c, data, filename)
}

func sendPDF(c *fiber.Ctx, data []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
