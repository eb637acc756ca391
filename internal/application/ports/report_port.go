package ports

import "github.com/jhoicas/retail-inventory/internal/application/dto"

// ReportRenderer define el puerto de salida para exportar reportes a PDF.
// businessName se imprime en la cabecera del documento.
type ReportRenderer interface {
	LowStockPDF(businessName string, report *dto.LowStockReport) ([]byte, error)
	SpaceUtilisationPDF(businessName string, report *dto.SpaceUtilisationReport) ([]byte, error)
}
