package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/ports"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

// ReportUseCase reportes sobre las tablas en vivo o sobre un snapshot (snapshotID no vacío).
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	snapshotRepo repository.SnapshotRepository
	businessRepo repository.BusinessRepository
	renderer     ports.ReportRenderer
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	snapshotRepo repository.SnapshotRepository,
	businessRepo repository.BusinessRepository,
	renderer ports.ReportRenderer,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:   reportRepo,
		snapshotRepo: snapshotRepo,
		businessRepo: businessRepo,
		renderer:     renderer,
	}
}

// source elige el origen de datos. Un snapshot de otro negocio se trata como inexistente.
func (uc *ReportUseCase) source(ctx context.Context, tenant domain.Tenant, snapshotID string) (repository.ReportSource, dto.ReportSourceInfo, error) {
	info := dto.ReportSourceInfo{Live: snapshotID == "", GeneratedAt: time.Now()}
	if snapshotID == "" {
		return uc.reportRepo.Live(tenant.BusinessID), info, nil
	}
	snap, err := uc.snapshotRepo.GetByID(ctx, tenant.BusinessID, snapshotID)
	if err != nil {
		return nil, info, err
	}
	if snap == nil {
		return nil, info, domain.ErrNotFound
	}
	info.SnapshotID = &snap.ID
	info.SnapshotDate = &snap.SnapshotDate
	return uc.reportRepo.Snapshot(tenant.BusinessID, snap.ID), info, nil
}

// LowStock reporte de bajo stock.
func (uc *ReportUseCase) LowStock(ctx context.Context, tenant domain.Tenant, snapshotID string) (*dto.LowStockReport, error) {
	src, info, err := uc.source(ctx, tenant, snapshotID)
	if err != nil {
		return nil, err
	}
	rows, err := src.StockLevels(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte bajo stock: %w", err)
	}
	summary, items := BuildLowStock(rows)
	return &dto.LowStockReport{Source: info, Summary: summary, Items: items}, nil
}

// SpaceUtilisation reporte de utilización de espacio.
func (uc *ReportUseCase) SpaceUtilisation(ctx context.Context, tenant domain.Tenant, snapshotID string) (*dto.SpaceUtilisationReport, error) {
	src, info, err := uc.source(ctx, tenant, snapshotID)
	if err != nil {
		return nil, err
	}
	rows, err := src.LocationUsage(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte utilización: %w", err)
	}
	summary, locations := BuildSpaceUtilisation(rows)
	return &dto.SpaceUtilisationReport{Source: info, Summary: summary, Locations: locations}, nil
}

// ListSnapshots snapshots del negocio, más reciente primero.
func (uc *ReportUseCase) ListSnapshots(ctx context.Context, tenant domain.Tenant) ([]dto.SnapshotResponse, error) {
	list, err := uc.snapshotRepo.ListByBusiness(ctx, tenant.BusinessID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SnapshotResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SnapshotResponse{
			SnapshotID:   s.ID,
			SnapshotDate: s.SnapshotDate,
			SnapshotType: s.SnapshotType,
		})
	}
	return out, nil
}

// LowStockPDF genera el PDF del reporte de bajo stock. Retorna (bytes, nombre de archivo).
func (uc *ReportUseCase) LowStockPDF(ctx context.Context, tenant domain.Tenant, snapshotID string) ([]byte, string, error) {
	report, err := uc.LowStock(ctx, tenant, snapshotID)
	if err != nil {
		return nil, "", err
	}
	name, err := uc.businessName(ctx, tenant)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.renderer.LowStockPDF(name, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf bajo stock: %w", err)
	}
	return pdf, pdfFilename("low-stock", report.Source), nil
}

// SpaceUtilisationPDF genera el PDF del reporte de utilización de espacio.
func (uc *ReportUseCase) SpaceUtilisationPDF(ctx context.Context, tenant domain.Tenant, snapshotID string) ([]byte, string, error) {
	report, err := uc.SpaceUtilisation(ctx, tenant, snapshotID)
	if err != nil {
		return nil, "", err
	}
	name, err := uc.businessName(ctx, tenant)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.renderer.SpaceUtilisationPDF(name, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf utilización: %w", err)
	}
	return pdf, pdfFilename("space-utilisation", report.Source), nil
}

func (uc *ReportUseCase) businessName(ctx context.Context, tenant domain.Tenant) (string, error) {
	b, err := uc.businessRepo.GetByID(ctx, tenant.BusinessID)
	if err != nil {
		return "", err
	}
	if b == nil {
		return "", domain.ErrNotFound
	}
	return b.Name, nil
}

func pdfFilename(kind string, src dto.ReportSourceInfo) string {
	date := src.GeneratedAt
	if src.SnapshotDate != nil {
		date = *src.SnapshotDate
	}
	return fmt.Sprintf("%s-%s.pdf", kind, date.Format("2006-01-02"))
}
