package v1

import (
	"stocktake/internal/domain"
	"stocktake/internal/domain/catalogs/branch"
	"stocktake/internal/domain/catalogs/category"
	"stocktake/internal/domain/catalogs/product"
	"stocktake/internal/domain/catalogs/supplier"
	"stocktake/internal/domain/catalogs/uom"
	"stocktake/internal/domain/reports"
	"stocktake/internal/domain/stocktake"
	"stocktake/internal/infrastructure/storage/postgres"
	"stocktake/internal/infrastructure/storage/postgres/catalog_repo"
	"stocktake/internal/infrastructure/storage/postgres/report_repo"
	"stocktake/internal/infrastructure/storage/postgres/stocktake_repo"
)

// NewPostgresServices wires every service to PostgreSQL repositories.
// events may be nil to skip the outbox.
func NewPostgresServices(txm *postgres.TxManager, events domain.EventPublisher) Services {
	categoryRepo := catalog_repo.NewCategoryRepo(txm)
	supplierRepo := catalog_repo.NewSupplierRepo(txm)
	uomRepo := catalog_repo.NewUOMRepo(txm)
	branchRepo := catalog_repo.NewBranchRepo(txm)
	productRepo := catalog_repo.NewProductRepo(txm)

	assignmentRepo := stocktake_repo.NewAssignmentRepo(txm)
	countRepo := stocktake_repo.NewCountRepo(txm)

	assignments := stocktake.NewAssignmentService(assignmentRepo, branchRepo, txm)

	return Services{
		Categories: category.NewService(categoryRepo, txm),
		Suppliers:  supplier.NewService(supplierRepo, txm),
		UOMs:       uom.NewService(uomRepo, txm),
		Branches:   branch.NewService(branchRepo, txm),
		Products: product.NewService(productRepo, txm, product.References{
			Categories: categoryRepo,
			Suppliers:  supplierRepo,
			UOMs:       uomRepo,
		}),

		Assignments: assignments,
		Recorder: stocktake.NewCountRecorder(
			assignmentRepo,
			countRepo,
			stocktake.NewPricingLookup(productRepo),
		),
		Finalizer: stocktake.NewFinalizer(stocktake.FinalizerConfig{
			TxManager:   txm,
			Assignments: assignments,
			Counts:      countRepo,
			Summaries:   stocktake_repo.NewSummaryRepo(txm),
			Events:      events,
		}),
		Reports: reports.NewService(report_repo.NewReportRepo(txm)),
	}
}
