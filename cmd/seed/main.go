// Package main seeds reference data for local development: categories,
// a supplier, units of measure, branches and priced products.
package main

import (
	"context"
	"fmt"
	"os"

	"stocktake/internal/config"
	"stocktake/internal/core/id"
	"stocktake/internal/core/types"
	"stocktake/internal/domain"
	"stocktake/internal/domain/catalogs/branch"
	"stocktake/internal/domain/catalogs/category"
	"stocktake/internal/domain/catalogs/product"
	"stocktake/internal/domain/catalogs/supplier"
	"stocktake/internal/domain/catalogs/uom"
	v1 "stocktake/internal/infrastructure/http/v1"
	"stocktake/internal/infrastructure/storage/postgres"
	"stocktake/pkg/logger"
)

type seedProduct struct {
	name     string
	category string
	price    string
	pkg      int
}

var (
	seedCategories = []string{"Beverages", "Snacks", "Dairy"}
	seedBranches   = []string{"Downtown", "Harbor", "Airport"}
	seedProducts   = []seedProduct{
		{"Cola 330ml", "Beverages", "1.20", 24},
		{"Orange Juice 1L", "Beverages", "2.75", 12},
		{"Sparkling Water 500ml", "Beverages", "0.90", 24},
		{"Salted Chips 150g", "Snacks", "1.85", 20},
		{"Chocolate Bar", "Snacks", "0.99", 48},
		{"Whole Milk 1L", "Dairy", "1.10", 12},
		{"Cheddar 200g", "Dairy", "3.40", 10},
	}
)

func main() {
	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx,
		postgres.NewPoolConfig(cfg.DatabaseURL, "seed", cfg.DBMaxConns, cfg.DBMinConns))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	svc := v1.NewPostgresServices(postgres.NewTxManager(pool), nil)

	existing, err := svc.Branches.List(ctx, domain.ListFilter{Limit: 1})
	if err != nil {
		log.Fatalw("failed to inspect branches", "error", err)
	}
	if existing.TotalCount > 0 {
		log.Infow("database already seeded, skipping", "branches", existing.TotalCount)
		return
	}

	if err := seed(ctx, svc, log); err != nil {
		log.Fatalw("seeding failed", "error", err)
	}
	log.Info("seeding completed successfully")
}

func seed(ctx context.Context, svc v1.Services, log *logger.Logger) error {
	categoryIDs := make(map[string]id.ID, len(seedCategories))
	for _, name := range seedCategories {
		c := category.NewCategory(name, nil)
		if err := svc.Categories.Create(ctx, c); err != nil {
			return fmt.Errorf("create category %q: %w", name, err)
		}
		categoryIDs[name] = c.ID
	}

	s := supplier.NewSupplier("Acme Wholesale")
	if err := svc.Suppliers.Create(ctx, s); err != nil {
		return fmt.Errorf("create supplier: %w", err)
	}

	each := uom.NewUOM("Each", nil)
	if err := svc.UOMs.Create(ctx, each); err != nil {
		return fmt.Errorf("create uom: %w", err)
	}

	for _, name := range seedBranches {
		if err := svc.Branches.Create(ctx, branch.NewBranch(name)); err != nil {
			return fmt.Errorf("create branch %q: %w", name, err)
		}
	}

	for _, sp := range seedProducts {
		p := product.NewProduct(sp.name, categoryIDs[sp.category], s.ID, each.ID)
		price := types.MustMoney(sp.price)
		p.Price = &price
		p.Pkg = sp.pkg
		if err := svc.Products.Create(ctx, p); err != nil {
			return fmt.Errorf("create product %q: %w", sp.name, err)
		}
	}

	log.Infow("seeded reference data",
		"categories", len(seedCategories),
		"branches", len(seedBranches),
		"products", len(seedProducts),
	)
	return nil
}
