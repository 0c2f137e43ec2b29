package seed

import (
	"context"

	"go.uber.org/multierr"

	"github.com/bnuindustry/warehouse-backend/internal/inventory"
	"github.com/bnuindustry/warehouse-backend/internal/suppliers"
	"github.com/bnuindustry/warehouse-backend/pkg/logger"
)

type demoItem struct {
	id           string
	name         string
	quantity     int
	reorderLevel int
}

var demoItems = []demoItem{
	{id: "SKU-001", name: "Pallet Jack", quantity: 12, reorderLevel: 4},
	{id: "SKU-002", name: "Packing Tape (48mm)", quantity: 80, reorderLevel: 25},
	{id: "SKU-003", name: "Shipping Labels", quantity: 15, reorderLevel: 20},
	{id: "SKU-004", name: "Stretch Wrap Roll", quantity: 30, reorderLevel: 10},
}

var demoSuppliers = []suppliers.AddSupplierInput{
	{Name: "Northway Logistics Ltd.", ContactEmail: "orders@northway.example"},
	{Name: "Harbor & Crane Supplies", ContactEmail: "sales@harborcrane.example"},
}

// Demo loads a small fixture set for local development. Individual failures
// are collected rather than aborting the rest of the seed.
func Demo(ctx context.Context, logg *logger.Logger, inventorySvc inventory.Service, supplierSvc suppliers.Service) error {
	var errs error

	for _, item := range demoItems {
		reorder := item.reorderLevel
		_, err := inventorySvc.Register(ctx, inventory.RegisterItemInput{
			ID:           item.id,
			Name:         item.name,
			Quantity:     item.quantity,
			ReorderLevel: &reorder,
		})
		errs = multierr.Append(errs, err)
	}

	for _, input := range demoSuppliers {
		_, err := supplierSvc.Add(ctx, input)
		errs = multierr.Append(errs, err)
	}

	if logg != nil {
		ctx = logg.WithFields(ctx, map[string]any{
			"items":     len(demoItems),
			"suppliers": len(demoSuppliers),
		})
		logg.Info(ctx, "demo data seeded")
	}

	return errs
}
