package inventory

import (
	"context"
	"testing"

	"github.com/bnuindustry/warehouse-backend/pkg/config"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(config.InventoryConfig{DefaultReorderLevel: 10})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func mustRegister(t *testing.T, svc Service, id, name string, qty, reorder int) {
	t.Helper()
	_, err := svc.Register(context.Background(), RegisterItemInput{ID: id, Name: name, Quantity: qty, ReorderLevel: &reorder})
	if err != nil {
		t.Fatalf("register %s: %v", id, err)
	}
}

func TestRegisterRejectsDuplicateID(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "P1", "Widget", 5, 10)

	_, err := svc.Register(context.Background(), RegisterItemInput{ID: "P1", Name: "Widget Again", Quantity: 3})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	if items := svc.List(context.Background()); len(items) != 1 || items[0].Quantity != 5 {
		t.Fatalf("ledger should be unchanged after failed registration: %+v", items)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name  string
		input RegisterItemInput
	}{
		{name: "missing id", input: RegisterItemInput{Name: "Widget", Quantity: 1}},
		{name: "bad name", input: RegisterItemInput{ID: "P1", Name: "x", Quantity: 1}},
		{name: "negative quantity", input: RegisterItemInput{ID: "P1", Name: "Widget", Quantity: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterUsesDefaultReorderLevel(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.Register(context.Background(), RegisterItemInput{ID: "P1", Name: "Widget", Quantity: 3})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if item.ReorderLevel != 10 {
		t.Fatalf("expected configured default reorder level 10, got %d", item.ReorderLevel)
	}
}

func TestConsumeInsufficientStockLeavesQuantityUnchanged(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "P1", "Widget", 2, 0)

	_, err := svc.Consume(context.Background(), "P1", 3)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	item, err := svc.Item(context.Background(), "P1")
	if err != nil {
		t.Fatalf("item lookup: %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("quantity should be unchanged, got %d", item.Quantity)
	}
}

func TestReceiveAndConsumeValidateAmounts(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "P1", "Widget", 2, 0)

	for _, amount := range []int{0, -4} {
		if _, err := svc.Receive(context.Background(), "P1", amount); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("receive(%d): expected validation error, got %v", amount, err)
		}
		if _, err := svc.Consume(context.Background(), "P1", amount); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("consume(%d): expected validation error, got %v", amount, err)
		}
	}

	if _, err := svc.Receive(context.Background(), "missing", 1); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}
}

func TestLowStockBoundaryIsInclusive(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "P1", "Widget", 5, 10)

	low := svc.LowStock(context.Background())
	if len(low) != 1 || low[0].ID != "P1" {
		t.Fatalf("expected P1 below reorder level, got %+v", low)
	}

	// quantity == reorder level still counts as low
	if _, err := svc.Receive(context.Background(), "P1", 5); err != nil {
		t.Fatalf("receive: %v", err)
	}
	if low := svc.LowStock(context.Background()); len(low) != 1 {
		t.Fatalf("boundary quantity should still be low stock, got %+v", low)
	}

	if _, err := svc.Receive(context.Background(), "P1", 1); err != nil {
		t.Fatalf("receive: %v", err)
	}
	if low := svc.LowStock(context.Background()); len(low) != 0 {
		t.Fatalf("quantity above reorder level should not be low stock, got %+v", low)
	}
}

func TestConsumeBatchIsAllOrNothing(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "P1", "Widget", 5, 0)
	mustRegister(t, svc, "P2", "Gadget", 1, 0)

	err := svc.ConsumeBatch(context.Background(), []StockDelta{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P2", Quantity: 3},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	p1, _ := svc.Item(context.Background(), "P1")
	p2, _ := svc.Item(context.Background(), "P2")
	if p1.Quantity != 5 || p2.Quantity != 1 {
		t.Fatalf("no debit should survive a failed batch: P1=%d P2=%d", p1.Quantity, p2.Quantity)
	}
}

func TestConsumeBatchChecksCumulativeDemand(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "P1", "Widget", 3, 0)

	err := svc.ConsumeBatch(context.Background(), []StockDelta{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P1", Quantity: 2},
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict for cumulative overdraw, got %v", err)
	}

	item, _ := svc.Item(context.Background(), "P1")
	if item.Quantity != 3 {
		t.Fatalf("quantity should be unchanged, got %d", item.Quantity)
	}
}

func TestReceiveBatchRejectsMissingTarget(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "P1", "Widget", 5, 0)

	err := svc.ReceiveBatch(context.Background(), []StockDelta{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "ghost", Quantity: 1},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	item, _ := svc.Item(context.Background(), "P1")
	if item.Quantity != 5 {
		t.Fatalf("no credit should survive a failed batch, got %d", item.Quantity)
	}
}

func TestBatchErrorsReportEveryFailingLine(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "P1", "Widget", 1, 0)

	err := svc.ConsumeBatch(context.Background(), []StockDelta{
		{ProductID: "P1", Quantity: 5},
		{ProductID: "ghost", Quantity: 1},
	})
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %v", typed.Details())
	}
	products, ok := details["product_ids"].([]string)
	if !ok || len(products) != 2 {
		t.Fatalf("expected both failing products reported, got %v", details)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	svc := newTestService(t)
	mustRegister(t, svc, "P1", "Widget", 5, 0)

	item, err := svc.Item(context.Background(), "P1")
	if err != nil {
		t.Fatalf("item lookup: %v", err)
	}
	item.Quantity = 999

	fresh, _ := svc.Item(context.Background(), "P1")
	if fresh.Quantity != 5 {
		t.Fatalf("ledger should not observe caller mutation, got %d", fresh.Quantity)
	}
}
