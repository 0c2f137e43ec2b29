package finance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bnuindustry/warehouse-backend/pkg/enums"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
)

type sequenceGenerator struct {
	n int
}

func (g *sequenceGenerator) NewID(prefix string) string {
	g.n++
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

func newTestService(t *testing.T) *service {
	t.Helper()
	svc, err := NewService(&sequenceGenerator{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc.(*service)
}

func TestRecordAppendsWithGeneratedIDAndTimestamp(t *testing.T) {
	svc := newTestService(t)
	stamp := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return stamp }

	tx, err := svc.Record(context.Background(), enums.TransactionTypeCustomerPayment, decimal.NewFromInt(100), "customer order ORD-1")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if tx.ID != "TXN-1" {
		t.Fatalf("unexpected id %q", tx.ID)
	}
	if !tx.Date.Equal(stamp) {
		t.Fatalf("unexpected date %v", tx.Date)
	}

	entries := svc.List(context.Background())
	if len(entries) != 1 || entries[0].ID != "TXN-1" {
		t.Fatalf("expected one appended entry, got %+v", entries)
	}
}

func TestRecordRejectsUnknownType(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Record(context.Background(), enums.TransactionType("bribe"), decimal.NewFromInt(1), "no")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if entries := svc.List(context.Background()); len(entries) != 0 {
		t.Fatalf("ledger should be unchanged, got %+v", entries)
	}
}

func TestSummaryNetsCustomerAgainstSupplier(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Record(context.Background(), enums.TransactionTypeCustomerPayment, decimal.NewFromInt(100), "customer order"); err != nil {
		t.Fatalf("record customer payment: %v", err)
	}
	if _, err := svc.Record(context.Background(), enums.TransactionTypeSupplierPayment, decimal.NewFromInt(40), "supplier order"); err != nil {
		t.Fatalf("record supplier payment: %v", err)
	}

	summary := svc.Summary(context.Background())
	if !summary.TotalCustomerPayments.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("customer total = %s", summary.TotalCustomerPayments)
	}
	if !summary.TotalSupplierPayments.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("supplier total = %s", summary.TotalSupplierPayments)
	}
	if !summary.NetProfit.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("net profit = %s", summary.NetProfit)
	}
}

func TestSummaryOfEmptyLedgerIsZero(t *testing.T) {
	svc := newTestService(t)
	summary := svc.Summary(context.Background())
	if !summary.NetProfit.IsZero() || !summary.TotalCustomerPayments.IsZero() || !summary.TotalSupplierPayments.IsZero() {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestListReturnsCopy(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.Record(context.Background(), enums.TransactionTypeCustomerPayment, decimal.NewFromInt(5), "x"); err != nil {
		t.Fatalf("record: %v", err)
	}

	entries := svc.List(context.Background())
	entries[0].Description = "tampered"

	fresh := svc.List(context.Background())
	if fresh[0].Description != "x" {
		t.Fatalf("ledger entry should be immutable to callers, got %q", fresh[0].Description)
	}
}
