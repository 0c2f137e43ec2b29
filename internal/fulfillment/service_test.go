package fulfillment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnuindustry/warehouse-backend/internal/finance"
	"github.com/bnuindustry/warehouse-backend/internal/inventory"
	"github.com/bnuindustry/warehouse-backend/pkg/config"
	"github.com/bnuindustry/warehouse-backend/pkg/enums"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
)

type fakeFinance struct {
	recorded []finance.Transaction
}

func (f *fakeFinance) Record(ctx context.Context, txType enums.TransactionType, amount decimal.Decimal, description string) (*finance.Transaction, error) {
	tx := finance.Transaction{
		ID:          fmt.Sprintf("TXN-%d", len(f.recorded)+1),
		Type:        txType,
		Amount:      amount,
		Description: description,
	}
	f.recorded = append(f.recorded, tx)
	return &tx, nil
}

type sequenceGenerator struct {
	n int
}

func (g *sequenceGenerator) NewID(prefix string) string {
	g.n++
	return fmt.Sprintf("%s-%d", prefix, g.n)
}

type fixture struct {
	svc       *service
	inventory inventory.Service
	finance   *fakeFinance
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	inv, err := inventory.NewService(config.InventoryConfig{DefaultReorderLevel: 10})
	require.NoError(t, err)

	fin := &fakeFinance{}
	svc, err := NewService(inv, fin, &sequenceGenerator{})
	require.NoError(t, err)

	typed := svc.(*service)
	typed.now = func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }
	return &fixture{svc: typed, inventory: inv, finance: fin}
}

func (f *fixture) stock(t *testing.T, id, name string, qty int) {
	t.Helper()
	reorder := 0
	_, err := f.inventory.Register(context.Background(), inventory.RegisterItemInput{ID: id, Name: name, Quantity: qty, ReorderLevel: &reorder})
	require.NoError(t, err)
}

func (f *fixture) quantity(t *testing.T, id string) int {
	t.Helper()
	item, err := f.inventory.Item(context.Background(), id)
	require.NoError(t, err)
	return item.Quantity
}

func TestCreateOrderValidatesItems(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerName: "Ada",
		Items:        []LineItemInput{{ProductID: "p1", ProductName: "Widget", UnitPrice: decimal.NewFromInt(10), Quantity: 0}},
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = f.svc.CreateOrder(context.Background(), CreateOrderInput{CustomerName: " ", Items: []LineItemInput{{ProductID: "p1", ProductName: "Widget", UnitPrice: decimal.NewFromInt(10), Quantity: 1}}})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	assert.Empty(t, f.svc.List(context.Background()))
}

func TestFulfillDebitsLedgerAndRecordsPayment(t *testing.T) {
	f := newFixture(t)
	f.stock(t, "p1", "Widget", 5)
	f.stock(t, "p2", "Gadget", 4)

	order, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerName: "Ada",
		Items: []LineItemInput{
			{ProductID: "p1", ProductName: "Widget", UnitPrice: decimal.NewFromInt(10), Quantity: 2},
			{ProductID: "p2", ProductName: "Gadget", UnitPrice: decimal.RequireFromString("2.50"), Quantity: 4},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", order.ID)

	fulfilled, err := f.svc.Fulfill(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.CustomerOrderStatusFulfilled, fulfilled.Status)
	require.NotNil(t, fulfilled.FulfilledAt)

	assert.Equal(t, 3, f.quantity(t, "p1"))
	assert.Equal(t, 0, f.quantity(t, "p2"))

	require.Len(t, f.finance.recorded, 1)
	tx := f.finance.recorded[0]
	assert.Equal(t, enums.TransactionTypeCustomerPayment, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.NewFromInt(30)), "got %s", tx.Amount)
	assert.Equal(t, "customer order ORD-1", tx.Description)
}

func TestFulfillInsufficientStockLeavesEverythingUntouched(t *testing.T) {
	f := newFixture(t)
	f.stock(t, "p1", "Widget", 1)
	f.stock(t, "p2", "Gadget", 9)

	order, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerName: "Ada",
		Items: []LineItemInput{
			{ProductID: "p2", ProductName: "Gadget", UnitPrice: decimal.NewFromInt(1), Quantity: 3},
			{ProductID: "p1", ProductName: "Widget", UnitPrice: decimal.NewFromInt(10), Quantity: 2},
		},
	})
	require.NoError(t, err)

	_, err = f.svc.Fulfill(context.Background(), order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	// no partial debit survives the failed attempt, including lines listed
	// before the failing one
	assert.Equal(t, 9, f.quantity(t, "p2"))
	assert.Equal(t, 1, f.quantity(t, "p1"))

	pending, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.CustomerOrderStatusPending, pending.Status)
	assert.Nil(t, pending.FulfilledAt)
	assert.Empty(t, f.finance.recorded)
}

func TestFulfillMissingProduct(t *testing.T) {
	f := newFixture(t)
	f.stock(t, "p1", "Widget", 5)

	order, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerName: "Ada",
		Items:        []LineItemInput{{ProductID: "ghost", ProductName: "Ghost", UnitPrice: decimal.NewFromInt(1), Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.svc.Fulfill(context.Background(), order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestFulfillIsOneWayAndOneTime(t *testing.T) {
	f := newFixture(t)
	f.stock(t, "p1", "Widget", 10)

	order, err := f.svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerName: "Ada",
		Items:        []LineItemInput{{ProductID: "p1", ProductName: "Widget", UnitPrice: decimal.NewFromInt(10), Quantity: 2}},
	})
	require.NoError(t, err)

	first, err := f.svc.Fulfill(context.Background(), order.ID)
	require.NoError(t, err)
	firstStamp := *first.FulfilledAt

	_, err = f.svc.Fulfill(context.Background(), order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeStateConflict, typed.Code())

	// exactly one debit and one payment
	assert.Equal(t, 8, f.quantity(t, "p1"))
	assert.Len(t, f.finance.recorded, 1)

	fresh, err := f.svc.Get(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, fresh.FulfilledAt)
	assert.True(t, fresh.FulfilledAt.Equal(firstStamp))
}

func TestFulfillUnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Fulfill(context.Background(), "ORD-ghost")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
