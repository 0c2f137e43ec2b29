package fulfillment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bnuindustry/warehouse-backend/internal/finance"
	"github.com/bnuindustry/warehouse-backend/pkg/enums"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
	"github.com/bnuindustry/warehouse-backend/pkg/ids"
)

type paymentRecorder interface {
	Record(ctx context.Context, txType enums.TransactionType, amount decimal.Decimal, description string) (*finance.Transaction, error)
}

// LineItemInput is one requested order row.
type LineItemInput struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// CreateOrderInput captures a new customer order request.
type CreateOrderInput struct {
	CustomerName string
	Items        []LineItemInput
}

// Service is the coordinator owning the canonical customer order collection.
// It chains fulfillment's inventory debit with the customer payment; the
// order entity itself never touches the finance ledger.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	Get(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context) []Order
	Fulfill(ctx context.Context, orderID string) (*Order, error)
}

type service struct {
	mu     sync.Mutex
	orders map[string]*Order
	seq    []string

	inventory stockConsumer
	finance   paymentRecorder
	ids       ids.Generator
	now       func() time.Time
}

// NewService builds the customer order coordinator.
func NewService(inventorySvc stockConsumer, financeSvc paymentRecorder, generator ids.Generator) (Service, error) {
	if inventorySvc == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if financeSvc == nil {
		return nil, fmt.Errorf("finance service required")
	}
	if generator == nil {
		return nil, fmt.Errorf("id generator required")
	}
	return &service{
		orders:    map[string]*Order{},
		inventory: inventorySvc,
		finance:   financeSvc,
		ids:       generator,
		now:       time.Now,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	items := make([]LineItem, 0, len(input.Items))
	for _, row := range input.Items {
		item, err := NewLineItem(row.ProductID, row.ProductName, row.UnitPrice, row.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	order, err := NewOrder(s.ids.NewID("ORD"), input.CustomerName, items, s.now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.orders[order.ID] = order
	s.seq = append(s.seq, order.ID)
	s.mu.Unlock()

	return orderSnapshot(order), nil
}

func (s *service) Get(ctx context.Context, orderID string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.find(orderID)
	if err != nil {
		return nil, err
	}
	return orderSnapshot(order), nil
}

func (s *service) List(ctx context.Context) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Order, 0, len(s.seq))
	for _, id := range s.seq {
		out = append(out, *orderSnapshot(s.orders[id]))
	}
	return out
}

// Fulfill runs the order's one-time transition and, on success, records the
// customer payment for the order total.
func (s *service) Fulfill(ctx context.Context, orderID string) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.find(orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Fulfill(ctx, s.inventory, s.now()); err != nil {
		return nil, err
	}

	description := fmt.Sprintf("customer order %s", order.ID)
	if _, err := s.finance.Record(ctx, enums.TransactionTypeCustomerPayment, order.TotalCost(), description); err != nil {
		return orderSnapshot(order), err
	}

	return orderSnapshot(order), nil
}

// find must be called with the lock held.
func (s *service) find(orderID string) (*Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found").
			WithDetails(map[string]any{"order_id": orderID})
	}
	return order, nil
}

func orderSnapshot(order *Order) *Order {
	out := *order
	out.LineItems = append([]LineItem(nil), order.LineItems...)
	if order.FulfilledAt != nil {
		stamp := *order.FulfilledAt
		out.FulfilledAt = &stamp
	}
	return &out
}
