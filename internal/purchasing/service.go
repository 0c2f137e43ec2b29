package purchasing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bnuindustry/warehouse-backend/internal/finance"
	"github.com/bnuindustry/warehouse-backend/internal/suppliers"
	"github.com/bnuindustry/warehouse-backend/pkg/enums"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
	"github.com/bnuindustry/warehouse-backend/pkg/ids"
)

type paymentRecorder interface {
	Record(ctx context.Context, txType enums.TransactionType, amount decimal.Decimal, description string) (*finance.Transaction, error)
}

type supplierDirectory interface {
	Get(ctx context.Context, supplierID string) (*suppliers.Supplier, error)
	AttachOrder(ctx context.Context, supplierID, orderID string) error
}

// LineItemInput is one requested order row.
type LineItemInput struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// CreateOrderInput captures a new purchase order request.
type CreateOrderInput struct {
	SupplierID string
	Items      []LineItemInput
}

// Service is the coordinator owning the canonical purchase order collection.
// It is the only component allowed to couple an order's inventory application
// to the supplier payment in the finance ledger.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error)
	Get(ctx context.Context, orderID string) (*Order, error)
	List(ctx context.Context) []Order
	ListBySupplier(ctx context.Context, supplierID string) []Order
	UpdateStatus(ctx context.Context, orderID string, status enums.PurchaseOrderStatus) (*Order, error)
}

type service struct {
	mu     sync.Mutex
	orders map[string]*Order
	seq    []string

	inventory stockReceiver
	finance   paymentRecorder
	suppliers supplierDirectory
	ids       ids.Generator
	now       func() time.Time
}

// NewService builds the purchase order coordinator.
func NewService(inventorySvc stockReceiver, financeSvc paymentRecorder, supplierSvc supplierDirectory, generator ids.Generator) (Service, error) {
	if inventorySvc == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if financeSvc == nil {
		return nil, fmt.Errorf("finance service required")
	}
	if supplierSvc == nil {
		return nil, fmt.Errorf("supplier service required")
	}
	if generator == nil {
		return nil, fmt.Errorf("id generator required")
	}
	return &service{
		orders:    map[string]*Order{},
		inventory: inventorySvc,
		finance:   financeSvc,
		suppliers: supplierSvc,
		ids:       generator,
		now:       time.Now,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	if _, err := s.suppliers.Get(ctx, input.SupplierID); err != nil {
		return nil, err
	}

	items := make([]LineItem, 0, len(input.Items))
	for _, row := range input.Items {
		item, err := NewLineItem(row.ProductID, row.ProductName, row.UnitPrice, row.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	order, err := NewOrder(s.ids.NewID("PO"), input.SupplierID, items, s.now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.orders[order.ID] = order
	s.seq = append(s.seq, order.ID)
	s.mu.Unlock()

	// Best-effort display back-reference; the supplier may have been removed
	// since the existence check above.
	_ = s.suppliers.AttachOrder(ctx, order.SupplierID, order.ID)

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

func (s *service) ListBySupplier(ctx context.Context, supplierID string) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Order{}
	for _, id := range s.seq {
		if order := s.orders[id]; order.SupplierID == supplierID {
			out = append(out, *orderSnapshot(order))
		}
	}
	return out
}

// UpdateStatus advances the order's state machine, then chains the side
// effects tied to delivery: the supplier payment is recorded exactly once, on
// the transition that newly reaches delivered, and the inventory credit is
// attempted whenever the order is delivered but not yet applied, so a failed
// application (missing ledger target) can be retried by re-submitting the
// delivered status without duplicating the payment.
func (s *service) UpdateStatus(ctx context.Context, orderID string, status enums.PurchaseOrderStatus) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.find(orderID)
	if err != nil {
		return nil, err
	}

	previous := order.Status
	if err := order.UpdateStatus(status, s.now()); err != nil {
		return nil, err
	}

	delivered := order.Status == enums.PurchaseOrderStatusDelivered
	newlyDelivered := delivered && previous != enums.PurchaseOrderStatusDelivered

	if newlyDelivered {
		description := fmt.Sprintf("supplier order %s", order.ID)
		if _, err := s.finance.Record(ctx, enums.TransactionTypeSupplierPayment, order.TotalCost(), description); err != nil {
			return nil, err
		}
	}

	if delivered && !order.InventoryApplied && status == enums.PurchaseOrderStatusDelivered {
		if err := order.ApplyToInventory(ctx, s.inventory); err != nil {
			return orderSnapshot(order), err
		}
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
	if order.ShippedAt != nil {
		stamp := *order.ShippedAt
		out.ShippedAt = &stamp
	}
	if order.DeliveredAt != nil {
		stamp := *order.DeliveredAt
		out.DeliveredAt = &stamp
	}
	return &out
}
