package purchasing

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bnuindustry/warehouse-backend/internal/inventory"
	"github.com/bnuindustry/warehouse-backend/pkg/enums"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
)

// Order is a supplier → warehouse purchase order. Status moves forward only
// (pending → shipped → delivered); line items credit the inventory ledger
// exactly once, after delivery.
type Order struct {
	ID               string                    `json:"id"`
	SupplierID       string                    `json:"supplier_id"`
	LineItems        []LineItem                `json:"line_items"`
	OrderDate        time.Time                 `json:"order_date"`
	Status           enums.PurchaseOrderStatus `json:"status"`
	ShippedAt        *time.Time                `json:"shipped_at,omitempty"`
	DeliveredAt      *time.Time                `json:"delivered_at,omitempty"`
	InventoryApplied bool                      `json:"inventory_applied"`
}

// NewOrder builds a pending order.
func NewOrder(id, supplierID string, items []LineItem, orderDate time.Time) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if strings.TrimSpace(supplierID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id is required")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one line item")
	}
	return &Order{
		ID:         strings.TrimSpace(id),
		SupplierID: strings.TrimSpace(supplierID),
		LineItems:  append([]LineItem(nil), items...),
		OrderDate:  orderDate,
		Status:     enums.PurchaseOrderStatusPending,
	}, nil
}

// TotalCost is Σ(unit price × quantity), computed fresh on every call.
func (o *Order) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.LineItems {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// UpdateStatus accepts any valid status. The status field only ever moves
// forward; requesting the current or an earlier status is not an error, but
// the timestamp for the requested status is re-stamped either way. Timestamps
// are never cleared.
func (o *Order) UpdateStatus(status enums.PurchaseOrderStatus, now time.Time) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid purchase order status").
			WithDetails(map[string]any{"status": string(status)})
	}

	switch status {
	case enums.PurchaseOrderStatusShipped:
		stamp := now
		o.ShippedAt = &stamp
	case enums.PurchaseOrderStatusDelivered:
		stamp := now
		o.DeliveredAt = &stamp
	}

	if o.Status.Before(status) {
		o.Status = status
	}
	return nil
}

type stockReceiver interface {
	ReceiveBatch(ctx context.Context, deltas []inventory.StockDelta) error
}

// ApplyToInventory credits every line item to the ledger, all-or-nothing,
// at most once per order and only after delivery.
func (o *Order) ApplyToInventory(ctx context.Context, ledger stockReceiver) error {
	if o.Status != enums.PurchaseOrderStatusDelivered {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order has not been delivered").
			WithDetails(map[string]any{"order_id": o.ID, "status": string(o.Status)})
	}
	if o.InventoryApplied {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order already applied to inventory").
			WithDetails(map[string]any{"order_id": o.ID})
	}

	deltas := make([]inventory.StockDelta, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		deltas = append(deltas, inventory.StockDelta{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if err := ledger.ReceiveBatch(ctx, deltas); err != nil {
		return err
	}

	o.InventoryApplied = true
	return nil
}
