package fulfillment

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bnuindustry/warehouse-backend/internal/inventory"
	"github.com/bnuindustry/warehouse-backend/pkg/enums"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
)

// LineItem is one (product, unit price, quantity) row on a customer order.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// NewLineItem validates and builds an order row.
func NewLineItem(productID, productName string, unitPrice decimal.Decimal, quantity int) (LineItem, error) {
	if strings.TrimSpace(productID) == "" {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if strings.TrimSpace(productName) == "" {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative").
			WithDetails(map[string]any{"product_id": productID, "unit_price": unitPrice.String()})
	}
	if quantity <= 0 {
		return LineItem{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be greater than zero").
			WithDetails(map[string]any{"product_id": productID, "quantity": quantity})
	}
	return LineItem{
		ProductID:   strings.TrimSpace(productID),
		ProductName: strings.TrimSpace(productName),
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}, nil
}

// TotalPrice is unit price × quantity.
func (li LineItem) TotalPrice() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Order is a warehouse → customer order. Fulfillment is a one-way, one-time
// transition that debits the inventory ledger.
type Order struct {
	ID           string                    `json:"id"`
	CustomerName string                    `json:"customer_name"`
	LineItems    []LineItem                `json:"line_items"`
	CreatedAt    time.Time                 `json:"created_at"`
	Status       enums.CustomerOrderStatus `json:"status"`
	FulfilledAt  *time.Time                `json:"fulfilled_at,omitempty"`
}

// NewOrder builds a pending customer order.
func NewOrder(id, customerName string, items []LineItem, createdAt time.Time) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if strings.TrimSpace(customerName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order needs at least one line item")
	}
	return &Order{
		ID:           strings.TrimSpace(id),
		CustomerName: strings.TrimSpace(customerName),
		LineItems:    append([]LineItem(nil), items...),
		CreatedAt:    createdAt,
		Status:       enums.CustomerOrderStatusPending,
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

type stockConsumer interface {
	ConsumeBatch(ctx context.Context, deltas []inventory.StockDelta) error
}

// Fulfill debits every line item from the ledger. The batch is validated
// against the ledger before any debit, so a failure leaves the ledger exactly
// as it was. On success the order is fulfilled for good: FulfilledAt is set
// once and never changes.
func (o *Order) Fulfill(ctx context.Context, ledger stockConsumer, now time.Time) error {
	if o.Status == enums.CustomerOrderStatusFulfilled {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order already fulfilled").
			WithDetails(map[string]any{"order_id": o.ID})
	}

	deltas := make([]inventory.StockDelta, 0, len(o.LineItems))
	for _, item := range o.LineItems {
		deltas = append(deltas, inventory.StockDelta{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	if err := ledger.ConsumeBatch(ctx, deltas); err != nil {
		return err
	}

	o.Status = enums.CustomerOrderStatusFulfilled
	stamp := now
	o.FulfilledAt = &stamp
	return nil
}
