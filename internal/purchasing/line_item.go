package purchasing

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
)

// LineItem is one (product, unit price, quantity) row on a purchase order.
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
