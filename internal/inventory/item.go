package inventory

import (
	"regexp"
	"strings"

	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
)

var itemNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s&.,'()\-]{2,50}$`)

// Item is a single stock record in the warehouse ledger. Quantity is never
// negative; it moves only through IncreaseStock and DecreaseStock.
type Item struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	ReorderLevel int    `json:"reorder_level"`
}

// NewItem validates and builds a stock record.
func NewItem(id, name string, quantity, reorderLevel int) (*Item, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	if !ValidItemName(name) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product name").
			WithDetails(map[string]any{"name": name})
	}
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if reorderLevel < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reorder level cannot be negative")
	}
	return &Item{
		ID:           strings.TrimSpace(id),
		Name:         strings.TrimSpace(name),
		Quantity:     quantity,
		ReorderLevel: reorderLevel,
	}, nil
}

func (i *Item) IncreaseStock(amount int) error {
	if amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero").
			WithDetails(map[string]any{"product_id": i.ID, "amount": amount})
	}
	i.Quantity += amount
	return nil
}

func (i *Item) DecreaseStock(amount int) error {
	if amount <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero").
			WithDetails(map[string]any{"product_id": i.ID, "amount": amount})
	}
	if amount > i.Quantity {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "not enough stock available").
			WithDetails(map[string]any{"product_id": i.ID, "requested": amount, "available": i.Quantity})
	}
	i.Quantity -= amount
	return nil
}

// IsLowStock reports whether the record sits at or below its reorder level.
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.ReorderLevel
}

// ValidItemName mirrors the registration rule: 2-50 chars from a restricted set.
func ValidItemName(name string) bool {
	return itemNamePattern.MatchString(strings.TrimSpace(name))
}
