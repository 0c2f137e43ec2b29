package enums

import "fmt"

// PurchaseOrderStatus is the supplier-order lifecycle state.
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending   PurchaseOrderStatus = "pending"
	PurchaseOrderStatusShipped   PurchaseOrderStatus = "shipped"
	PurchaseOrderStatusDelivered PurchaseOrderStatus = "delivered"
)

var purchaseOrderStatusRank = map[PurchaseOrderStatus]int{
	PurchaseOrderStatusPending:   0,
	PurchaseOrderStatusShipped:   1,
	PurchaseOrderStatusDelivered: 2,
}

// IsValid reports whether the value is a known purchase order status.
func (s PurchaseOrderStatus) IsValid() bool {
	_, ok := purchaseOrderStatusRank[s]
	return ok
}

// Before reports whether s comes earlier than other in the
// pending → shipped → delivered progression.
func (s PurchaseOrderStatus) Before(other PurchaseOrderStatus) bool {
	return purchaseOrderStatusRank[s] < purchaseOrderStatusRank[other]
}

// ParsePurchaseOrderStatus converts raw input into PurchaseOrderStatus.
func ParsePurchaseOrderStatus(value string) (PurchaseOrderStatus, error) {
	candidate := PurchaseOrderStatus(value)
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid purchase order status %q", value)
	}
	return candidate, nil
}
