package enums

import "fmt"

// CustomerOrderStatus is the customer-order lifecycle state.
type CustomerOrderStatus string

const (
	CustomerOrderStatusPending   CustomerOrderStatus = "pending"
	CustomerOrderStatusFulfilled CustomerOrderStatus = "fulfilled"
)

var validCustomerOrderStatuses = []CustomerOrderStatus{
	CustomerOrderStatusPending,
	CustomerOrderStatusFulfilled,
}

// IsValid reports whether the value is a known customer order status.
func (s CustomerOrderStatus) IsValid() bool {
	for _, candidate := range validCustomerOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCustomerOrderStatus converts raw input into CustomerOrderStatus.
func ParseCustomerOrderStatus(value string) (CustomerOrderStatus, error) {
	candidate := CustomerOrderStatus(value)
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid customer order status %q", value)
	}
	return candidate, nil
}
