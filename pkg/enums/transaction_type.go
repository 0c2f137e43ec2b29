package enums

import "fmt"

// TransactionType classifies entries in the finance ledger.
type TransactionType string

const (
	TransactionTypeCustomerPayment TransactionType = "customer_payment"
	TransactionTypeSupplierPayment TransactionType = "supplier_payment"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeCustomerPayment,
	TransactionTypeSupplierPayment,
}

// IsValid reports whether the value is a known transaction type.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
