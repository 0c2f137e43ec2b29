package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bnuindustry/warehouse-backend/pkg/enums"
)

// Transaction is one append-only entry in the finance ledger. Entries are
// never mutated or deleted after creation.
type Transaction struct {
	ID          string                `json:"id"`
	Type        enums.TransactionType `json:"type"`
	Amount      decimal.Decimal       `json:"amount"`
	Date        time.Time             `json:"date"`
	Description string                `json:"description"`
}

// Summary aggregates the ledger by transaction type.
type Summary struct {
	TotalCustomerPayments decimal.Decimal `json:"total_customer_payments"`
	TotalSupplierPayments decimal.Decimal `json:"total_supplier_payments"`
	NetProfit             decimal.Decimal `json:"net_profit"`
}
