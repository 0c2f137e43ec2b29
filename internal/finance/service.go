package finance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bnuindustry/warehouse-backend/pkg/enums"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
	"github.com/bnuindustry/warehouse-backend/pkg/ids"
)

// Service is the append-only record of monetary transactions. The order
// coordinators write to it whenever a transition has a financial consequence.
type Service interface {
	Record(ctx context.Context, txType enums.TransactionType, amount decimal.Decimal, description string) (*Transaction, error)
	List(ctx context.Context) []Transaction
	Summary(ctx context.Context) Summary
}

type service struct {
	mu           sync.Mutex
	transactions []Transaction

	ids ids.Generator
	now func() time.Time
}

// NewService wires the finance ledger with an id generator.
func NewService(generator ids.Generator) (Service, error) {
	if generator == nil {
		return nil, fmt.Errorf("id generator required")
	}
	return &service{ids: generator, now: time.Now}, nil
}

func (s *service) Record(ctx context.Context, txType enums.TransactionType, amount decimal.Decimal, description string) (*Transaction, error) {
	if !txType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction type").
			WithDetails(map[string]any{"type": string(txType)})
	}

	tx := Transaction{
		ID:          s.ids.NewID("TXN"),
		Type:        txType,
		Amount:      amount,
		Date:        s.now(),
		Description: description,
	}

	s.mu.Lock()
	s.transactions = append(s.transactions, tx)
	s.mu.Unlock()

	return &tx, nil
}

func (s *service) List(ctx context.Context) []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Summary recomputes the aggregates from the full sequence on every call.
func (s *service) Summary(ctx context.Context) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer := decimal.Zero
	supplier := decimal.Zero
	for _, tx := range s.transactions {
		switch tx.Type {
		case enums.TransactionTypeCustomerPayment:
			customer = customer.Add(tx.Amount)
		case enums.TransactionTypeSupplierPayment:
			supplier = supplier.Add(tx.Amount)
		}
	}

	return Summary{
		TotalCustomerPayments: customer,
		TotalSupplierPayments: supplier,
		NetProfit:             customer.Sub(supplier),
	}
}
