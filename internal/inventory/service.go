package inventory

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/bnuindustry/warehouse-backend/pkg/config"
	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
)

// StockDelta is one product-quantity pair inside a batch mutation.
type StockDelta struct {
	ProductID string
	Quantity  int
}

// RegisterItemInput captures a new stock record. ReorderLevel falls back to
// the configured default when nil.
type RegisterItemInput struct {
	ID           string
	Name         string
	Quantity     int
	ReorderLevel *int
}

// Service owns the product id → stock record mapping. Orders reference
// products by id only, so every mutation here is immediately visible to all
// readers. Batch mutations are all-or-nothing under the service lock.
type Service interface {
	Register(ctx context.Context, input RegisterItemInput) (*Item, error)
	Receive(ctx context.Context, productID string, amount int) (*Item, error)
	Consume(ctx context.Context, productID string, amount int) (*Item, error)
	ReceiveBatch(ctx context.Context, deltas []StockDelta) error
	ConsumeBatch(ctx context.Context, deltas []StockDelta) error
	Item(ctx context.Context, productID string) (*Item, error)
	List(ctx context.Context) []Item
	LowStock(ctx context.Context) []Item
}

type service struct {
	mu    sync.Mutex
	items map[string]*Item
	order []string

	defaultReorderLevel int
}

// NewService builds an empty ledger.
func NewService(cfg config.InventoryConfig) (Service, error) {
	level := cfg.DefaultReorderLevel
	if level < 0 {
		level = 0
	}
	return &service{
		items:               map[string]*Item{},
		defaultReorderLevel: level,
	}, nil
}

func (s *service) Register(ctx context.Context, input RegisterItemInput) (*Item, error) {
	reorderLevel := s.defaultReorderLevel
	if input.ReorderLevel != nil {
		reorderLevel = *input.ReorderLevel
	}

	item, err := NewItem(input.ID, input.Name, input.Quantity, reorderLevel)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; exists {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "item id already registered").
			WithDetails(map[string]any{"product_id": item.ID})
	}
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)

	snapshot := *item
	return &snapshot, nil
}

func (s *service) Receive(ctx context.Context, productID string, amount int) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.find(productID)
	if err != nil {
		return nil, err
	}
	if err := item.IncreaseStock(amount); err != nil {
		return nil, err
	}

	snapshot := *item
	return &snapshot, nil
}

func (s *service) Consume(ctx context.Context, productID string, amount int) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.find(productID)
	if err != nil {
		return nil, err
	}
	if err := item.DecreaseStock(amount); err != nil {
		return nil, err
	}

	snapshot := *item
	return &snapshot, nil
}

// ReceiveBatch credits every delta or none: all targets are resolved and all
// amounts validated before the first quantity changes.
func (s *service) ReceiveBatch(ctx context.Context, deltas []StockDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, delta := range deltas {
		if _, err := s.find(delta.ProductID); err != nil {
			errs = append(errs, err)
			continue
		}
		if delta.Quantity <= 0 {
			errs = append(errs, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero").
				WithDetails(map[string]any{"product_id": delta.ProductID, "amount": delta.Quantity}))
		}
	}
	if err := combineBatchErrors("receive batch rejected", errs); err != nil {
		return err
	}

	for _, delta := range deltas {
		if err := s.items[delta.ProductID].IncreaseStock(delta.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// ConsumeBatch debits every delta or none. Availability is checked against
// the cumulative demand per product, so a batch naming the same product twice
// cannot overdraw it.
func (s *service) ConsumeBatch(ctx context.Context, deltas []StockDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	demand := map[string]int{}
	for _, delta := range deltas {
		item, err := s.find(delta.ProductID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if delta.Quantity <= 0 {
			errs = append(errs, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero").
				WithDetails(map[string]any{"product_id": delta.ProductID, "amount": delta.Quantity}))
			continue
		}
		demand[delta.ProductID] += delta.Quantity
		if demand[delta.ProductID] > item.Quantity {
			errs = append(errs, pkgerrors.New(pkgerrors.CodeStateConflict, "not enough stock available").
				WithDetails(map[string]any{"product_id": delta.ProductID, "requested": demand[delta.ProductID], "available": item.Quantity}))
		}
	}
	if err := combineBatchErrors("consume batch rejected", errs); err != nil {
		return err
	}

	for _, delta := range deltas {
		if err := s.items[delta.ProductID].DecreaseStock(delta.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Item(ctx context.Context, productID string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.find(productID)
	if err != nil {
		return nil, err
	}
	snapshot := *item
	return &snapshot, nil
}

func (s *service) List(ctx context.Context) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.items[id])
	}
	return out
}

func (s *service) LowStock(ctx context.Context) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []Item{}
	for _, id := range s.order {
		if item := s.items[id]; item.IsLowStock() {
			out = append(out, *item)
		}
	}
	return out
}

// find must be called with the lock held.
func (s *service) find(productID string) (*Item, error) {
	item, ok := s.items[productID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found in inventory").
			WithDetails(map[string]any{"product_id": productID})
	}
	return item, nil
}

// combineBatchErrors surfaces every failing line, not just the first. The
// wrapping code is the most specific one present: insufficient stock wins
// over a missing target, which wins over a bad amount.
func combineBatchErrors(message string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	code := pkgerrors.CodeValidation
	products := []string{}
	for _, err := range errs {
		typed := pkgerrors.As(err)
		if typed == nil {
			continue
		}
		switch typed.Code() {
		case pkgerrors.CodeStateConflict:
			code = pkgerrors.CodeStateConflict
		case pkgerrors.CodeNotFound:
			if code != pkgerrors.CodeStateConflict {
				code = pkgerrors.CodeNotFound
			}
		}
		if details, ok := typed.Details().(map[string]any); ok {
			if id, ok := details["product_id"].(string); ok {
				products = append(products, id)
			}
		}
	}

	return pkgerrors.Wrap(code, multierr.Combine(errs...), message).
		WithDetails(map[string]any{"product_ids": products})
}
