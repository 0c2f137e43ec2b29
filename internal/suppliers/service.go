package suppliers

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
	"github.com/bnuindustry/warehouse-backend/pkg/ids"
)

// AddSupplierInput captures a new supplier registration.
type AddSupplierInput struct {
	Name         string
	ContactEmail string
}

// Service owns the supplier directory.
type Service interface {
	Add(ctx context.Context, input AddSupplierInput) (*Supplier, error)
	Get(ctx context.Context, supplierID string) (*Supplier, error)
	List(ctx context.Context) []Supplier
	UpdateContactEmail(ctx context.Context, supplierID, newEmail string) (*Supplier, error)
	Remove(ctx context.Context, supplierID string) error
	AttachOrder(ctx context.Context, supplierID, orderID string) error
}

type service struct {
	mu        sync.Mutex
	suppliers map[string]*Supplier
	order     []string

	ids ids.Generator
}

// NewService builds an empty supplier directory.
func NewService(generator ids.Generator) (Service, error) {
	if generator == nil {
		return nil, fmt.Errorf("id generator required")
	}
	return &service{
		suppliers: map[string]*Supplier{},
		ids:       generator,
	}, nil
}

func (s *service) Add(ctx context.Context, input AddSupplierInput) (*Supplier, error) {
	supplier, err := NewSupplier(s.ids.NewID("SUP"), input.Name, input.ContactEmail)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.suppliers[supplier.ID] = supplier
	s.order = append(s.order, supplier.ID)
	s.mu.Unlock()

	return snapshot(supplier), nil
}

func (s *service) Get(ctx context.Context, supplierID string) (*Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	supplier, err := s.find(supplierID)
	if err != nil {
		return nil, err
	}
	return snapshot(supplier), nil
}

func (s *service) List(ctx context.Context) []Supplier {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Supplier, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *snapshot(s.suppliers[id]))
	}
	return out
}

func (s *service) UpdateContactEmail(ctx context.Context, supplierID, newEmail string) (*Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	supplier, err := s.find(supplierID)
	if err != nil {
		return nil, err
	}
	if err := supplier.UpdateContactEmail(newEmail); err != nil {
		return nil, err
	}
	return snapshot(supplier), nil
}

func (s *service) Remove(ctx context.Context, supplierID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.find(supplierID); err != nil {
		return err
	}
	delete(s.suppliers, supplierID)
	for i, id := range s.order {
		if id == supplierID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// AttachOrder records an order id on the supplier's display list. Unknown
// suppliers are reported but never block order creation upstream.
func (s *service) AttachOrder(ctx context.Context, supplierID, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	supplier, err := s.find(supplierID)
	if err != nil {
		return err
	}
	supplier.OrderIDs = append(supplier.OrderIDs, orderID)
	return nil
}

// find must be called with the lock held.
func (s *service) find(supplierID string) (*Supplier, error) {
	supplier, ok := s.suppliers[supplierID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found").
			WithDetails(map[string]any{"supplier_id": supplierID})
	}
	return supplier, nil
}

func snapshot(supplier *Supplier) *Supplier {
	out := *supplier
	out.OrderIDs = append([]string(nil), supplier.OrderIDs...)
	return &out
}
