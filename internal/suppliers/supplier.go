package suppliers

import (
	"regexp"
	"strings"

	pkgerrors "github.com/bnuindustry/warehouse-backend/pkg/errors"
)

var (
	supplierNamePattern = regexp.MustCompile(`^[a-zA-Z0-9\s&.,'()\-]{2,50}$`)
	emailPattern        = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// Supplier is a purchasing counterparty. OrderIDs is a non-owning,
// denormalized back-reference kept for display; the purchasing service is
// the source of truth for order existence, so this list is only
// eventually consistent with it.
type Supplier struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ContactEmail string   `json:"contact_email"`
	OrderIDs     []string `json:"order_ids"`
}

// NewSupplier validates and builds a supplier record.
func NewSupplier(id, name, contactEmail string) (*Supplier, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier id is required")
	}
	if !ValidSupplierName(name) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid supplier name").
			WithDetails(map[string]any{"name": name})
	}
	if !ValidEmail(contactEmail) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid contact email").
			WithDetails(map[string]any{"contact_email": contactEmail})
	}
	return &Supplier{
		ID:           strings.TrimSpace(id),
		Name:         strings.TrimSpace(name),
		ContactEmail: strings.TrimSpace(contactEmail),
	}, nil
}

// UpdateContactEmail swaps the contact address after re-validating it.
func (s *Supplier) UpdateContactEmail(newEmail string) error {
	if !ValidEmail(newEmail) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid contact email").
			WithDetails(map[string]any{"contact_email": newEmail})
	}
	s.ContactEmail = strings.TrimSpace(newEmail)
	return nil
}

// ValidSupplierName applies the shared 2-50 restricted character rule.
func ValidSupplierName(name string) bool {
	return supplierNamePattern.MatchString(strings.TrimSpace(name))
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}
