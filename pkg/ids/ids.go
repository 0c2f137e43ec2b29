package ids

import (
	"fmt"

	"github.com/google/uuid"
)

// Entity identifiers are opaque strings. The generator is injected so order
// and transaction id assignment stays deterministic under test.
type Generator interface {
	NewID(prefix string) string
}

// UUIDGenerator issues prefixed random identifiers.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(prefix string) string {
	if prefix == "" {
		return uuid.NewString()
	}
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString())
}
