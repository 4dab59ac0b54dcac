package ports

import (
	"context"

	"github.com/aretw0/quotient/pkg/domain"
)

// ConversionStore defines the interface for persisting conversion results.
// Conversions are content-addressed, so a stored entry never changes.
type ConversionStore interface {
	// Save persists the conversion under its ID.
	Save(ctx context.Context, conv *domain.Conversion) error

	// Load retrieves a conversion by ID.
	// Returns domain.ErrConversionNotFound if it does not exist.
	Load(ctx context.Context, id string) (*domain.Conversion, error)

	// Delete removes the conversion. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of stored conversions.
	List(ctx context.Context) ([]string, error)
}
