package agro

import (
	"context"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProducerRepository defines the interface for producer persistence
type ProducerRepository interface {
	shared.Repository[Producer]

	// FindByTaxID finds a producer by its digit-only tax ID
	FindByTaxID(ctx context.Context, taxID string) (*Producer, error)

	// ExistsByTaxID checks whether any producer uses the tax ID
	ExistsByTaxID(ctx context.Context, taxID string) (bool, error)
}

// PropertyRepository defines the interface for property persistence.
// FindByID and FindAll return properties with Producer and Crops populated.
type PropertyRepository interface {
	shared.Repository[Property]

	// FindByProducer returns the properties owned by a producer
	FindByProducer(ctx context.Context, producerID uuid.UUID) ([]Property, error)

	// ExistsByID checks whether a property exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// SumTotalArea returns the sum of total areas, zero when there are no properties
	SumTotalArea(ctx context.Context) (decimal.Decimal, error)
}

// CropRepository defines the interface for crop persistence.
// FindByID and FindAll return crops with Property populated.
type CropRepository interface {
	shared.Repository[Crop]

	// FindByProperty returns the crops planted on a property
	FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]Crop, error)
}
