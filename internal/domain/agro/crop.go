package agro

import (
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Crop is a crop planted on a property in a given season, e.g. "Soja" in "2023/2024"
type Crop struct {
	shared.BaseAggregateRoot
	PropertyID uuid.UUID
	Name       string
	Season     string

	// Populated on reads
	Property *Property
}

// NewCrop creates a crop for the given property
func NewCrop(propertyID uuid.UUID, name, season string) (*Crop, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodePropertyIDRequired, "Property ID is required")
	}
	crop := &Crop{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PropertyID:        propertyID,
		Name:              normalizeText(name),
		Season:            normalizeText(season),
	}
	if err := crop.validate(); err != nil {
		return nil, err
	}

	crop.AddDomainEvent(NewCropCreatedEvent(crop))

	return crop, nil
}

// Update applies a partial update. Nil fields are left unchanged.
func (c *Crop) Update(name, season *string, propertyID *uuid.UUID) error {
	merged := *c
	if name != nil {
		merged.Name = normalizeText(*name)
	}
	if season != nil {
		merged.Season = normalizeText(*season)
	}
	if propertyID != nil {
		if *propertyID == uuid.Nil {
			return shared.NewDomainError(shared.CodePropertyIDRequired, "Property ID is required")
		}
		if *propertyID != merged.PropertyID {
			merged.PropertyID = *propertyID
			merged.Property = nil
		}
	}
	if err := merged.validate(); err != nil {
		return err
	}

	merged.Touch()
	*c = merged

	return nil
}

// MarkDeleted records the deletion event; the repository removes the row
func (c *Crop) MarkDeleted() {
	c.AddDomainEvent(NewCropDeletedEvent(c))
}

func (c *Crop) validate() error {
	if c.Name == "" {
		return shared.NewDomainError(shared.CodeValidationFailed, "Crop name is required")
	}
	if len([]rune(c.Name)) > maxNameLength {
		return shared.NewDomainError(shared.CodeValidationFailed, "Crop name cannot exceed 200 characters")
	}
	if c.Season == "" {
		return shared.NewDomainError(shared.CodeValidationFailed, "Season is required")
	}
	if len([]rune(c.Season)) > 50 {
		return shared.NewDomainError(shared.CodeValidationFailed, "Season cannot exceed 50 characters")
	}
	return nil
}
