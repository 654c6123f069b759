package agro

import (
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Property is a farm owned by a producer. Its areas are in hectares.
type Property struct {
	shared.BaseAggregateRoot
	ProducerID       uuid.UUID
	Name             string
	City             string
	State            string
	TotalArea        decimal.Decimal
	AgriculturalArea decimal.Decimal
	VegetationArea   decimal.Decimal

	// Populated on reads
	Producer *Producer
	Crops    []Crop
}

// PropertyAreas groups the three area figures of a property
type PropertyAreas struct {
	Total        decimal.Decimal
	Agricultural decimal.Decimal
	Vegetation   decimal.Decimal
}

// PropertyChanges is a partial update. Nil fields keep their stored value.
type PropertyChanges struct {
	Producer         *Producer
	Name             *string
	City             *string
	State            *string
	TotalArea        *decimal.Decimal
	AgriculturalArea *decimal.Decimal
	VegetationArea   *decimal.Decimal
}

// NewProperty creates a property for an existing producer
func NewProperty(producer *Producer, name, city, state string, areas PropertyAreas) (*Property, error) {
	if producer == nil || producer.ID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeProducerRequired, "Property must belong to a producer")
	}

	property := &Property{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProducerID:        producer.ID,
		Name:              normalizeText(name),
		City:              normalizeText(city),
		State:             normalizeState(state),
		TotalArea:         areas.Total,
		AgriculturalArea:  areas.Agricultural,
		VegetationArea:    areas.Vegetation,
		Producer:          producer,
	}
	if err := property.validate(); err != nil {
		return nil, err
	}
	property.normalizeAreas()

	property.AddDomainEvent(NewPropertyRegisteredEvent(property))

	return property, nil
}

// Update merges the supplied changes onto the current record and validates
// the merged result, so a partial area update cannot break the area rule.
// The property is left untouched when validation fails.
func (p *Property) Update(changes PropertyChanges) error {
	merged := *p
	if changes.Producer != nil {
		if changes.Producer.ID == uuid.Nil {
			return shared.NewDomainError(shared.CodeProducerRequired, "Property must belong to a producer")
		}
		merged.ProducerID = changes.Producer.ID
		merged.Producer = changes.Producer
	}
	if changes.Name != nil {
		merged.Name = normalizeText(*changes.Name)
	}
	if changes.City != nil {
		merged.City = normalizeText(*changes.City)
	}
	if changes.State != nil {
		merged.State = normalizeState(*changes.State)
	}
	if changes.TotalArea != nil {
		merged.TotalArea = *changes.TotalArea
	}
	if changes.AgriculturalArea != nil {
		merged.AgriculturalArea = *changes.AgriculturalArea
	}
	if changes.VegetationArea != nil {
		merged.VegetationArea = *changes.VegetationArea
	}
	if err := merged.validate(); err != nil {
		return err
	}
	merged.normalizeAreas()

	merged.Touch()
	*p = merged
	p.AddDomainEvent(NewPropertyUpdatedEvent(p))

	return nil
}

// MarkDeleted records the deletion event; the repository removes the row
func (p *Property) MarkDeleted() {
	p.AddDomainEvent(NewPropertyDeletedEvent(p))
}

// Areas returns the property's area figures
func (p *Property) Areas() PropertyAreas {
	return PropertyAreas{
		Total:        p.TotalArea,
		Agricultural: p.AgriculturalArea,
		Vegetation:   p.VegetationArea,
	}
}

// UnusedArea is the part of the total area that is neither farmed nor vegetation
func (p *Property) UnusedArea() decimal.Decimal {
	return p.TotalArea.Sub(p.AgriculturalArea).Sub(p.VegetationArea)
}

func (p *Property) validate() error {
	if p.Name == "" {
		return shared.NewDomainError(shared.CodeValidationFailed, "Property name is required")
	}
	if len([]rune(p.Name)) > maxNameLength {
		return shared.NewDomainError(shared.CodeValidationFailed, "Property name cannot exceed 200 characters")
	}
	if p.City == "" {
		return shared.NewDomainError(shared.CodeValidationFailed, "City is required")
	}
	if p.State == "" {
		return shared.NewDomainError(shared.CodeValidationFailed, "State is required")
	}
	if p.TotalArea.IsNegative() || p.AgriculturalArea.IsNegative() || p.VegetationArea.IsNegative() {
		return shared.NewDomainError(shared.CodeValidationFailed, "Areas cannot be negative")
	}
	for _, area := range []decimal.Decimal{p.TotalArea, p.AgriculturalArea, p.VegetationArea} {
		if !AreaWithinScale(area) {
			return shared.NewDomainError(shared.CodeValidationFailed, "Areas accept at most 2 decimal places")
		}
		if area.GreaterThan(MaxArea) {
			return shared.NewDomainError(shared.CodeValidationFailed, "Areas cannot exceed 99999999.99 hectares")
		}
	}
	// Compared on the values as given, never on rounded ones
	if !AreasValid(p.TotalArea, p.AgriculturalArea, p.VegetationArea) {
		return shared.NewDomainError(shared.CodeAreaSumExceedsTotal,
			"The sum of agricultural and vegetation areas cannot exceed the total area")
	}
	return nil
}

// normalizeAreas fixes the stored scale. Values already passed AreaWithinScale,
// so this never changes them.
func (p *Property) normalizeAreas() {
	p.TotalArea = RoundArea(p.TotalArea)
	p.AgriculturalArea = RoundArea(p.AgriculturalArea)
	p.VegetationArea = RoundArea(p.VegetationArea)
}
