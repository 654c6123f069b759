package agro

import (
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeProducer = "Producer"
	AggregateTypeProperty = "Property"
	AggregateTypeCrop     = "Crop"
)

// Event type constants
const (
	EventTypeProducerRegistered = "ProducerRegistered"
	EventTypeProducerUpdated    = "ProducerUpdated"
	EventTypeProducerDeleted    = "ProducerDeleted"
	EventTypePropertyRegistered = "PropertyRegistered"
	EventTypePropertyUpdated    = "PropertyUpdated"
	EventTypePropertyDeleted    = "PropertyDeleted"
	EventTypeCropCreated        = "CropCreated"
	EventTypeCropDeleted        = "CropDeleted"
)

// ProducerRegisteredEvent is published when a new producer is registered
type ProducerRegisteredEvent struct {
	shared.BaseDomainEvent
	ProducerID uuid.UUID `json:"producerId"`
	TaxIDKind  TaxIDKind `json:"taxIdKind"`
}

// NewProducerRegisteredEvent creates a new ProducerRegisteredEvent
func NewProducerRegisteredEvent(p *Producer) *ProducerRegisteredEvent {
	return &ProducerRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProducerRegistered, AggregateTypeProducer, p.ID),
		ProducerID:      p.ID,
		TaxIDKind:       p.TaxIDKind(),
	}
}

// ProducerUpdatedEvent is published when a producer's data changes
type ProducerUpdatedEvent struct {
	shared.BaseDomainEvent
	ProducerID uuid.UUID `json:"producerId"`
}

// NewProducerUpdatedEvent creates a new ProducerUpdatedEvent
func NewProducerUpdatedEvent(p *Producer) *ProducerUpdatedEvent {
	return &ProducerUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProducerUpdated, AggregateTypeProducer, p.ID),
		ProducerID:      p.ID,
	}
}

// ProducerDeletedEvent is published after a producer and everything it owns is removed
type ProducerDeletedEvent struct {
	shared.BaseDomainEvent
	ProducerID uuid.UUID `json:"producerId"`
}

// NewProducerDeletedEvent creates a new ProducerDeletedEvent
func NewProducerDeletedEvent(p *Producer) *ProducerDeletedEvent {
	return &ProducerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProducerDeleted, AggregateTypeProducer, p.ID),
		ProducerID:      p.ID,
	}
}

// PropertyRegisteredEvent is published when a property is registered
type PropertyRegisteredEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID       `json:"propertyId"`
	ProducerID uuid.UUID       `json:"producerId"`
	State      string          `json:"state"`
	TotalArea  decimal.Decimal `json:"totalArea"`
}

// NewPropertyRegisteredEvent creates a new PropertyRegisteredEvent
func NewPropertyRegisteredEvent(p *Property) *PropertyRegisteredEvent {
	return &PropertyRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyRegistered, AggregateTypeProperty, p.ID),
		PropertyID:      p.ID,
		ProducerID:      p.ProducerID,
		State:           p.State,
		TotalArea:       p.TotalArea,
	}
}

// PropertyUpdatedEvent is published when a property changes
type PropertyUpdatedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID       `json:"propertyId"`
	ProducerID uuid.UUID       `json:"producerId"`
	TotalArea  decimal.Decimal `json:"totalArea"`
}

// NewPropertyUpdatedEvent creates a new PropertyUpdatedEvent
func NewPropertyUpdatedEvent(p *Property) *PropertyUpdatedEvent {
	return &PropertyUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyUpdated, AggregateTypeProperty, p.ID),
		PropertyID:      p.ID,
		ProducerID:      p.ProducerID,
		TotalArea:       p.TotalArea,
	}
}

// PropertyDeletedEvent is published after a property and its crops are removed
type PropertyDeletedEvent struct {
	shared.BaseDomainEvent
	PropertyID uuid.UUID `json:"propertyId"`
}

// NewPropertyDeletedEvent creates a new PropertyDeletedEvent
func NewPropertyDeletedEvent(p *Property) *PropertyDeletedEvent {
	return &PropertyDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePropertyDeleted, AggregateTypeProperty, p.ID),
		PropertyID:      p.ID,
	}
}

// CropCreatedEvent is published when a crop is created
type CropCreatedEvent struct {
	shared.BaseDomainEvent
	CropID     uuid.UUID `json:"cropId"`
	PropertyID uuid.UUID `json:"propertyId"`
	Season     string    `json:"season"`
}

// NewCropCreatedEvent creates a new CropCreatedEvent
func NewCropCreatedEvent(c *Crop) *CropCreatedEvent {
	return &CropCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCropCreated, AggregateTypeCrop, c.ID),
		CropID:          c.ID,
		PropertyID:      c.PropertyID,
		Season:          c.Season,
	}
}

// CropDeletedEvent is published when a crop is removed
type CropDeletedEvent struct {
	shared.BaseDomainEvent
	CropID uuid.UUID `json:"cropId"`
}

// NewCropDeletedEvent creates a new CropDeletedEvent
func NewCropDeletedEvent(c *Crop) *CropDeletedEvent {
	return &CropDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCropDeleted, AggregateTypeCrop, c.ID),
		CropID:          c.ID,
	}
}
