package agro

import (
	"time"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListFilter represents filter options shared by the list operations.
// A zero PageSize returns every record.
type ListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

func (f ListFilter) toDomain() shared.Filter {
	filter := shared.DefaultFilter()
	if f.Page > 0 {
		filter.Page = f.Page
	}
	filter.PageSize = f.PageSize
	if f.OrderBy != "" {
		filter.OrderBy = f.OrderBy
	}
	if f.OrderDir != "" {
		filter.OrderDir = f.OrderDir
	}
	filter.Search = f.Search
	return filter
}

// Producer DTOs

// RegisterProducerRequest represents a request to register a producer
type RegisterProducerRequest struct {
	TaxID string
	Name  string
}

// UpdateProducerRequest represents a partial update of a producer
type UpdateProducerRequest struct {
	TaxID *string
	Name  *string
}

// ProducerResponse represents a producer returned by the service
type ProducerResponse struct {
	ID        uuid.UUID
	TaxID     string
	TaxIDKind string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToProducerResponse converts a domain Producer to ProducerResponse
func ToProducerResponse(p *agro.Producer) ProducerResponse {
	return ProducerResponse{
		ID:        p.ID,
		TaxID:     p.TaxID,
		TaxIDKind: string(p.TaxIDKind()),
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProducerResponses converts a slice of producers
func ToProducerResponses(producers []agro.Producer) []ProducerResponse {
	responses := make([]ProducerResponse, len(producers))
	for i := range producers {
		responses[i] = ToProducerResponse(&producers[i])
	}
	return responses
}

// Property DTOs

// CropInput is a crop submitted together with a new property
type CropInput struct {
	Name   string
	Season string
}

// RegisterPropertyRequest represents a request to register a property.
// ProducerID is nil when the caller did not reference a producer.
type RegisterPropertyRequest struct {
	ProducerID       *uuid.UUID
	Name             string
	City             string
	State            string
	TotalArea        decimal.Decimal
	AgriculturalArea decimal.Decimal
	VegetationArea   decimal.Decimal
	Crops            []CropInput
}

// UpdatePropertyRequest represents a partial update of a property
type UpdatePropertyRequest struct {
	ProducerID       *uuid.UUID
	Name             *string
	City             *string
	State            *string
	TotalArea        *decimal.Decimal
	AgriculturalArea *decimal.Decimal
	VegetationArea   *decimal.Decimal
}

// ProducerSummary is the producer embedded in a property response
type ProducerSummary struct {
	ID    uuid.UUID
	TaxID string
	Name  string
}

// CropSummary is a crop embedded in a property response
type CropSummary struct {
	ID     uuid.UUID
	Name   string
	Season string
}

// PropertyResponse represents a property with its producer and crops
type PropertyResponse struct {
	ID               uuid.UUID
	ProducerID       uuid.UUID
	Name             string
	City             string
	State            string
	TotalArea        decimal.Decimal
	AgriculturalArea decimal.Decimal
	VegetationArea   decimal.Decimal
	Producer         *ProducerSummary
	Crops            []CropSummary
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ToPropertyResponse converts a domain Property to PropertyResponse
func ToPropertyResponse(p *agro.Property) PropertyResponse {
	resp := PropertyResponse{
		ID:               p.ID,
		ProducerID:       p.ProducerID,
		Name:             p.Name,
		City:             p.City,
		State:            p.State,
		TotalArea:        p.TotalArea,
		AgriculturalArea: p.AgriculturalArea,
		VegetationArea:   p.VegetationArea,
		Crops:            make([]CropSummary, 0, len(p.Crops)),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.Producer != nil {
		resp.Producer = &ProducerSummary{
			ID:    p.Producer.ID,
			TaxID: p.Producer.TaxID,
			Name:  p.Producer.Name,
		}
	}
	for _, c := range p.Crops {
		resp.Crops = append(resp.Crops, CropSummary{ID: c.ID, Name: c.Name, Season: c.Season})
	}
	return resp
}

// ToPropertyResponses converts a slice of properties
func ToPropertyResponses(properties []agro.Property) []PropertyResponse {
	responses := make([]PropertyResponse, len(properties))
	for i := range properties {
		responses[i] = ToPropertyResponse(&properties[i])
	}
	return responses
}

// Crop DTOs

// CreateCropRequest represents a request to create a crop.
// PropertyID is nil when the caller did not reference a property.
type CreateCropRequest struct {
	PropertyID *uuid.UUID
	Name       string
	Season     string
}

// UpdateCropRequest represents a partial update of a crop
type UpdateCropRequest struct {
	PropertyID *uuid.UUID
	Name       *string
	Season     *string
}

// PropertySummary is the property embedded in a crop response
type PropertySummary struct {
	ID    uuid.UUID
	Name  string
	City  string
	State string
}

// CropResponse represents a crop with its property
type CropResponse struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	Name       string
	Season     string
	Property   *PropertySummary
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ToCropResponse converts a domain Crop to CropResponse
func ToCropResponse(c *agro.Crop) CropResponse {
	resp := CropResponse{
		ID:         c.ID,
		PropertyID: c.PropertyID,
		Name:       c.Name,
		Season:     c.Season,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
	if c.Property != nil {
		resp.Property = &PropertySummary{
			ID:    c.Property.ID,
			Name:  c.Property.Name,
			City:  c.Property.City,
			State: c.Property.State,
		}
	}
	return resp
}

// ToCropResponses converts a slice of crops
func ToCropResponses(crops []agro.Crop) []CropResponse {
	responses := make([]CropResponse, len(crops))
	for i := range crops {
		responses[i] = ToCropResponse(&crops[i])
	}
	return responses
}
