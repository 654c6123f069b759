package handler

import (
	"time"

	agroapp "github.com/agro/backend/internal/application/agro"
)

// EntityRef references another record by ID, e.g. {"id": "..."}
type EntityRef struct {
	ID string `json:"id" binding:"required,uuid"`
}

// Producer requests

// CreateProducerRequest is the body of POST /producers
type CreateProducerRequest struct {
	TaxID string `json:"taxId" binding:"required"`
	Name  string `json:"name" binding:"required,max=200"`
}

// UpdateProducerRequest is the body of PUT /producers/:id
type UpdateProducerRequest struct {
	TaxID *string `json:"taxId"`
	Name  *string `json:"name" binding:"omitempty,min=1,max=200"`
}

// Property requests

// CropItem is a crop submitted together with a property
type CropItem struct {
	Name   string `json:"name" binding:"required,max=100"`
	Season string `json:"season" binding:"required,max=50"`
}

// CreatePropertyRequest is the body of POST /properties.
// A missing producer reference is reported by the service, not the binder.
type CreatePropertyRequest struct {
	Name             string     `json:"name" binding:"required,max=200"`
	City             string     `json:"city" binding:"required,max=100"`
	State            string     `json:"state" binding:"required,max=50"`
	TotalArea        *float64   `json:"totalArea" binding:"required,gte=0,lte=99999999.99"`
	AgriculturalArea *float64   `json:"agriculturalArea" binding:"required,gte=0,lte=99999999.99"`
	VegetationArea   *float64   `json:"vegetationArea" binding:"required,gte=0,lte=99999999.99"`
	Producer         *EntityRef `json:"producer"`
	Crops            []CropItem `json:"crops" binding:"omitempty,dive"`
}

// UpdatePropertyRequest is the body of PUT /properties/:id
type UpdatePropertyRequest struct {
	Name             *string    `json:"name" binding:"omitempty,min=1,max=200"`
	City             *string    `json:"city" binding:"omitempty,min=1,max=100"`
	State            *string    `json:"state" binding:"omitempty,min=1,max=50"`
	TotalArea        *float64   `json:"totalArea" binding:"omitempty,gte=0,lte=99999999.99"`
	AgriculturalArea *float64   `json:"agriculturalArea" binding:"omitempty,gte=0,lte=99999999.99"`
	VegetationArea   *float64   `json:"vegetationArea" binding:"omitempty,gte=0,lte=99999999.99"`
	Producer         *EntityRef `json:"producer"`
}

// Crop requests

// CreateCropRequest is the body of POST /crops.
// The Portuguese keys nome, safra and propriedade are accepted for older clients.
type CreateCropRequest struct {
	Name        string     `json:"name" binding:"max=100"`
	Season      string     `json:"season" binding:"max=50"`
	Property    *EntityRef `json:"property"`
	Nome        string     `json:"nome" binding:"max=100"`
	Safra       string     `json:"safra" binding:"max=50"`
	Propriedade *EntityRef `json:"propriedade"`
}

// normalized folds the legacy keys into the canonical ones
func (r CreateCropRequest) normalized() (name, season string, property *EntityRef) {
	name, season, property = r.Name, r.Season, r.Property
	if name == "" {
		name = r.Nome
	}
	if season == "" {
		season = r.Safra
	}
	if property == nil {
		property = r.Propriedade
	}
	return name, season, property
}

// UpdateCropRequest is the body of PUT /crops/:id
type UpdateCropRequest struct {
	Name     *string    `json:"name" binding:"omitempty,min=1,max=100"`
	Season   *string    `json:"season" binding:"omitempty,min=1,max=50"`
	Property *EntityRef `json:"property"`
}

// Responses

// ProducerResponse represents a producer in API responses
type ProducerResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	TaxID     string `json:"taxId" example:"12345678909"`
	TaxIDKind string `json:"taxIdKind" example:"cpf" enums:"cpf,cnpj"`
	Name      string `json:"name" example:"Maria Souza"`
	CreatedAt string `json:"createdAt" example:"2026-01-24T12:00:00Z"`
	UpdatedAt string `json:"updatedAt" example:"2026-01-24T12:00:00Z"`
}

// ProducerRefResponse is the producer embedded in a property
type ProducerRefResponse struct {
	ID    string `json:"id"`
	TaxID string `json:"taxId"`
	Name  string `json:"name"`
}

// CropRefResponse is a crop embedded in a property
type CropRefResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Season string `json:"season"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID               string               `json:"id"`
	Name             string               `json:"name" example:"Fazenda Boa Vista"`
	City             string               `json:"city" example:"Sorriso"`
	State            string               `json:"state" example:"MT"`
	TotalArea        float64              `json:"totalArea" example:"100.5"`
	AgriculturalArea float64              `json:"agriculturalArea" example:"60"`
	VegetationArea   float64              `json:"vegetationArea" example:"40.5"`
	Producer         *ProducerRefResponse `json:"producer"`
	Crops            []CropRefResponse    `json:"crops"`
	CreatedAt        string               `json:"createdAt"`
	UpdatedAt        string               `json:"updatedAt"`
}

// PropertyRefResponse is the property embedded in a crop
type PropertyRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

// CropResponse represents a crop in API responses
type CropResponse struct {
	ID        string               `json:"id"`
	Name      string               `json:"name" example:"Soja"`
	Season    string               `json:"season" example:"Safra 2021"`
	Property  *PropertyRefResponse `json:"property"`
	CreatedAt string               `json:"createdAt"`
	UpdatedAt string               `json:"updatedAt"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toProducerResponse(p agroapp.ProducerResponse) ProducerResponse {
	return ProducerResponse{
		ID:        p.ID.String(),
		TaxID:     p.TaxID,
		TaxIDKind: p.TaxIDKind,
		Name:      p.Name,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}

func toProducerResponses(items []agroapp.ProducerResponse) []ProducerResponse {
	out := make([]ProducerResponse, len(items))
	for i := range items {
		out[i] = toProducerResponse(items[i])
	}
	return out
}

func toPropertyResponse(p agroapp.PropertyResponse) PropertyResponse {
	resp := PropertyResponse{
		ID:               p.ID.String(),
		Name:             p.Name,
		City:             p.City,
		State:            p.State,
		TotalArea:        p.TotalArea.InexactFloat64(),
		AgriculturalArea: p.AgriculturalArea.InexactFloat64(),
		VegetationArea:   p.VegetationArea.InexactFloat64(),
		Producer:         &ProducerRefResponse{ID: p.ProducerID.String()},
		Crops:            make([]CropRefResponse, 0, len(p.Crops)),
		CreatedAt:        formatTime(p.CreatedAt),
		UpdatedAt:        formatTime(p.UpdatedAt),
	}
	if p.Producer != nil {
		resp.Producer.TaxID = p.Producer.TaxID
		resp.Producer.Name = p.Producer.Name
	}
	for _, c := range p.Crops {
		resp.Crops = append(resp.Crops, CropRefResponse{ID: c.ID.String(), Name: c.Name, Season: c.Season})
	}
	return resp
}

func toPropertyResponses(items []agroapp.PropertyResponse) []PropertyResponse {
	out := make([]PropertyResponse, len(items))
	for i := range items {
		out[i] = toPropertyResponse(items[i])
	}
	return out
}

func toCropResponse(c agroapp.CropResponse) CropResponse {
	resp := CropResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Season:    c.Season,
		Property:  &PropertyRefResponse{ID: c.PropertyID.String()},
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
	if c.Property != nil {
		resp.Property.Name = c.Property.Name
		resp.Property.City = c.Property.City
		resp.Property.State = c.Property.State
	}
	return resp
}

func toCropResponses(items []agroapp.CropResponse) []CropResponse {
	out := make([]CropResponse, len(items))
	for i := range items {
		out[i] = toCropResponse(items[i])
	}
	return out
}
