package models

import (
	"github.com/agro/backend/internal/domain/agro"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProducerModel is the persistence model for the Producer domain entity.
type ProducerModel struct {
	BaseModel
	TaxID string `gorm:"column:tax_id;type:varchar(14);not null;uniqueIndex:uq_producers_tax_id"`
	Name  string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (ProducerModel) TableName() string {
	return "producers"
}

// ToDomain converts the persistence model to a domain Producer entity.
func (m *ProducerModel) ToDomain() *agro.Producer {
	return &agro.Producer{
		BaseAggregateRoot: m.toAggregateRoot(),
		TaxID:             m.TaxID,
		Name:              m.Name,
	}
}

// ProducerModelFromDomain creates a persistence model from a domain Producer.
func ProducerModelFromDomain(p *agro.Producer) *ProducerModel {
	m := &ProducerModel{
		TaxID: p.TaxID,
		Name:  p.Name,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// PropertyModel is the persistence model for the Property domain entity.
type PropertyModel struct {
	BaseModel
	ProducerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name             string          `gorm:"type:varchar(200);not null"`
	City             string          `gorm:"type:varchar(100);not null"`
	State            string          `gorm:"type:varchar(50);not null"`
	TotalArea        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	AgriculturalArea decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	VegetationArea   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	Producer *ProducerModel `gorm:"foreignKey:ProducerID;constraint:OnDelete:CASCADE"`
	Crops    []CropModel    `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PropertyModel) TableName() string {
	return "properties"
}

// ToDomain converts the persistence model to a domain Property entity.
// Producer and crops are mapped when they were preloaded.
func (m *PropertyModel) ToDomain() *agro.Property {
	p := &agro.Property{
		BaseAggregateRoot: m.toAggregateRoot(),
		ProducerID:        m.ProducerID,
		Name:              m.Name,
		City:              m.City,
		State:             m.State,
		TotalArea:         m.TotalArea,
		AgriculturalArea:  m.AgriculturalArea,
		VegetationArea:    m.VegetationArea,
		Crops:             make([]agro.Crop, 0, len(m.Crops)),
	}
	if m.Producer != nil {
		p.Producer = m.Producer.ToDomain()
	}
	for i := range m.Crops {
		p.Crops = append(p.Crops, *m.Crops[i].ToDomain())
	}
	return p
}

// PropertyModelFromDomain creates a persistence model from a domain Property.
// Associations are not copied; they are owned by their own repositories.
func PropertyModelFromDomain(p *agro.Property) *PropertyModel {
	m := &PropertyModel{
		ProducerID:       p.ProducerID,
		Name:             p.Name,
		City:             p.City,
		State:            p.State,
		TotalArea:        p.TotalArea,
		AgriculturalArea: p.AgriculturalArea,
		VegetationArea:   p.VegetationArea,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// CropModel is the persistence model for the Crop domain entity.
type CropModel struct {
	BaseModel
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(200);not null"`
	Season     string    `gorm:"type:varchar(50);not null"`

	Property *PropertyModel `gorm:"foreignKey:PropertyID"`
}

// TableName returns the table name for GORM
func (CropModel) TableName() string {
	return "crops"
}

// ToDomain converts the persistence model to a domain Crop entity.
func (m *CropModel) ToDomain() *agro.Crop {
	c := &agro.Crop{
		BaseAggregateRoot: m.toAggregateRoot(),
		PropertyID:        m.PropertyID,
		Name:              m.Name,
		Season:            m.Season,
	}
	if m.Property != nil {
		c.Property = m.Property.ToDomain()
	}
	return c
}

// CropModelFromDomain creates a persistence model from a domain Crop.
func CropModelFromDomain(c *agro.Crop) *CropModel {
	m := &CropModel{
		PropertyID: c.PropertyID,
		Name:       c.Name,
		Season:     c.Season,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
