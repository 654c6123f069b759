package persistence

import (
	"context"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPropertyRepository implements PropertyRepository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// withRelations preloads the owner and the crops of each property
func (r *GormPropertyRepository) withRelations(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Producer").
		Preload("Crops", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		})
}

// FindByID finds a property by its ID with producer and crops loaded
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*agro.Property, error) {
	var model models.PropertyModel
	if err := r.withRelations(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all properties matching the filter
func (r *GormPropertyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]agro.Property, error) {
	var propertyModels []models.PropertyModel
	query := r.applyFilter(r.withRelations(r.db.WithContext(ctx).Model(&models.PropertyModel{})), filter)

	if err := query.Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	return toDomainProperties(propertyModels), nil
}

// FindByProducer returns the properties owned by a producer
func (r *GormPropertyRepository) FindByProducer(ctx context.Context, producerID uuid.UUID) ([]agro.Property, error) {
	var propertyModels []models.PropertyModel
	if err := r.withRelations(r.db.WithContext(ctx)).
		Where("producer_id = ?", producerID).
		Order("created_at ASC").
		Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	return toDomainProperties(propertyModels), nil
}

// Save inserts a new property or updates a stored one; ErrNotFound when the
// stored row is gone. Crops are saved through the crop repository.
func (r *GormPropertyRepository) Save(ctx context.Context, property *agro.Property) error {
	model := models.PropertyModelFromDomain(property)
	return saveEntity(r.db.WithContext(ctx).Omit(clause.Associations), &property.BaseEntity, model, "Producer not found")
}

// Delete deletes a property and, through the cascade, its crops
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PropertyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts properties matching the filter
func (r *GormPropertyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.PropertyModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByID checks whether a property exists
func (r *GormPropertyRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PropertyModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SumTotalArea returns the sum of total_area over all properties, zero when empty
func (r *GormPropertyRepository) SumTotalArea(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	row := r.db.WithContext(ctx).
		Model(&models.PropertyModel{}).
		Select("SUM(total_area)").
		Row()
	if err := row.Scan(&sum); err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal.Round(agro.AreaScale), nil
}

// applyFilter applies filter options to the query
func (r *GormPropertyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = paginate(query, filter)
	return query.Order(orderClause(filter, PropertySortFields))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPropertyRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(city) LIKE LOWER(?) OR LOWER(state) LIKE LOWER(?)",
			searchPattern, searchPattern, searchPattern)
	}
	return query
}

func toDomainProperties(propertyModels []models.PropertyModel) []agro.Property {
	properties := make([]agro.Property, len(propertyModels))
	for i := range propertyModels {
		properties[i] = *propertyModels[i].ToDomain()
	}
	return properties
}

// Ensure GormPropertyRepository implements PropertyRepository
var _ agro.PropertyRepository = (*GormPropertyRepository)(nil)
