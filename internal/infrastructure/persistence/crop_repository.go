package persistence

import (
	"context"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCropRepository implements CropRepository using GORM
type GormCropRepository struct {
	db *gorm.DB
}

// NewGormCropRepository creates a new GormCropRepository
func NewGormCropRepository(db *gorm.DB) *GormCropRepository {
	return &GormCropRepository{db: db}
}

// FindByID finds a crop by its ID with its property loaded
func (r *GormCropRepository) FindByID(ctx context.Context, id uuid.UUID) (*agro.Crop, error) {
	var model models.CropModel
	if err := r.db.WithContext(ctx).Preload("Property").First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all crops matching the filter
func (r *GormCropRepository) FindAll(ctx context.Context, filter shared.Filter) ([]agro.Crop, error) {
	var cropModels []models.CropModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CropModel{}).Preload("Property"), filter)

	if err := query.Find(&cropModels).Error; err != nil {
		return nil, err
	}
	return toDomainCrops(cropModels), nil
}

// FindByProperty returns the crops planted on a property
func (r *GormCropRepository) FindByProperty(ctx context.Context, propertyID uuid.UUID) ([]agro.Crop, error) {
	var cropModels []models.CropModel
	if err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("created_at ASC").
		Find(&cropModels).Error; err != nil {
		return nil, err
	}
	return toDomainCrops(cropModels), nil
}

// Save creates or updates a crop
func (r *GormCropRepository) Save(ctx context.Context, crop *agro.Crop) error {
	model := models.CropModelFromDomain(crop)
	return saveEntity(r.db.WithContext(ctx).Omit(clause.Associations), &crop.BaseEntity, model, "Property not found")
}

// Delete deletes a crop
func (r *GormCropRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CropModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts crops matching the filter
func (r *GormCropRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.CropModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCropRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = paginate(query, filter)
	return query.Order(orderClause(filter, CropSortFields))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCropRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(season) LIKE LOWER(?)", searchPattern, searchPattern)
	}
	return query
}

func toDomainCrops(cropModels []models.CropModel) []agro.Crop {
	crops := make([]agro.Crop, len(cropModels))
	for i := range cropModels {
		crops[i] = *cropModels[i].ToDomain()
	}
	return crops
}

// Ensure GormCropRepository implements CropRepository
var _ agro.CropRepository = (*GormCropRepository)(nil)
