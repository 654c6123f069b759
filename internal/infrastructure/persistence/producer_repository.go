package persistence

import (
	"context"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/agro/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProducerRepository implements ProducerRepository using GORM
type GormProducerRepository struct {
	db *gorm.DB
}

// NewGormProducerRepository creates a new GormProducerRepository
func NewGormProducerRepository(db *gorm.DB) *GormProducerRepository {
	return &GormProducerRepository{db: db}
}

// FindByID finds a producer by its ID
func (r *GormProducerRepository) FindByID(ctx context.Context, id uuid.UUID) (*agro.Producer, error) {
	var model models.ProducerModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// FindByTaxID finds a producer by its digit-only tax ID
func (r *GormProducerRepository) FindByTaxID(ctx context.Context, taxID string) (*agro.Producer, error) {
	var model models.ProducerModel
	if err := r.db.WithContext(ctx).Where("tax_id = ?", taxID).First(&model).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// FindAll finds all producers matching the filter
func (r *GormProducerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]agro.Producer, error) {
	var producerModels []models.ProducerModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ProducerModel{}), filter)

	if err := query.Find(&producerModels).Error; err != nil {
		return nil, err
	}

	producers := make([]agro.Producer, len(producerModels))
	for i, model := range producerModels {
		producers[i] = *model.ToDomain()
	}
	return producers, nil
}

// Save inserts a new producer or updates a stored one. Updating a producer
// that was deleted meanwhile returns ErrNotFound.
// A concurrent insert of the same tax ID surfaces as ErrDuplicateDocument.
func (r *GormProducerRepository) Save(ctx context.Context, producer *agro.Producer) error {
	model := models.ProducerModelFromDomain(producer)
	return saveEntity(r.db.WithContext(ctx), &producer.BaseEntity, model, "Producer not found")
}

// Delete deletes a producer. Its properties and their crops go with it.
func (r *GormProducerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ProducerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts producers matching the filter
func (r *GormProducerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ProducerModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByTaxID checks whether any producer uses the tax ID
func (r *GormProducerRepository) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProducerModel{}).
		Where("tax_id = ?", taxID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormProducerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)
	query = paginate(query, filter)
	return query.Order(orderClause(filter, ProducerSortFields))
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormProducerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR tax_id LIKE ?", searchPattern, searchPattern)
	}
	return query
}

// Ensure GormProducerRepository implements ProducerRepository
var _ agro.ProducerRepository = (*GormProducerRepository)(nil)
