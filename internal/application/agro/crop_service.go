package agro

import (
	"context"
	"errors"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CropService handles crop-related business operations
type CropService struct {
	cropRepo       agro.CropRepository
	propertyRepo   agro.PropertyRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCropService creates a new CropService
func NewCropService(cropRepo agro.CropRepository, propertyRepo agro.PropertyRepository) *CropService {
	return &CropService{
		cropRepo:     cropRepo,
		propertyRepo: propertyRepo,
		logger:       zap.NewNop(),
	}
}

// SetLogger sets the service logger
func (s *CropService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// SetEventPublisher sets the publisher used for domain events
func (s *CropService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List returns crops with their property populated
func (s *CropService) List(ctx context.Context, filter ListFilter) ([]CropResponse, int64, error) {
	domainFilter := filter.toDomain()

	crops, err := s.cropRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.cropRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCropResponses(crops), total, nil
}

// GetByID returns a crop with its property, or shared.ErrNotFound
func (s *CropService) GetByID(ctx context.Context, id uuid.UUID) (*CropResponse, error) {
	crop, err := s.cropRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCropResponse(crop)
	return &response, nil
}

// Create creates a crop on an existing property
func (s *CropService) Create(ctx context.Context, req CreateCropRequest) (*CropResponse, error) {
	if req.PropertyID == nil {
		return nil, shared.NewDomainError(shared.CodePropertyIDRequired, "Property ID is required")
	}
	crop, err := agro.NewCrop(*req.PropertyID, req.Name, req.Season)
	if err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.FindByID(ctx, crop.PropertyID)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errPropertyNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.cropRepo.Save(ctx, crop); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventPublisher, s.logger, crop)
	s.logger.Info("Crop created",
		zap.String("crop_id", crop.ID.String()),
		zap.String("property_id", crop.PropertyID.String()),
		zap.String("season", crop.Season),
	)

	crop.Property = property
	response := ToCropResponse(crop)
	return &response, nil
}

// Update applies a partial update to a crop, optionally moving it to another property
func (s *CropService) Update(ctx context.Context, id uuid.UUID, req UpdateCropRequest) (*CropResponse, error) {
	crop, err := s.cropRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PropertyID != nil && *req.PropertyID != crop.PropertyID && *req.PropertyID != uuid.Nil {
		exists, err := s.propertyRepo.ExistsByID(ctx, *req.PropertyID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, errPropertyNotFound
		}
	}

	if err := crop.Update(req.Name, req.Season, req.PropertyID); err != nil {
		return nil, err
	}
	if err := s.cropRepo.Save(ctx, crop); err != nil {
		return nil, err
	}

	if crop.Property == nil {
		if updated, err := s.cropRepo.FindByID(ctx, id); err == nil {
			crop = updated
		}
	}

	response := ToCropResponse(crop)
	return &response, nil
}

// Delete removes a crop
func (s *CropService) Delete(ctx context.Context, id uuid.UUID) error {
	crop, err := s.cropRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.cropRepo.Delete(ctx, id); err != nil {
		return err
	}

	crop.MarkDeleted()
	publishEvents(ctx, s.eventPublisher, s.logger, crop)

	return nil
}
