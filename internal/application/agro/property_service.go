package agro

import (
	"context"
	"errors"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	errProducerNotFound = shared.NewDomainError(shared.CodeNotFound, "Producer not found")
	errPropertyNotFound = shared.NewDomainError(shared.CodeNotFound, "Property not found")
)

// PropertyService handles property-related business operations
type PropertyService struct {
	propertyRepo   agro.PropertyRepository
	producerRepo   agro.ProducerRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	propertyRepo agro.PropertyRepository,
	producerRepo agro.ProducerRepository,
	txScope TransactionScope,
) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		producerRepo: producerRepo,
		txScope:      txScope,
		logger:       zap.NewNop(),
	}
}

// SetLogger sets the service logger
func (s *PropertyService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// SetEventPublisher sets the publisher used for domain events
func (s *PropertyService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register creates a property for an existing producer. Crops submitted with
// the property are written in the same transaction: either all of them are
// stored together with the property or nothing is.
func (s *PropertyService) Register(ctx context.Context, req RegisterPropertyRequest) (*PropertyResponse, error) {
	if req.ProducerID == nil || *req.ProducerID == uuid.Nil {
		return nil, shared.NewDomainError(shared.CodeProducerRequired, "Producer is required")
	}
	producer, err := s.resolveProducer(ctx, *req.ProducerID)
	if err != nil {
		return nil, err
	}

	property, err := agro.NewProperty(producer, req.Name, req.City, req.State, agro.PropertyAreas{
		Total:        req.TotalArea,
		Agricultural: req.AgriculturalArea,
		Vegetation:   req.VegetationArea,
	})
	if err != nil {
		return nil, err
	}

	crops := make([]*agro.Crop, 0, len(req.Crops))
	for _, in := range req.Crops {
		crop, err := agro.NewCrop(property.ID, in.Name, in.Season)
		if err != nil {
			return nil, err
		}
		crops = append(crops, crop)
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.PropertyRepo().Save(ctx, property); err != nil {
			return err
		}
		for _, crop := range crops {
			if err := repos.CropRepo().Save(ctx, crop); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Property registration rolled back",
			zap.String("producer_id", producer.ID.String()),
			zap.Int("crops", len(crops)),
			zap.Error(err),
		)
		return nil, err
	}

	aggregates := make([]shared.AggregateRoot, 0, len(crops)+1)
	aggregates = append(aggregates, property)
	for _, crop := range crops {
		property.Crops = append(property.Crops, *crop)
		aggregates = append(aggregates, crop)
	}
	publishEvents(ctx, s.eventPublisher, s.logger, aggregates...)
	s.logger.Info("Property registered",
		zap.String("property_id", property.ID.String()),
		zap.String("producer_id", producer.ID.String()),
		zap.String("total_area", property.TotalArea.StringFixed(agro.AreaScale)),
		zap.Int("crops", len(crops)),
	)

	response := ToPropertyResponse(property)
	return &response, nil
}

// Update merges the supplied fields onto the stored property and validates
// the merged result. A producer reference moves the property to that producer.
func (s *PropertyService) Update(ctx context.Context, id uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := agro.PropertyChanges{
		Name:             req.Name,
		City:             req.City,
		State:            req.State,
		TotalArea:        req.TotalArea,
		AgriculturalArea: req.AgriculturalArea,
		VegetationArea:   req.VegetationArea,
	}
	if req.ProducerID != nil && *req.ProducerID != property.ProducerID {
		if *req.ProducerID == uuid.Nil {
			return nil, shared.NewDomainError(shared.CodeProducerRequired, "Producer is required")
		}
		producer, err := s.resolveProducer(ctx, *req.ProducerID)
		if err != nil {
			return nil, err
		}
		changes.Producer = producer
	}

	if err := property.Update(changes); err != nil {
		return nil, err
	}
	if err := s.propertyRepo.Save(ctx, property); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventPublisher, s.logger, property)

	response := ToPropertyResponse(property)
	return &response, nil
}

// List returns properties with producer and crops populated
func (s *PropertyService) List(ctx context.Context, filter ListFilter) ([]PropertyResponse, int64, error) {
	domainFilter := filter.toDomain()

	properties, err := s.propertyRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.propertyRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPropertyResponses(properties), total, nil
}

// GetByID returns a populated property or NOT_FOUND
func (s *PropertyService) GetByID(ctx context.Context, id uuid.UUID) (*PropertyResponse, error) {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToPropertyResponse(property)
	return &response, nil
}

// ListByProducer returns the properties of a producer, empty when it has none
func (s *PropertyService) ListByProducer(ctx context.Context, producerID uuid.UUID) ([]PropertyResponse, error) {
	properties, err := s.propertyRepo.FindByProducer(ctx, producerID)
	if err != nil {
		return nil, err
	}
	return ToPropertyResponses(properties), nil
}

// Delete removes a property and its crops
func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	property, err := s.propertyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.propertyRepo.Delete(ctx, id); err != nil {
		return err
	}

	property.MarkDeleted()
	publishEvents(ctx, s.eventPublisher, s.logger, property)
	s.logger.Info("Property deleted", zap.String("property_id", id.String()))

	return nil
}

// CountAll returns the number of registered properties
func (s *PropertyService) CountAll(ctx context.Context) (int64, error) {
	return s.propertyRepo.Count(ctx, shared.Filter{})
}

// SumTotalArea returns the sum of all total areas, zero when there are none
func (s *PropertyService) SumTotalArea(ctx context.Context) (decimal.Decimal, error) {
	return s.propertyRepo.SumTotalArea(ctx)
}

func (s *PropertyService) resolveProducer(ctx context.Context, id uuid.UUID) (*agro.Producer, error) {
	producer, err := s.producerRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, errProducerNotFound
	}
	return producer, err
}
