package agro

import (
	"context"
	"errors"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProducerService handles producer-related business operations
type ProducerService struct {
	producerRepo   agro.ProducerRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProducerService creates a new ProducerService
func NewProducerService(producerRepo agro.ProducerRepository) *ProducerService {
	return &ProducerService{
		producerRepo: producerRepo,
		logger:       zap.NewNop(),
	}
}

// SetLogger sets the service logger
func (s *ProducerService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// SetEventPublisher sets the publisher used for domain events
func (s *ProducerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register validates and persists a new producer
func (s *ProducerService) Register(ctx context.Context, req RegisterProducerRequest) (*ProducerResponse, error) {
	producer, err := agro.NewProducer(req.TaxID, req.Name)
	if err != nil {
		return nil, err
	}

	// The unique index on tax_id is the real guard; this gives a clean error
	// in the common case.
	exists, err := s.producerRepo.ExistsByTaxID(ctx, producer.TaxID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateDocument
	}

	if err := s.producerRepo.Save(ctx, producer); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventPublisher, s.logger, producer)

	s.logger.Info("Producer registered",
		zap.String("producer_id", producer.ID.String()),
		zap.String("tax_id_kind", string(producer.TaxIDKind())),
	)
	response := ToProducerResponse(producer)
	return &response, nil
}

// Update applies a partial update to an existing producer
func (s *ProducerService) Update(ctx context.Context, id uuid.UUID, req UpdateProducerRequest) (*ProducerResponse, error) {
	producer, err := s.producerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previousTaxID := producer.TaxID
	if err := producer.Update(req.TaxID, req.Name); err != nil {
		return nil, err
	}

	if producer.TaxID != previousTaxID {
		other, err := s.producerRepo.FindByTaxID(ctx, producer.TaxID)
		switch {
		case err == nil && other.ID != producer.ID:
			return nil, shared.ErrDuplicateDocument
		case err != nil && !errors.Is(err, shared.ErrNotFound):
			return nil, err
		}
	}

	if err := s.producerRepo.Save(ctx, producer); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.eventPublisher, s.logger, producer)

	response := ToProducerResponse(producer)
	return &response, nil
}

// List returns producers matching the filter and the total count
func (s *ProducerService) List(ctx context.Context, filter ListFilter) ([]ProducerResponse, int64, error) {
	domainFilter := filter.toDomain()

	producers, err := s.producerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.producerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProducerResponses(producers), total, nil
}

// GetByID returns a producer, or shared.ErrNotFound
func (s *ProducerService) GetByID(ctx context.Context, id uuid.UUID) (*ProducerResponse, error) {
	producer, err := s.producerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProducerResponse(producer)
	return &response, nil
}

// Delete removes a producer together with its properties and crops
func (s *ProducerService) Delete(ctx context.Context, id uuid.UUID) error {
	producer, err := s.producerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.producerRepo.Delete(ctx, id); err != nil {
		return err
	}

	producer.MarkDeleted()
	publishEvents(ctx, s.eventPublisher, s.logger, producer)
	s.logger.Info("Producer deleted", zap.String("producer_id", id.String()))

	return nil
}
