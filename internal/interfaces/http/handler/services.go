package handler

import (
	"context"

	agroapp "github.com/agro/backend/internal/application/agro"
	"github.com/agro/backend/internal/interfaces/http/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProducerService is the part of agroapp.ProducerService the handlers use
type ProducerService interface {
	Register(ctx context.Context, req agroapp.RegisterProducerRequest) (*agroapp.ProducerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req agroapp.UpdateProducerRequest) (*agroapp.ProducerResponse, error)
	List(ctx context.Context, filter agroapp.ListFilter) ([]agroapp.ProducerResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*agroapp.ProducerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PropertyService is the part of agroapp.PropertyService the handlers use
type PropertyService interface {
	Register(ctx context.Context, req agroapp.RegisterPropertyRequest) (*agroapp.PropertyResponse, error)
	Update(ctx context.Context, id uuid.UUID, req agroapp.UpdatePropertyRequest) (*agroapp.PropertyResponse, error)
	List(ctx context.Context, filter agroapp.ListFilter) ([]agroapp.PropertyResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*agroapp.PropertyResponse, error)
	ListByProducer(ctx context.Context, producerID uuid.UUID) ([]agroapp.PropertyResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CropService is the part of agroapp.CropService the handlers use
type CropService interface {
	Create(ctx context.Context, req agroapp.CreateCropRequest) (*agroapp.CropResponse, error)
	Update(ctx context.Context, id uuid.UUID, req agroapp.UpdateCropRequest) (*agroapp.CropResponse, error)
	List(ctx context.Context, filter agroapp.ListFilter) ([]agroapp.CropResponse, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*agroapp.CropResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReportService serves the aggregate reports
type ReportService interface {
	TotalFarms(ctx context.Context) (int64, error)
	TotalHectares(ctx context.Context) (decimal.Decimal, error)
}

var (
	_ ProducerService = (*agroapp.ProducerService)(nil)
	_ PropertyService = (*agroapp.PropertyService)(nil)
	_ CropService     = (*agroapp.CropService)(nil)
	_ ReportService   = (*agroapp.ReportService)(nil)
)

// toListFilter converts query parameters into the service filter
func toListFilter(req dto.ListRequest) agroapp.ListFilter {
	return agroapp.ListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
}
