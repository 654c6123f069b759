package agro

import (
	"context"

	"github.com/agro/backend/internal/domain/agro"
)

// TransactionScope runs a unit of work inside a database transaction.
type TransactionScope interface {
	// Execute runs fn within a transaction. The transaction is rolled back
	// when fn returns an error and committed otherwise.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes repositories bound to the current transaction
type TransactionalRepositories interface {
	PropertyRepo() agro.PropertyRepository
	CropRepo() agro.CropRepository
}

// NoOpTransactionScope runs the function against the given repositories
// without a transaction. Used in tests.
type NoOpTransactionScope struct {
	propertyRepo agro.PropertyRepository
	cropRepo     agro.CropRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope
func NewNoOpTransactionScope(propertyRepo agro.PropertyRepository, cropRepo agro.CropRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		propertyRepo: propertyRepo,
		cropRepo:     cropRepo,
	}
}

// Execute runs fn directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PropertyRepo returns the property repository
func (s *NoOpTransactionScope) PropertyRepo() agro.PropertyRepository {
	return s.propertyRepo
}

// CropRepo returns the crop repository
func (s *NoOpTransactionScope) CropRepo() agro.CropRepository {
	return s.cropRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
