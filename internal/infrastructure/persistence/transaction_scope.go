package persistence

import (
	"context"

	appagro "github.com/agro/backend/internal/application/agro"
	"github.com/agro/backend/internal/domain/agro"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appagro.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories hands out repositories bound to one transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// PropertyRepo returns the property repository scoped to the current transaction.
func (r *gormTransactionalRepositories) PropertyRepo() agro.PropertyRepository {
	return NewGormPropertyRepository(r.tx)
}

// CropRepo returns the crop repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CropRepo() agro.CropRepository {
	return NewGormCropRepository(r.tx)
}

var (
	_ appagro.TransactionScope          = (*GormTransactionScope)(nil)
	_ appagro.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
