package persistence

import (
	"errors"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgNumericOverflow is the SQLSTATE for a value outside a numeric column's precision
const pgNumericOverflow = "22003"

// translateWriteError maps constraint violations reported by the driver to
// domain errors. The gorm.DB must be opened with TranslateError enabled.
// fkMessage names the missing parent for a foreign key violation.
func translateWriteError(err error, fkMessage string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return shared.ErrDuplicateDocument
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return shared.NewDomainError(shared.CodeNotFound, fkMessage)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return shared.NewDomainError(shared.CodeAreaSumExceedsTotal, "Agricultural plus vegetation area exceeds total area")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgNumericOverflow {
		return shared.NewDomainError(shared.CodeValidationFailed, "Area exceeds the storable range")
	}
	return err
}

// saveEntity inserts a new entity or updates a stored one. An update that
// matches no row returns shared.ErrNotFound instead of re-inserting it.
func saveEntity(db *gorm.DB, entity *shared.BaseEntity, model any, fkMessage string) error {
	if !entity.IsPersisted() {
		if err := db.Create(model).Error; err != nil {
			return translateWriteError(err, fkMessage)
		}
		entity.MarkPersisted()
		return nil
	}

	result := db.Model(model).Select("*").Omit("created_at").Updates(model)
	if result.Error != nil {
		return translateWriteError(result.Error, fkMessage)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// translateReadError maps a missing row to shared.ErrNotFound
func translateReadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	return err
}
