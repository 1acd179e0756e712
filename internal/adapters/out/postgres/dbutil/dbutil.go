// Package dbutil holds the helpers every GORM repository shares: mapping
// driver errors onto the errs kinds and the version-guarded update.
package dbutil

import (
	"context"
	"errors"
	"fmt"

	"lastmile/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// TranslateError maps a GORM or PostgreSQL error for subject/id onto the
// errs kinds. Unknown errors are returned as they are.
func TranslateError(err error, subject string, id any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundErrorWithCause(subject, id, err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewObjectAlreadyExistsErrorWithCause(subject, id, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return errs.NewObjectAlreadyExistsErrorWithCause(subject, id, err)
	}

	return err
}

// UpdateVersioned writes every column of dto to the row identified by id,
// provided the stored version still equals expected. dto must carry the
// bumped version. Associations are never touched.
//
// Zero affected rows mean either a missing row (ErrObjectNotFound) or a
// concurrent writer (ErrConcurrentModification).
func UpdateVersioned(
	ctx context.Context,
	db *gorm.DB,
	subject string,
	id uuid.UUID,
	expected int64,
	dto any,
) error {
	result := db.WithContext(ctx).
		Model(dto).
		Select("*").
		Omit(clause.Associations).
		Where("id = ? AND version = ?", id, expected).
		Updates(dto)
	if result.Error != nil {
		return TranslateError(result.Error, subject, id.String())
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(dto).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError(subject, id.String())
	}
	return errs.NewRuleViolationError(
		errs.ErrConcurrentModification,
		subject,
		fmt.Sprintf("%s was changed by another operation (expected version %d)", id, expected),
	)
}
