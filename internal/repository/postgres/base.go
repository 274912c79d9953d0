package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	apperrors "github.com/medrec/hospital-api/pkg/errors"
)

// postgres error codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db *sqlx.DB
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db}
}

// GetDB returns the database instance
func (r *BaseRepository) GetDB() *sqlx.DB {
	return r.db
}

// WithTx executes a function within a transaction
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.Internal(err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

// wrapWriteErr translates constraint violations on INSERT/UPDATE into
// typed application errors.
func wrapWriteErr(entity string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return apperrors.Conflict(entity+" already exists", err)
		case codeForeignKeyViolation:
			return apperrors.InvalidReference("referenced "+pqErr.Table, err)
		case codeCheckViolation:
			return apperrors.BadRequest("invalid "+entity+" data", err)
		}
	}
	return apperrors.Internal(err)
}

// wrapReadErr translates lookup failures into typed application errors.
func wrapReadErr(entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(entity, err)
	}
	return apperrors.Internal(err)
}

// wrapDeleteErr translates delete failures. A foreign key violation here
// means dependent rows exist; the delete policy is restrict, so that
// surfaces as a conflict.
func wrapDeleteErr(entity string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == codeForeignKeyViolation {
		return apperrors.Conflict(entity+" is referenced by existing records", err)
	}
	return apperrors.Internal(err)
}
