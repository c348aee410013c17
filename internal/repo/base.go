package repo

import (
	"context"
	"errors"

	"github.com/angelmondragon/stationdesk-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories. A Base built
// from a nil connection is unconfigured: reads should return empty results
// and writes db.ErrNotConfigured.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// Configured reports whether a connection is attached.
func (b Base) Configured() bool {
	return b.db != nil
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil || b.db == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Wrap maps persistence errors onto API error codes.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, message)
	case errors.Is(err, db.ErrNotConfigured):
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not configured")
	case db.IsUniqueViolation(err, ""):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, message)
	case db.IsForeignKeyViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "referenced record does not exist")
	case db.IsCheckViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, message)
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, message)
	}
}
