package usecase

import (
	"errors"
	"strings"

	"content-admin/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrAdminNotFound        = apperror.NotFound("No admin account found with the given email")
	ErrInvalidCredentials   = apperror.Unauthorized("Invalid email or password")
	ErrAccountInactive      = apperror.Unauthorized("This account is inactive")
	ErrTokenBlacklisted     = apperror.Unauthorized("Token is blacklisted")
	ErrTokenWrongGroup      = apperror.Unauthorized("Token is not valid for this endpoint")
	ErrIdentityNotFound     = apperror.NotFound("Account not found")
	ErrMobileUserNotFound   = apperror.NotFound("Mobile user not found")
	ErrProfessionalNotFound = apperror.NotFound("Professional not found")
	ErrAdminReviewNotFound  = apperror.NotFound("Admin review not found for this professional")
	ErrBookNotFound         = apperror.NotFound("Book not found")
	ErrEventNotFound        = apperror.NotFound("Event not found")
	ErrMaterialNotFound     = apperror.NotFound("Material not found")
	ErrAuditLogNotFound     = apperror.NotFound("Audit log not found")
	ErrNothingDeleted       = apperror.NotFound("0 deleted")
)

func internalError(err error) error {
	return apperror.Internal("internal error", err)
}

func alreadyExists(entityName, field string) string {
	return entityName + " with this " + strings.ReplaceAll(field, "_", " ") + " already exists."
}

// uniqueViolation turns a unique-constraint failure that slipped past the
// pre-checks into a field error. It returns nil for any other error.
func uniqueViolation(err error, entityName string, columns ...string) error {
	for _, column := range columns {
		if isDuplicateKeyError(err, column) {
			return apperror.Field(column, alreadyExists(entityName, column))
		}
	}
	return nil
}

// isDuplicateKeyError checks if the error is a unique constraint violation
// on the specified column
func isDuplicateKeyError(err error, column string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(column))
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return strings.Contains(strings.ToLower(err.Error()), strings.ToLower(column))
	}
	// SQLite: "UNIQUE constraint failed: table.column"
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, "."+column)
}
