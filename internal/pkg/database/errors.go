package database

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	apperror "storefront/internal/errors"
)

// Códigos SQLSTATE tratados pela aplicação.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// MapWriteError traduz violações de integridade do PostgreSQL em ConflictError.
// Qualquer outro erro vira um InternalError de DB.
func MapWriteError(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation:
			return apperror.NewConflictError(fmt.Sprintf("Unique constraint failed for %s", pqErr.Constraint))
		case codeForeignKeyViolation:
			return apperror.NewConflictError(fmt.Sprintf("Foreign key constraint failed for %s", pqErr.Constraint))
		}
	}
	return apperror.NewDBError(msg, err)
}
