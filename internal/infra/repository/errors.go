package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/Hbollas/LashTechBooking/internal/domain/appointment"
	"github.com/Hbollas/LashTechBooking/internal/httperr"
)

// Postgres SQLSTATEs the booking path cares about.
const (
	sqlstateExclusionViolation = "23P01"
	sqlstateSerialization      = "40001"
	sqlstateDeadlock           = "40P01"
	sqlstateLockNotAvailable   = "55P03"
	sqlstateQueryCanceled      = "57014"
)

// translateError maps driver failures onto business errors. Errors that
// already carry a business kind pass through untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlstateExclusionViolation:
			return domain.ErrTimeConflict
		case sqlstateSerialization,
			sqlstateDeadlock,
			sqlstateLockNotAvailable,
			sqlstateQueryCanceled:
			return httperr.Unavailable(err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return httperr.Unavailable(err)
	}

	return err
}
