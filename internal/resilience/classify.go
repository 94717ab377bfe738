package resilience

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"

	"github.com/SscSPs/mda_posting_engine/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// retryableSQLStates are server errors that succeed on a fresh attempt.
var retryableSQLStates = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"55P03": {}, // lock_not_available
	"57P01": {}, // admin_shutdown
	"57P02": {}, // crash_shutdown
	"57P03": {}, // cannot_connect_now
	"53300": {}, // too_many_connections
}

// IsTransient reports whether err is an infrastructure failure worth retrying:
// connection loss, timeouts, and transient server states. Engine, validation and
// not-found errors are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if isMarkedTransient(err) {
		return true
	}

	var engineErr *apperrors.EngineError
	if errors.As(err, &engineErr) {
		return false
	}
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrConflict) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if _, ok := retryableSQLStates[pgErr.Code]; ok {
			return true
		}
		// class 08: connection exception
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "08"
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
