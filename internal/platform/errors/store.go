package errors

// Record store classification for pgx and clickhouse-go failures

import (
	"context"
	stderrs "errors"
	"io"
	"net"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes and codes used for classification
const (
	pgClassConnection     = "08"
	pgClassResources      = "53"
	pgClassOperatorAction = "57"
	pgErrInvalidPassword  = "28P01"
	pgErrInvalidAuthSpec  = "28000"
	pgErrUndefinedTable   = "42P01"
	pgErrSerialization    = "40001"
	pgErrDeadlockDetected = "40P01"
	pgErrLockNotAvailable = "55P03"
	pgErrQueryCanceled    = "57014"
)

// ClickHouse server exception codes
const (
	chErrTimeoutExceeded    = 159
	chErrSocketTimeout      = 209
	chErrNetworkError       = 210
	chErrTooManyQueries     = 202
	chErrMemoryLimit        = 241
	chErrUnknownTable       = 60
	chErrUnknownDatabase    = 81
	chErrAuthenticationFail = 516
)

// ExtractPgError returns the PgError in err's chain
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// ExtractCHException returns the ClickHouse server exception in err's chain
func ExtractCHException(err error) (*clickhouse.Exception, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// StoreErrorCode classifies a record store failure
// transient transport and server pressure failures are Unavailable, the rest are DB
func StoreErrorCode(err error) ErrorCode {
	if err == nil {
		return ErrorCodeUnknown
	}
	if transient(err) {
		return ErrorCodeUnavailable
	}
	if pgErr, ok := ExtractPgError(err); ok {
		switch {
		case len(pgErr.Code) >= 2 && (pgErr.Code[:2] == pgClassConnection ||
			pgErr.Code[:2] == pgClassResources || pgErr.Code[:2] == pgClassOperatorAction):
			return ErrorCodeUnavailable
		default:
			return ErrorCodeDB
		}
	}
	if ex, ok := ExtractCHException(err); ok {
		switch ex.Code {
		case chErrTimeoutExceeded, chErrSocketTimeout, chErrNetworkError, chErrTooManyQueries, chErrMemoryLimit:
			return ErrorCodeUnavailable
		default:
			return ErrorCodeDB
		}
	}
	return ErrorCodeDB
}

// FromStore wraps a record store failure with its class and a stable message
func FromStore(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, StoreErrorCode(err), msg)
}

// Retryable reports whether retrying the same call could succeed
// bad credentials and missing tables never heal on their own
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) {
		return false
	}
	if pgErr, ok := ExtractPgError(err); ok {
		switch pgErr.Code {
		case pgErrInvalidPassword, pgErrInvalidAuthSpec, pgErrUndefinedTable:
			return false
		case pgErrSerialization, pgErrDeadlockDetected, pgErrLockNotAvailable, pgErrQueryCanceled:
			return true
		}
		return len(pgErr.Code) >= 2 && (pgErr.Code[:2] == pgClassConnection || pgErr.Code[:2] == pgClassOperatorAction)
	}
	if ex, ok := ExtractCHException(err); ok {
		switch ex.Code {
		case chErrAuthenticationFail, chErrUnknownTable, chErrUnknownDatabase:
			return false
		}
		return StoreErrorCode(err) == ErrorCodeUnavailable
	}
	return transient(err)
}

// transient covers network and deadline failures from either driver
func transient(err error) bool {
	if stderrs.Is(err, context.DeadlineExceeded) || stderrs.Is(err, io.EOF) || stderrs.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if stderrs.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return stderrs.As(err, &netErr)
}
