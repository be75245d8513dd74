package implementation

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsDuplicateKeyError reports whether err comes from a unique-constraint
// violation. The slot registry relies on this: the application-level slot
// pre-check is only a fast path, the partial unique index on bookings is the
// actual guarantee, and a racing insert surfaces here as Postgres 23505.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
