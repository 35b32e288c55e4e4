// server/storage/postgres/errors.go
package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ViniZap4/noteful-server/storage"
)

// classify wraps integrity constraint violations in storage.ErrConstraint and
// passes every other error through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return fmt.Errorf("%w: %s (%s)", storage.ErrConstraint, pgErr.Message, pgErr.ConstraintName)
	}
	return err
}
