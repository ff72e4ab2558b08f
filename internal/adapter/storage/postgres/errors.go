package postgres

import (
	"errors"

	"demo-credit/internal/core/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// translateUnique maps unique-constraint violations to domain conflict errors.
// Other errors are returned unchanged.
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return domain.ErrDuplicateUsername
	case "users_email_key":
		return domain.ErrDuplicateEmail
	case "wallets_user_id_key":
		return domain.ErrDuplicateWallet
	}
	return err
}
