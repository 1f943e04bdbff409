package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Domenick1991/tourtrek/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// Executor is the subset of *pgxpool.Pool the postgres repositories use.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// EnsureTables creates the document tables if they do not exist yet. Each
// collection is a table of JSONB documents keyed by a uuid, so the postgres
// backend stores the same loosely-typed records as mongo.
func EnsureTables(ctx context.Context, db Executor) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (id uuid PRIMARY KEY, email text NOT NULL UNIQUE, doc jsonb NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS tour_packages (id uuid PRIMARY KEY, doc jsonb NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS bookings (id uuid PRIMARY KEY, doc jsonb NOT NULL)`,
		`CREATE INDEX IF NOT EXISTS tour_packages_guide_email_idx ON tour_packages ((doc->>'guide_email'))`,
		`CREATE INDEX IF NOT EXISTS bookings_buyer_email_idx ON bookings ((doc->>'buyer_email'))`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure tables: %w", err)
		}
	}
	return nil
}

func documentID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return parsed.String(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func pgUpdateResult(tag pgconn.CommandTag) *domain.UpdateResult {
	n := tag.RowsAffected()
	return &domain.UpdateResult{Acknowledged: true, MatchedCount: n, ModifiedCount: n}
}
