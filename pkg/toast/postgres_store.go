package toast

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// PostgresStore persists toasts in PostgreSQL, ordered by an insertion
// sequence. Stores constructed with different scope keys share the table but
// never see each other's records. Action callbacks (Action.Fn) do not survive
// persistence; use Action.URL for actions that must round-trip.
type PostgresStore struct {
	pool  *pgxpool.Pool
	scope string
}

// PostgresStoreOption configures a PostgresStore.
type PostgresStoreOption func(*PostgresStore)

// WithScopeKey isolates this store's records under the given scope key.
// Default "global".
func WithScopeKey(scope string) PostgresStoreOption {
	return func(s *PostgresStore) {
		if scope != "" {
			s.scope = scope
		}
	}
}

// NewPostgresStore creates a PostgreSQL-backed toast store. The schema must
// be applied first, see MigratePostgres.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresStoreOption) *PostgresStore {
	s := &PostgresStore{
		pool:  pool,
		scope: "global",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// MigratePostgres applies the schema required by PostgresStore using the
// embedded goose migrations. Migration output is routed through log.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	// Bridge the pgx pool to the database/sql interface goose expects.
	// The wrapper shares the underlying connections with the pool.
	db := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close migration connection", "error", err)
		}
	}()

	goose.SetLogger(&gooseSlogAdapter{log: log})
	goose.SetBaseFS(migrationsFS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// gooseSlogAdapter bridges goose's Printf-style logging to slog.
type gooseSlogAdapter struct {
	log *slog.Logger
}

func (a *gooseSlogAdapter) Fatalf(format string, v ...any) {
	a.log.ErrorContext(context.Background(), fmt.Sprintf(format, v...))
}

func (a *gooseSlogAdapter) Printf(format string, v ...any) {
	a.log.InfoContext(context.Background(), fmt.Sprintf(format, v...))
}

func (s *PostgresStore) Insert(ctx context.Context, t Toast) error {
	if t.ID == "" {
		return ErrEmptyID
	}

	data, err := marshalToastField(t.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal toast data: %w", err)
	}
	action, err := marshalToastField(t.Action)
	if err != nil {
		return fmt.Errorf("failed to marshal toast action: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO toasts (id, scope, severity, title, message, data, duration_ns, action, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, s.scope, string(t.Severity), t.Title, t.Message, data, t.Duration.Nanoseconds(), action, t.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateID
		}
		return fmt.Errorf("failed to store toast: %w", err)
	}

	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Toast, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, severity, title, message, data, duration_ns, action, created_at
		FROM toasts
		WHERE scope = $1 AND id = $2`,
		s.scope, id,
	)

	t, err := scanToast(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrToastNotFound
		}
		return nil, fmt.Errorf("failed to load toast: %w", err)
	}

	return t, nil
}

func (s *PostgresStore) RemoveByID(ctx context.Context, id string) (*Toast, error) {
	row := s.pool.QueryRow(ctx, `
		DELETE FROM toasts
		WHERE scope = $1 AND id = $2
		RETURNING id, severity, title, message, data, duration_ns, action, created_at`,
		s.scope, id,
	)

	t, err := scanToast(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to remove toast: %w", err)
	}

	return t, nil
}

func (s *PostgresStore) RemoveAll(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		WITH removed AS (
			DELETE FROM toasts
			WHERE scope = $1
			RETURNING id, seq
		)
		SELECT id FROM removed ORDER BY seq`,
		s.scope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to clear toasts: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan removed toast ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to clear toasts: %w", err)
	}

	return ids, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Toast, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, severity, title, message, data, duration_ns, action, created_at
		FROM toasts
		WHERE scope = $1
		ORDER BY seq`,
		s.scope,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list toasts: %w", err)
	}
	defer rows.Close()

	out := []Toast{}
	for rows.Next() {
		t, err := scanToast(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan toast: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list toasts: %w", err)
	}

	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT count(*) FROM toasts WHERE scope = $1`, s.scope).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count toasts: %w", err)
	}

	return n, nil
}

func scanToast(row pgx.Row) (*Toast, error) {
	var (
		t          Toast
		severity   string
		data       []byte
		action     []byte
		durationNS int64
	)
	if err := row.Scan(&t.ID, &severity, &t.Title, &t.Message, &data, &durationNS, &action, &t.CreatedAt); err != nil {
		return nil, err
	}

	t.Severity = Severity(severity)
	t.Duration = time.Duration(durationNS)

	if len(data) > 0 {
		if err := json.Unmarshal(data, &t.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal toast data: %w", err)
		}
	}
	if len(action) > 0 {
		t.Action = &Action{}
		if err := json.Unmarshal(action, t.Action); err != nil {
			return nil, fmt.Errorf("failed to unmarshal toast action: %w", err)
		}
	}

	return &t, nil
}

var _ Store = (*PostgresStore)(nil)

// marshalToastField serializes optional JSONB columns, mapping nil values to
// SQL NULL instead of the JSON literal "null".
func marshalToastField(v any) ([]byte, error) {
	switch val := v.(type) {
	case map[string]any:
		if val == nil {
			return nil, nil
		}
	case *Action:
		if val == nil {
			return nil, nil
		}
	}
	return json.Marshal(v)
}
