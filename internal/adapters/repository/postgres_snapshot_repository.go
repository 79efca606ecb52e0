package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.SnapshotRepository = (*PostgresSnapshotRepository)(nil)

var ErrSchemaMissing = errors.New("snapshots table is missing, run migrations")

const postgresSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	user_id    TEXT PRIMARY KEY,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

func ConnectPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func MigratePostgres(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}
	return nil
}

func (r *PostgresSnapshotRepository) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var document []byte
	err := r.db.QueryRowContext(ctx, `SELECT document FROM snapshots WHERE user_id = $1`, userID).Scan(&document)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, mapPostgresError("load snapshot", err)
	}

	return domain.DecodeSnapshot(document)
}

func (r *PostgresSnapshotRepository) Save(ctx context.Context, userID string, snapshot *domain.Snapshot) error {
	if err := checkUserID(userID); err != nil {
		return err
	}

	data, err := snapshot.Encode()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO snapshots (user_id, document, updated_at)
		VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			document = EXCLUDED.document,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, userID, string(data), time.Now().UTC()); err != nil {
		return mapPostgresError("save snapshot", err)
	}
	return nil
}

// mapPostgresError understands both the pgx and lib/pq error types.
func mapPostgresError(op string, err error) error {
	code := ""
	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		code = pgErr.Code
	case errors.As(err, &pqErr):
		code = string(pqErr.Code)
	}

	if code == "42P01" {
		return fmt.Errorf("repository: %s: %w", op, ErrSchemaMissing)
	}
	return fmt.Errorf("repository: %s failed: %w", op, err)
}
