package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"

	_ "modernc.org/sqlite"
)

var _ domain.SnapshotRepository = (*SQLiteSnapshotRepository)(nil)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	user_id    TEXT PRIMARY KEY,
	document   TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

type SQLiteSnapshotRepository struct {
	db *sqlx.DB
}

func NewSQLiteSnapshotRepository(db *sqlx.DB) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{db: db}
}

// OpenSQLite opens (or creates) the database file and applies the schema.
func OpenSQLite(path string) (*sqlx.DB, error) {
	if path == "" {
		return nil, errors.New("open sqlite: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open sqlite: create dir: %w", err)
	}

	dsn := "file:" + path + "?mode=rwc&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open sqlite: ping: %w", err)
	}
	if err := MigrateSQLite(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func MigrateSQLite(db *sqlx.DB) error {
	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("migrate sqlite: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepository) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	var document string
	err := r.db.GetContext(ctx, &document, `SELECT document FROM snapshots WHERE user_id = ?`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("sqlite: load snapshot: %w", err)
	}

	return domain.DecodeSnapshot([]byte(document))
}

func (r *SQLiteSnapshotRepository) Save(ctx context.Context, userID string, snapshot *domain.Snapshot) error {
	if err := checkUserID(userID); err != nil {
		return err
	}

	data, err := snapshot.Encode()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO snapshots (user_id, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at`

	if _, err := r.db.ExecContext(ctx, query, userID, string(data), time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("sqlite: save snapshot: %w", err)
	}
	return nil
}
