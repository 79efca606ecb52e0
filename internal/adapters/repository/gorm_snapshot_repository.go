package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
	"github.com/comitanigiacomo/kanso-wellness/internal/logger"
)

var _ domain.SnapshotRepository = (*GormSnapshotRepository)(nil)

type snapshotRecord struct {
	UserID    string    `gorm:"primaryKey;size:191"`
	Document  string    `gorm:"type:longtext;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (snapshotRecord) TableName() string {
	return "snapshots"
}

type GormSnapshotRepository struct {
	db *gorm.DB
}

func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// gormWriter feeds gorm's log lines into the service logger.
type gormWriter struct {
	log logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Infof(format, args...)
}

// OpenMySQL connects through gorm and migrates the snapshots table.
func OpenMySQL(dsn string, logLevel string, log logger.Logger) (*gorm.DB, error) {
	if log == nil {
		log = logger.NewNop()
	}
	gLogger := gormlogger.New(
		gormWriter{log: log.With("component", "gorm")},
		gormlogger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  toGormLogLevel(logLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to connect mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}

	if err := db.AutoMigrate(&snapshotRecord{}); err != nil {
		return nil, fmt.Errorf("mysql migrate: %w", err)
	}
	return db, nil
}

func toGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "warn", "info":
		return gormlogger.Warn
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

func (r *GormSnapshotRepository) Load(ctx context.Context, userID string) (*domain.Snapshot, error) {
	if err := checkUserID(userID); err != nil {
		return nil, err
	}

	var rec snapshotRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("repository: load snapshot failed: %w", err)
	}

	return domain.DecodeSnapshot([]byte(rec.Document))
}

func (r *GormSnapshotRepository) Save(ctx context.Context, userID string, snapshot *domain.Snapshot) error {
	if err := checkUserID(userID); err != nil {
		return err
	}

	data, err := snapshot.Encode()
	if err != nil {
		return err
	}

	rec := snapshotRecord{UserID: userID, Document: string(data), UpdatedAt: time.Now().UTC()}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("repository: save snapshot failed: %w", err)
	}
	return nil
}
