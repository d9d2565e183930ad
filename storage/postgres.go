package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bid-finder/config"
	"bid-finder/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Conn ist eine für die Dauer einer Anfrage reservierte Verbindung.
type Conn interface {
	// Fetch führt eine Abfrage aus und projiziert alle Zeilen.
	Fetch(ctx context.Context, sqlText string, args []any) ([]models.Row, error)
	// Count führt eine COUNT-Abfrage aus.
	Count(ctx context.Context, sqlText string, args []any) (int64, error)
}

// Store besitzt den Connection-Pool. Er wird beim Start geöffnet und beim Beenden geschlossen.
type Store struct {
	Pool *pgxpool.Pool
	DB   *gorm.DB

	sqlDB          *sql.DB
	commandTimeout time.Duration
	logger         *zap.Logger
}

// Open baut den pgx-Pool auf, prüft die Verbindung und legt GORM auf denselben Pool.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MinConns = cfg.DBMinConns
	poolCfg.MaxConns = cfg.DBMaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		sqlDB.Close()
		pool.Close()
		return nil, fmt.Errorf("open gorm: %w", err)
	}

	return &Store{
		Pool:           pool,
		DB:             db,
		sqlDB:          sqlDB,
		commandTimeout: cfg.DBCommandTimeout,
		logger:         logger,
	}, nil
}

// Close schließt GORM-Handle und Pool.
func (s *Store) Close() {
	if s.sqlDB != nil {
		s.sqlDB.Close()
	}
	s.Pool.Close()
	s.logger.Info("Database pool closed")
}

// WithConn reserviert eine Verbindung, ruft fn auf und gibt die Verbindung auf jedem Pfad zurück.
func (s *Store) WithConn(ctx context.Context, fn func(Conn) error) error {
	pc, err := s.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer pc.Release()
	return fn(&poolConn{conn: pc, timeout: s.commandTimeout})
}

// TableCount zählt die Zeilen einer Tabelle oder View (Startprotokoll, Loader-Verifikation).
func (s *Store) TableCount(ctx context.Context, table string) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Table(table).Count(&n).Error
	return n, err
}

type poolConn struct {
	conn    *pgxpool.Conn
	timeout time.Duration
}

func (c *poolConn) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *poolConn) Fetch(ctx context.Context, sqlText string, args []any) ([]models.Row, error) {
	ctx, cancel := c.commandContext(ctx)
	defer cancel()

	rows, err := c.conn.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	oids := make([]uint32, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		oids[i] = f.DataTypeOID
	}
	keys := columnKeys(names)

	result := make([]models.Row, 0)
	for rows.Next() {
		raw, err := rows.Values()
		if err != nil {
			return nil, err
		}
		values := make([]any, len(raw))
		for i, v := range raw {
			values[i] = cleanValue(oids[i], v)
		}
		result = append(result, models.Row{Columns: keys, Values: values})
	}
	return result, rows.Err()
}

func (c *poolConn) Count(ctx context.Context, sqlText string, args []any) (int64, error) {
	ctx, cancel := c.commandContext(ctx)
	defer cancel()

	var n int64
	if err := c.conn.QueryRow(ctx, sqlText, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
