package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const pingTimeout = 5 * time.Second

// Options - настройки пула соединений
type Options struct {
	MaxConns          int32
	MinConns          int32
	HealthCheckPeriod time.Duration
}

// NewPostgresDB создает новый пул соединений PostgreSQL
func NewPostgresDB(ctx context.Context, databaseURL string, opts Options) (*pgxpool.Pool, error) {
	cfgPool, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}
	if opts.MaxConns > 0 {
		cfgPool.MaxConns = opts.MaxConns
	}
	if opts.MinConns > 0 {
		cfgPool.MinConns = opts.MinConns
	}
	if opts.HealthCheckPeriod > 0 {
		cfgPool.HealthCheckPeriod = opts.HealthCheckPeriod
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, cfgPool)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}

	// Проверяем соединение с базой данных
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := dbpool.Ping(pingCtx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("не удалось выполнить ping к postgres: %w", err)
	}

	return dbpool, nil
}
