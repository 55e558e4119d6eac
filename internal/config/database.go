package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const poolHealthCheckPeriod = 30 * time.Second

// PgxConfig translates the database section into a pgxpool configuration.
func (c *DatabaseConfig) PgxConfig(ctx context.Context) (*pgxpool.Config, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)

	pool, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database dsn: %w", err)
	}

	pool.MaxConns = int32(c.MaxOpenConns)
	pool.MinConns = int32(c.MaxIdleConns)
	pool.MaxConnLifetime = c.ConnMaxLifetime
	pool.MaxConnIdleTime = c.ConnMaxIdleTime
	pool.HealthCheckPeriod = poolHealthCheckPeriod

	return pool, nil
}
