package postgres

import (
	"context"
	"fmt"
	"time"

	"jobly/internal/query"

	"github.com/gocraft/dbr/v2"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Querier runs a parameterized statement and loads the resulting rows into
// dest, which is a pointer to a struct, a slice of structs or a scalar.
// It returns the number of rows loaded.
type Querier interface {
	Query(ctx context.Context, stmt query.Statement, dest interface{}) (int, error)
}

type Store struct {
	conn   *dbr.Connection
	q      Querier
	logger *zap.Logger
}

func New(dsn string, logger *zap.Logger) (*Store, error) {
	conn, err := dbr.Open("postgres", dsn, newEventReceiver(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// set up connection pool
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	// check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("successfully connected to PostgreSQL")

	return &Store{
		conn:   conn,
		q:      &connQuerier{conn: conn},
		logger: logger,
	}, nil
}

// NewWithQuerier builds a Store on top of an arbitrary Querier.
func NewWithQuerier(q Querier, logger *zap.Logger) *Store {
	return &Store{q: q, logger: logger}
}

func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	if s.conn == nil {
		return nil
	}
	return s.conn.PingContext(ctx)
}

// connQuerier sends statements through database/sql so every value reaches
// the server as a bound parameter, then maps rows with dbr.
type connQuerier struct {
	conn *dbr.Connection
}

func (c *connQuerier) Query(ctx context.Context, stmt query.Statement, dest interface{}) (int, error) {
	kvs := map[string]string{"sql": stmt.Text}
	start := time.Now()

	rows, err := c.conn.QueryContext(ctx, stmt.Text, stmt.Args...)
	if err != nil {
		return 0, c.conn.EventErrKv("jobly.query", mapError(err), kvs)
	}

	n, err := dbr.Load(rows, dest)
	if err != nil {
		return 0, c.conn.EventErrKv("jobly.load", mapError(err), kvs)
	}

	c.conn.TimingKv("jobly.query", time.Since(start).Nanoseconds(), kvs)
	return n, nil
}
