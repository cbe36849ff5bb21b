package history

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"fieldscout/pkg/models"
)

// appendLockKey is the advisory lock serializing history appends across
// connections and processes sharing the database.
const appendLockKey = 7421

// PostgresStore implements Store on a pgx connection pool. Writer exclusion
// uses a transaction-scoped advisory lock, so the cap and label computation
// stay correct under concurrent appends from multiple replicas.
type PostgresStore struct {
	pool  *pgxpool.Pool
	clock clockwork.Clock
	rng   *rand.Rand
}

// NewPostgresStore creates a PostgresStore. A nil clock or rng falls back to
// real time and a time-seeded generator.
func NewPostgresStore(pool *pgxpool.Pool, clock clockwork.Clock, rng *rand.Rand) *PostgresStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(clock.Now().UnixNano()))
	}
	return &PostgresStore{pool: pool, clock: clock, rng: rng}
}

// Connect opens a pgx pool against url and verifies connectivity.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// RunMigrations applies all pending migrations from migrationsPath.
func RunMigrations(databaseURL, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Load(ctx context.Context) ([]models.HistoryEntry, error) {
	entries, err := loadEntries(ctx, s.pool)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return Seed(s.rng), nil
	}
	return entries, nil
}

func (s *PostgresStore) Append(ctx context.Context, index float64, filename string) ([]models.HistoryEntry, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, appendLockKey); err != nil {
		return nil, fmt.Errorf("acquire append lock: %w", err)
	}

	entries, err := loadEntries(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		entries = Seed(s.rng)
	}
	entries = appended(entries, index, filename, s.clock.Now())

	// The series is tiny and the original medium rewrote it whole on every
	// append; a delete-and-reinsert under the lock keeps that contract.
	if _, err := tx.Exec(ctx, `DELETE FROM field_history`); err != nil {
		return nil, fmt.Errorf("clear history: %w", err)
	}
	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO field_history (date_label, ndvi, threshold, filename, scanned_at)
			 VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''))`,
			e.Date, e.NDVI, e.Threshold, e.Filename, e.Timestamp); err != nil {
			return nil, fmt.Errorf("insert history entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit append: %w", err)
	}
	return entries, nil
}

// querier lets loadEntries run on either the pool or an open transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func loadEntries(ctx context.Context, q querier) ([]models.HistoryEntry, error) {
	rows, err := q.Query(ctx,
		`SELECT date_label, ndvi, threshold, COALESCE(filename, ''), COALESCE(scanned_at, '')
		 FROM field_history ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.Date, &e.NDVI, &e.Threshold, &e.Filename, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
