package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"mathquiz/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ErrUnavailable is the single failure mode the gateway exposes. Missing
// configuration, a broken connection, and a failed statement all collapse
// into it; callers decide whether to degrade or surface it.
var ErrUnavailable = errors.New("database unavailable")

// statementTimeout bounds one gateway call end to end, including the wait
// for a pool slot. Callers beyond the pool cap time out instead of queueing
// indefinitely.
const statementTimeout = 3 * time.Second

// Gateway mediates all database access: it owns the connection pool,
// executes parameterized statements, and normalizes every failure into
// ErrUnavailable. The pool is created lazily on first use and discarded
// whenever a connectivity failure is detected, so the next call starts
// from a clean slate once the database is reachable again.
type Gateway struct {
	dsn     string
	poolMin int
	poolMax int

	mu sync.Mutex
	db *gorm.DB
}

// NewGateway builds a gateway for the given connection string. An empty
// dsn permanently disables the gateway: every call fails soft with
// ErrUnavailable and no I/O is ever attempted.
func NewGateway(dsn string, poolMin, poolMax int) *Gateway {
	if dsn == "" {
		log.Printf("Warning: DATABASE_URL is not set. Database operations are disabled.")
	}
	if poolMin < 1 {
		poolMin = 1
	}
	if poolMax < poolMin {
		poolMax = poolMin
	}
	return &Gateway{dsn: dsn, poolMin: poolMin, poolMax: poolMax}
}

// Exec runs a statement that returns no rows.
func (g *Gateway) Exec(query string, args ...interface{}) error {
	db, err := g.acquire()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	if err := db.WithContext(ctx).Exec(query, args...).Error; err != nil {
		return g.fail(db, err)
	}
	return nil
}

// QueryOne runs a statement expected to return at most one row and scans
// it into dest. The boolean reports whether a row was found.
func (g *Gateway) QueryOne(dest interface{}, query string, args ...interface{}) (bool, error) {
	db, err := g.acquire()
	if err != nil {
		return false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	tx := db.WithContext(ctx).Raw(query, args...).Scan(dest)
	if tx.Error != nil {
		return false, g.fail(db, tx.Error)
	}
	return tx.RowsAffected > 0, nil
}

// QueryAll runs a statement and scans every result row into dest, which
// must be a pointer to a slice.
func (g *Gateway) QueryAll(dest interface{}, query string, args ...interface{}) error {
	db, err := g.acquire()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	if err := db.WithContext(ctx).Raw(query, args...).Scan(dest).Error; err != nil {
		return g.fail(db, err)
	}
	return nil
}

// acquire returns the live pool, creating it on first use. Creation and
// reset share one mutex so concurrent callers never race on rebuilding
// the pool.
func (g *Gateway) acquire() (*gorm.DB, error) {
	if g.dsn == "" {
		return nil, ErrUnavailable
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		return g.db, nil
	}

	db, err := gorm.Open(postgres.Open(g.dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Error creating connection pool: %v", err)
		return nil, ErrUnavailable
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error accessing connection pool: %v", err)
		return nil, ErrUnavailable
	}
	sqlDB.SetMaxOpenConns(g.poolMax)
	sqlDB.SetMaxIdleConns(g.poolMin)

	// Re-ensure the schema on every (re)connect so a recovered database
	// gets its table back without a restart.
	if err := db.AutoMigrate(&models.Player{}); err != nil {
		log.Printf("Error migrating players table: %v", err)
		sqlDB.Close()
		return nil, ErrUnavailable
	}

	g.db = db
	return g.db, nil
}

// fail classifies a statement error. Server-side statement failures
// (constraint violations, malformed SQL) leave the pool intact; anything
// else is treated as a connectivity failure and discards the pool so the
// next call rebuilds it.
func (g *Gateway) fail(db *gorm.DB, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		log.Printf("Database statement error: %v", err)
		return ErrUnavailable
	}

	log.Printf("Database connection error, discarding pool: %v", err)
	g.reset(db)
	return ErrUnavailable
}

// reset discards the pool the failing call was using. The comparison with
// the caller's handle keeps a slow failure from tearing down a pool that
// was already rebuilt by someone else.
func (g *Gateway) reset(db *gorm.DB) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil || g.db != db {
		return
	}
	if sqlDB, err := g.db.DB(); err == nil {
		sqlDB.Close()
	}
	g.db = nil
}
