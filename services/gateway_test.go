package services

import (
	"errors"
	"io"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestGatewayDisabledWithoutDSN(t *testing.T) {
	g := NewGateway("", 1, 10)

	if err := g.Exec("SELECT 1"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Exec error = %v, want ErrUnavailable", err)
	}

	var n int
	if _, err := g.QueryOne(&n, "SELECT 1"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("QueryOne error = %v, want ErrUnavailable", err)
	}

	var rows []int
	if err := g.QueryAll(&rows, "SELECT 1"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("QueryAll error = %v, want ErrUnavailable", err)
	}
}

func TestGatewayPoolBounds(t *testing.T) {
	g := NewGateway("postgres://localhost/quiz", 0, 0)
	if g.poolMin != 1 || g.poolMax != 1 {
		t.Errorf("pool bounds = (%d, %d), want (1, 1)", g.poolMin, g.poolMax)
	}

	g = NewGateway("postgres://localhost/quiz", 2, 1)
	if g.poolMax != 2 {
		t.Errorf("max below min not clamped: %d", g.poolMax)
	}
}

func TestFailKeepsPoolOnStatementError(t *testing.T) {
	g := NewGateway("postgres://localhost/quiz", 1, 10)
	db := &gorm.DB{Config: &gorm.Config{}}
	g.db = db

	err := g.fail(db, &pgconn.PgError{Code: "23505", Message: "duplicate key"})
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("fail error = %v, want ErrUnavailable", err)
	}
	if g.db != db {
		t.Error("statement error discarded the pool")
	}
}

func TestFailDiscardsPoolOnConnectionError(t *testing.T) {
	g := NewGateway("postgres://localhost/quiz", 1, 10)
	db := &gorm.DB{Config: &gorm.Config{}}
	g.db = db

	err := g.fail(db, io.EOF)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("fail error = %v, want ErrUnavailable", err)
	}
	if g.db != nil {
		t.Error("connection error did not discard the pool")
	}
}

func TestResetIgnoresStaleHandle(t *testing.T) {
	g := NewGateway("postgres://localhost/quiz", 1, 10)
	current := &gorm.DB{Config: &gorm.Config{}}
	g.db = current

	// A failure observed on an already-replaced pool must not tear down
	// the rebuilt one.
	g.reset(&gorm.DB{Config: &gorm.Config{}})
	if g.db != current {
		t.Error("reset with a stale handle discarded the current pool")
	}
}
