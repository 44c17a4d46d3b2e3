package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert game result: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(errors.New("duplicate key value")) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get record: %w", sql.ErrNoRows)) {
		t.Fatalf("expected true for wrapped ErrNoRows")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestNullableStringRoundTrip(t *testing.T) {
	if got := nullableString(nil); got.Valid {
		t.Fatalf("expected invalid NullString for nil")
	}

	v := "team-1"
	got := nullableString(&v)
	if !got.Valid || got.String != "team-1" {
		t.Fatalf("unexpected NullString: %+v", got)
	}
	if back := nullStringPtr(got); back == nil || *back != "team-1" {
		t.Fatalf("unexpected pointer: %v", back)
	}
	if back := nullStringPtr(sql.NullString{}); back != nil {
		t.Fatalf("expected nil pointer for null, got %v", back)
	}
}
