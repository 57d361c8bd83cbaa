package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches ErrNoRows", func(t *testing.T) {
		if !isNotFound(sql.ErrNoRows) {
			t.Fatalf("expected true for sql.ErrNoRows")
		}
	})

	t.Run("matches wrapped ErrNoRows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("select game by id: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(errors.New("pq: relation games does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestParseIntervalText(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
	}{
		{"00:36:12", 36*time.Minute + 12*time.Second},
		{"01:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"00:00:00", 0},
		{"00:12:30.5", 12*time.Minute + 30*time.Second + 500*time.Millisecond},
		{"", 0},
		{"garbage", 0},
		{"12:34", 0},
	}

	for _, tc := range cases {
		if got := parseIntervalText(tc.input); got != tc.want {
			t.Fatalf("parseIntervalText(%q) got=%s want=%s", tc.input, got, tc.want)
		}
	}
}
