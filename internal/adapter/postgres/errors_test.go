package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/toeic-corpus/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := MapError(nil, "run", "r1"); got != nil {
		t.Errorf("MapError(nil) = %v, want nil", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := MapError(pgx.ErrNoRows, "generation_run", "latest")

	if !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
	if want := "generation_run latest: not found"; got.Error() != want {
		t.Errorf("MapError(ErrNoRows).Error() = %q, want %q", got.Error(), want)
	}
}

func TestMapError_WrappedNoRows(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("scan row: %w", pgx.ErrNoRows)
	got := MapError(wrapped, "vocab_item", "a1b2c3")

	if !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("MapError(wrapped ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
}

func TestMapError_EmptyKey(t *testing.T) {
	t.Parallel()

	got := MapError(pgx.ErrNoRows, "generation_run", "")
	if want := "generation_run: not found"; got.Error() != want {
		t.Errorf("MapError().Error() = %q, want %q", got.Error(), want)
	}
}

func TestMapError_PgCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pgErr   *pgconn.PgError
		wantErr error
		wantMsg string
	}{
		{
			name:    "unique_violation",
			pgErr:   &pgconn.PgError{Code: "23505"},
			wantErr: domain.ErrAlreadyExists,
			wantMsg: "category c1: already exists",
		},
		{
			name:    "foreign_key_violation",
			pgErr:   &pgconn.PgError{Code: "23503"},
			wantErr: domain.ErrNotFound,
			wantMsg: "category c1: not found",
		},
		{
			name:    "check_violation_named",
			pgErr:   &pgconn.PgError{Code: "23514", ConstraintName: "questions_check"},
			wantErr: domain.ErrValidation,
			wantMsg: "category c1: questions_check: validation error",
		},
		{
			name:    "not_null_violation",
			pgErr:   &pgconn.PgError{Code: "23502"},
			wantErr: domain.ErrValidation,
			wantMsg: "category c1: validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := MapError(tt.pgErr, "category", "c1")
			if !errors.Is(got, tt.wantErr) {
				t.Errorf("MapError(code %s) does not wrap %v: %v", tt.pgErr.Code, tt.wantErr, got)
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("MapError(code %s).Error() = %q, want %q", tt.pgErr.Code, got.Error(), tt.wantMsg)
			}
		})
	}
}

func TestMapError_ContextErrors(t *testing.T) {
	t.Parallel()

	for _, ctxErr := range []error{context.DeadlineExceeded, context.Canceled} {
		got := MapError(ctxErr, "generation_run", "r1")

		if !errors.Is(got, ctxErr) {
			t.Errorf("MapError(%v) does not wrap the context error: %v", ctxErr, got)
		}
		if errors.Is(got, domain.ErrNotFound) {
			t.Errorf("MapError(%v) should not wrap domain.ErrNotFound", ctxErr)
		}
	}
}

func TestMapError_UnknownPgError(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
	got := MapError(pgErr, "vocab_item", "")

	var unwrapped *pgconn.PgError
	if !errors.As(got, &unwrapped) {
		t.Errorf("MapError(unknown PgError) does not wrap *pgconn.PgError: %v", got)
	}
	if errors.Is(got, domain.ErrNotFound) || errors.Is(got, domain.ErrAlreadyExists) || errors.Is(got, domain.ErrValidation) {
		t.Error("MapError(unknown PgError) should not map to a domain error")
	}
}

func TestMapError_UnknownError(t *testing.T) {
	t.Parallel()

	original := errors.New("something unexpected")
	got := MapError(original, "sentence", "s1")

	if !errors.Is(got, original) {
		t.Errorf("MapError(unknown) does not wrap original error: %v", got)
	}
	if want := "sentence s1: something unexpected"; got.Error() != want {
		t.Errorf("MapError(unknown).Error() = %q, want %q", got.Error(), want)
	}
}
