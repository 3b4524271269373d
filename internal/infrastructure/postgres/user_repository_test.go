package postgres

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"
	"time"

	domain "virtualboard/authapi/internal/domain/auth"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"wrapped unique violation", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), true},
		{"other pg error", &pgconn.PgError{Code: "23502"}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isUniqueViolation(tc.err))
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(embeddedMigrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	body, err := fs.ReadFile(embeddedMigrations, files[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- +goose Up")
	assert.Contains(t, string(body), "UNIQUE")
}

// TestUserRepository_Postgres runs against a live server when
// TEST_DATABASE_URL is set.
func TestUserRepository_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))

	repo := NewUserRepository(db.Pool)
	username := fmt.Sprintf("it-%d", time.Now().UnixNano())

	u := &domain.User{Username: username, PasswordHash: "hash", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, u))
	require.NotZero(t, u.ID)
	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})

	got, err := repo.GetByUsername(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)

	err = repo.Create(ctx, &domain.User{Username: username, PasswordHash: "other", CreatedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = repo.GetByUsername(ctx, username+"-missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
