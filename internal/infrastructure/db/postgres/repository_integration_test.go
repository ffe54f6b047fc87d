//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rooman-dev/agl-new/internal/core/domain"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("agl"),
		tcpostgres.WithUsername("agl"),
		tcpostgres.WithPassword("agl"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := Connect(ctx, Config{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool, zerolog.Nop()))
	return pool
}

func TestMigrate_Idempotent(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, pool, zerolog.Nop()))

	v, err := MigrationVersion(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestAccountRepository(t *testing.T) {
	pool := setupPool(t)
	repo := NewAccountRepository(pool)
	ctx := context.Background()

	created, err := repo.EnsureAccount(ctx, "admin", "hash-1")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureAccount(ctx, "admin", "hash-2")
	require.NoError(t, err)
	assert.False(t, created)

	account, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash-1", account.PasswordHash)

	require.NoError(t, repo.UpdatePassword(ctx, account.ID, "hash-3"))

	account, err = repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash-3", account.PasswordHash)

	_, err = repo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.ErrorIs(t, repo.UpdatePassword(ctx, 9999, "x"), domain.ErrAccountNotFound)
}

func TestPostRepository_CRUD(t *testing.T) {
	pool := setupPool(t)
	repo := NewPostRepository(pool)
	ctx := context.Background()

	published := time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)
	post, err := repo.Create(ctx, &domain.Post{
		Title:       "SEO",
		Slug:        "seo",
		Content:     "body",
		PublishedAt: &published,
		IsPublished: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.Equal(t, "", post.TitleAr)
	require.NotNil(t, post.PublishedAt)
	assert.True(t, post.PublishedAt.Equal(published))

	_, err = repo.Create(ctx, &domain.Post{Title: "Dup", Slug: "seo", Content: "x"})
	assert.ErrorIs(t, err, domain.ErrSlugConflict)

	title := "SEO Guide"
	updated, err := repo.Update(ctx, post.ID, domain.PostPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "SEO Guide", updated.Title)
	assert.Equal(t, "seo", updated.Slug)
	assert.Equal(t, "body", updated.Content)
	assert.False(t, updated.UpdatedAt.Before(post.UpdatedAt))

	bySlug, err := repo.FindBySlug(ctx, "seo")
	require.NoError(t, err)
	assert.Equal(t, post.ID, bySlug.ID)

	_, err = repo.Update(ctx, 9999, domain.PostPatch{Title: &title})
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	require.NoError(t, repo.Delete(ctx, post.ID))
	assert.ErrorIs(t, repo.Delete(ctx, post.ID), domain.ErrPostNotFound)
	_, err = repo.FindByID(ctx, post.ID)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestPostRepository_UpdateSlugConflict(t *testing.T) {
	pool := setupPool(t)
	repo := NewPostRepository(pool)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.Post{Title: "A", Slug: "a", Content: "x"})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &domain.Post{Title: "B", Slug: "b", Content: "x"})
	require.NoError(t, err)

	taken := "a"
	_, err = repo.Update(ctx, b.ID, domain.PostPatch{Slug: &taken})
	assert.ErrorIs(t, err, domain.ErrSlugConflict)
}

func TestPostRepository_Listing(t *testing.T) {
	pool := setupPool(t)
	repo := NewPostRepository(pool)
	ctx := context.Background()

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Create(ctx, &domain.Post{Title: "Old", Slug: "old", Content: "x", PublishedAt: &older, IsPublished: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Post{Title: "New", Slug: "new", Content: "x", PublishedAt: &newer, IsPublished: true})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Post{Title: "Draft", Slug: "draft", Content: "x"})
	require.NoError(t, err)

	pub, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, pub, 2)
	assert.Equal(t, "new", pub[0].Slug)
	assert.Equal(t, "old", pub[1].Slug)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "draft", all[0].Slug)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
