// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"

	"codeberg.org/oliverandrich/jokebox/internal/models"
	"codeberg.org/oliverandrich/jokebox/internal/repository"
	"codeberg.org/oliverandrich/jokebox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	db, repo := testutil.NewTestDB(t)

	assert.NotNil(t, repo)
	assert.Same(t, db, repo.DB())
}

func TestCreateUser(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := &models.User{Username: "testuser", Email: "test@example.com", PasswordHash: "hash"}
	err := repo.CreateUser(ctx, user)

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotZero(t, user.CreatedAt)
	assert.False(t, user.IsAdmin)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &models.User{Username: "dup", Email: "a@example.com", PasswordHash: "x"}))

	err := repo.CreateUser(ctx, &models.User{Username: "dup", Email: "b@example.com", PasswordHash: "x"})

	assert.ErrorIs(t, err, repository.ErrDuplicateUsername)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, &models.User{Username: "a", Email: "same@example.com", PasswordHash: "x"}))

	err := repo.CreateUser(ctx, &models.User{Username: "b", Email: "same@example.com", PasswordHash: "x"})

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestGetUserByID(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	created := testutil.NewTestAdmin(t, repo, "boss")

	retrieved, err := repo.GetUserByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
	assert.Equal(t, "boss", retrieved.Username)
	assert.Equal(t, "boss@example.com", retrieved.Email)
	assert.True(t, retrieved.IsAdmin)
	assert.NotEmpty(t, retrieved.PasswordHash)
}

func TestGetUserByID_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByID(context.Background(), 999)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByUsername(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	created := testutil.NewTestUser(t, repo, "testuser")

	retrieved, err := repo.GetUserByUsername(context.Background(), "testuser")

	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	_, err := repo.GetUserByUsername(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetUserByEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	created := testutil.NewTestUser(t, repo, "testuser")

	retrieved, err := repo.GetUserByEmail(context.Background(), "testuser@example.com")

	require.NoError(t, err)
	assert.Equal(t, created.ID, retrieved.ID)
}

func TestUsernameExists(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	testutil.NewTestUser(t, repo, "testuser")

	exists, err := repo.UsernameExists(ctx, "testuser")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.UsernameExists(ctx, "nonexistent")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEmailExists_ExcludesOwnID(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "testuser")

	exists, err := repo.EmailExists(ctx, "testuser@example.com", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(ctx, "testuser@example.com", user.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpdateUserEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, repo, "testuser")

	require.NoError(t, repo.UpdateUserEmail(ctx, user.ID, "new@example.com"))

	updated, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestUpdateUserEmail_Taken(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	alice := testutil.NewTestUser(t, repo, "alice")
	testutil.NewTestUser(t, repo, "bob")

	err := repo.UpdateUserEmail(ctx, alice.ID, "bob@example.com")

	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestUpdateUserEmail_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)

	err := repo.UpdateUserEmail(context.Background(), 42, "x@example.com")

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCountUserJokes(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	user := testutil.NewTestUser(t, repo, "testuser")
	other := testutil.NewTestUser(t, repo, "other")
	testutil.NewTestJoke(t, repo, user.ID, "dad", "one")
	testutil.NewTestJoke(t, repo, user.ID, "dad", "two")
	testutil.NewTestJoke(t, repo, other.ID, "dad", "three")

	count, err := repo.CountUserJokes(context.Background(), user.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestInTx_RollsBack(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	err := repo.InTx(ctx, func(tx *repository.Repository) error {
		if err := tx.CreateUser(ctx, &models.User{Username: "a", Email: "a@example.com", PasswordHash: "x"}); err != nil {
			return err
		}
		return tx.CreateUser(ctx, &models.User{Username: "a", Email: "b@example.com", PasswordHash: "x"})
	})
	require.ErrorIs(t, err, repository.ErrDuplicateUsername)

	exists, err := repo.UsernameExists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, exists)
}
