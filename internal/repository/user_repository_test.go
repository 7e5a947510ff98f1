package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-graph/internal/model"
)

func TestUserCRUD(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &model.User{Username: "alice", Age: 30, Hobbies: model.StringList{"reading", "coding"}}
	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, model.StringList{"reading", "coding"}, got.Hobbies)
	assert.Zero(t, got.PopularityScore)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	found, err := repo.Update(ctx, u.ID, map[string]any{"age": 31})
	require.NoError(t, err)
	assert.True(t, found)
	got, _ = repo.GetByID(ctx, u.ID)
	assert.Equal(t, 31, got.Age)

	found, err = repo.Update(ctx, "nope", map[string]any{"age": 1})
	require.NoError(t, err)
	assert.False(t, found)

	deleted, err := repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUserListOrderedByPopularity(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, u := range []model.User{
		{ID: "a", Username: "a", Age: 20},
		{ID: "b", Username: "b", Age: 20},
		{ID: "c", Username: "c", Age: 20},
	} {
		u := u
		require.NoError(t, repo.Create(ctx, &u))
	}
	require.NoError(t, repo.UpdateScore(ctx, "b", 3.5))
	require.NoError(t, repo.UpdateScore(ctx, "c", 1.0))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "c", list[1].ID)
	assert.Equal(t, "a", list[2].ID)
}

func TestUpdateScoreRefreshesUpdatedAt(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &model.User{ID: "a", Username: "a", Age: 20}
	require.NoError(t, repo.Create(ctx, u))
	before, _ := repo.GetByID(ctx, "a")

	require.NoError(t, repo.UpdateScore(ctx, "a", 2.5))
	after, _ := repo.GetByID(ctx, "a")

	assert.Equal(t, 2.5, after.PopularityScore)
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))
}
