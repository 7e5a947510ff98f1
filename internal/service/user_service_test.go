package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-graph/internal/cache"
)

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.userSvc.CreateUser(ctx, CreateUserInput{Username: "  ", Age: 20})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.userSvc.CreateUser(ctx, CreateUserInput{Username: "a", Age: 151})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.userSvc.CreateUser(ctx, CreateUserInput{Username: "a", Age: -1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.userSvc.CreateUser(ctx, CreateUserInput{Username: "a", Age: 20, Hobbies: []string{"coding", " "}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateUserTrimsAndStartsAtZero(t *testing.T) {
	env := newTestEnv(t)

	u, err := env.userSvc.CreateUser(context.Background(), CreateUserInput{
		Username: "  alice  ",
		Age:      30,
		Hobbies:  []string{" reading ", "coding"},
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.EqualValues(t, []string{"reading", "coding"}, []string(u.Hobbies))
	assert.Zero(t, u.PopularityScore)
	assert.Equal(t, []string{}, u.Friends)
}

func TestUpdateUserMissingReturnsNil(t *testing.T) {
	env := newTestEnv(t)

	age := 44
	u, err := env.userSvc.UpdateUser(context.Background(), "ghost", UpdateUserInput{Age: &age})
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUpdateUserRejectsBlankUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.mustCreateUser(t, "alice")

	blank := "   "
	_, err := env.userSvc.UpdateUser(ctx, u.ID, UpdateUserInput{Username: &blank})
	assert.ErrorIs(t, err, ErrValidation)

	got, err := env.userSvc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestUpdateUserHobbiesCascadesToFriends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustCreateUser(t, "a", "reading")
	b := env.mustCreateUser(t, "b", "gaming", "coding")
	require.NoError(t, env.relSvc.Create(ctx, a.ID, b.ID))
	require.Equal(t, 1.0, env.score(t, b.ID))

	// A 改爱好后与 B 产生共同爱好，B 的持久化分数必须跟着变
	hobbies := []string{"coding"}
	updated, err := env.userSvc.UpdateUser(ctx, a.ID, UpdateUserInput{Hobbies: &hobbies})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, 1.5, env.score(t, a.ID))
	assert.Equal(t, 1.5, env.score(t, b.ID))
	assert.Equal(t, []string{b.ID}, updated.Friends)
}

func TestDeleteUserGuardedByRelationships(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustCreateUser(t, "a")
	b := env.mustCreateUser(t, "b")
	require.NoError(t, env.relSvc.Create(ctx, a.ID, b.ID))

	_, err := env.userSvc.DeleteUser(ctx, a.ID)
	assert.ErrorIs(t, err, ErrHasRelationships)
	// 作为 friend_id 一端同样被守卫拦下
	_, err = env.userSvc.DeleteUser(ctx, b.ID)
	assert.ErrorIs(t, err, ErrHasRelationships)

	require.NoError(t, env.relSvc.Remove(ctx, a.ID, b.ID))

	found, err := env.userSvc.DeleteUser(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = env.userSvc.DeleteUser(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAddHobbyIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.userSvc.AddHobby(ctx, "coding"))
	require.NoError(t, env.userSvc.AddHobby(ctx, " coding "))

	names, err := env.userSvc.GetAllHobbies(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"coding"}, names)

	err = env.userSvc.AddHobby(ctx, "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRemoveHobbyDoesNotTouchUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.mustCreateUser(t, "a", "coding")
	require.NoError(t, env.userSvc.AddHobby(ctx, "coding"))
	require.NoError(t, env.userSvc.RemoveHobby(ctx, "coding"))

	got, err := env.userSvc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.EqualValues(t, []string{"coding"}, []string(got.Hobbies))
}

func TestGetAllUsersCachedAndOrdered(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustCreateUser(t, "a")
	b := env.mustCreateUser(t, "b", "coding")
	c := env.mustCreateUser(t, "c", "coding")
	require.NoError(t, env.relSvc.Create(ctx, b.ID, c.ID))

	users, err := env.userSvc.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	// 人气分降序，b/c 在前
	assert.Equal(t, 1.5, users[0].PopularityScore)
	assert.Equal(t, 1.5, users[1].PopularityScore)
	assert.Equal(t, a.ID, users[2].ID)
	assert.Equal(t, []string{}, users[2].Friends)

	ok, _ := env.cache.Exists(ctx, cache.KeyAllUsers)
	assert.True(t, ok)
}

func TestReadsFallBackWhenCacheUnreachable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u := env.mustCreateUser(t, "alice", "coding")
	env.mr.Close()

	users, err := env.userSvc.GetAllUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	got, err := env.userSvc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
}

func TestMutationsInvalidateCollectionViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustCreateUser(t, "a")
	_, err := env.userSvc.GetAllUsers(ctx)
	require.NoError(t, err)
	_, err = env.graphSvc.GetGraphData(ctx)
	require.NoError(t, err)

	for _, key := range []string{cache.KeyAllUsers, cache.KeyGraph} {
		ok, _ := env.cache.Exists(ctx, key)
		require.True(t, ok, key)
	}

	env.mustCreateUser(t, "b")

	for _, key := range []string{cache.KeyAllUsers, cache.KeyGraph} {
		ok, _ := env.cache.Exists(ctx, key)
		assert.False(t, ok, key)
	}
}

// 端到端场景：建边得分、删除守卫、拆边归零后可删除
func TestEndToEndScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.mustCreateUser(t, "a", "reading", "coding")
	b := env.mustCreateUser(t, "b", "gaming", "coding")
	c := env.mustCreateUser(t, "c", "sports")

	require.NoError(t, env.relSvc.Create(ctx, a.ID, b.ID))
	assert.Equal(t, 1.5, env.score(t, a.ID))
	assert.Equal(t, 1.5, env.score(t, b.ID))
	assert.Equal(t, 0.0, env.score(t, c.ID))

	_, err := env.userSvc.DeleteUser(ctx, a.ID)
	assert.ErrorIs(t, err, ErrHasRelationships)

	require.NoError(t, env.relSvc.Remove(ctx, a.ID, b.ID))
	assert.Equal(t, 0.0, env.score(t, a.ID))
	assert.Equal(t, 0.0, env.score(t, b.ID))

	found, err := env.userSvc.DeleteUser(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, found)
}
