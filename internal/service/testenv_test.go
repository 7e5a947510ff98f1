package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graph/internal/cache"
	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
)

type testEnv struct {
	db    *gorm.DB
	mr    *miniredis.Miniredis
	cache *cache.Cache

	users   repository.UserRepository
	rels    repository.RelationshipRepository
	hobbies repository.HobbyRepository

	popularity *PopularityService
	userSvc    *UserService
	relSvc     *RelationshipService
	graphSvc   *GraphService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Relationship{}, &model.Hobby{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	c := cache.New(rdb, 5*time.Minute)

	users := repository.NewUserRepository(db)
	rels := repository.NewRelationshipRepository(db)
	hobbies := repository.NewHobbyRepository(db)

	popularity := NewPopularityService(users, rels, c)
	invalidator := NewCacheInvalidator(c)

	return &testEnv{
		db:         db,
		mr:         mr,
		cache:      c,
		users:      users,
		rels:       rels,
		hobbies:    hobbies,
		popularity: popularity,
		userSvc:    NewUserService(users, rels, hobbies, popularity, invalidator, c),
		relSvc:     NewRelationshipService(users, rels, popularity, invalidator),
		graphSvc:   NewGraphService(users, rels, c),
	}
}

func (e *testEnv) mustCreateUser(t *testing.T, username string, hobbies ...string) *model.User {
	t.Helper()
	u, err := e.userSvc.CreateUser(context.Background(), CreateUserInput{
		Username: username,
		Age:      25,
		Hobbies:  hobbies,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func (e *testEnv) score(t *testing.T, id string) float64 {
	t.Helper()
	u, err := e.users.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("load user %s: %v", id, err)
	}
	if u == nil {
		t.Fatalf("user %s not found", id)
	}
	return u.PopularityScore
}
