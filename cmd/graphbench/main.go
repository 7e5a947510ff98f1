package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-graph/internal/cache"
	"github.com/d60-Lab/social-graph/internal/model"
	"github.com/d60-Lab/social-graph/internal/repository"
	"github.com/d60-Lab/social-graph/internal/service"
)

// Measures collection reads (users:all + graph:data) with a cold vs warm cache
// against real Postgres + Redis.
func main() {
	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=postgres port=5434 sslmode=disable"
	}
	db := must(gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true}))

	mustDo(db.Exec("DROP TABLE IF EXISTS relationships CASCADE").Error)
	mustDo(db.Exec("DROP TABLE IF EXISTS hobbies CASCADE").Error)
	mustDo(db.Exec("DROP TABLE IF EXISTS users CASCADE").Error)
	mustDo(db.AutoMigrate(&model.User{}, &model.Relationship{}, &model.Hobby{}))

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6380"
	}
	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer client.Close()
	c := cache.New(client, 10*time.Minute)

	const (
		userCount  = 2000
		edgeCount  = 8000
		iterations = 200
	)

	hobbyPool := []string{"reading", "coding", "gaming", "sports", "music", "cooking", "hiking", "painting"}

	fmt.Println("Seeding users...")
	users := make([]model.User, userCount)
	for i := range users {
		hobbies := make(model.StringList, 0, 3)
		for j := 0; j < 1+rand.Intn(3); j++ {
			hobbies = append(hobbies, hobbyPool[rand.Intn(len(hobbyPool))])
		}
		users[i] = model.User{
			ID:       uuid.NewString(),
			Username: fmt.Sprintf("user_%d", i),
			Age:      18 + i%40,
			Hobbies:  hobbies,
		}
	}
	mustDo(db.CreateInBatches(&users, 1000).Error)

	userRepo := repository.NewUserRepository(db)
	relRepo := repository.NewRelationshipRepository(db)
	hobbyRepo := repository.NewHobbyRepository(db)

	fmt.Println("Seeding relationships...")
	created := 0
	for created < edgeCount {
		a := users[rand.Intn(userCount)].ID
		b := users[rand.Intn(userCount)].ID
		if a == b {
			continue
		}
		if exists, _ := relRepo.ExistsPair(ctx, a, b); exists {
			continue
		}
		mustDo(relRepo.CreatePair(ctx, a, b))
		created++
	}

	fmt.Println("Computing popularity scores...")
	popularity := service.NewPopularityService(userRepo, relRepo, c)
	for i := range users {
		popularity.RefreshScore(ctx, users[i].ID)
	}

	invalidator := service.NewCacheInvalidator(c)
	userService := service.NewUserService(userRepo, relRepo, hobbyRepo, popularity, invalidator, c)
	graphService := service.NewGraphService(userRepo, relRepo, c)

	run := func(name string, cold bool) {
		latencies := make([]time.Duration, 0, iterations)
		for i := 0; i < iterations; i++ {
			if cold {
				mustDo(client.Del(ctx, cache.KeyAllUsers, cache.KeyGraph).Err())
			}
			start := time.Now()
			if _, err := userService.GetAllUsers(ctx); err != nil {
				panic(err)
			}
			if _, err := graphService.GetGraphData(ctx); err != nil {
				panic(err)
			}
			latencies = append(latencies, time.Since(start))
		}
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		fmt.Printf("%-12s p50=%v p95=%v p99=%v\n",
			name,
			percentile(latencies, 0.50),
			percentile(latencies, 0.95),
			percentile(latencies, 0.99),
		)
	}

	run("cold-cache", true)
	run("warm-cache", false)
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func mustDo(err error) {
	if err != nil {
		panic(err)
	}
}
