// Command seed fills the configured store with demo data.
package main

import (
	"context"
	"flag"
	"log"

	"devconnector/internal/bootstrap"
	"devconnector/internal/config"
	"devconnector/internal/seed"
)

func main() {
	users := flag.Int("users", 20, "Number of users to create")
	posts := flag.Int("posts", 3, "Number of posts per user")
	profiles := flag.Float64("profiles", 0.8, "Share of users that get a profile (0-1)")
	seedValue := flag.Int64("seed", 0, "Random seed for reproducible data (0 = random)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	rt, err := bootstrap.Init(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}
	defer func() { _ = rt.Close() }()

	sum, err := seed.Run(ctx, rt.Repos, seed.Options{
		Users:        *users,
		PostsPerUser: *posts,
		ProfileRatio: *profiles,
		Seed:         *seedValue,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d profiles, %d posts (%d likes, %d comments) into %s",
		sum.Users, sum.Profiles, sum.Posts, sum.Likes, sum.Comments, rt.Driver)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
