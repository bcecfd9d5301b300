// Package seed populates a store with demo users, profiles and posts.
// It is intended for development only.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"devconnector/internal/middleware"
	"devconnector/internal/models"
	"devconnector/internal/repository"
)

// Options configures a seeding run.
type Options struct {
	Users        int
	PostsPerUser int
	// ProfileRatio is the share of users that get a profile, between 0 and 1.
	ProfileRatio float64
	// Seed makes the generated data reproducible. Zero means random.
	Seed int64
}

// Summary counts what a run created.
type Summary struct {
	Users    int
	Profiles int
	Posts    int
	Likes    int
	Comments int
}

// Run creates opts.Users accounts, profiles for a share of them and posts that the others
// like and comment on.
func Run(ctx context.Context, repos repository.Repositories, opts Options) (Summary, error) {
	var sum Summary
	if opts.Users <= 0 {
		return sum, fmt.Errorf("users must be positive, got %d", opts.Users)
	}
	if opts.ProfileRatio < 0 || opts.ProfileRatio > 1 {
		return sum, fmt.Errorf("profile ratio must be between 0 and 1, got %v", opts.ProfileRatio)
	}

	f, err := NewFactory(repos, opts.Seed)
	if err != nil {
		return sum, err
	}

	users := make([]*models.User, 0, opts.Users)
	for range opts.Users {
		u, err := f.CreateUser(ctx)
		if err != nil {
			return sum, err
		}
		users = append(users, u)
	}
	sum.Users = len(users)
	middleware.Logger.Info("seeded users", slog.Int("count", sum.Users))

	withProfile := int(float64(len(users)) * opts.ProfileRatio)
	for _, u := range users[:withProfile] {
		if _, err := f.CreateProfile(ctx, u); err != nil {
			return sum, err
		}
		sum.Profiles++
	}
	middleware.Logger.Info("seeded profiles", slog.Int("count", sum.Profiles))

	for i, author := range users {
		audience := make([]*models.User, 0, len(users)-1)
		audience = append(audience, users[:i]...)
		audience = append(audience, users[i+1:]...)

		for range opts.PostsPerUser {
			post, err := f.CreatePost(ctx, author, audience)
			if err != nil {
				return sum, err
			}
			sum.Posts++
			sum.Likes += len(post.Likes)
			sum.Comments += len(post.Comments)
		}
	}
	middleware.Logger.Info("seeded posts",
		slog.Int("posts", sum.Posts),
		slog.Int("likes", sum.Likes),
		slog.Int("comments", sum.Comments),
	)
	return sum, nil
}
