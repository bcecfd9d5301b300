package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconnector/internal/models"
	"devconnector/internal/repository"
	"devconnector/internal/testutil"
)

func TestUserRepository(t *testing.T) {
	repos := testutil.NewRepositories(t)
	ctx := context.Background()

	ada := testutil.CreateUser(t, repos.Users, "Ada", "ada@example.com")
	require.True(t, models.ValidID(ada.ID))
	assert.False(t, ada.CreatedAt.IsZero())

	t.Run("duplicate email", func(t *testing.T) {
		err := repos.Users.Create(ctx, &models.User{Name: "Other", Email: "ada@example.com", Password: "x"})
		assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	})

	t.Run("get by id and email", func(t *testing.T) {
		got, err := repos.Users.GetByID(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.Name)

		byEmail, err := repos.Users.GetByEmail(ctx, "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, ada.ID, byEmail.ID)

		missing, err := repos.Users.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("get by ids", func(t *testing.T) {
		bob := testutil.CreateUser(t, repos.Users, "Bob", "bob@example.com")
		users, err := repos.Users.GetByIDs(ctx, []string{ada.ID, bob.ID, models.NewID()})
		require.NoError(t, err)
		assert.Len(t, users, 2)

		none, err := repos.Users.GetByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("delete", func(t *testing.T) {
		carl := testutil.CreateUser(t, repos.Users, "Carl", "carl@example.com")
		require.NoError(t, repos.Users.Delete(ctx, carl.ID))

		_, err := repos.Users.GetByID(ctx, carl.ID)
		assert.True(t, models.IsNotFound(err))
	})
}

func TestProfileRepository(t *testing.T) {
	repos := testutil.NewRepositories(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, repos.Users, "Ada", "ada@example.com")

	missing, err := repos.Profiles.GetByUserID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	p := models.NewProfile(ada.ID)
	p.Apply(models.ProfileFields{Status: "Developer", Skills: "Go, SQL", Company: "Acme",
		Social: models.Social{Twitter: "https://twitter.com/ada"}})
	p.AddExperience(models.Experience{Title: "Engineer", Company: "Acme",
		From: models.Date{Time: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}})
	require.NoError(t, repos.Profiles.Create(ctx, p))

	assert.ErrorIs(t, repos.Profiles.Create(ctx, models.NewProfile(ada.ID)), repository.ErrDuplicateProfile)

	stored, err := repos.Profiles.GetByUserID(ctx, ada.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []string{"Go", "SQL"}, stored.Skills)
	assert.Equal(t, "https://twitter.com/ada", stored.Social.Twitter)
	require.Len(t, stored.Experience, 1)
	assert.Equal(t, 2020, stored.Experience[0].From.Year())

	stored.Apply(models.ProfileFields{Status: "Lead"})
	stored.AddEducation(models.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS"})
	require.NoError(t, repos.Profiles.Update(ctx, stored))

	updated, err := repos.Profiles.GetByUserID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lead", updated.Status)
	assert.Equal(t, "Acme", updated.Company)
	assert.Len(t, updated.Education, 1)

	all, err := repos.Profiles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repos.Profiles.DeleteByUserID(ctx, ada.ID))
	gone, err := repos.Profiles.GetByUserID(ctx, ada.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	err = repos.Profiles.Update(ctx, updated)
	assert.True(t, models.IsNotFound(err))
}

func TestPostRepository(t *testing.T) {
	repos := testutil.NewRepositories(t)
	ctx := context.Background()
	ada := testutil.CreateUser(t, repos.Users, "Ada", "ada@example.com")

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	older := models.NewPost(ada, "older")
	older.CreatedAt = base
	newer := models.NewPost(ada, "newer")
	newer.CreatedAt = base.Add(time.Hour)
	require.NoError(t, repos.Posts.Create(ctx, older))
	require.NoError(t, repos.Posts.Create(ctx, newer))

	posts, err := repos.Posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Text)
	assert.Equal(t, "older", posts[1].Text)

	got, err := repos.Posts.GetByID(ctx, older.ID)
	require.NoError(t, err)
	require.NoError(t, got.Like("someone"))
	got.AddComment(ada, "nice")
	require.NoError(t, repos.Posts.Update(ctx, got))

	reloaded, err := repos.Posts.GetByID(ctx, older.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Likes, 1)
	require.Len(t, reloaded.Comments, 1)
	assert.Equal(t, "Ada", reloaded.Comments[0].Name)
	assert.True(t, reloaded.CreatedAt.Equal(base))

	require.NoError(t, repos.Posts.Delete(ctx, older.ID))
	_, err = repos.Posts.GetByID(ctx, older.ID)
	assert.True(t, models.IsNotFound(err))
	assert.True(t, models.IsNotFound(repos.Posts.Delete(ctx, older.ID)))
	assert.True(t, models.IsNotFound(repos.Posts.Update(ctx, reloaded)))
}
