package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"devconnector/internal/auth"
	"devconnector/internal/models"
	"devconnector/internal/repository"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

var (
	statuses = []string{
		"Developer", "Junior Developer", "Senior Developer", "Manager",
		"Student or Learning", "Instructor or Teacher", "Intern", "Other",
	}
	schools = []string{
		"MIT", "Stanford University", "University of Toronto", "ETH Zurich",
		"Georgia Tech", "TU Delft", "University of Washington", "Carnegie Mellon University",
	}
	degrees = []string{"BSc", "MSc", "PhD", "Bootcamp Certificate", "Associate Degree"}
	fields  = []string{"Computer Science", "Software Engineering", "Mathematics", "Information Systems", "Physics"}
)

// Factory builds domain entities and persists them through the repositories.
type Factory struct {
	repos repository.Repositories
	faker *gofakeit.Faker
	hash  string
}

// NewFactory creates a Factory. A zero seed picks a random one.
func NewFactory(repos repository.Repositories, seed int64) (*Factory, error) {
	hash, err := auth.HashPassword(DefaultPassword)
	if err != nil {
		return nil, err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Factory{repos: repos, faker: gofakeit.New(seed), hash: hash}, nil
}

// CreateUser persists a user with a unique example.com address.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(ctx context.Context, overrides ...func(*models.User)) (*models.User, error) {
	first, last := f.faker.FirstName(), f.faker.LastName()
	email := strings.ToLower(fmt.Sprintf("%s.%s.%s@example.com", first, last, models.NewID()[:8]))

	user := &models.User{
		ID:       models.NewID(),
		Name:     first + " " + last,
		Email:    email,
		Password: f.hash,
		Avatar:   auth.AvatarURL(email),
		Age:      f.faker.Number(18, 65),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.repos.Users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return user, nil
}

// BuildProfile constructs a profile for user with a few experience and education entries.
func (f *Factory) BuildProfile(user *models.User) *models.Profile {
	handle := strings.ToLower(strings.ReplaceAll(user.Name, " ", ""))
	skills := make([]string, 0, 4)
	for range f.faker.Number(2, 4) {
		skills = append(skills, f.faker.ProgrammingLanguage())
	}

	profile := models.NewProfile(user.ID)
	profile.Apply(models.ProfileFields{
		Company:        f.faker.Company(),
		Website:        "https://" + f.faker.DomainName(),
		Location:       f.faker.City(),
		Bio:            f.faker.Sentence(12),
		Status:         f.faker.RandomString(statuses),
		GitHubUsername: handle,
		Skills:         strings.Join(skills, ","),
		Social: models.Social{
			Twitter:  "https://twitter.com/" + handle,
			LinkedIn: "https://linkedin.com/in/" + handle,
		},
	})

	start := f.faker.DateRange(time.Now().AddDate(-12, 0, 0), time.Now().AddDate(-2, 0, 0))
	profile.AddEducation(models.Education{
		School:       f.faker.RandomString(schools),
		Degree:       f.faker.RandomString(degrees),
		FieldOfStudy: f.faker.RandomString(fields),
		From:         day(start),
		To:           ptr(day(start.AddDate(4, 0, 0))),
	})

	jobStart := start.AddDate(4, 1, 0)
	for i := range f.faker.Number(1, 3) {
		exp := models.Experience{
			Title:       f.faker.JobTitle(),
			Company:     f.faker.Company(),
			Location:    f.faker.City(),
			From:        day(jobStart),
			Description: f.faker.Sentence(10),
		}
		jobStart = jobStart.AddDate(0, f.faker.Number(6, 24), 0)
		if i > 0 || jobStart.After(time.Now()) {
			exp.Current = true
		} else {
			exp.To = ptr(day(jobStart))
		}
		profile.AddExperience(exp)
		if exp.Current {
			break
		}
	}
	return profile
}

// CreateProfile builds and persists a profile for user.
func (f *Factory) CreateProfile(ctx context.Context, user *models.User) (*models.Profile, error) {
	profile := f.BuildProfile(user)
	if err := f.repos.Profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile for %s: %w", user.ID, err)
	}
	return profile, nil
}

// BuildPost constructs a post by author with likes and comments drawn from audience.
func (f *Factory) BuildPost(author *models.User, audience []*models.User) *models.Post {
	post := models.NewPost(author, f.faker.Paragraph(1, 3, 12, " "))
	post.CreatedAt = f.faker.DateRange(time.Now().AddDate(0, 0, -90), time.Now()).UTC()

	for _, u := range audience {
		if f.faker.Number(0, 2) == 0 {
			_ = post.Like(u.ID)
		}
		if f.faker.Number(0, 4) == 0 {
			post.AddComment(u, f.faker.Sentence(8))
		}
	}
	return post
}

// CreatePost builds and persists a post.
func (f *Factory) CreatePost(ctx context.Context, author *models.User, audience []*models.User) (*models.Post, error) {
	post := f.BuildPost(author, audience)
	if err := f.repos.Posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

func day(t time.Time) models.Date {
	y, m, d := t.Date()
	return models.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ptr[T any](v T) *T { return &v }
