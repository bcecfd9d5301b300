package service

import (
	"context"
	"errors"
	"strings"

	"devconnector/internal/models"
	"devconnector/internal/repository"
	"devconnector/internal/validation"
)

const (
	MsgNoProfileForUser = "Cannot find profile for this user"
	MsgProfileNotFound  = "No profile found"
)

type ProfileService struct {
	profiles repository.ProfileRepository
	users    repository.UserRepository
	validate *validation.Validator
}

// UpsertProfileInput is the create-or-update request. Blank fields are left untouched.
type UpsertProfileInput struct {
	UserID         string `json:"-"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" validate:"notblank" msg:"Status is required"`
	GitHubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	YouTube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	LinkedIn       string `json:"linkedIn"`
	Instagram      string `json:"instagram"`
}

type ExperienceInput struct {
	Title       string       `json:"title" validate:"notblank" msg:"Title is required"`
	Company     string       `json:"company" validate:"notblank" msg:"Company is required"`
	Location    string       `json:"location"`
	From        *models.Date `json:"from"`
	To          *models.Date `json:"to"`
	Current     bool         `json:"current"`
	Description string       `json:"description"`
}

type EducationInput struct {
	School       string       `json:"school" validate:"notblank" msg:"School is required"`
	Degree       string       `json:"degree" validate:"notblank" msg:"Degree is required"`
	FieldOfStudy string       `json:"fieldofstudy" validate:"notblank" msg:"Field of study is required"`
	From         *models.Date `json:"from"`
	To           *models.Date `json:"to"`
	Current      bool         `json:"current"`
	Description  string       `json:"description"`
}

func NewProfileService(profiles repository.ProfileRepository, users repository.UserRepository, validate *validation.Validator) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		users:    users,
		validate: validatorOrDefault(validate),
	}
}

// Mine returns the caller's own profile.
func (s *ProfileService) Mine(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError(MsgNoProfileForUser)
	}
	return profile, s.populate(ctx, profile)
}

func (s *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	return profiles, s.populate(ctx, profiles...)
}

// ByUserID returns the profile of userID. Malformed ids are reported as a missing profile.
func (s *ProfileService) ByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	if !models.ValidID(userID) {
		return nil, models.NewNotFoundError(MsgProfileNotFound)
	}
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError(MsgProfileNotFound)
	}
	return profile, s.populate(ctx, profile)
}

// Upsert creates the caller's profile or merges the supplied fields into it.
// Skills are only mandatory when the profile is created.
func (s *ProfileService) Upsert(ctx context.Context, in UpsertProfileInput) (*models.Profile, error) {
	existing, err := s.profiles.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	fields, err := fieldErrors(s.validate.Struct(in))
	if err != nil {
		return nil, err
	}
	if existing == nil && strings.TrimSpace(in.Skills) == "" {
		fields = append(fields, models.FieldError{Msg: "Skills is required", Param: "skills"})
	}
	if len(fields) > 0 {
		return nil, models.NewFieldErrors(fields...)
	}

	update := in.fields()
	if existing != nil {
		return s.merge(ctx, existing, update)
	}

	profile := models.NewProfile(in.UserID)
	profile.Apply(update)
	if err := s.profiles.Create(ctx, profile); err != nil {
		if !errors.Is(err, repository.ErrDuplicateProfile) {
			return nil, err
		}
		// Lost a creation race with a concurrent request: merge into the winner, once.
		winner, getErr := s.profiles.GetByUserID(ctx, in.UserID)
		if getErr != nil {
			return nil, getErr
		}
		if winner == nil {
			return nil, models.NewInternalError(err)
		}
		return s.merge(ctx, winner, update)
	}
	return profile, s.populate(ctx, profile)
}

func (s *ProfileService) merge(ctx context.Context, profile *models.Profile, update models.ProfileFields) (*models.Profile, error) {
	profile.Apply(update)
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, s.populate(ctx, profile)
}

func (in UpsertProfileInput) fields() models.ProfileFields {
	return models.ProfileFields{
		Company:        strings.TrimSpace(in.Company),
		Website:        strings.TrimSpace(in.Website),
		Location:       strings.TrimSpace(in.Location),
		Bio:            in.Bio,
		Status:         strings.TrimSpace(in.Status),
		GitHubUsername: strings.TrimSpace(in.GitHubUsername),
		Skills:         in.Skills,
		Social: models.Social{
			YouTube:   strings.TrimSpace(in.YouTube),
			Twitter:   strings.TrimSpace(in.Twitter),
			Facebook:  strings.TrimSpace(in.Facebook),
			LinkedIn:  strings.TrimSpace(in.LinkedIn),
			Instagram: strings.TrimSpace(in.Instagram),
		},
	}
}

// Delete removes the caller's profile and then the account itself. Posts are kept.
func (s *ProfileService) Delete(ctx context.Context, userID string) error {
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return s.users.Delete(ctx, userID)
}

func (s *ProfileService) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*models.Profile, error) {
	fields, err := fieldErrors(s.validate.Struct(in))
	if err != nil {
		return nil, err
	}
	if fields = requireDate(fields, in.From, "from", "From date is required"); len(fields) > 0 {
		return nil, models.NewFieldErrors(fields...)
	}

	return s.mutate(ctx, userID, func(p *models.Profile) error {
		p.AddExperience(models.Experience{
			Title:       strings.TrimSpace(in.Title),
			Company:     strings.TrimSpace(in.Company),
			Location:    in.Location,
			From:        *in.From,
			To:          optionalDate(in.To),
			Current:     in.Current,
			Description: in.Description,
		})
		return nil
	})
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID, experienceID string) (*models.Profile, error) {
	return s.mutate(ctx, userID, func(p *models.Profile) error {
		if !p.RemoveExperience(experienceID) {
			return models.NewNotFoundError("Experience not found")
		}
		return nil
	})
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, in EducationInput) (*models.Profile, error) {
	fields, err := fieldErrors(s.validate.Struct(in))
	if err != nil {
		return nil, err
	}
	if fields = requireDate(fields, in.From, "from", "From date is required"); len(fields) > 0 {
		return nil, models.NewFieldErrors(fields...)
	}

	return s.mutate(ctx, userID, func(p *models.Profile) error {
		p.AddEducation(models.Education{
			School:       strings.TrimSpace(in.School),
			Degree:       strings.TrimSpace(in.Degree),
			FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
			From:         *in.From,
			To:           optionalDate(in.To),
			Current:      in.Current,
			Description:  in.Description,
		})
		return nil
	})
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, educationID string) (*models.Profile, error) {
	return s.mutate(ctx, userID, func(p *models.Profile) error {
		if !p.RemoveEducation(educationID) {
			return models.NewNotFoundError("Education not found")
		}
		return nil
	})
}

// mutate loads the caller's profile, applies fn and writes the document back.
func (s *ProfileService) mutate(ctx context.Context, userID string, fn func(*models.Profile) error) (*models.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundError(MsgNoProfileForUser)
	}
	if err := fn(profile); err != nil {
		return nil, err
	}
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, s.populate(ctx, profile)
}

// populate attaches the owning user's public fields to each profile.
func (s *ProfileService) populate(ctx context.Context, profiles ...*models.Profile) error {
	if len(profiles) == 0 {
		return nil
	}
	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}

	users, err := s.users.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}
	for _, p := range profiles {
		if u, ok := byID[p.UserID]; ok {
			p.User = u.Summary()
		}
	}
	return nil
}
