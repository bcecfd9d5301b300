package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devconnector/internal/models"
	"devconnector/internal/observability"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (profile *models.Profile, err error) {
	ctx, end := observability.StartQuery(ctx, system(r.db), "GetByUserID", "profiles")
	defer func() { end(err) }()

	var p models.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &p, nil
}

func (r *profileRepository) List(ctx context.Context) (profiles []*models.Profile, err error) {
	ctx, end := observability.StartQuery(ctx, system(r.db), "List", "profiles")
	defer func() { end(err) }()

	profiles = make([]*models.Profile, 0)
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) (err error) {
	ctx, end := observability.StartQuery(ctx, system(r.db), "Create", "profiles")
	defer func() { end(err) }()

	if profile.ID == "" {
		profile.ID = models.NewID()
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateProfile
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Update writes the whole document back. A profile deleted in the meantime is reported as not found.
func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) (err error) {
	ctx, end := observability.StartQuery(ctx, system(r.db), "Update", "profiles")
	defer func() { end(err) }()

	res := r.db.WithContext(ctx).Model(profile).Select("*").Omit("id", "created_at").Updates(profile)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("No profile found")
	}
	return nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID string) (err error) {
	ctx, end := observability.StartQuery(ctx, system(r.db), "DeleteByUserID", "profiles")
	defer func() { end(err) }()

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
