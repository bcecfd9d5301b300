package mongorepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
)

type profileRepository struct {
	coll *mongo.Collection
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (profile *models.Profile, err error) {
	ctx, end := observability.StartQuery(ctx, system, "GetByUserID", profilesCollection)
	defer func() { end(err) }()

	var p models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &p, nil
}

func (r *profileRepository) List(ctx context.Context) (profiles []*models.Profile, err error) {
	ctx, end := observability.StartQuery(ctx, system, "List", profilesCollection)
	defer func() { end(err) }()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	profiles = make([]*models.Profile, 0)
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) (err error) {
	ctx, end := observability.StartQuery(ctx, system, "Create", profilesCollection)
	defer func() { end(err) }()

	if profile.ID == "" {
		profile.ID = models.NewID()
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateProfile
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) (err error) {
	ctx, end := observability.StartQuery(ctx, system, "Update", profilesCollection)
	defer func() { end(err) }()

	profile.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("No profile found")
	}
	return nil
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID string) (err error) {
	ctx, end := observability.StartQuery(ctx, system, "DeleteByUserID", profilesCollection)
	defer func() { end(err) }()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
