package mongorepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
)

type userRepository struct {
	coll *mongo.Collection
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user *models.User, err error) {
	ctx, end := observability.StartQuery(ctx, system, "GetByID", usersCollection)
	defer func() { end(err) }()

	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user *models.User, err error) {
	ctx, end := observability.StartQuery(ctx, system, "GetByEmail", usersCollection)
	defer func() { end(err) }()

	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &u, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) (users []models.User, err error) {
	ctx, end := observability.StartQuery(ctx, system, "GetByIDs", usersCollection)
	defer func() { end(err) }()

	users = make([]models.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := cur.All(ctx, &users); err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (err error) {
	ctx, end := observability.StartQuery(ctx, system, "Create", usersCollection)
	defer func() { end(err) }()

	if user.ID == "" {
		user.ID = models.NewID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, end := observability.StartQuery(ctx, system, "Delete", usersCollection)
	defer func() { end(err) }()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
