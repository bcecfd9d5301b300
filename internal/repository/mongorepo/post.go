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
)

const msgPostNotFound = "Post not found"

type postRepository struct {
	coll *mongo.Collection
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (err error) {
	ctx, end := observability.StartQuery(ctx, system, "Create", postsCollection)
	defer func() { end(err) }()

	if post.ID == "" {
		post.ID = models.NewID()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (post *models.Post, err error) {
	ctx, end := observability.StartQuery(ctx, system, "GetByID", postsCollection)
	defer func() { end(err) }()

	var p models.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError(msgPostNotFound)
		}
		return nil, models.NewInternalError(err)
	}
	return &p, nil
}

func (r *postRepository) List(ctx context.Context) (posts []*models.Post, err error) {
	ctx, end := observability.StartQuery(ctx, system, "List", postsCollection)
	defer func() { end(err) }()

	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	posts = make([]*models.Post, 0)
	if err := cur.All(ctx, &posts); err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) (err error) {
	ctx, end := observability.StartQuery(ctx, system, "Update", postsCollection)
	defer func() { end(err) }()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError(msgPostNotFound)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, end := observability.StartQuery(ctx, system, "Delete", postsCollection)
	defer func() { end(err) }()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.DeletedCount == 0 {
		return models.NewNotFoundError(msgPostNotFound)
	}
	return nil
}
