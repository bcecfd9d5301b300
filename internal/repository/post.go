package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"devconnector/internal/models"
	"devconnector/internal/observability"
)

const msgPostNotFound = "Post not found"

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (err error) {
	ctx, end := observability.StartQuery(ctx, system(r.db), "Create", "posts")
	defer func() { end(err) }()

	if post.ID == "" {
		post.ID = models.NewID()
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (post *models.Post, err error) {
	ctx, end := observability.StartQuery(ctx, system(r.db), "GetByID", "posts")
	defer func() { end(err) }()

	var p models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError(msgPostNotFound)
		}
		return nil, models.NewInternalError(err)
	}
	return &p, nil
}

func (r *postRepository) List(ctx context.Context) (posts []*models.Post, err error) {
	ctx, end := observability.StartQuery(ctx, system(r.db), "List", "posts")
	defer func() { end(err) }()

	posts = make([]*models.Post, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Update writes the whole document back. A post deleted in the meantime is reported as not found.
func (r *postRepository) Update(ctx context.Context, post *models.Post) (err error) {
	ctx, end := observability.StartQuery(ctx, system(r.db), "Update", "posts")
	defer func() { end(err) }()

	res := r.db.WithContext(ctx).Model(post).Select("*").Omit("id", "created_at").Updates(post)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError(msgPostNotFound)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) (err error) {
	ctx, end := observability.StartQuery(ctx, system(r.db), "Delete", "posts")
	defer func() { end(err) }()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError(msgPostNotFound)
	}
	return nil
}
