package service

import (
	"context"
	"strings"

	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
	"devconnector/internal/validation"
)

const (
	MsgPostNotFound     = "Post not found"
	MsgCommentNotFound  = "Comment not found"
	MsgNotPostOwner     = "User not authorized to delete this post."
	MsgNotCommentAuthor = "User not authorized"
)

type PostService struct {
	posts    repository.PostRepository
	users    repository.UserRepository
	validate *validation.Validator
}

type CreatePostInput struct {
	UserID string `json:"-"`
	Text   string `json:"text" validate:"notblank" msg:"Text must be entered"`
}

type DeletePostInput struct {
	UserID string
	PostID string
}

type CreateCommentInput struct {
	UserID string `json:"-"`
	PostID string `json:"-"`
	Text   string `json:"text" validate:"notblank" msg:"Text must be entered"`
}

type DeleteCommentInput struct {
	UserID    string
	PostID    string
	CommentID string
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, validate *validation.Validator) *PostService {
	return &PostService{
		posts:    posts,
		users:    users,
		validate: validatorOrDefault(validate),
	}
}

// CreatePost stores a post with the author's current name and avatar.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := models.NewPost(author, strings.TrimSpace(in.Text))
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.ContentEvents.WithLabelValues("post_created").Inc()
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.posts.List(ctx)
}

// GetPost fetches one post. Malformed ids are reported as a missing post.
func (s *PostService) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	if !models.ValidID(postID) {
		return nil, models.NewNotFoundError(MsgPostNotFound)
	}
	return s.posts.GetByID(ctx, postID)
}

// DeletePost removes a post owned by the caller.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return err
	}
	if post.UserID != in.UserID {
		return models.NewUnauthorizedError(MsgNotPostOwner)
	}
	return s.posts.Delete(ctx, post.ID)
}

func (s *PostService) LikePost(ctx context.Context, userID, postID string) ([]models.Like, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := post.Like(userID); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	observability.ContentEvents.WithLabelValues("like").Inc()
	return post.Likes, nil
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID string) ([]models.Like, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := post.Unlike(userID); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	observability.ContentEvents.WithLabelValues("unlike").Inc()
	return post.Likes, nil
}

func (s *PostService) AddComment(ctx context.Context, in CreateCommentInput) ([]models.Comment, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post.AddComment(author, strings.TrimSpace(in.Text))
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	observability.ContentEvents.WithLabelValues("comment_created").Inc()
	return post.Comments, nil
}

// DeleteComment removes exactly the named comment, which the caller must have written.
func (s *PostService) DeleteComment(ctx context.Context, in DeleteCommentInput) ([]models.Comment, error) {
	post, err := s.GetPost(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	comment := post.FindComment(in.CommentID)
	if comment == nil {
		return nil, models.NewNotFoundError(MsgCommentNotFound)
	}
	if comment.UserID != in.UserID {
		return nil, models.NewUnauthorizedError(MsgNotCommentAuthor)
	}

	post.RemoveComment(in.CommentID)
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post.Comments, nil
}
