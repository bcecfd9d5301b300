package server

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"devconnector/internal/models"
	"devconnector/internal/service"
)

// MockPostRepository is a mock of the PostRepository interface
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newPostTestApp mounts the post handlers behind a fake auth gate for user "u1".
func newPostTestApp(posts *MockPostRepository, users *MockUserRepository) *fiber.App {
	s := &Server{postService: service.NewPostService(posts, users, nil)}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", "u1")
		return c.Next()
	})
	app.Post("/posts", s.CreatePost)
	app.Get("/posts", s.GetPosts)
	app.Get("/posts/:id", s.GetPost)
	app.Put("/posts/like/:id", s.LikePost)
	app.Delete("/posts/:id", s.DeletePost)
	return app
}

func TestCreatePost(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockPostRepository, *MockUserRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "Success",
			body: map[string]string{"text": "Hello world"},
			mockSetup: func(p *MockPostRepository, u *MockUserRepository) {
				u.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1", Name: "Ada"}, nil)
				p.On("Create", mock.Anything, mock.MatchedBy(func(post *models.Post) bool {
					return post.Text == "Hello world" && post.Name == "Ada" && post.UserID == "u1"
				})).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing Text",
			body:           map[string]string{"text": ""},
			mockSetup:      func(*MockPostRepository, *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Store Failure",
			body: map[string]string{"text": "Hello world"},
			mockSetup: func(p *MockPostRepository, u *MockUserRepository) {
				u.On("GetByID", mock.Anything, "u1").Return(&models.User{ID: "u1"}, nil)
				p.On("Create", mock.Anything, mock.Anything).Return(models.NewInternalError(errors.New("connection reset")))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, users := new(MockPostRepository), new(MockUserRepository)
			tt.mockSetup(posts, users)
			app := newPostTestApp(posts, users)

			resp := do(t, app, http.MethodPost, "/posts", "", tt.body)
			assert.Equal(t, tt.expectedStatus, resp.Status)
			if tt.expectedMsg != "" {
				assert.Equal(t, tt.expectedMsg, resp.msg(t))
				assert.NotContains(t, string(resp.Body), "connection reset")
			}
			posts.AssertExpectations(t)
			users.AssertExpectations(t)
		})
	}
}

func TestGetPosts_StoreFailure(t *testing.T) {
	posts, users := new(MockPostRepository), new(MockUserRepository)
	posts.On("List", mock.Anything).Return(nil, errors.New("boom"))
	app := newPostTestApp(posts, users)

	resp := do(t, app, http.MethodGet, "/posts", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.Status)
	assert.Equal(t, "Server Error", resp.msg(t))
}

func TestDeletePost_ChecksOwnershipBeforeDeleting(t *testing.T) {
	id := models.NewID()
	posts, users := new(MockPostRepository), new(MockUserRepository)
	posts.On("GetByID", mock.Anything, id).Return(&models.Post{ID: id, UserID: "someone-else"}, nil)
	app := newPostTestApp(posts, users)

	resp := do(t, app, http.MethodDelete, "/posts/"+id, "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestLikePost_UpdateFailure(t *testing.T) {
	id := models.NewID()
	posts, users := new(MockPostRepository), new(MockUserRepository)
	posts.On("GetByID", mock.Anything, id).Return(&models.Post{ID: id, UserID: "owner"}, nil)
	posts.On("Update", mock.Anything, mock.Anything).Return(models.NewNotFoundError("Post not found"))
	app := newPostTestApp(posts, users)

	resp := do(t, app, http.MethodPut, "/posts/like/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "Post not found", resp.msg(t))
}
