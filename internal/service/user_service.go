package service

import (
	"context"
	"errors"
	"strings"

	"devconnector/internal/auth"
	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
	"devconnector/internal/validation"
)

const (
	MsgUserExists         = "User already exists, please try a different email"
	MsgInvalidCredentials = "Invalid Credentials"
)

type UserService struct {
	users    repository.UserRepository
	tokens   *auth.TokenManager
	validate *validation.Validator
}

type RegisterInput struct {
	Name     string `json:"name" validate:"notblank" msg:"Name is required"`
	Email    string `json:"email" validate:"required,email" msg:"Please enter a valid email."`
	Password string `json:"password" validate:"min=6,maxbytes=72" msg:"Please enter a password with 6 or more characters" msg_maxbytes:"Please enter a password of at most 72 bytes"`
	Age      int    `json:"age" validate:"gte=0" msg:"Age must not be negative"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email" msg:"Please enter a valid email."`
	Password string `json:"password" validate:"required" msg:"Password is required"`
}

func NewUserService(users repository.UserRepository, tokens *auth.TokenManager, validate *validation.Validator) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		validate: validatorOrDefault(validate),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and returns a session token for it.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (token string, err error) {
	defer func() { recordAuth("register", err) }()

	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return "", err
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewFieldErrors(models.FieldError{Msg: MsgUserExists})
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{
		ID:       models.NewID(),
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Avatar:   auth.AvatarURL(in.Email),
		Age:      in.Age,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", models.NewFieldErrors(models.FieldError{Msg: MsgUserExists})
		}
		return "", err
	}

	return s.issue(user.ID)
}

// Login checks the credentials and returns a fresh session token.
func (s *UserService) Login(ctx context.Context, in LoginInput) (token string, err error) {
	defer func() { recordAuth("login", err) }()

	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Struct(in); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if user == nil || !auth.CheckPassword(user.Password, in.Password) {
		return "", models.NewFieldErrors(models.FieldError{Msg: MsgInvalidCredentials})
	}

	return s.issue(user.ID)
}

// CurrentUser returns the account behind an authenticated request.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) issue(userID string) (string, error) {
	token, err := s.tokens.Generate(userID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}

func recordAuth(event string, err error) {
	outcome := "success"
	if err != nil {
		outcome = strings.ToLower(models.AsAppError(err).Code)
	}
	observability.AuthEvents.WithLabelValues(event, outcome).Inc()
}
