package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/GregMSThompson/finance-dashboard/internal/crypto"
	"github.com/GregMSThompson/finance-dashboard/internal/dto"
	"github.com/GregMSThompson/finance-dashboard/internal/errs"
	"github.com/GregMSThompson/finance-dashboard/internal/models"
	"github.com/GregMSThompson/finance-dashboard/pkg/logger"
)

const badCredentials = "invalid email or password"

type userStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, userID int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

type tokenIssuer interface {
	Issue(userID int64, email string) (string, time.Time, error)
}

type authService struct {
	users  userStore
	tokens tokenIssuer
}

func NewAuthService(users userStore, tokens tokenIssuer) *authService {
	return &authService{users: users, tokens: tokens}
}

// Register creates the user and signs them in. A taken email is an
// AlreadyExistsError from the store.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, time.Time, error) {
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return dto.AuthResponse{}, time.Time{}, errs.NewValidationError("a valid email is required")
	case name == "":
		return dto.AuthResponse{}, time.Time{}, errs.NewValidationError("name is required")
	}

	hash, err := crypto.HashPassword(req.Password)
	if errors.Is(err, crypto.ErrPasswordTooShort) {
		return dto.AuthResponse{}, time.Time{}, errs.NewValidationError(err.Error())
	}
	if err != nil {
		return dto.AuthResponse{}, time.Time{}, err
	}

	u := models.User{Email: email, Name: name, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, &u); err != nil {
		return dto.AuthResponse{}, time.Time{}, err
	}
	logger.FromContext(ctx).Info("user registered", "user_id", u.ID)
	return s.session(u)
}

// Login checks the credentials. Unknown emails and wrong passwords get the
// same UnauthorizedError.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, time.Time, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return dto.AuthResponse{}, time.Time{}, errs.NewValidationError("email and password are required")
	}

	u, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	var notFound *errs.NotFoundError
	if errors.As(err, &notFound) {
		return dto.AuthResponse{}, time.Time{}, errs.NewUnauthorizedError(badCredentials)
	}
	if err != nil {
		return dto.AuthResponse{}, time.Time{}, err
	}
	if !crypto.CheckPassword(u.PasswordHash, req.Password) {
		return dto.AuthResponse{}, time.Time{}, errs.NewUnauthorizedError(badCredentials)
	}
	return s.session(u)
}

func (s *authService) Me(ctx context.Context, userID int64) (models.User, error) {
	return s.users.GetUser(ctx, userID)
}

func (s *authService) session(u models.User) (dto.AuthResponse, time.Time, error) {
	token, expires, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return dto.AuthResponse{}, time.Time{}, err
	}
	return dto.AuthResponse{User: u, Token: token}, expires, nil
}
