package service

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/taskhive/task-service/internal/auth/domain UserRepository

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/task-service/internal/auth/domain"
	"github.com/taskhive/task-service/internal/auth/dto"
	apperror "github.com/taskhive/task-service/internal/errors"
)

// dummyHash is compared against when login hits an unknown email, so that
// path costs a bcrypt verification just like a wrong password does.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("taskhive-dummy-credential"), bcrypt.DefaultCost)

type UserService struct {
	repo              domain.UserRepository
	tokenService      TokenGenerator
	passwordMinLength int
}

func NewUserService(repo domain.UserRepository, tokenService TokenGenerator, passwordMinLength int) *UserService {
	return &UserService{
		repo:              repo,
		tokenService:      tokenService,
		passwordMinLength: passwordMinLength,
	}
}

func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*domain.User, error) {
	if err := s.validateRegisterInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}

	// No prior existence check: the unique index on email settles concurrent
	// registrations, the repository maps the violation to ErrEmailAlreadyInUse.
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(input.Password))
		return nil, apperror.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, _, err := s.tokenService.Generate(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// ResolveToken turns a bearer token into the authenticated user. Every
// verification failure collapses to ErrUnauthenticated so callers cannot
// tell a tampered token from an expired one or a deleted account. Store
// failures keep their own error and are never reported as an auth failure.
func (s *UserService) ResolveToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := s.tokenService.Verify(tokenString)
	if err != nil {
		return nil, apperror.ErrUnauthenticated
	}

	user, err := s.repo.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnauthenticated
	}

	return user, nil
}

func (s *UserService) validateRegisterInput(input dto.RegisterInput) error {
	if err := validation.Validate(input.Email, validation.Required, is.Email); err != nil {
		return apperror.NewValidationError("email: " + err.Error())
	}
	if err := validation.Validate(input.Password,
		validation.Required,
		validation.Length(s.passwordMinLength, 0),
	); err != nil {
		return apperror.NewValidationError("password: " + err.Error())
	}
	return nil
}
