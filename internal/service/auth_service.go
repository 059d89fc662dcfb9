package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"article-api/internal/auth"
	"article-api/internal/domain"
	"article-api/internal/repository"
	"article-api/internal/validator"
)

// AuthService handles account registration and token issuance.
type AuthService struct {
	userRepo  repository.UserRepository
	jwt       *auth.JWTManager
	validator *validator.Validator
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, jwt *auth.JWTManager, v *validator.Validator) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwt:       jwt,
		validator: v,
	}
}

// Register creates a new account. Registered accounts are never staff;
// the staff flag is provisioned out of band.
func (s *AuthService) Register(ctx context.Context, reg validator.Registration) (*domain.User, error) {
	if err := s.validator.ValidateRegistration(&reg); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     reg.Username,
		Email:        reg.Email,
		DisplayName:  reg.DisplayName,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token pair. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issuePair(user)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.jwt.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	return s.issuePair(user)
}

func (s *AuthService) issuePair(user *domain.User) (*TokenPair, error) {
	access, err := s.jwt.IssueAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.jwt.IssueRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}
