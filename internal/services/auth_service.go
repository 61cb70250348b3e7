package services

import (
	"time"

	"gymtrack_backend/internal/auth"
	"gymtrack_backend/internal/dto"
	"gymtrack_backend/internal/logger"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/repositories"
	"gymtrack_backend/pkg/apperrors"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(refreshToken string) (*dto.AuthResponse, error)
}

type authService struct {
	userRepo  repositories.UserRepository
	tokenRepo repositories.RefreshTokenRepository
}

func NewAuthService(userRepo repositories.UserRepository, tokenRepo repositories.RefreshTokenRepository) AuthService {
	return &authService{userRepo: userRepo, tokenRepo: tokenRepo}
}

// Register creates a member account in pending state. Public registration
// never assigns staff roles; an admin promotes users afterwards.
func (s *authService) Register(req *dto.RegisterRequest) (*models.User, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleMember,
		Status:       models.UserStatusPending,
	}
	if req.DOB != "" {
		if dob, err := time.Parse("2006-01-02", req.DOB); err == nil {
			user.DOB = &dob
		}
	}

	if err := s.userRepo.Create(user); err != nil {
		if err == repositories.ErrEmailTaken {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.NewForbiddenError("Account is suspended")
	}

	return s.issueTokens(user)
}

// Refresh rotates the refresh token: the presented token is consumed and a
// fresh pair is issued.
func (s *authService) Refresh(refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.tokenRepo.FindByToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokenRepo.Delete(refreshToken)
		return nil, apperrors.NewUnauthorizedError("Refresh token expired")
	}

	user, err := s.userRepo.FindByID(stored.UserID)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Invalid refresh token")
	}

	if err := s.tokenRepo.Delete(refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.issueTokens(user)
}

func (s *authService) issueTokens(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := auth.GenerateRefreshToken()
	err = s.tokenRepo.Create(&models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         string(user.Role),
		UserID:       user.ID,
	}, nil
}
