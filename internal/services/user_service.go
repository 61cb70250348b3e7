package services

import (
	"gymtrack_backend/internal/auth"
	"gymtrack_backend/internal/dto"
	"gymtrack_backend/internal/email"
	"gymtrack_backend/internal/logger"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/internal/repositories"
	"gymtrack_backend/pkg/apperrors"
)

type UserService interface {
	ListUsers(role *models.UserRole) ([]models.User, error)
	GetUser(id string) (*models.User, error)
	// ApproveUser activates a pending account. Trainers may only approve
	// members; admins approve anyone.
	ApproveUser(actorRole models.UserRole, userID string) (*models.User, error)
	UpdateUser(actorRole models.UserRole, userID string, req *dto.UpdateUserRequest) (*models.User, error)
}

type userService struct {
	userRepo repositories.UserRepository
	mailer   email.Sender
}

func NewUserService(userRepo repositories.UserRepository, mailer email.Sender) UserService {
	return &userService{userRepo: userRepo, mailer: mailer}
}

func (s *userService) ListUsers(role *models.UserRole) ([]models.User, error) {
	users, err := s.userRepo.FindAll(role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return users, nil
}

func (s *userService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return user, nil
}

func (s *userService) ApproveUser(actorRole models.UserRole, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if !auth.CanManageUser(actorRole, user.Role) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if user.Status == models.UserStatusActive {
		return user, nil
	}

	user.Status = models.UserStatusActive
	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("user approved", "user_id", user.ID)

	if s.mailer != nil {
		go func() {
			if err := s.mailer.SendWelcome(user.Email, user.Name); err != nil {
				logger.Warn("welcome email failed", "user_id", user.ID, "error", err)
			}
		}()
	}

	return user, nil
}

func (s *userService) UpdateUser(actorRole models.UserRole, userID string, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if !auth.CanManageUser(actorRole, user.Role) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		// Only admins may change roles.
		if !auth.IsAdmin(actorRole) {
			return nil, apperrors.ErrInsufficientPermissions
		}
		role := models.UserRole(*req.Role)
		if !auth.ValidRole(role) {
			return nil, apperrors.NewBadRequestError("Unknown role")
		}
		user.Role = role
	}
	if req.Status != nil {
		user.Status = models.UserStatus(*req.Status)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
