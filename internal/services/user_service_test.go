package services

import (
	"testing"
	"time"

	"gymtrack_backend/internal/dto"
	"gymtrack_backend/internal/models"
	"gymtrack_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repo *fakeUserRepo, role models.UserRole, status models.UserStatus) *models.User {
	t.Helper()
	u := &models.User{
		Name:   "Someone",
		Email:  string(role) + "-" + string(status) + "@example.com",
		Role:   role,
		Status: status,
	}
	require.NoError(t, repo.Create(u))
	return u
}

func TestApproveUser(t *testing.T) {
	userRepo := newFakeUserRepo()
	mailer := &recordingMailer{}
	svc := NewUserService(userRepo, mailer)

	pending := seedUser(t, userRepo, models.UserRoleMember, models.UserStatusPending)

	approved, err := svc.ApproveUser(models.UserRoleTrainer, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusActive, approved.Status)

	// The welcome mail is sent from a goroutine.
	require.Eventually(t, func() bool {
		mailer.mu.Lock()
		defer mailer.mu.Unlock()
		return len(mailer.welcomes) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestApproveUser_TrainerCannotApproveStaff(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, nil)

	pendingTrainer := seedUser(t, userRepo, models.UserRoleTrainer, models.UserStatusPending)

	_, err := svc.ApproveUser(models.UserRoleTrainer, pendingTrainer.ID)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	_, err = svc.ApproveUser(models.UserRoleAdmin, pendingTrainer.ID)
	assert.NoError(t, err)
}

func TestUpdateUser_RoleChangeRequiresAdmin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, nil)

	member := seedUser(t, userRepo, models.UserRoleMember, models.UserStatusActive)

	role := string(models.UserRoleTrainer)
	_, err := svc.UpdateUser(models.UserRoleTrainer, member.ID, &dto.UpdateUserRequest{Role: &role})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	updated, err := svc.UpdateUser(models.UserRoleAdmin, member.ID, &dto.UpdateUserRequest{Role: &role})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleTrainer, updated.Role)
}

func TestUpdateUser_RejectsUnknownRole(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, nil)

	member := seedUser(t, userRepo, models.UserRoleMember, models.UserStatusActive)

	bad := "Owner"
	_, err := svc.UpdateUser(models.UserRoleAdmin, member.ID, &dto.UpdateUserRequest{Role: &bad})
	assert.Error(t, err)
}

func TestListUsers_RoleFilter(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewUserService(userRepo, nil)

	seedUser(t, userRepo, models.UserRoleMember, models.UserStatusActive)
	seedUser(t, userRepo, models.UserRoleTrainer, models.UserStatusActive)

	memberRole := models.UserRoleMember
	members, err := svc.ListUsers(&memberRole)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, models.UserRoleMember, members[0].Role)

	all, err := svc.ListUsers(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
