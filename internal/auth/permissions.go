package auth

import "gymtrack_backend/internal/models"

// Role capability checks used by services when a handler-level role guard is
// not enough (e.g. trainers may only manage members).

func IsStaff(role models.UserRole) bool {
	return role.IsStaff()
}

func IsAdmin(role models.UserRole) bool {
	return role == models.UserRoleAdmin
}

// CanManageUser reports whether actor may modify target. Admins manage
// everyone; trainers manage members only.
func CanManageUser(actor, target models.UserRole) bool {
	if actor == models.UserRoleAdmin {
		return true
	}
	if actor == models.UserRoleTrainer && target == models.UserRoleMember {
		return true
	}
	return false
}

func ValidRole(role models.UserRole) bool {
	switch role {
	case models.UserRoleAdmin, models.UserRoleTrainer, models.UserRoleMember:
		return true
	}
	return false
}
