package services

import (
	"fmt"
	"strings"
	"time"

	"satta-board/internal/auth"
	app_errors "satta-board/internal/errors"
	"satta-board/internal/models"
	"satta-board/internal/store"
	"satta-board/internal/types"
	"satta-board/internal/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLength  = 8
	resetTokenPrefix   = "pwreset:"
	resetTokenLifetime = 30 * time.Minute
)

// UserService manages profiles, credentials and permission grants.
type UserService struct {
	db            *gorm.DB
	store         store.Store
	configManager types.ConfigManager
}

// NewUserService creates a UserService.
func NewUserService(db *gorm.DB, s store.Store, configManager types.ConfigManager) *UserService {
	return &UserService{db: db, store: s, configManager: configManager}
}

// CreateUserParams are the fields accepted when creating a user.
type CreateUserParams struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// CreateUser creates a profile and materializes the role's default grants.
// Assigning any role above plain user requires a super_admin actor.
func (s *UserService) CreateUser(params CreateUserParams, actor *models.Profile) (*models.Profile, error) {
	if len(params.Password) < minPasswordLength {
		return nil, app_errors.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	role := params.Role
	if role == "" {
		role = auth.RoleUser
	}
	if _, known := auth.DefaultRolePermissions[role]; !known {
		return nil, app_errors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}
	if role != auth.RoleUser && (actor == nil || actor.Role != auth.RoleSuperAdmin) {
		return nil, app_errors.ErrForbidden
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to hash password")
	}

	profile := &models.Profile{
		UserID:       uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(params.Email)),
		PasswordHash: string(hash),
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Role:         role,
		IsActive:     true,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return materializeRoleGrants(tx, profile.UserID, role)
	})
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return profile, nil
}

// materializeRoleGrants replaces a user's grant rows with the role's default
// permission set.
func materializeRoleGrants(tx *gorm.DB, userID, role string) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.UserPermission{}).Error; err != nil {
		return err
	}
	for _, perm := range auth.DefaultRolePermissions[role] {
		grant := models.UserPermission{UserID: userID, Permission: perm}
		if err := tx.Create(&grant).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetProfile loads one profile.
func (s *UserService) GetProfile(userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return &profile, nil
}

// UpdateProfileParams are the self-editable profile fields.
type UpdateProfileParams struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	IsActive  *bool   `json:"is_active"`
}

// UpdateProfile edits a profile. Callers may edit themselves; anyone else
// requires super_admin. The is_active flag always requires super_admin.
func (s *UserService) UpdateProfile(userID string, params UpdateProfileParams, actor *models.Profile) (*models.Profile, error) {
	isSuper := actor != nil && actor.Role == auth.RoleSuperAdmin
	if actor == nil || (actor.UserID != userID && !isSuper) {
		return nil, app_errors.ErrForbidden
	}
	if params.IsActive != nil && !isSuper {
		return nil, app_errors.ErrForbidden
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if params.FirstName != nil {
		profile.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		profile.LastName = *params.LastName
	}
	if params.IsActive != nil {
		profile.IsActive = *params.IsActive
	}
	if err := s.db.Save(profile).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return profile, nil
}

// AssignRole changes a user's role and rebuilds their grants from the role's
// default set. super_admin only.
func (s *UserService) AssignRole(userID, role string, actor *models.Profile) (*models.Profile, error) {
	if actor == nil || actor.Role != auth.RoleSuperAdmin {
		return nil, app_errors.ErrForbidden
	}
	if _, known := auth.DefaultRolePermissions[role]; !known {
		return nil, app_errors.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		profile.Role = role
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		return materializeRoleGrants(tx, userID, role)
	})
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return profile, nil
}

// UpdatePassword changes a password. Self-service requires the current
// password; a super_admin actor can reset anyone without it.
func (s *UserService) UpdatePassword(userID, currentPassword, newPassword string, actor *models.Profile) error {
	isSuper := actor != nil && actor.Role == auth.RoleSuperAdmin
	if actor == nil || (actor.UserID != userID && !isSuper) {
		return app_errors.ErrForbidden
	}
	if len(newPassword) < minPasswordLength {
		return app_errors.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	profile, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	if !isSuper {
		if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(currentPassword)) != nil {
			return app_errors.NewAuthenticationError("current password is incorrect")
		}
	}

	return s.setPassword(profile, newPassword)
}

// setPassword hashes and stores a new password.
func (s *UserService) setPassword(profile *models.Profile, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to hash password")
	}
	profile.PasswordHash = string(hash)
	if err := s.db.Save(profile).Error; err != nil {
		return app_errors.ParseDBError(err)
	}
	return nil
}

// Authenticate verifies credentials for login. Inactive accounts and wrong
// passwords fail with the same generic error.
func (s *UserService) Authenticate(email, password string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&profile).Error
	if err != nil {
		return nil, app_errors.NewAuthenticationError("invalid email or password")
	}
	if !profile.IsActive {
		return nil, app_errors.NewAuthenticationError("invalid email or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, app_errors.NewAuthenticationError("invalid email or password")
	}

	now := time.Now()
	profile.LastLoginAt = &now
	if err := s.db.Model(&profile).Update("last_login_at", now).Error; err != nil {
		logrus.WithError(err).Warn("Failed to record last login")
	}
	return &profile, nil
}

// EnsurePublicUsername lazily generates the profile's public username from
// its email local part, appending a numeric suffix until unique.
func (s *UserService) EnsurePublicUsername(userID string) (*models.Profile, error) {
	profile, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if profile.PublicUsername != nil {
		return profile, nil
	}

	base := utils.UsernameSlug(profile.Email)
	if base == "" {
		base = "user"
	}

	candidate := base
	for suffix := 1; ; suffix++ {
		var count int64
		if err := s.db.Model(&models.Profile{}).Where("public_username = ?", candidate).Count(&count).Error; err != nil {
			return nil, app_errors.ParseDBError(err)
		}
		if count == 0 {
			break
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}

	profile.PublicUsername = &candidate
	if err := s.db.Save(profile).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return profile, nil
}

// GetByPublicUsername loads an active profile by its public username. An
// inactive account resolves to not found, hiding its microsite.
func (s *UserService) GetByPublicUsername(username string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.Where("public_username = ? AND is_active = ?", username, true).First(&profile).Error
	if err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return &profile, nil
}

// RequestPasswordReset issues a reset token when the email exists. The
// response is identical either way so emails cannot be enumerated.
func (s *UserService) RequestPasswordReset(email string) (string, error) {
	var profile models.Profile
	err := s.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&profile).Error
	if err != nil {
		// Same outward behavior as success
		return "", nil
	}

	token := uuid.NewString()
	if err := s.store.Set(resetTokenPrefix+token, []byte(profile.UserID), resetTokenLifetime); err != nil {
		logrus.WithError(err).Warn("Failed to persist password reset token")
		return "", nil
	}
	return token, nil
}

// ResetPassword consumes a reset token and sets the new password.
func (s *UserService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return app_errors.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	payload, err := s.store.Get(resetTokenPrefix + token)
	if err != nil {
		return app_errors.NewValidationError("reset token is invalid or expired")
	}
	_ = s.store.Delete(resetTokenPrefix + token)

	profile, err := s.GetProfile(string(payload))
	if err != nil {
		return err
	}
	return s.setPassword(profile, newPassword)
}

// ListGrants returns a user's grant rows.
func (s *UserService) ListGrants(userID string) ([]models.UserPermission, error) {
	var grants []models.UserPermission
	if err := s.db.Where("user_id = ?", userID).Find(&grants).Error; err != nil {
		return nil, app_errors.ParseDBError(err)
	}
	return grants, nil
}

// EnsureBootstrapAdmin creates the super admin account from BOOTSTRAP_* env
// on first start. No-op when unset or when a super admin already exists.
func (s *UserService) EnsureBootstrapAdmin() error {
	cfg := s.configManager.GetAuthConfig()
	if cfg.BootstrapEmail == "" || cfg.BootstrapPassword == "" {
		return nil
	}

	var count int64
	if err := s.db.Model(&models.Profile{}).Where("role = ?", auth.RoleSuperAdmin).Count(&count).Error; err != nil {
		return app_errors.ParseDBError(err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return app_errors.NewAPIError(app_errors.ErrInternalServer, "failed to hash bootstrap password")
	}

	profile := &models.Profile{
		UserID:       uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(cfg.BootstrapEmail)),
		PasswordHash: string(hash),
		Role:         auth.RoleSuperAdmin,
		IsActive:     true,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return materializeRoleGrants(tx, profile.UserID, auth.RoleSuperAdmin)
	})
	if err != nil {
		return app_errors.ParseDBError(err)
	}
	logrus.WithField("email", profile.Email).Info("Bootstrap super admin created")
	return nil
}
