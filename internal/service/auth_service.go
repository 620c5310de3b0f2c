package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/strandshq/strands-api/internal/models"
	"github.com/strandshq/strands-api/internal/repository"
	"github.com/strandshq/strands-api/internal/scope"
	"github.com/strandshq/strands-api/internal/utils"
)

// AuthService authenticates managers and the platform super-admin.
// Passwords are stored as bcrypt hashes only.
type AuthService struct {
	managers *repository.ManagerRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(managers *repository.ManagerRepository) *AuthService {
	return &AuthService{managers: managers}
}

// LoginResult carries the issued token plus the identity the SPA needs to
// route the session.
type LoginResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	SalonID string `json:"salonId,omitempty"`
}

// Login verifies credentials against the super-admin singleton first, then
// the manager directory.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	admin, err := s.managers.GetSuperAdmin(ctx)
	if err != nil {
		return nil, err
	}
	if admin != nil && admin.Email == email {
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
			log.Warn().Str("email", email).Msg("super-admin password verification failed")
			return nil, utils.ErrInvalidCredentials
		}
		token, err := utils.GenerateJWT(admin.ID, admin.Email, string(scope.RoleSuperAdmin), "")
		if err != nil {
			return nil, err
		}
		log.Info().Str("email", email).Msg("super-admin login successful")
		return &LoginResult{Token: token, Role: string(scope.RoleSuperAdmin), Name: admin.Name}, nil
	}

	mgr, err := s.managers.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if mgr == nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !mgr.IsActive {
		log.Warn().Str("email", email).Msg("manager account is inactive")
		return nil, utils.ErrAccountInactive
	}
	if bcrypt.CompareHashAndPassword([]byte(mgr.PasswordHash), []byte(password)) != nil {
		log.Warn().Str("email", email).Msg("manager password verification failed")
		return nil, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(mgr.ID, mgr.Email, string(scope.RoleManager), mgr.SalonID)
	if err != nil {
		return nil, err
	}
	log.Info().Str("email", email).Str("salon_id", mgr.SalonID).Msg("manager login successful")
	return &LoginResult{Token: token, Role: string(scope.RoleManager), Name: mgr.Name, SalonID: mgr.SalonID}, nil
}

// CreateManager provisions a manager account, hashing the password before it
// touches the store.
func (s *AuthService) CreateManager(ctx context.Context, m *models.Manager, password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	m.PasswordHash = string(hashed)
	m.IsActive = true
	return s.managers.Create(ctx, m)
}

// EnsureSuperAdmin provisions the super-admin singleton on first boot. A
// no-op when it already exists or when no bootstrap password is configured.
func (s *AuthService) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	if password == "" {
		return nil
	}
	existing, err := s.managers.GetSuperAdmin(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	log.Info().Str("email", email).Msg("provisioning super-admin")
	return s.managers.PutSuperAdmin(ctx, &models.SuperAdmin{
		Name:         "Platform Admin",
		Email:        email,
		PasswordHash: string(hashed),
	})
}
