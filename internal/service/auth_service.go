package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"storefront/api/internal/config"
	"storefront/api/internal/ids"
	"storefront/api/internal/models"
	"storefront/api/internal/repository"
	"storefront/api/internal/security"
)

const minPasswordLength = 6

var (
	// ErrInvalidCredentials covers unknown email, inactive account and
	// wrong password alike; the three are indistinguishable to callers
	// so login cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

type AuthService struct {
	store   repository.CredentialStore
	audit   repository.AuditStore
	limiter *LoginLimiter
	cfg     *config.AppConfig
	log     zerolog.Logger
}

func NewAuthService(
	store repository.CredentialStore,
	audit repository.AuditStore,
	limiter *LoginLimiter,
	cfg *config.AppConfig,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		store:   store,
		audit:   audit,
		limiter: limiter,
		cfg:     cfg,
		log:     log,
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	IPAddress string
}

// Register creates a user-role account. No session token is issued here;
// registration and authentication are separate concerns, the client logs
// in afterwards. The duplicate check is the store's atomic insert, not a
// lookup-then-insert, so concurrent registrations of one email cannot
// both succeed.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || input.Password == "" || input.FirstName == "" || input.LastName == "" {
		return models.User{}, fmt.Errorf("%w: email, password, first and last name are required", ErrValidation)
	}
	if len(input.Password) < minPasswordLength {
		return models.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	passwordHash, err := security.HashPassword(input.Password, s.cfg.Security.BcryptCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Email:        input.Email,
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Role:         models.RoleUser,
		Active:       true,
	}

	if err := s.store.Insert(ctx, user); err != nil {
		return models.User{}, err
	}

	s.recordAudit(ctx, user.ID, models.AuditUserRegistered, input.IPAddress, "")
	return user, nil
}

type LoginInput struct {
	Email     string
	Password  string
	IPAddress string
}

type LoginResult struct {
	Token string
	User  models.User
}

// Login verifies credentials and issues a signed session token. Every
// failure after validation reports ErrInvalidCredentials; the audit trail
// keeps the distinction for operators.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	if s.limiter.Blocked(ctx, input.Email, input.IPAddress) {
		return LoginResult{}, ErrTooManyAttempts
	}

	user, err := s.store.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.limiter.NoteFailure(ctx, input.Email, input.IPAddress)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	if !user.Active {
		s.limiter.NoteFailure(ctx, input.Email, input.IPAddress)
		s.recordAudit(ctx, user.ID, models.AuditLoginFailed, input.IPAddress, "inactive account")
		return LoginResult{}, ErrInvalidCredentials
	}

	if !security.VerifyPassword(input.Password, user.PasswordHash) {
		s.limiter.NoteFailure(ctx, input.Email, input.IPAddress)
		s.recordAudit(ctx, user.ID, models.AuditLoginFailed, input.IPAddress, "password mismatch")
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := security.IssueSessionToken(
		s.cfg.Security.TokenSecret,
		user.ID,
		user.Email,
		user.Role,
		s.cfg.Security.TokenTTL,
	)
	if err != nil {
		return LoginResult{}, err
	}

	s.limiter.Reset(ctx, input.Email, input.IPAddress)
	s.recordAudit(ctx, user.ID, models.AuditLoginSucceeded, input.IPAddress, "")

	return LoginResult{Token: token, User: user}, nil
}

type ChangePasswordInput struct {
	UserID          string
	CurrentPassword string
	NewPassword     string
	IPAddress       string
}

// ChangePassword re-verifies the current password before accepting the
// new one. Outstanding session tokens stay valid until their own expiry;
// there is no server-side session state to revoke.
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	if input.UserID == "" || input.CurrentPassword == "" || input.NewPassword == "" {
		return fmt.Errorf("%w: user id, current and new password are required", ErrValidation)
	}
	if len(input.NewPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	user, err := s.store.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		return err
	}

	if !security.VerifyPassword(input.CurrentPassword, user.PasswordHash) {
		s.recordAudit(ctx, user.ID, models.AuditLoginFailed, input.IPAddress, "password change rejected")
		return ErrInvalidCredentials
	}

	newHash, err := security.HashPassword(input.NewPassword, s.cfg.Security.BcryptCost)
	if err != nil {
		return err
	}

	if err := s.store.UpdatePassword(ctx, user.ID, newHash); err != nil {
		return err
	}

	s.recordAudit(ctx, user.ID, models.AuditPasswordChanged, input.IPAddress, "")
	return nil
}

func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.store.List(ctx, limit, offset)
}

// ChangeRole is the only path that escalates or demotes an account; a
// self-service profile update can never touch the role column.
func (s *AuthService) ChangeRole(ctx context.Context, userID string, role models.Role, actorIP string) error {
	if !role.Valid() || role == models.RoleGuest {
		return fmt.Errorf("%w: role must be user or admin", ErrValidation)
	}

	if err := s.store.UpdateRole(ctx, userID, role); err != nil {
		return err
	}

	s.recordAudit(ctx, userID, models.AuditRoleChanged, actorIP, string(role))
	return nil
}

func (s *AuthService) SetActive(ctx context.Context, userID string, active bool, actorIP string) error {
	if err := s.store.UpdateActive(ctx, userID, active); err != nil {
		return err
	}
	if !active {
		s.recordAudit(ctx, userID, models.AuditUserDeactivated, actorIP, "")
	}
	return nil
}

// DeleteUser removes an account. Administrator accounts are never
// deletable, whoever asks; callers get the same forbidden outcome as an
// under-privileged request.
func (s *AuthService) DeleteUser(ctx context.Context, caller models.Role, userID string, actorIP string) error {
	target, err := s.store.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := security.AuthorizeDelete(caller, target); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		return err
	}

	s.recordAudit(ctx, userID, models.AuditUserDeleted, actorIP, "")
	return nil
}

func (s *AuthService) recordAudit(ctx context.Context, userID string, action models.AuditAction, ip string, detail string) {
	if s.audit == nil {
		return
	}
	event := models.AuditEvent{
		ID:        ids.New(),
		UserID:    userID,
		Action:    action,
		IPAddress: ip,
		Detail:    detail,
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Str("action", string(action)).Msg("audit record failed")
	}
}
