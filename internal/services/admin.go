package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/mastergurukulam/apiserver/internal/auth"
	"github.com/mastergurukulam/apiserver/internal/store"
	"github.com/mastergurukulam/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for both unknown usernames and
	// wrong passwords so callers cannot tell which case occurred.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrForbidden is returned when the requester's role does not permit
	// the operation.
	ErrForbidden = errors.New("insufficient permissions")

	// ErrValidation wraps input validation failures; the wrapped message
	// is safe to show to the caller.
	ErrValidation = errors.New("validation failed")
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultAdminEmail    = "admin@mastergurukulam.com"

	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// dummyHash is a bcrypt hash of a random string, compared against when a
// login names an unknown account so that the miss costs the same as a
// password mismatch.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// AdminRepository defines persistence operations for admin accounts.
type AdminRepository interface {
	GetByID(ctx context.Context, id int) (types.Admin, error)
	GetByUsername(ctx context.Context, username string) (types.Admin, error)
	GetByEmail(ctx context.Context, email string) (types.Admin, error)
	List(ctx context.Context) ([]types.Admin, error)
	Create(ctx context.Context, admin types.Admin) (types.Admin, error)
	Update(ctx context.Context, admin types.Admin) (types.Admin, error)
	Delete(ctx context.Context, id int) error
}

// AdminService implements login, account management, and the first-run
// bootstrap. The token service and bcrypt cost are injected so tests can
// run with fakes and a cheap cost factor.
type AdminService struct {
	repo       AdminRepository
	tokens     *auth.TokenService
	bcryptCost int
	logger     *slog.Logger
}

func NewAdminService(repo AdminRepository, tokens *auth.TokenService, bcryptCost int, logger *slog.Logger) *AdminService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = 12
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		repo:       repo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Login verifies the credentials and mints a session token. The account
// lookup is case-insensitive on username. Unknown usernames and wrong
// passwords both fail with ErrInvalidCredentials.
func (s *AdminService) Login(ctx context.Context, username, password string) (string, types.Admin, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || password == "" {
		return "", types.Admin{}, ErrInvalidCredentials
	}

	admin, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return "", types.Admin{}, ErrInvalidCredentials
		}
		return "", types.Admin{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", types.Admin{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.ID, admin.Role)
	if err != nil {
		return "", types.Admin{}, err
	}
	return token, admin, nil
}

// CreateAccountInput is the payload for account creation.
type CreateAccountInput struct {
	Username string
	Password string
	Email    string
	Role     types.Role
}

// CreateAccount creates a new admin account on behalf of requesterRole.
// Only superadmins and admins may create accounts; the new account's
// role defaults to admin. Username/email collisions surface as
// store.ErrDuplicate, arbitrated by the database's unique indexes.
func (s *AdminService) CreateAccount(ctx context.Context, requesterRole types.Role, input CreateAccountInput) (types.Admin, error) {
	if requesterRole != types.RoleSuperAdmin && requesterRole != types.RoleAdmin {
		return types.Admin{}, ErrForbidden
	}

	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Username == "" || input.Password == "" || input.Email == "" {
		return types.Admin{}, fmt.Errorf("%w: username, password, and email are required", ErrValidation)
	}
	if len(input.Username) < minUsernameLen || len(input.Username) > maxUsernameLen {
		return types.Admin{}, fmt.Errorf("%w: username must be between %d and %d characters", ErrValidation, minUsernameLen, maxUsernameLen)
	}
	if len(input.Password) < minPasswordLen {
		return types.Admin{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	if !emailPattern.MatchString(input.Email) {
		return types.Admin{}, fmt.Errorf("%w: invalid email address", ErrValidation)
	}

	role := input.Role
	if role == "" {
		role = types.RoleAdmin
	}
	if !role.Valid() {
		return types.Admin{}, fmt.Errorf("%w: role must be superadmin, admin, or moderator", ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return types.Admin{}, err
	}

	return s.repo.Create(ctx, types.Admin{
		Username:     input.Username,
		Email:        input.Email,
		Role:         role,
		PasswordHash: string(hashed),
	})
}

// UpdateAccountInput is the payload for account edits. Empty fields keep
// their current value; in particular an empty password preserves the
// existing hash.
type UpdateAccountInput struct {
	Username string
	Email    string
	Role     types.Role
	Password string
}

func (s *AdminService) UpdateAccount(ctx context.Context, id int, input UpdateAccountInput) (types.Admin, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return types.Admin{}, err
	}

	if username := strings.ToLower(strings.TrimSpace(input.Username)); username != "" {
		if len(username) < minUsernameLen || len(username) > maxUsernameLen {
			return types.Admin{}, fmt.Errorf("%w: username must be between %d and %d characters", ErrValidation, minUsernameLen, maxUsernameLen)
		}
		admin.Username = username
	}
	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" {
		if !emailPattern.MatchString(email) {
			return types.Admin{}, fmt.Errorf("%w: invalid email address", ErrValidation)
		}
		admin.Email = email
	}
	if input.Role != "" {
		if !input.Role.Valid() {
			return types.Admin{}, fmt.Errorf("%w: role must be superadmin, admin, or moderator", ErrValidation)
		}
		admin.Role = input.Role
	}
	if input.Password != "" {
		if len(input.Password) < minPasswordLen {
			return types.Admin{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
		if err != nil {
			return types.Admin{}, err
		}
		admin.PasswordHash = string(hashed)
	}

	return s.repo.Update(ctx, admin)
}

func (s *AdminService) GetByID(ctx context.Context, id int) (types.Admin, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AdminService) List(ctx context.Context) ([]types.Admin, error) {
	return s.repo.List(ctx)
}

func (s *AdminService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

// EnsureDefaultAdmin seeds the well-known default superadmin on first
// run. The default credential stays valid until an operator changes it;
// there is no forced rotation, so the warning is logged loudly on every
// boot where the seed happens.
func (s *AdminService) EnsureDefaultAdmin(ctx context.Context) error {
	_, err := s.repo.GetByUsername(ctx, defaultAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	if _, err := s.repo.Create(ctx, types.Admin{
		Username:     defaultAdminUsername,
		Email:        defaultAdminEmail,
		Role:         types.RoleSuperAdmin,
		PasswordHash: string(hashed),
	}); err != nil {
		// A concurrent boot may have seeded it already.
		if errors.Is(err, store.ErrDuplicate) {
			return nil
		}
		return err
	}

	s.logger.Warn("seeded default superadmin account; change its password immediately",
		"username", defaultAdminUsername,
		"password", defaultAdminPassword,
	)
	return nil
}
