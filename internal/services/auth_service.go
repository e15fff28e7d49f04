package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mrnoori/projecthub/internal/constants"
	"github.com/mrnoori/projecthub/internal/models"
	"github.com/mrnoori/projecthub/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	validate        = validator.New()
)

// ValidationErrors is the batch of field messages collected during
// registration. All problems are reported at once rather than fail-fast.
type ValidationErrors []string

func (e ValidationErrors) Error() string {
	return strings.Join(e, "; ")
}

// AuthService handles registration and credential verification.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register validates the input as a batch, hashes the password and creates
// the user. Duplicate username/email is pre-checked for friendly messages;
// the storage unique indexes close the remaining race.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)

	var errs ValidationErrors

	if username == "" {
		errs = append(errs, "You must provide a username")
	} else {
		if len(username) < constants.MinUsernameLength {
			errs = append(errs, fmt.Sprintf("Username must be at least %d characters", constants.MinUsernameLength))
		}
		if len(username) > constants.MaxUsernameLength {
			errs = append(errs, fmt.Sprintf("Username must be at most %d characters", constants.MaxUsernameLength))
		}
		if !usernamePattern.MatchString(username) {
			errs = append(errs, "Username can only contain letters and numbers")
		}
	}

	if email == "" {
		errs = append(errs, "You must provide an email")
	} else if validate.Var(email, "email") != nil {
		errs = append(errs, "Email must be valid")
	}

	if input.Password == "" {
		errs = append(errs, "You must provide a password")
	} else {
		if len(input.Password) < constants.MinPasswordLength {
			errs = append(errs, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
		}
		if len(input.Password) > constants.MaxPasswordLength {
			errs = append(errs, fmt.Sprintf("Password must be at most %d characters", constants.MaxPasswordLength))
		}
	}

	if username != "" {
		if _, err := s.userRepo.FindByUsername(username); err == nil {
			errs = append(errs, "Username is already taken")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
	}

	if email != "" {
		if _, err := s.userRepo.FindByEmail(email); err == nil {
			errs = append(errs, "Email is already taken")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		// two registrations raced past the pre-check; the unique index wins
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ValidationErrors{"Username or email is already taken"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user. The error
// never reveals whether the username or the password was wrong.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
