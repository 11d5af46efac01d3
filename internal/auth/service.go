package auth

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/Jananikaavya/Library-Management/internal/config"
	"github.com/Jananikaavya/Library-Management/internal/database"
	"github.com/Jananikaavya/Library-Management/internal/database/users"
	"github.com/Jananikaavya/Library-Management/internal/entities"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("username already exists")
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
)

// Service handles registration and credential checks.
type Service struct {
	users  *users.Repository
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(repo *users.Repository, cfg config.Auth) *Service {
	return &Service{users: repo, config: cfg}
}

// Register creates a new user with a bcrypt-hashed password. A taken username
// surfaces as ErrUserExists.
func (s *Service) Register(username, password, email string) (*entities.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate validates credentials and returns the user.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(id uint) (*entities.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
