package service

import (
	"context"
	"errors"
	"time"

	"moodtracker-backend/crypto"
	"moodtracker-backend/models"
	"moodtracker-backend/repository"

	"github.com/google/uuid"
)

var (
	// ErrMissingFields is returned when a required signup/signin field is empty
	ErrMissingFields = errors.New("missing required fields")
	// ErrEmailTaken is returned when a signup email is already registered
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials is deliberately generic: it never reveals whether
	// the email exists or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound is returned when a verified token no longer maps to a user
	ErrUserNotFound = errors.New("user not found")
)

// UserStore is the persistence contract for user identities
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	LinkGoogleID(ctx context.Context, userID uuid.UUID, googleID string) error
}

// AuthService handles signup, credential sign-in and Google sign-in
type AuthService struct {
	users     UserStore
	google    crypto.GoogleVerifier
	jwtSecret string
	jwtExpiry time.Duration
}

// AuthServiceOption is a functional option for AuthService
type AuthServiceOption func(*AuthService)

// AuthWithUserStore sets the user store
func AuthWithUserStore(users UserStore) AuthServiceOption {
	return func(s *AuthService) {
		s.users = users
	}
}

// AuthWithGoogleVerifier sets the federated token verifier
func AuthWithGoogleVerifier(verifier crypto.GoogleVerifier) AuthServiceOption {
	return func(s *AuthService) {
		s.google = verifier
	}
}

// AuthWithJWT sets the token signing secret and lifetime
func AuthWithJWT(secret string, expiry time.Duration) AuthServiceOption {
	return func(s *AuthService) {
		s.jwtSecret = secret
		s.jwtExpiry = expiry
	}
}

// NewAuthService creates a new auth service
func NewAuthService(opts ...AuthServiceOption) *AuthService {
	s := &AuthService{jwtExpiry: 7 * 24 * time.Hour}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AuthResult carries a session token and the signed-in user
type AuthResult struct {
	Token string
	User  *models.User
}

// Signup registers a new local account and returns a session token
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*AuthResult, error) {
	if name == "" || email == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		Name:         name,
		PasswordHash: &hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issue(user)
}

// Signin authenticates with email and password
func (s *AuthService) Signin(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.PasswordHash == nil || !crypto.VerifyPassword(password, *user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// SigninWithGoogle authenticates with a Google ID token. The identity resolves
// to a local user by Google account id first, then by email (linking the
// Google id to the existing account), and finally by creating a new account.
// A create racing another first sign-in for the same Google id loses to the
// unique constraint and re-reads the winner's row.
func (s *AuthService) SigninWithGoogle(ctx context.Context, token string) (*AuthResult, error) {
	if token == "" {
		return nil, ErrMissingFields
	}

	identity, err := s.google.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByGoogleID(ctx, identity.Subject)
	if err == nil {
		return s.issue(user)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	user, err = s.users.GetByEmail(ctx, identity.Email)
	if err == nil {
		if linkErr := s.users.LinkGoogleID(ctx, user.ID, identity.Subject); linkErr != nil {
			if !errors.Is(linkErr, repository.ErrDuplicateGoogleID) {
				return nil, linkErr
			}
		} else {
			googleID := identity.Subject
			user.GoogleID = &googleID
		}
		return s.issue(user)
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	name := identity.Name
	if name == "" {
		name = identity.Email
	}
	googleID := identity.Subject
	user = &models.User{
		Email:    identity.Email,
		Name:     name,
		GoogleID: &googleID,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateGoogleID) || errors.Is(err, repository.ErrDuplicateEmail) {
			existing, readErr := s.users.GetByGoogleID(ctx, identity.Subject)
			if readErr != nil {
				return nil, err
			}
			return s.issue(existing)
		}
		return nil, err
	}

	return s.issue(user)
}

// GetUser resolves a user id to its stored identity
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}
