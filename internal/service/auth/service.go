package auth

import (
	"context"
	"errors"
	"time"

	"crm-backend/internal/domain"
	userrepo "crm-backend/internal/repository/user"
	"crm-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	// Both unknown email and wrong password collapse into it so the response
	// never leaks which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service handles user registration and login and issues the bearer tokens
// the API middleware verifies.
type Service struct {
	repo   userrepo.Repository
	tokens *tokenManager
}

// New creates a Service signing tokens with secret, valid for ttl.
func New(repo userrepo.Repository, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{repo: repo, tokens: newTokenManager([]byte(secret), ttl)}
}

// RegisterInput captures fields expected by the register endpoint.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register stores a new user with a bcrypt-hashed password and returns a
// signed token bound to the new user id.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if errs := validation.Registration(in.Username, in.Email, in.Password); len(errs) > 0 {
		return nil, "", &domain.ValidationError{Errors: errs}
	}

	_, err := s.repo.GetByEmail(ctx, in.Email)
	if err == nil {
		return nil, "", &domain.ConflictError{Message: "User already exists"}
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u, err := s.repo.Create(ctx, domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, "", &domain.ConflictError{Message: "User already exists"}
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies the credentials and issues a token on success.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// VerifyToken validates a bearer token and returns the user id it is
// bound to.
func (s *Service) VerifyToken(token string) (int64, error) {
	return s.tokens.Verify(token)
}
