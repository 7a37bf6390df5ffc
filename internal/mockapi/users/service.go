// Package users implements account registration, password login and token
// verification for the stub API.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mindhaven/internal/mockapi/auth"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnauthorized = errors.New("unauthorized")

type Service struct {
	repo                        Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	hashCost                    int
}

func NewService(repo Repository, secretKey string, validity time.Duration) *Service {
	return &Service{
		repo:                        repo,
		jwtSecret:                   []byte(secretKey),
		accessTokenValidityDuration: validity,
		hashCost:                    bcrypt.DefaultCost,
	}
}

// WithHashCost lowers the bcrypt cost, for tests.
func (s *Service) WithHashCost(cost int) *Service {
	s.hashCost = cost
	return s
}

// Register creates an account and returns it with a fresh access token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login checks the password and returns the user with a fresh access token.
// Unknown emails and wrong passwords both yield ErrUnauthorized.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrUnauthorized
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", ErrUnauthorized
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Authenticate resolves an access token to its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) generateAccessToken(user *User) (string, error) {
	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
