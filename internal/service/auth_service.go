package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/weatherapp/backend/internal/domain"
)

// tokenClaims is the JWT payload; id carries the user id
type tokenClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// AuthService handles registration, login and bearer token verification
type AuthService struct {
	repo     UserRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(repo UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		repo:     repo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// Register creates a user with a bcrypt password hash and returns it with a fresh token
func (s *AuthService) Register(ctx context.Context, username, email, password string) (domain.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return domain.User{}, "", fmt.Errorf("auth: username, email and password are required: %w", domain.ErrMissingParameter)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return domain.User{}, "", fmt.Errorf("auth: %w", domain.ErrPasswordTooLong)
	}
	if err != nil {
		return domain.User{}, "", fmt.Errorf("auth: failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, domain.User{
		Username:       username,
		Email:          email,
		PasswordHash:   string(hash),
		RecentSearches: []string{},
	})
	if err != nil {
		return domain.User{}, "", fmt.Errorf("auth: failed to create user: %w", err)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Login checks credentials and returns the user with a fresh token
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.User{}, "", fmt.Errorf("auth: failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// IssueToken signs an HS256 token for userID valid for the configured TTL
func (s *AuthService) IssueToken(userID string) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate verifies a bearer token and loads its user.
// Every failure is reported as domain.ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (domain.User, error) {
	if tokenString == "" {
		return domain.User{}, domain.ErrUnauthorized
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return domain.User{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	return user, nil
}
