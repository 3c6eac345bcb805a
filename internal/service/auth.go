package service

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/arohamusic/encore-server/internal/auth"
	domainerrors "github.com/arohamusic/encore-server/internal/errors"
	"github.com/arohamusic/encore-server/internal/validation"
)

// AuthService authenticates the operator console. There is exactly one
// operator account, configured at boot; no user table, no registration.
type AuthService struct {
	tokenService *auth.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
	username     string
	passwordHash string
}

// NewAuthService creates a new authentication service for the configured
// operator credentials. passwordHash must be an Argon2id encoded hash.
func NewAuthService(username, passwordHash string, tokenService *auth.TokenService, v *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		tokenService: tokenService,
		validator:    v,
		logger:       logger,
		username:     username,
		passwordHash: passwordHash,
	}
}

// LoginRequest contains operator credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=1024"`
}

// LoginResponse contains the operator token.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login verifies operator credentials and issues a PASETO token.
// Wrong username and wrong password produce the same error so probing
// accounts learns nothing.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1

	passwordMatch, err := auth.VerifyPassword(s.passwordHash, req.Password)
	if err != nil {
		return nil, domainerrors.Internal("could not verify credentials").WithCause(err)
	}

	if !usernameMatch || !passwordMatch {
		s.logger.Warn("failed operator login attempt", "username", req.Username)
		return nil, domainerrors.InvalidCredentials("invalid username or password")
	}

	token, err := s.tokenService.GenerateToken(s.username)
	if err != nil {
		return nil, domainerrors.Internal("could not issue token").WithCause(err)
	}

	s.logger.Info("operator logged in", "username", s.username)

	return &LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenService.TokenDuration()),
	}, nil
}

// Verify checks an operator token and returns its claims.
func (s *AuthService) Verify(tokenString string) (*auth.OperatorClaims, error) {
	claims, err := s.tokenService.VerifyToken(tokenString)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}
	return claims, nil
}
