package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Anse-dev/todo-list-app/apperror"
	"github.com/Anse-dev/todo-list-app/config"
	"github.com/Anse-dev/todo-list-app/models"
	"github.com/Anse-dev/todo-list-app/users"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	tokenIssuer      = "todo-list-app"
)

// Service issues and validates tokens. User storage and password hashing are
// delegated to the users service.
type Service struct {
	users *users.Service
	cfg   config.AuthConfig
}

// NewService creates an auth Service.
func NewService(userService *users.Service, cfg config.AuthConfig) *Service {
	return &Service{users: userService, cfg: cfg}
}

// Register creates a new account. It is a thin wrapper over the users service
// so registration and POST /api/users share one creation path.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	return s.users.Create(ctx, users.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
}

// Login verifies the credentials and returns a token pair. Lookup misses and
// password mismatches produce the same error so callers cannot probe which
// emails exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewAuthError("invalid credentials", nil)
		}
		return nil, err
	}
	if !users.VerifyPassword(user, req.Password) {
		return nil, apperror.NewAuthError("invalid credentials", nil)
	}
	return s.generateTokens(user)
}

// RefreshToken exchanges a valid refresh token for a new access token; the
// refresh token itself is returned unchanged.
func (s *Service) RefreshToken(refreshToken string) (*TokenResponse, error) {
	claims, err := s.validateToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, apperror.NewForbiddenError("invalid refresh token", err)
	}

	accessToken, expiresAt, err := s.signToken(claims.UserID, claims.Role, tokenTypeAccess, s.cfg.AccessTokenDuration)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresAt.Unix(),
	}, nil
}

func (s *Service) generateTokens(user *models.User) (*TokenResponse, error) {
	userID := user.ID.Hex()

	accessToken, expiresAt, err := s.signToken(userID, user.Role, tokenTypeAccess, s.cfg.AccessTokenDuration)
	if err != nil {
		return nil, err
	}
	refreshToken, _, err := s.signToken(userID, user.Role, tokenTypeRefresh, s.cfg.RefreshTokenDuration)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    expiresAt.Unix(),
	}, nil
}

func (s *Service) signToken(userID, role, tokenType string, duration time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(duration)
	claims := &Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, apperror.NewInternalError("failed to sign token", err)
	}
	return signed, expiresAt, nil
}

func (s *Service) validateToken(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("invalid token type: expected %s, got %s", expectedType, claims.TokenType)
	}
	return claims, nil
}
