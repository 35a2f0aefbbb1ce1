// Package server provides the HTTP REST API for the job board.
package server

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mbenali/jobboard/internal/config"
	"github.com/mbenali/jobboard/internal/server/middleware"
	"github.com/mbenali/jobboard/internal/types"
)

// Claims represents JWT claims carrying the session identity.
type Claims struct {
	UserID uuid.UUID  `json:"user_id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   types.Role `json:"role"`
	jwt.RegisteredClaims
}

// Session converts the claims to the session handed to handlers.
func (c *Claims) Session() types.Session {
	return types.Session{UserID: c.UserID, Name: c.Name, Email: c.Email, Role: c.Role}
}

// JWTService provides session token generation and validation.
type JWTService struct {
	config *config.JWTConfig
}

// NewJWTService creates a new JWT service with the given configuration.
func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

// GenerateToken signs a token for the given account.
func (s *JWTService) GenerateToken(user *types.User) (string, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.config.ExpirationHours) * time.Hour)

	claims := &Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a token and returns the session it carries.
// This implements middleware.TokenValidator.
func (s *JWTService) ValidateToken(tokenString string) (types.Session, error) {
	if tokenString == "" {
		return types.Session{}, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return types.Session{}, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return types.Session{}, fmt.Errorf("token is not valid")
	}
	if !claims.Role.IsValid() {
		return types.Session{}, fmt.Errorf("token carries unknown role %q", claims.Role)
	}
	return claims.Session(), nil
}

var _ middleware.TokenValidator = (*JWTService)(nil)
