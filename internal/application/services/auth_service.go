package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/campusnav/core/internal/domain/entities"
	"github.com/campusnav/core/internal/infrastructure/config"
	"github.com/campusnav/core/internal/infrastructure/logger"
	"github.com/campusnav/core/internal/ports"
)

// tokenClaims represents the JWT claims
type tokenClaims struct {
	UserID   int               `json:"user_id"`
	Username string            `json:"username"`
	Role     entities.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthService handles signup, login and token validation
type AuthService struct {
	users     *UserService
	hasher    *PasswordHasher
	jwtConfig config.JWTConfig
	logger    *logger.Logger
	now       func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(users *UserService, hasher *PasswordHasher, jwtConfig config.JWTConfig, logger *logger.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		jwtConfig: jwtConfig,
		logger:    logger.WithComponent("auth"),
		now:       time.Now,
	}
}

// Signup creates an account after the user agreed to data processing.
// Self-service accounts cannot be admins; role defaults to visitor.
func (s *AuthService) Signup(ctx context.Context, req ports.SignupRequest) (*ports.AuthResponse, error) {
	if !req.Consent {
		return nil, entities.ErrConsentRequired
	}

	role := req.Role
	if role == "" {
		role = entities.UserRoleVisitor
	}

	user, err := s.users.Create(ctx, entities.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     role,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("User signed up", "user_id", user.ID, "username", user.Username)
	return s.respond(user)
}

// Login authenticates by username and password
func (s *AuthService) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, entities.ErrNotFound) {
		return nil, err
	}

	if err == nil && s.hasher.Verify(u.PasswordHash, req.Password) {
		s.logger.Infow("User logged in successfully", "user_id", u.ID, "username", u.Username)
		return s.respond(u)
	}

	s.logger.Warnw("Login attempt with invalid credentials", "username", req.Username)
	return nil, fmt.Errorf("invalid credentials: %w", entities.ErrUnauthorized)
}

// ValidateToken validates a JWT token and returns claims
func (s *AuthService) ValidateToken(tokenString string) (*ports.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	},
		jwt.WithIssuer(s.jwtConfig.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %v: %w", err, entities.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", entities.ErrUnauthorized)
	}

	return &ports.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func (s *AuthService) respond(user entities.User) (*ports.AuthResponse, error) {
	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &ports.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwtConfig.ExpiresIn.Seconds()),
		User:        &user,
	}, nil
}

func (s *AuthService) generateAccessToken(user entities.User) (string, error) {
	now := s.now()
	claims := &tokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.ExpiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   strconv.Itoa(user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}
