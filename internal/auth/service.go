package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/agenticsoft/gescom/internal"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service is the authentication gate: credential verification, first-run
// bootstrap and session token management.
type Service struct {
	repo           RepositoryAPI
	tokenGenerator TokenGeneratorAPI
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(repo RepositoryAPI, tokenGen TokenGeneratorAPI, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:           repo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Bootstrap seeds the fixed role set and, only when no user exists at all,
// creates the default administrator. Once any user row exists the admin is
// never recreated.
func (s *Service) Bootstrap() error {
	if err := s.repo.SeedRoles(DefaultRoles()); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	count, err := s.repo.CountUsers()
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := s.HashPassword(BootstrapPassword)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	admin := &User{
		Username:     BootstrapUsername,
		PasswordHash: hash,
		RoleCode:     RoleAdmin,
		IsActive:     true,
	}
	if err := s.repo.CreateUser(admin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	s.logger.Info("bootstrap administrator created", "username", BootstrapUsername)
	return nil
}

// Authenticate verifies credentials against the stored hash. Unknown user,
// inactive user and wrong password all fail identically so callers cannot
// tell which one occurred.
func (s *Service) Authenticate(username, password string) (*User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		s.logger.Error("failed to look up user", "error", err)
		return nil, err
	}
	if user == nil || !user.IsActive || !VerifyPassword(password, user.PasswordHash) {
		s.logger.Warn("authentication failed", "username", username)
		return nil, internal.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a token pair.
func (s *Service) Login(dto LoginDTO) (SessionDTO, error) {
	if err := dto.Validate(); err != nil {
		return SessionDTO{}, err
	}

	user, err := s.Authenticate(dto.Username, dto.Password)
	if err != nil {
		return SessionDTO{}, err
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(user)
	if err != nil {
		return SessionDTO{}, err
	}
	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(user)
	if err != nil {
		return SessionDTO{}, err
	}

	return SessionDTO{
		User: user,
		Tokens: AuthTokens{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

// RefreshTokens validates a refresh token and returns a new pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	user, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		return AuthTokens{}, err
	}
	if user == nil || !user.IsActive {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(user)
	if err != nil {
		return AuthTokens{}, err
	}
	newRefreshToken, err := s.tokenGenerator.GenerateRefreshToken(user)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL == 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL == 0 {
		refreshTTL = 24 * 7 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(user *User) (string, error) {
	return j.signed(user, j.AccessTokenTTL, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) GenerateRefreshToken(user *User) (string, error) {
	return j.signed(user, j.RefreshTokenTTL, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) signed(user *User, ttl time.Duration, secret []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.RoleCode,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken validates a JWT token and returns claims
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		// Tokens living longer than the access TTL were signed with the
		// refresh secret.
		if claims, ok := token.Claims.(*Claims); ok {
			if time.Until(claims.ExpiresAt.Time) > j.AccessTokenTTL {
				return j.RefreshTokenSecret, nil
			}
		}
		return j.AccessTokenSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, internal.ErrTokenExpired
		}
		return nil, internal.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, internal.ErrInvalidToken
}
