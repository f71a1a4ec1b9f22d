package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lumi-diary/lumi/backend/internal/models"
	"github.com/lumi-diary/lumi/backend/internal/types"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLen = 8
	minUsernameLen = 3
	tokenIssuer    = "lumi"
)

// TokenRevoker remembers revoked token ids until they would have expired anyway.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	tokenTTL  time.Duration
	revoker   TokenRevoker
	now       func() time.Time
}

// NewAuthService creates the auth service. revoker may be nil, in which case
// logout is a no-op and tokens live until expiry.
func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration, revoker TokenRevoker) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		revoker:   revoker,
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, string, error) {
	username := strings.TrimSpace(req.Username)
	if err := validateRegistration(username, req); err != nil {
		return nil, "", err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, "", ErrUserExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Gender:       req.Gender,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrUserExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	if user.IsFemale() {
		settings := models.DefaultCycleSettings(user.ID)
		if err := s.db.WithContext(ctx).Create(&settings).Error; err != nil {
			// The account is usable without settings; they are created on first PUT.
			log.Warn().Err(err).Str("component", "auth").Str("user_id", user.ID.String()).
				Msg("failed to create default cycle settings")
		}
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}
	log.Info().Str("component", "auth").Str("user_id", user.ID.String()).Msg("user registered")
	return user, token, nil
}

func validateRegistration(username string, req *types.RegisterRequest) error {
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if utf8.RuneCountInString(username) < minUsernameLen {
		return ErrUsernameTooShort
	}
	if req.Gender != models.GenderMale && req.Gender != models.GenderFemale {
		return ErrInvalidGender
	}
	return nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GenerateToken signs an HS256 token for user.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	if s.revoker != nil && claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			// Redis trouble must not lock everyone out.
			log.Warn().Err(err).Str("component", "auth").Msg("token revocation check failed")
		} else if revoked {
			return nil, fmt.Errorf("%w: token revoked", ErrInvalidToken)
		}
	}
	return claims, nil
}

// Logout revokes the token described by claims for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	if s.revoker == nil || claims == nil || claims.ID == "" {
		return nil
	}
	ttl := s.tokenTTL
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	return s.revoker.Revoke(ctx, claims.ID, ttl)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
