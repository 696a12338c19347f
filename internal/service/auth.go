package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/menuqr/backend/internal/apperr"
	"github.com/pageza/menuqr/backend/internal/models"
	"github.com/pageza/menuqr/backend/internal/repository"
	"github.com/pageza/menuqr/backend/internal/types"
	"github.com/pageza/menuqr/backend/internal/validation"
)

const revokedKeyPrefix = "auth:revoked:"

var errInvalidCredentials = apperr.New(apperr.KindUnauthorized, "invalid credentials")

type AuthService struct {
	repo      repository.Repository
	redis     *redis.Client
	jwtSecret string
	tokenTTL  time.Duration
	log       *logrus.Entry
}

func NewAuthService(repo repository.Repository, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, log *logrus.Entry) *AuthService {
	return &AuthService{
		repo:      repo,
		redis:     rdb,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

func (s *AuthService) Register(ctx context.Context, req types.RegisterRequest) (*types.AuthResponse, error) {
	user, err := validation.ValidateUserCreate(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.New(apperr.KindConflict, "username is already taken")
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.WithField("user_id", user.ID).Info("registered user")

	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, req types.LoginRequest) (*types.AuthResponse, error) {
	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}

	return s.issue(user)
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	if claims == nil || claims.ID == "" || s.redis == nil {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, revokedKeyPrefix+claims.ID, "1", ttl).Err(); err != nil {
		return apperr.Storage("revoke token", err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.New(apperr.KindUnauthorized, "account no longer exists")
	}
	return user, nil
}

// GenerateToken signs a token for the user with a fresh token id.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "invalid or expired token", err)
	}
	if claims.UserID == 0 {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid token claims")
	}

	if s.redis != nil && claims.ID != "" {
		err := s.redis.Get(ctx, revokedKeyPrefix+claims.ID).Err()
		switch {
		case err == nil:
			return nil, apperr.New(apperr.KindUnauthorized, "token has been revoked")
		case !errors.Is(err, redis.Nil):
			return nil, apperr.Storage("check token revocation", err)
		}
	}

	return claims, nil
}

func (s *AuthService) issue(user *models.User) (*types.AuthResponse, error) {
	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &types.AuthResponse{Token: token, User: *user}, nil
}
