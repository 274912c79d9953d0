package auth

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/repository"
	"github.com/medrec/hospital-api/pkg/auth"
	apperrors "github.com/medrec/hospital-api/pkg/errors"
	"github.com/medrec/hospital-api/pkg/security"
)

var ErrTokenRevoked = errors.New("token has been revoked")

// Service owns credential records and the in-memory revocation set.
// Revocations live for the remaining lifetime of the revoked token and
// are lost on process restart.
type Service struct {
	users   repository.UserRepository
	tokens  *auth.Manager
	hasher  security.PasswordHasher
	revoked *cache.Cache
}

func NewService(users repository.UserRepository, tokens *auth.Manager,
	hasher security.PasswordHasher, revoked *cache.Cache) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		hasher:  hasher,
		revoked: revoked,
	}
}

func (s *Service) Register(ctx context.Context, username, password string) (*model.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.BadRequest("invalid password", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}
	if !user.IsActive {
		return nil, apperrors.Unauthorized(errors.New("account is inactive"))
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized(errors.New("invalid credentials"))
	}

	accessToken, err := s.tokens.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*model.TokenResponse, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	if s.isRevoked(claims.ID) {
		return nil, apperrors.Unauthorized(ErrTokenRevoked)
	}

	if _, err := s.users.Get(ctx, claims.UserID); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	accessToken, err := s.tokens.GenerateAccessToken(claims.UserID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &model.TokenResponse{AccessToken: accessToken}, nil
}

// Logout revokes the presented access token. The revocation entry expires
// together with the token itself, so the set does not grow unbounded.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokens.ParseAccess(accessToken)
	if err != nil {
		return apperrors.Unauthorized(err)
	}
	if s.isRevoked(claims.ID) {
		return apperrors.Unauthorized(ErrTokenRevoked)
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		ttl = time.Minute
	}
	s.revoked.Set(claims.ID, struct{}{}, ttl)
	return nil
}

// Authenticate verifies an access token in the order: signature, expiry,
// revocation. It is the single entry point used by the auth middleware.
func (s *Service) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.tokens.ParseAccess(accessToken)
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}
	if s.isRevoked(claims.ID) {
		return nil, apperrors.Unauthorized(ErrTokenRevoked)
	}
	return claims, nil
}

func (s *Service) isRevoked(tokenID string) bool {
	_, found := s.revoked.Get(tokenID)
	return found
}
