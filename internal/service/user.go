package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Raulcudris/microservices-fargate-demo/internal/dto"
	"github.com/Raulcudris/microservices-fargate-demo/internal/model"
	"github.com/Raulcudris/microservices-fargate-demo/internal/policy"
	"github.com/Raulcudris/microservices-fargate-demo/internal/repository"
	"github.com/Raulcudris/microservices-fargate-demo/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// UserService is the trust boundary of the system: it mints tokens on
// login and is the single place where a presented token is judged. A
// request moves through two distinct checks here: authentication (is the
// token genuine and fresh) and authorization (does its role cover the
// requested path). They fail differently and are never collapsed.
type UserService interface {
	Register(ctx context.Context, req *dto.NewUserRequest) (*model.User, error)
	Login(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	Validate(ctx context.Context, raw, path, method string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, raw string) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepository
	codec    *token.Codec
	denylist *token.Denylist
	routes   *policy.Table
	tokenTTL time.Duration
}

func NewUserService(
	userRepo repository.UserRepository,
	codec *token.Codec,
	denylist *token.Denylist,
	routes *policy.Table,
	tokenTTL time.Duration,
) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		codec:    codec,
		denylist: denylist,
		routes:   routes,
		tokenTTL: tokenTTL,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.NewUserRequest) (*model.User, error) {
	role := strings.ToUpper(req.Role)
	if !model.ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q", req.Role)
	}

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, model.ErrConflict
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username: req.Username,
		Password: string(hash),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *userServiceImpl) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	// bcrypt comparison is constant-time for matching-cost hashes.
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, model.ErrInvalidCredentials
	}

	raw, _, err := s.codec.Issue(user, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		Token:    raw,
		UserID:   user.ID,
		Role:     user.Role,
		Username: user.Username,
	}, nil
}

func (s *userServiceImpl) Validate(ctx context.Context, raw, path, method string) (*dto.TokenResponse, error) {
	// Stage one: authentication.
	claims, err := s.codec.Parse(raw)
	if err != nil {
		return nil, err
	}
	if s.denylist.Revoked(claims.ID) {
		return nil, model.ErrInvalidToken
	}

	// Stage two: authorization. A genuine token may still lack the role
	// the path demands.
	if err := s.routes.Authorize(path, method, claims.Role); err != nil {
		return nil, err
	}

	// The identity behind the token must still exist.
	user, err := s.userRepo.FindByUsername(ctx, claims.Subject)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("lookup token subject: %w", err)
	}

	return &dto.TokenResponse{
		Token:    raw,
		UserID:   claims.UserID,
		Role:     claims.Role,
		Username: user.Username,
	}, nil
}

// Logout revokes the token until its natural expiry.
func (s *userServiceImpl) Logout(ctx context.Context, raw string) error {
	claims, err := s.codec.Parse(raw)
	if err != nil {
		return err
	}
	s.denylist.Revoke(claims.ID, claims.ExpiresAt.Time)
	return nil
}

func (s *userServiceImpl) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}
