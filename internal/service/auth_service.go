package service

import (
	"context"
	"errors"
	"strings"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, req dto.LoginDTO) (*dto.UserDTO, error)
	Me(ctx context.Context, p *auth.Principal) (*dto.UserDTO, error)
	LoadPrincipal(ctx context.Context, userID uint) (*auth.Principal, error)
	SeedOwner(ctx context.Context, email, password string) error
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req dto.RegisterDTO) (*dto.UserDTO, error) {
	user := &model.User{
		Email: normalizeEmail(req.Email),
		Name:  strings.TrimSpace(req.Name),
		Role:  model.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperror.Internal(err)
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.FromStore(err, "User")
	}
	log.Info().Uint("userID", user.ID).Msg("User registered")
	resp := toUserDTO(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.InvalidCredentials()
	}
	if err != nil {
		return nil, apperror.FromStore(err, "User")
	}
	if !user.CheckPassword(req.Password) {
		log.Warn().Uint("userID", user.ID).Msg("Login: wrong password")
		return nil, apperror.InvalidCredentials()
	}
	resp := toUserDTO(user)
	return &resp, nil
}

func (s *authService) Me(ctx context.Context, p *auth.Principal) (*dto.UserDTO, error) {
	if err := auth.RequireRole(p, auth.AnyUser); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, apperror.FromStore(err, "User")
	}
	resp := toUserDTO(user)
	return &resp, nil
}

func (s *authService) LoadPrincipal(ctx context.Context, userID uint) (*auth.Principal, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.FromStore(err, "User")
	}
	return auth.PrincipalFor(user), nil
}

// SeedOwner creates the first owner account when none exists yet.
func (s *authService) SeedOwner(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	owners, err := s.userRepo.CountByRole(ctx, model.RoleOwner)
	if err != nil {
		return err
	}
	if owners > 0 {
		return nil
	}
	user := &model.User{Email: normalizeEmail(email), Name: "Owner", Role: model.RoleOwner}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}
	log.Info().Str("email", user.Email).Msg("Seeded owner account")
	return nil
}
