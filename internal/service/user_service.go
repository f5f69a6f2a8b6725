package service

import (
	"context"

	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/dto"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/repository"
	"github.com/rs/zerolog/log"
)

type UserService interface {
	List(ctx context.Context, p *auth.Principal, query string) ([]dto.UserDTO, error)
	ChangeRole(ctx context.Context, p *auth.Principal, id uint, role model.Role) (*dto.UserDTO, error)
	Delete(ctx context.Context, p *auth.Principal, id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, p *auth.Principal, query string) ([]dto.UserDTO, error) {
	if err := auth.RequireRole(p, auth.Staff); err != nil {
		return nil, err
	}
	users, err := s.userRepo.List(ctx, query)
	if err != nil {
		return nil, apperror.FromStore(err, "User")
	}
	resp := make([]dto.UserDTO, len(users))
	for i := range users {
		resp[i] = toUserDTO(&users[i])
	}
	return resp, nil
}

func (s *userService) ChangeRole(ctx context.Context, p *auth.Principal, id uint, role model.Role) (*dto.UserDTO, error) {
	if err := auth.RequireRole(p, auth.Owners); err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, apperror.Validation(apperror.FieldError{Field: "role", Error: "role must be one of USER ADMIN OWNER"})
	}
	if id == p.UserID {
		return nil, apperror.Forbidden(apperror.CodeForbidden, "Owners cannot change their own role")
	}
	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, apperror.FromStore(err, "User")
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.FromStore(err, "User")
	}
	log.Info().Uint("userID", id).Str("role", string(role)).Uint("by", p.UserID).Msg("User role changed")
	resp := toUserDTO(user)
	return &resp, nil
}

func (s *userService) Delete(ctx context.Context, p *auth.Principal, id uint) error {
	if err := auth.RequireRole(p, auth.Owners); err != nil {
		return err
	}
	if id == p.UserID {
		return apperror.Forbidden(apperror.CodeForbidden, "Owners cannot delete their own account")
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return apperror.FromStore(err, "User")
	}
	log.Info().Uint("userID", id).Uint("by", p.UserID).Msg("User deleted")
	return nil
}
