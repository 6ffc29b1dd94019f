package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rich-Bam/Time-2026-sub001/internal/dto"
	"github.com/Rich-Bam/Time-2026-sub001/internal/model"
	"github.com/Rich-Bam/Time-2026-sub001/internal/repository"
	pkgerrors "github.com/Rich-Bam/Time-2026-sub001/pkg/errors"
)

// User management errors.
var ErrEmailTaken = errors.New("email already in use")

// UserService manages user accounts.
type UserService interface {
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error)
	Get(ctx context.Context, id string) (*dto.UserResponse, error)
	Update(ctx context.Context, actor Actor, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	// AssignRole changes a user's role. Admin only.
	AssignRole(ctx context.Context, actor Actor, id, role string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.UserResponse, int64, error) {
	users, total, err := s.repo.User.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	list := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		list = append(list, toUserResponse(&users[i]))
	}
	return list, total, nil
}

func (s *userService) Get(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) Update(ctx context.Context, actor Actor, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if id != actor.UserID && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := s.repo.User.Update(ctx, user); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) AssignRole(ctx context.Context, actor Actor, id, role string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if role != model.RoleAdmin && role != model.RoleUser {
		return fmt.Errorf("unknown role %q", role)
	}

	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	user.Role = role
	if err := s.repo.User.Update(ctx, user); err != nil {
		return fmt.Errorf("assign role: %w", err)
	}

	s.logger.Info("role assigned",
		zap.String("admin_id", actor.UserID),
		zap.String("user_id", id),
		zap.String("role", role))
	return nil
}
