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
)

// ProjectService manages the project catalog.
type ProjectService interface {
	List(ctx context.Context, activeOnly bool) ([]model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, actor Actor, req *dto.CreateProjectRequest) (*model.Project, error)
	Update(ctx context.Context, actor Actor, id string, req *dto.UpdateProjectRequest) (*model.Project, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type projectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewProjectService creates a ProjectService.
func NewProjectService(repo *repository.Repository, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, logger: logger}
}

func (s *projectService) List(ctx context.Context, activeOnly bool) ([]model.Project, error) {
	projects, err := s.repo.Project.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	return project, nil
}

func (s *projectService) Create(ctx context.Context, actor Actor, req *dto.CreateProjectRequest) (*model.Project, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	project := &model.Project{Name: req.Name, IsActive: true}
	if err := s.repo.Project.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.logger.Info("project created",
		zap.String("admin_id", actor.UserID),
		zap.String("project_id", project.ProjectID))
	return project, nil
}

func (s *projectService) Update(ctx context.Context, actor Actor, id string, req *dto.UpdateProjectRequest) (*model.Project, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.IsActive != nil {
		project.IsActive = *req.IsActive
	}

	if err := s.repo.Project.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Project.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}
