package department

import (
	"context"

	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/repository"
)

type Service struct {
	repo repository.DepartmentRepository
}

func NewService(repo repository.DepartmentRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDepartmentRequest) (*model.Department, error) {
	department := &model.Department{
		Name:        req.Name,
		FloorNumber: req.FloorNumber,
	}
	if err := s.repo.Create(ctx, department); err != nil {
		return nil, err
	}
	return department, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Department, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Department, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, upd *model.UpdateDepartmentRequest) (*model.Department, error) {
	return s.repo.Update(ctx, id, upd)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
