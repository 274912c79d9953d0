package doctor

import (
	"context"

	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/repository"
	apperrors "github.com/medrec/hospital-api/pkg/errors"
)

type Service struct {
	repo        repository.DoctorRepository
	departments repository.DepartmentRepository
}

func NewService(repo repository.DoctorRepository, departments repository.DepartmentRepository) *Service {
	return &Service{repo: repo, departments: departments}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if _, err := s.departments.Get(ctx, req.DepartmentID); err != nil {
		return nil, apperrors.InvalidReference("department", err)
	}

	doctor := &model.Doctor{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Specialty:    req.Specialty,
		PhoneNumber:  req.PhoneNumber,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
	}
	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByDepartment(ctx context.Context, departmentID int64) ([]*model.Doctor, error) {
	if _, err := s.departments.Get(ctx, departmentID); err != nil {
		return nil, err
	}
	return s.repo.ListByDepartment(ctx, departmentID)
}

func (s *Service) Update(ctx context.Context, id int64, upd *model.UpdateDoctorRequest) (*model.Doctor, error) {
	if upd.DepartmentID != nil {
		if _, err := s.departments.Get(ctx, *upd.DepartmentID); err != nil {
			return nil, apperrors.InvalidReference("department", err)
		}
	}
	return s.repo.Update(ctx, id, upd)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
