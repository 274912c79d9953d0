package appointment

import (
	"context"

	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/repository"
	apperrors "github.com/medrec/hospital-api/pkg/errors"
)

type Service struct {
	repo     repository.AppointmentRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
}

func NewService(repo repository.AppointmentRepository,
	patients repository.PatientRepository, doctors repository.DoctorRepository) *Service {
	return &Service{repo: repo, patients: patients, doctors: doctors}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if err := s.checkReferences(ctx, &req.PatientID, &req.DoctorID); err != nil {
		return nil, err
	}

	appointment := &model.Appointment{
		PatientID:           req.PatientID,
		DoctorID:            req.DoctorID,
		AppointmentDateTime: req.AppointmentDateTime,
		ReasonForVisit:      req.ReasonForVisit,
	}
	if err := s.repo.Create(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error) {
	if _, err := s.doctors.Get(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) Update(ctx context.Context, id int64, upd *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	if err := s.checkReferences(ctx, upd.PatientID, upd.DoctorID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, upd)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) checkReferences(ctx context.Context, patientID, doctorID *int64) error {
	if patientID != nil {
		if _, err := s.patients.Get(ctx, *patientID); err != nil {
			return apperrors.InvalidReference("patient", err)
		}
	}
	if doctorID != nil {
		if _, err := s.doctors.Get(ctx, *doctorID); err != nil {
			return apperrors.InvalidReference("doctor", err)
		}
	}
	return nil
}
