package prescription

import (
	"context"
	"errors"

	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/repository"
	apperrors "github.com/medrec/hospital-api/pkg/errors"
)

var errEndBeforeStart = errors.New("end_date must not be before start_date")

type Service struct {
	repo     repository.PrescriptionRepository
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
}

func NewService(repo repository.PrescriptionRepository,
	patients repository.PatientRepository, doctors repository.DoctorRepository) *Service {
	return &Service{repo: repo, patients: patients, doctors: doctors}
}

func (s *Service) Create(ctx context.Context, req *model.CreatePrescriptionRequest) (*model.Prescription, error) {
	if req.EndDate.Before(req.StartDate.Time) {
		return nil, apperrors.BadRequest(errEndBeforeStart.Error(), errEndBeforeStart)
	}
	if err := s.checkReferences(ctx, &req.PatientID, &req.DoctorID); err != nil {
		return nil, err
	}

	prescription := &model.Prescription{
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		MedicationName: req.MedicationName,
		Dosage:         req.Dosage,
		Frequency:      req.Frequency,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	}
	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Prescription, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Prescription, error) {
	if _, err := s.doctors.Get(ctx, doctorID); err != nil {
		return nil, err
	}
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) Update(ctx context.Context, id int64, upd *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	if upd.StartDate != nil && upd.EndDate != nil && upd.EndDate.Before(upd.StartDate.Time) {
		return nil, apperrors.BadRequest(errEndBeforeStart.Error(), errEndBeforeStart)
	}
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
