package repository

import (
	"context"

	"github.com/medrec/hospital-api/internal/model"
)

// All repository interfaces in one file
type (
	DepartmentRepository interface {
		Create(ctx context.Context, department *model.Department) error
		Get(ctx context.Context, id int64) (*model.Department, error)
		List(ctx context.Context) ([]*model.Department, error)
		Update(ctx context.Context, id int64, upd *model.UpdateDepartmentRequest) (*model.Department, error)
		Delete(ctx context.Context, id int64) error
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		ListByDepartment(ctx context.Context, departmentID int64) ([]*model.Doctor, error)
		Update(ctx context.Context, id int64, upd *model.UpdateDoctorRequest) (*model.Doctor, error)
		Delete(ctx context.Context, id int64) error
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		List(ctx context.Context) ([]*model.Patient, error)
		Update(ctx context.Context, id int64, upd *model.UpdatePatientRequest) (*model.Patient, error)
		Delete(ctx context.Context, id int64) error
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		List(ctx context.Context) ([]*model.Appointment, error)
		ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error)
		Update(ctx context.Context, id int64, upd *model.UpdateAppointmentRequest) (*model.Appointment, error)
		Delete(ctx context.Context, id int64) error
	}

	PrescriptionRepository interface {
		Create(ctx context.Context, prescription *model.Prescription) error
		Get(ctx context.Context, id int64) (*model.Prescription, error)
		List(ctx context.Context) ([]*model.Prescription, error)
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error)
		ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Prescription, error)
		Update(ctx context.Context, id int64, upd *model.UpdatePrescriptionRequest) (*model.Prescription, error)
		Delete(ctx context.Context, id int64) error
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByUsername(ctx context.Context, username string) (*model.User, error)
	}
)
