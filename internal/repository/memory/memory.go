// Package memory provides map-backed repositories used by tests. They
// enforce the same uniqueness, reference and delete-restriction rules
// as the postgres repositories so handler tests see identical error
// semantics without a database.
package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/repository"
	apperrors "github.com/medrec/hospital-api/pkg/errors"
)

// Store is the shared backing store. All repositories created from one
// Store see the same rows, which keeps cross-entity reference checks
// meaningful.
type Store struct {
	mu     sync.RWMutex
	nextID int64

	departments   map[int64]model.Department
	doctors       map[int64]model.Doctor
	patients      map[int64]model.Patient
	appointments  map[int64]model.Appointment
	prescriptions map[int64]model.Prescription
	users         map[int64]model.User
}

func NewStore() *Store {
	return &Store{
		departments:   make(map[int64]model.Department),
		doctors:       make(map[int64]model.Doctor),
		patients:      make(map[int64]model.Patient),
		appointments:  make(map[int64]model.Appointment),
		prescriptions: make(map[int64]model.Prescription),
		users:         make(map[int64]model.User),
	}
}

// id must be called with the write lock held.
func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

type departmentRepository struct{ store *Store }

func NewDepartmentRepository(store *Store) repository.DepartmentRepository {
	return &departmentRepository{store: store}
}

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.departments {
		if d.Name == department.Name {
			return apperrors.Conflict("department already exists", nil)
		}
	}
	department.ID = s.id()
	s.departments[department.ID] = *department
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, id int64) (*model.Department, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.departments[id]
	if !ok {
		return nil, apperrors.NotFound("department", sql.ErrNoRows)
	}
	return &d, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Department{}
	for id := int64(1); id <= s.nextID; id++ {
		if d, ok := s.departments[id]; ok {
			d := d
			out = append(out, &d)
		}
	}
	return out, nil
}

func (r *departmentRepository) Update(ctx context.Context, id int64, upd *model.UpdateDepartmentRequest) (*model.Department, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.departments[id]
	if !ok {
		return nil, apperrors.NotFound("department", sql.ErrNoRows)
	}
	if upd.Name != nil {
		d.Name = *upd.Name
	}
	if upd.FloorNumber != nil {
		d.FloorNumber = *upd.FloorNumber
	}
	s.departments[id] = d
	return &d, nil
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.departments[id]; !ok {
		return apperrors.NotFound("department", sql.ErrNoRows)
	}
	for _, doc := range s.doctors {
		if doc.DepartmentID == id {
			return apperrors.Conflict("department is referenced by existing records", nil)
		}
	}
	delete(s.departments, id)
	return nil
}

type doctorRepository struct{ store *Store }

func NewDoctorRepository(store *Store) repository.DoctorRepository {
	return &doctorRepository{store: store}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.doctors {
		if d.Email == doctor.Email {
			return apperrors.Conflict("doctor already exists", nil)
		}
	}
	if _, ok := s.departments[doctor.DepartmentID]; !ok {
		return apperrors.InvalidReference("referenced departments", nil)
	}
	doctor.ID = s.id()
	s.doctors[doctor.ID] = *doctor
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", sql.ErrNoRows)
	}
	return &d, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	return r.list(func(model.Doctor) bool { return true })
}

func (r *doctorRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]*model.Doctor, error) {
	return r.list(func(d model.Doctor) bool { return d.DepartmentID == departmentID })
}

func (r *doctorRepository) list(keep func(model.Doctor) bool) ([]*model.Doctor, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Doctor{}
	for id := int64(1); id <= s.nextID; id++ {
		if d, ok := s.doctors[id]; ok && keep(d) {
			d := d
			out = append(out, &d)
		}
	}
	return out, nil
}

func (r *doctorRepository) Update(ctx context.Context, id int64, upd *model.UpdateDoctorRequest) (*model.Doctor, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("doctor", sql.ErrNoRows)
	}
	if upd.FirstName != nil {
		d.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		d.LastName = *upd.LastName
	}
	if upd.Specialty != nil {
		d.Specialty = *upd.Specialty
	}
	if upd.PhoneNumber != nil {
		d.PhoneNumber = *upd.PhoneNumber
	}
	if upd.Email != nil {
		for otherID, other := range s.doctors {
			if otherID != id && other.Email == *upd.Email {
				return nil, apperrors.Conflict("doctor already exists", nil)
			}
		}
		d.Email = *upd.Email
	}
	if upd.DepartmentID != nil {
		if _, ok := s.departments[*upd.DepartmentID]; !ok {
			return nil, apperrors.InvalidReference("referenced departments", nil)
		}
		d.DepartmentID = *upd.DepartmentID
	}
	s.doctors[id] = d
	return &d, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.doctors[id]; !ok {
		return apperrors.NotFound("doctor", sql.ErrNoRows)
	}
	for _, a := range s.appointments {
		if a.DoctorID == id {
			return apperrors.Conflict("doctor is referenced by existing records", nil)
		}
	}
	for _, p := range s.prescriptions {
		if p.DoctorID == id {
			return apperrors.Conflict("doctor is referenced by existing records", nil)
		}
	}
	delete(s.doctors, id)
	return nil
}

type patientRepository struct{ store *Store }

func NewPatientRepository(store *Store) repository.PatientRepository {
	return &patientRepository{store: store}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.patients {
		if p.Email == patient.Email {
			return apperrors.Conflict("patient already exists", nil)
		}
	}
	patient.ID = s.id()
	s.patients[patient.ID] = *patient
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", sql.ErrNoRows)
	}
	return &p, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Patient{}
	for id := int64(1); id <= s.nextID; id++ {
		if p, ok := s.patients[id]; ok {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *patientRepository) Update(ctx context.Context, id int64, upd *model.UpdatePatientRequest) (*model.Patient, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", sql.ErrNoRows)
	}
	if upd.FirstName != nil {
		p.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		p.LastName = *upd.LastName
	}
	if upd.DateOfBirth != nil {
		p.DateOfBirth = *upd.DateOfBirth
	}
	if upd.Gender != nil {
		p.Gender = *upd.Gender
	}
	if upd.PhoneNumber != nil {
		p.PhoneNumber = *upd.PhoneNumber
	}
	if upd.Address != nil {
		p.Address = *upd.Address
	}
	if upd.Email != nil {
		for otherID, other := range s.patients {
			if otherID != id && other.Email == *upd.Email {
				return nil, apperrors.Conflict("patient already exists", nil)
			}
		}
		p.Email = *upd.Email
	}
	s.patients[id] = p
	return &p, nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patients[id]; !ok {
		return apperrors.NotFound("patient", sql.ErrNoRows)
	}
	for _, a := range s.appointments {
		if a.PatientID == id {
			return apperrors.Conflict("patient is referenced by existing records", nil)
		}
	}
	for _, p := range s.prescriptions {
		if p.PatientID == id {
			return apperrors.Conflict("patient is referenced by existing records", nil)
		}
	}
	delete(s.patients, id)
	return nil
}

type appointmentRepository struct{ store *Store }

func NewAppointmentRepository(store *Store) repository.AppointmentRepository {
	return &appointmentRepository{store: store}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patients[appointment.PatientID]; !ok {
		return apperrors.InvalidReference("referenced patients", nil)
	}
	if _, ok := s.doctors[appointment.DoctorID]; !ok {
		return apperrors.InvalidReference("referenced doctors", nil)
	}
	appointment.ID = s.id()
	s.appointments[appointment.ID] = *appointment
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", sql.ErrNoRows)
	}
	return &a, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	return r.list(func(model.Appointment) bool { return true })
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error) {
	return r.list(func(a model.Appointment) bool { return a.DoctorID == doctorID })
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	return r.list(func(a model.Appointment) bool { return a.PatientID == patientID })
}

func (r *appointmentRepository) list(keep func(model.Appointment) bool) ([]*model.Appointment, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Appointment{}
	for id := int64(1); id <= s.nextID; id++ {
		if a, ok := s.appointments[id]; ok && keep(a) {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r *appointmentRepository) Update(ctx context.Context, id int64, upd *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("appointment", sql.ErrNoRows)
	}
	if upd.PatientID != nil {
		if _, ok := s.patients[*upd.PatientID]; !ok {
			return nil, apperrors.InvalidReference("referenced patients", nil)
		}
		a.PatientID = *upd.PatientID
	}
	if upd.DoctorID != nil {
		if _, ok := s.doctors[*upd.DoctorID]; !ok {
			return nil, apperrors.InvalidReference("referenced doctors", nil)
		}
		a.DoctorID = *upd.DoctorID
	}
	if upd.AppointmentDateTime != nil {
		a.AppointmentDateTime = *upd.AppointmentDateTime
	}
	if upd.ReasonForVisit != nil {
		a.ReasonForVisit = *upd.ReasonForVisit
	}
	s.appointments[id] = a
	return &a, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.appointments[id]; !ok {
		return apperrors.NotFound("appointment", sql.ErrNoRows)
	}
	delete(s.appointments, id)
	return nil
}

type prescriptionRepository struct{ store *Store }

func NewPrescriptionRepository(store *Store) repository.PrescriptionRepository {
	return &prescriptionRepository{store: store}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.patients[prescription.PatientID]; !ok {
		return apperrors.InvalidReference("referenced patients", nil)
	}
	if _, ok := s.doctors[prescription.DoctorID]; !ok {
		return apperrors.InvalidReference("referenced doctors", nil)
	}
	if prescription.EndDate.Before(prescription.StartDate.Time) {
		return apperrors.BadRequest("invalid prescription data", nil)
	}
	prescription.ID = s.id()
	s.prescriptions[prescription.ID] = *prescription
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prescriptions[id]
	if !ok {
		return nil, apperrors.NotFound("prescription", sql.ErrNoRows)
	}
	return &p, nil
}

func (r *prescriptionRepository) List(ctx context.Context) ([]*model.Prescription, error) {
	return r.list(func(model.Prescription) bool { return true })
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	return r.list(func(p model.Prescription) bool { return p.PatientID == patientID })
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Prescription, error) {
	return r.list(func(p model.Prescription) bool { return p.DoctorID == doctorID })
}

func (r *prescriptionRepository) list(keep func(model.Prescription) bool) ([]*model.Prescription, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []*model.Prescription{}
	for id := int64(1); id <= s.nextID; id++ {
		if p, ok := s.prescriptions[id]; ok && keep(p) {
			p := p
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, id int64, upd *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.prescriptions[id]
	if !ok {
		return nil, apperrors.NotFound("prescription", sql.ErrNoRows)
	}
	if upd.PatientID != nil {
		if _, ok := s.patients[*upd.PatientID]; !ok {
			return nil, apperrors.InvalidReference("referenced patients", nil)
		}
		p.PatientID = *upd.PatientID
	}
	if upd.DoctorID != nil {
		if _, ok := s.doctors[*upd.DoctorID]; !ok {
			return nil, apperrors.InvalidReference("referenced doctors", nil)
		}
		p.DoctorID = *upd.DoctorID
	}
	if upd.MedicationName != nil {
		p.MedicationName = *upd.MedicationName
	}
	if upd.Dosage != nil {
		p.Dosage = *upd.Dosage
	}
	if upd.Frequency != nil {
		p.Frequency = *upd.Frequency
	}
	if upd.StartDate != nil {
		p.StartDate = *upd.StartDate
	}
	if upd.EndDate != nil {
		p.EndDate = *upd.EndDate
	}
	if p.EndDate.Before(p.StartDate.Time) {
		return nil, apperrors.BadRequest("invalid prescription data", nil)
	}
	s.prescriptions[id] = p
	return &p, nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.prescriptions[id]; !ok {
		return apperrors.NotFound("prescription", sql.ErrNoRows)
	}
	delete(s.prescriptions, id)
	return nil
}

type userRepository struct{ store *Store }

func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return apperrors.Conflict("user already exists", nil)
		}
	}
	user.ID = s.id()
	s.users[user.ID] = *user
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", sql.ErrNoRows)
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.NotFound("user", sql.ErrNoRows)
}
