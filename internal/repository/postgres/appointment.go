package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/repository"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{NewBaseRepository(db)}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (patient_id, doctor_id, appointment_datetime, reason_for_visit)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.AppointmentDateTime,
		appointment.ReasonForVisit,
	).Scan(&appointment.ID)
	return wrapWriteErr("appointment", err)
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.db.GetContext(ctx, &appointment, `SELECT * FROM appointments WHERE id = $1`, id)
	if err != nil {
		return nil, wrapReadErr("appointment", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	appointments := []*model.Appointment{}
	err := r.db.SelectContext(ctx, &appointments, `SELECT * FROM appointments ORDER BY id`)
	if err != nil {
		return nil, wrapReadErr("appointment", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error) {
	appointments := []*model.Appointment{}
	err := r.db.SelectContext(ctx, &appointments,
		`SELECT * FROM appointments WHERE doctor_id = $1 ORDER BY appointment_datetime`, doctorID)
	if err != nil {
		return nil, wrapReadErr("appointment", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	appointments := []*model.Appointment{}
	err := r.db.SelectContext(ctx, &appointments,
		`SELECT * FROM appointments WHERE patient_id = $1 ORDER BY appointment_datetime`, patientID)
	if err != nil {
		return nil, wrapReadErr("appointment", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, id int64, upd *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &appointment, `SELECT * FROM appointments WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return wrapReadErr("appointment", err)
		}

		if upd.PatientID != nil {
			appointment.PatientID = *upd.PatientID
		}
		if upd.DoctorID != nil {
			appointment.DoctorID = *upd.DoctorID
		}
		if upd.AppointmentDateTime != nil {
			appointment.AppointmentDateTime = *upd.AppointmentDateTime
		}
		if upd.ReasonForVisit != nil {
			appointment.ReasonForVisit = *upd.ReasonForVisit
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE appointments
			SET patient_id = $1, doctor_id = $2, appointment_datetime = $3, reason_for_visit = $4
			WHERE id = $5`,
			appointment.PatientID, appointment.DoctorID,
			appointment.AppointmentDateTime, appointment.ReasonForVisit, id,
		)
		return wrapWriteErr("appointment", err)
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return wrapDeleteErr("appointment", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return wrapDeleteErr("appointment", err)
	}
	if rows == 0 {
		return wrapReadErr("appointment", sql.ErrNoRows)
	}
	return nil
}
