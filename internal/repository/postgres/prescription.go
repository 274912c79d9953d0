package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/repository"
)

type prescriptionRepository struct {
	BaseRepository
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{NewBaseRepository(db)}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (patient_id, doctor_id, medication_name, dosage, frequency, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		prescription.PatientID,
		prescription.DoctorID,
		prescription.MedicationName,
		prescription.Dosage,
		prescription.Frequency,
		prescription.StartDate,
		prescription.EndDate,
	).Scan(&prescription.ID)
	return wrapWriteErr("prescription", err)
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	var prescription model.Prescription
	err := r.db.GetContext(ctx, &prescription, `SELECT * FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return nil, wrapReadErr("prescription", err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) List(ctx context.Context) ([]*model.Prescription, error) {
	prescriptions := []*model.Prescription{}
	err := r.db.SelectContext(ctx, &prescriptions, `SELECT * FROM prescriptions ORDER BY id`)
	if err != nil {
		return nil, wrapReadErr("prescription", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Prescription, error) {
	prescriptions := []*model.Prescription{}
	err := r.db.SelectContext(ctx, &prescriptions,
		`SELECT * FROM prescriptions WHERE patient_id = $1 ORDER BY start_date`, patientID)
	if err != nil {
		return nil, wrapReadErr("prescription", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Prescription, error) {
	prescriptions := []*model.Prescription{}
	err := r.db.SelectContext(ctx, &prescriptions,
		`SELECT * FROM prescriptions WHERE doctor_id = $1 ORDER BY start_date`, doctorID)
	if err != nil {
		return nil, wrapReadErr("prescription", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, id int64, upd *model.UpdatePrescriptionRequest) (*model.Prescription, error) {
	var prescription model.Prescription
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &prescription, `SELECT * FROM prescriptions WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return wrapReadErr("prescription", err)
		}

		if upd.PatientID != nil {
			prescription.PatientID = *upd.PatientID
		}
		if upd.DoctorID != nil {
			prescription.DoctorID = *upd.DoctorID
		}
		if upd.MedicationName != nil {
			prescription.MedicationName = *upd.MedicationName
		}
		if upd.Dosage != nil {
			prescription.Dosage = *upd.Dosage
		}
		if upd.Frequency != nil {
			prescription.Frequency = *upd.Frequency
		}
		if upd.StartDate != nil {
			prescription.StartDate = *upd.StartDate
		}
		if upd.EndDate != nil {
			prescription.EndDate = *upd.EndDate
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE prescriptions
			SET patient_id = $1, doctor_id = $2, medication_name = $3,
			    dosage = $4, frequency = $5, start_date = $6, end_date = $7
			WHERE id = $8`,
			prescription.PatientID, prescription.DoctorID, prescription.MedicationName,
			prescription.Dosage, prescription.Frequency, prescription.StartDate,
			prescription.EndDate, id,
		)
		return wrapWriteErr("prescription", err)
	})
	if err != nil {
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return wrapDeleteErr("prescription", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return wrapDeleteErr("prescription", err)
	}
	if rows == 0 {
		return wrapReadErr("prescription", sql.ErrNoRows)
	}
	return nil
}
