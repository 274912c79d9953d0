package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/repository"
)

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{NewBaseRepository(db)}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (first_name, last_name, date_of_birth, gender, phone_number, address, email)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.PhoneNumber,
		patient.Address,
		patient.Email,
	).Scan(&patient.ID)
	return wrapWriteErr("patient", err)
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, `SELECT * FROM patients WHERE id = $1`, id)
	if err != nil {
		return nil, wrapReadErr("patient", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	patients := []*model.Patient{}
	err := r.db.SelectContext(ctx, &patients, `SELECT * FROM patients ORDER BY id`)
	if err != nil {
		return nil, wrapReadErr("patient", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, id int64, upd *model.UpdatePatientRequest) (*model.Patient, error) {
	var patient model.Patient
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &patient, `SELECT * FROM patients WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return wrapReadErr("patient", err)
		}

		if upd.FirstName != nil {
			patient.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			patient.LastName = *upd.LastName
		}
		if upd.DateOfBirth != nil {
			patient.DateOfBirth = *upd.DateOfBirth
		}
		if upd.Gender != nil {
			patient.Gender = *upd.Gender
		}
		if upd.PhoneNumber != nil {
			patient.PhoneNumber = *upd.PhoneNumber
		}
		if upd.Address != nil {
			patient.Address = *upd.Address
		}
		if upd.Email != nil {
			patient.Email = *upd.Email
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE patients
			SET first_name = $1, last_name = $2, date_of_birth = $3,
			    gender = $4, phone_number = $5, address = $6, email = $7
			WHERE id = $8`,
			patient.FirstName, patient.LastName, patient.DateOfBirth,
			patient.Gender, patient.PhoneNumber, patient.Address, patient.Email, id,
		)
		return wrapWriteErr("patient", err)
	})
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return wrapDeleteErr("patient", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return wrapDeleteErr("patient", err)
	}
	if rows == 0 {
		return wrapReadErr("patient", sql.ErrNoRows)
	}
	return nil
}
