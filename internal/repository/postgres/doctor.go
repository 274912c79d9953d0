package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/repository"
)

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(db *sqlx.DB) repository.DoctorRepository {
	return &doctorRepository{NewBaseRepository(db)}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (first_name, last_name, specialty, phone_number, email, department_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.Specialty,
		doctor.PhoneNumber,
		doctor.Email,
		doctor.DepartmentID,
	).Scan(&doctor.ID)
	return wrapWriteErr("doctor", err)
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, `SELECT * FROM doctors WHERE id = $1`, id)
	if err != nil {
		return nil, wrapReadErr("doctor", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	doctors := []*model.Doctor{}
	err := r.db.SelectContext(ctx, &doctors, `SELECT * FROM doctors ORDER BY id`)
	if err != nil {
		return nil, wrapReadErr("doctor", err)
	}
	return doctors, nil
}

func (r *doctorRepository) ListByDepartment(ctx context.Context, departmentID int64) ([]*model.Doctor, error) {
	doctors := []*model.Doctor{}
	err := r.db.SelectContext(ctx, &doctors,
		`SELECT * FROM doctors WHERE department_id = $1 ORDER BY id`, departmentID)
	if err != nil {
		return nil, wrapReadErr("doctor", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, id int64, upd *model.UpdateDoctorRequest) (*model.Doctor, error) {
	var doctor model.Doctor
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &doctor, `SELECT * FROM doctors WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return wrapReadErr("doctor", err)
		}

		if upd.FirstName != nil {
			doctor.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			doctor.LastName = *upd.LastName
		}
		if upd.Specialty != nil {
			doctor.Specialty = *upd.Specialty
		}
		if upd.PhoneNumber != nil {
			doctor.PhoneNumber = *upd.PhoneNumber
		}
		if upd.Email != nil {
			doctor.Email = *upd.Email
		}
		if upd.DepartmentID != nil {
			doctor.DepartmentID = *upd.DepartmentID
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE doctors
			SET first_name = $1, last_name = $2, specialty = $3,
			    phone_number = $4, email = $5, department_id = $6
			WHERE id = $7`,
			doctor.FirstName, doctor.LastName, doctor.Specialty,
			doctor.PhoneNumber, doctor.Email, doctor.DepartmentID, id,
		)
		return wrapWriteErr("doctor", err)
	})
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return wrapDeleteErr("doctor", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return wrapDeleteErr("doctor", err)
	}
	if rows == 0 {
		return wrapReadErr("doctor", sql.ErrNoRows)
	}
	return nil
}
