package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/medrec/hospital-api/internal/model"
	"github.com/medrec/hospital-api/internal/repository"
)

type departmentRepository struct {
	BaseRepository
}

func NewDepartmentRepository(db *sqlx.DB) repository.DepartmentRepository {
	return &departmentRepository{NewBaseRepository(db)}
}

func (r *departmentRepository) Create(ctx context.Context, department *model.Department) error {
	query := `
		INSERT INTO departments (name, floor_number)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query, department.Name, department.FloorNumber).
		Scan(&department.ID)
	return wrapWriteErr("department", err)
}

func (r *departmentRepository) Get(ctx context.Context, id int64) (*model.Department, error) {
	var department model.Department
	err := r.db.GetContext(ctx, &department, `SELECT * FROM departments WHERE id = $1`, id)
	if err != nil {
		return nil, wrapReadErr("department", err)
	}
	return &department, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	departments := []*model.Department{}
	err := r.db.SelectContext(ctx, &departments, `SELECT * FROM departments ORDER BY id`)
	if err != nil {
		return nil, wrapReadErr("department", err)
	}
	return departments, nil
}

func (r *departmentRepository) Update(ctx context.Context, id int64, upd *model.UpdateDepartmentRequest) (*model.Department, error) {
	var department model.Department
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &department, `SELECT * FROM departments WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return wrapReadErr("department", err)
		}

		if upd.Name != nil {
			department.Name = *upd.Name
		}
		if upd.FloorNumber != nil {
			department.FloorNumber = *upd.FloorNumber
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE departments SET name = $1, floor_number = $2 WHERE id = $3`,
			department.Name, department.FloorNumber, id,
		)
		return wrapWriteErr("department", err)
	})
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return wrapDeleteErr("department", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return wrapDeleteErr("department", err)
	}
	if rows == 0 {
		return wrapReadErr("department", sql.ErrNoRows)
	}
	return nil
}
