package model

type Doctor struct {
	ID           int64  `db:"id" json:"id"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	Specialty    string `db:"specialty" json:"specialty"`
	PhoneNumber  string `db:"phone_number" json:"phone_number"`
	Email        string `db:"email" json:"email"`
	DepartmentID int64  `db:"department_id" json:"department_id"`
}

type CreateDoctorRequest struct {
	FirstName    string `json:"first_name" binding:"required,max=50"`
	LastName     string `json:"last_name" binding:"required,max=50"`
	Specialty    string `json:"specialty" binding:"required,max=100"`
	PhoneNumber  string `json:"phone_number" binding:"max=15"`
	Email        string `json:"email" binding:"required,email"`
	DepartmentID int64  `json:"department_id" binding:"required"`
}

type UpdateDoctorRequest struct {
	FirstName    *string `json:"first_name" binding:"omitempty,max=50"`
	LastName     *string `json:"last_name" binding:"omitempty,max=50"`
	Specialty    *string `json:"specialty" binding:"omitempty,max=100"`
	PhoneNumber  *string `json:"phone_number" binding:"omitempty,max=15"`
	Email        *string `json:"email" binding:"omitempty,email"`
	DepartmentID *int64  `json:"department_id"`
}
