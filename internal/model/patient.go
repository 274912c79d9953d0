package model

type Patient struct {
	ID          int64  `db:"id" json:"id"`
	FirstName   string `db:"first_name" json:"first_name"`
	LastName    string `db:"last_name" json:"last_name"`
	DateOfBirth Date   `db:"date_of_birth" json:"date_of_birth"`
	Gender      Gender `db:"gender" json:"gender"`
	PhoneNumber string `db:"phone_number" json:"phone_number"`
	Address     string `db:"address" json:"address"`
	Email       string `db:"email" json:"email"`
}

type CreatePatientRequest struct {
	FirstName   string `json:"first_name" binding:"required,max=50"`
	LastName    string `json:"last_name" binding:"required,max=50"`
	DateOfBirth Date   `json:"date_of_birth" binding:"required"`
	Gender      Gender `json:"gender" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"max=15"`
	Address     string `json:"address" binding:"max=255"`
	Email       string `json:"email" binding:"required,email"`
}

type UpdatePatientRequest struct {
	FirstName   *string `json:"first_name" binding:"omitempty,max=50"`
	LastName    *string `json:"last_name" binding:"omitempty,max=50"`
	DateOfBirth *Date   `json:"date_of_birth"`
	Gender      *Gender `json:"gender"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=15"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Email       *string `json:"email" binding:"omitempty,email"`
}
