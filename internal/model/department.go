package model

type Department struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	FloorNumber int    `db:"floor_number" json:"floor_number"`
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	FloorNumber int    `json:"floor_number"`
}

// UpdateDepartmentRequest patches only the fields that are present.
type UpdateDepartmentRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	FloorNumber *int    `json:"floor_number"`
}
