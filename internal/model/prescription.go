package model

type Prescription struct {
	ID             int64  `db:"id" json:"id"`
	PatientID      int64  `db:"patient_id" json:"patient_id"`
	DoctorID       int64  `db:"doctor_id" json:"doctor_id"`
	MedicationName string `db:"medication_name" json:"medication_name"`
	Dosage         string `db:"dosage" json:"dosage"`
	Frequency      string `db:"frequency" json:"frequency"`
	StartDate      Date   `db:"start_date" json:"start_date"`
	EndDate        Date   `db:"end_date" json:"end_date"`
}

type CreatePrescriptionRequest struct {
	PatientID      int64  `json:"patient_id" binding:"required"`
	DoctorID       int64  `json:"doctor_id" binding:"required"`
	MedicationName string `json:"medication_name" binding:"required,max=100"`
	Dosage         string `json:"dosage" binding:"required,max=50"`
	Frequency      string `json:"frequency" binding:"required,max=50"`
	StartDate      Date   `json:"start_date" binding:"required"`
	EndDate        Date   `json:"end_date" binding:"required"`
}

type UpdatePrescriptionRequest struct {
	PatientID      *int64  `json:"patient_id"`
	DoctorID       *int64  `json:"doctor_id"`
	MedicationName *string `json:"medication_name" binding:"omitempty,max=100"`
	Dosage         *string `json:"dosage" binding:"omitempty,max=50"`
	Frequency      *string `json:"frequency" binding:"omitempty,max=50"`
	StartDate      *Date   `json:"start_date"`
	EndDate        *Date   `json:"end_date"`
}
