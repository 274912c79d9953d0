package model

type Appointment struct {
	ID                  int64    `db:"id" json:"id"`
	PatientID           int64    `db:"patient_id" json:"patient_id"`
	DoctorID            int64    `db:"doctor_id" json:"doctor_id"`
	AppointmentDateTime DateTime `db:"appointment_datetime" json:"appointment_datetime"`
	ReasonForVisit      string   `db:"reason_for_visit" json:"reason_for_visit"`
}

type CreateAppointmentRequest struct {
	PatientID           int64    `json:"patient_id" binding:"required"`
	DoctorID            int64    `json:"doctor_id" binding:"required"`
	AppointmentDateTime DateTime `json:"appointment_datetime" binding:"required"`
	ReasonForVisit      string   `json:"reason_for_visit" binding:"max=255"`
}

type UpdateAppointmentRequest struct {
	PatientID           *int64    `json:"patient_id"`
	DoctorID            *int64    `json:"doctor_id"`
	AppointmentDateTime *DateTime `json:"appointment_datetime"`
	ReasonForVisit      *string   `json:"reason_for_visit" binding:"omitempty,max=255"`
}
