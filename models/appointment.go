package models

import "time"

// Booking status of an appointment. Patients create appointments as
// requested through their own flow; a doctor confirms or cancels them.
const (
	StatusRequested = "requested"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Appointment struct {
	AppointmentID       uint      `gorm:"primaryKey" json:"appointment_id"`
	DoctorID            uint      `json:"doctor_id"`
	PatientName         string    `json:"patient_name"`
	PatientEmail        string    `json:"patient_email"`
	Description         string    `json:"description"`
	Status              string    `json:"status"`
	AppointmentTimeSlot string    `json:"appointment_time"`
	AppointmentDate     time.Time `json:"appointment_date"`
	ConfirmationMessage string    `json:"confirmation_message"`
	CreatedAt           time.Time `json:"created_at"`
}
