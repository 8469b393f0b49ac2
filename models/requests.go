package models

// Request payload schemas. Every handler binds one of these and runs it
// through the validator before touching the database, so a malformed body
// never reaches a workflow.

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Gender         string `json:"gender"`
	Specialization string `json:"specialization"`
	Location       string `json:"location"`
}

type ConfirmAppointmentRequest struct {
	TimeSlot            string `json:"timeSlot" validate:"required"`
	AppointmentDate     string `json:"appointmentDate" validate:"required"`
	ConfirmationMessage string `json:"confirmationMessage"`
}
