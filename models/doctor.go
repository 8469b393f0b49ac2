package models

// Approval lifecycle of a doctor account. A doctor is created as pending at
// OTP-verified signup and only an admin decision moves it on from there.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

type Doctor struct {
	DoctorID          uint   `gorm:"primaryKey" json:"doctor_id"`
	Name              string `json:"name" gorm:"not null" validate:"required"`
	Email             string `json:"email" gorm:"unique" validate:"required,email"`
	Password          string `json:"password,omitempty" gorm:"not null" validate:"required,min=6"`
	Phone             string `json:"phone" gorm:"not null" validate:"required"`
	Gender            string `json:"gender" gorm:"not null" validate:"required"`
	Specialization    string `json:"specialization" gorm:"not null" validate:"required"`
	Location          string `json:"location"`
	ApprovalStatus    string `json:"approval_status"`
	IdentityProofURL  string `json:"identity_proof_url"`
	ProfilePictureURL string `json:"profile_picture_url"`
}
