package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"docportal/models"
	"docportal/notification"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no appointment matches both the id and the
// requesting doctor, so ownership failures are indistinguishable from
// absence.
var ErrNotFound = errors.New("appointment not found")

// MailSender is the slice of the mailer the workflow needs.
type MailSender interface {
	Send(to, subject, htmlBody, textBody string, attachments ...notification.Attachment) error
}

// ConfirmInput carries the caller-supplied scheduling values. No conflict
// checking is performed on them; a later confirmation simply overwrites an
// earlier one.
type ConfirmInput struct {
	TimeSlot            string
	AppointmentDate     time.Time
	ConfirmationMessage string
}

type ConfirmResult struct {
	Appointment models.Appointment
	EmailSent   bool
}

// AppointmentService owns the confirmation workflow and the doctor-facing
// appointment reads.
type AppointmentService struct {
	db     *gorm.DB
	mailer MailSender
}

func NewAppointmentService(db *gorm.DB, mailer MailSender) *AppointmentService {
	return &AppointmentService{db: db, mailer: mailer}
}

// Confirm marks the appointment as confirmed and emails the patient. The
// email is strictly best effort: once the row is written the call reports
// success whatever happens to the notification.
func (s *AppointmentService) Confirm(ctx context.Context, appointmentID, doctorID uint, in ConfirmInput) (ConfirmResult, error) {
	var appointment models.Appointment
	err := s.db.WithContext(ctx).
		Where("appointment_id = ? AND doctor_id = ?", appointmentID, doctorID).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ConfirmResult{}, ErrNotFound
		}
		return ConfirmResult{}, err
	}

	appointment.Status = models.StatusConfirmed
	appointment.AppointmentTimeSlot = in.TimeSlot
	appointment.AppointmentDate = in.AppointmentDate
	appointment.ConfirmationMessage = in.ConfirmationMessage
	if appointment.ConfirmationMessage == "" {
		appointment.ConfirmationMessage = GeneratedConfirmationMessage(in.TimeSlot, in.AppointmentDate)
	}

	if err := s.db.WithContext(ctx).Save(&appointment).Error; err != nil {
		return ConfirmResult{}, err
	}

	sent := s.notify(ctx, appointment)
	return ConfirmResult{Appointment: appointment, EmailSent: sent}, nil
}

// GeneratedConfirmationMessage is the message stored when the doctor
// supplies none.
func GeneratedConfirmationMessage(timeSlot string, date time.Time) string {
	return fmt.Sprintf("Your appointment has been confirmed for %s at %s. We look forward to seeing you.",
		date.Format(notification.DateLayout), timeSlot)
}

// notify renders and sends the confirmation email. Every failure in here is
// logged and absorbed: the confirmation is already persisted and its outcome
// must not depend on the side channel.
func (s *AppointmentService) notify(ctx context.Context, appointment models.Appointment) bool {
	var doctor *models.Doctor
	var record models.Doctor
	if err := s.db.WithContext(ctx).Where("doctor_id = ?", appointment.DoctorID).First(&record).Error; err != nil {
		log.Println("Doctor lookup failed for confirmation email:", err)
	} else {
		doctor = &record
	}

	message, err := notification.RenderConfirmation(appointment, doctor)
	if err != nil {
		log.Println("Confirmation email not rendered:", err)
		return false
	}

	var attachments []notification.Attachment
	letter, err := notification.ConfirmationLetter(appointment, doctor)
	if err != nil {
		log.Println("Confirmation letter not generated, sending without attachment:", err)
	} else {
		attachments = append(attachments, notification.Attachment{Name: "confirmation.pdf", Data: letter})
	}

	if err := s.mailer.Send(appointment.PatientEmail, message.Subject, message.HTMLBody, message.TextBody, attachments...); err != nil {
		log.Println("Confirmation email not delivered:", err)
		return false
	}
	return true
}

// ListForDoctor returns the doctor's own appointments, optionally filtered
// by status.
func (s *AppointmentService) ListForDoctor(ctx context.Context, doctorID uint, status string) ([]models.Appointment, error) {
	appointments := make([]models.Appointment, 0)
	q := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("appointment_date").Find(&appointments).Error
	return appointments, err
}
