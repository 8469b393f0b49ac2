package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"docportal/models"
	"docportal/notification"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sentMail struct {
	to          string
	subject     string
	htmlBody    string
	textBody    string
	attachments []notification.Attachment
}

type fakeMailer struct {
	err  error
	sent []sentMail
}

func (f *fakeMailer) Send(to, subject, htmlBody, textBody string, attachments ...notification.Attachment) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to, subject, htmlBody, textBody, attachments})
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Doctor{}, &models.Appointment{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seed(t *testing.T, db *gorm.DB) {
	t.Helper()
	doctor := models.Doctor{
		DoctorID:       1,
		Name:           "Smith",
		Email:          "smith@clinic.com",
		Password:       "x",
		Phone:          "111",
		Gender:         "female",
		Specialization: "Cardiology",
		ApprovalStatus: models.ApprovalApproved,
	}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("failed to seed doctor: %v", err)
	}

	appointment := models.Appointment{
		AppointmentID: 1,
		DoctorID:      1,
		PatientName:   "Alice",
		PatientEmail:  "p@x.com",
		Description:   "Chest pain",
		Status:        models.StatusRequested,
	}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}
}

var confirmDate = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestConfirm(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	mailer := &fakeMailer{}
	svc := NewAppointmentService(db, mailer)

	result, err := svc.Confirm(context.Background(), 1, 1, ConfirmInput{
		TimeSlot:        "10:00-10:30",
		AppointmentDate: confirmDate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Appointment.Status != models.StatusConfirmed {
		t.Errorf("status = %q, expected confirmed", result.Appointment.Status)
	}
	for _, want := range []string{"10:00-10:30", "June 1, 2024"} {
		if !strings.Contains(result.Appointment.ConfirmationMessage, want) {
			t.Errorf("confirmation message %q missing %q", result.Appointment.ConfirmationMessage, want)
		}
	}
	if !result.EmailSent {
		t.Error("expected EmailSent=true")
	}

	// the row is written, not just the returned copy
	var stored models.Appointment
	if err := db.First(&stored, 1).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	if stored.Status != models.StatusConfirmed || stored.AppointmentTimeSlot != "10:00-10:30" {
		t.Errorf("stored row not updated: %+v", stored)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected exactly one send, got %d", len(mailer.sent))
	}
	mail := mailer.sent[0]
	if mail.to != "p@x.com" {
		t.Errorf("sent to %q, expected p@x.com", mail.to)
	}
	if !strings.Contains(mail.subject, "June 1, 2024") {
		t.Errorf("subject %q does not embed the formatted date", mail.subject)
	}
	for _, want := range []string{"Smith", "Cardiology"} {
		if !strings.Contains(mail.htmlBody, want) {
			t.Errorf("mail body missing %q", want)
		}
	}
	if len(mail.attachments) != 1 || mail.attachments[0].Name != "confirmation.pdf" {
		t.Errorf("expected a confirmation.pdf attachment, got %+v", mail.attachments)
	}
}

func TestConfirmNotOwned(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	svc := NewAppointmentService(db, &fakeMailer{})

	_, err := svc.Confirm(context.Background(), 1, 2, ConfirmInput{
		TimeSlot:        "10:00-10:30",
		AppointmentDate: confirmDate,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// no write happened
	var stored models.Appointment
	if err := db.First(&stored, 1).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	if stored.Status != models.StatusRequested || stored.AppointmentTimeSlot != "" {
		t.Errorf("appointment mutated by rejected confirmation: %+v", stored)
	}
}

func TestConfirmKeepsSuppliedMessage(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	svc := NewAppointmentService(db, &fakeMailer{})

	result, err := svc.Confirm(context.Background(), 1, 1, ConfirmInput{
		TimeSlot:            "10:00-10:30",
		AppointmentDate:     confirmDate,
		ConfirmationMessage: "Bring your reports.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Appointment.ConfirmationMessage != "Bring your reports." {
		t.Errorf("supplied message was replaced: %q", result.Appointment.ConfirmationMessage)
	}
}

func TestConfirmGeneratedMessage(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	svc := NewAppointmentService(db, &fakeMailer{})

	result, err := svc.Confirm(context.Background(), 1, 1, ConfirmInput{
		TimeSlot:        "10:00-10:30",
		AppointmentDate: confirmDate,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := GeneratedConfirmationMessage("10:00-10:30", confirmDate)
	if result.Appointment.ConfirmationMessage != expected {
		t.Errorf("message = %q, expected %q", result.Appointment.ConfirmationMessage, expected)
	}
}

func TestConfirmLastWriteWins(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	svc := NewAppointmentService(db, &fakeMailer{})

	if _, err := svc.Confirm(context.Background(), 1, 1, ConfirmInput{
		TimeSlot:        "10:00-10:30",
		AppointmentDate: confirmDate,
	}); err != nil {
		t.Fatalf("first confirmation failed: %v", err)
	}

	laterDate := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)
	result, err := svc.Confirm(context.Background(), 1, 1, ConfirmInput{
		TimeSlot:        "14:00-14:30",
		AppointmentDate: laterDate,
	})
	if err != nil {
		t.Fatalf("second confirmation failed: %v", err)
	}
	if result.Appointment.AppointmentTimeSlot != "14:00-14:30" {
		t.Errorf("slot = %q, expected the second write to win", result.Appointment.AppointmentTimeSlot)
	}

	var stored models.Appointment
	if err := db.First(&stored, 1).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	if stored.AppointmentTimeSlot != "14:00-14:30" || !stored.AppointmentDate.Equal(laterDate) {
		t.Errorf("stored row not overwritten: %+v", stored)
	}
}

func TestConfirmSendFailureStillSucceeds(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	mailer := &fakeMailer{err: &notification.SendError{Kind: notification.KindConnection, Err: errors.New("connection refused")}}
	svc := NewAppointmentService(db, mailer)

	result, err := svc.Confirm(context.Background(), 1, 1, ConfirmInput{
		TimeSlot:        "10:00-10:30",
		AppointmentDate: confirmDate,
	})
	if err != nil {
		t.Fatalf("delivery failure must not fail the confirmation: %v", err)
	}
	if result.EmailSent {
		t.Error("expected EmailSent=false")
	}

	var stored models.Appointment
	if err := db.First(&stored, 1).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	if stored.Status != models.StatusConfirmed {
		t.Errorf("store should reflect the confirmed status, got %q", stored.Status)
	}
}

func TestConfirmMissingRecipientStillSucceeds(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	if err := db.Model(&models.Appointment{}).Where("appointment_id = ?", 1).Update("patient_email", "").Error; err != nil {
		t.Fatalf("failed to clear patient email: %v", err)
	}
	mailer := &fakeMailer{}
	svc := NewAppointmentService(db, mailer)

	result, err := svc.Confirm(context.Background(), 1, 1, ConfirmInput{
		TimeSlot:        "10:00-10:30",
		AppointmentDate: confirmDate,
	})
	if err != nil {
		t.Fatalf("missing recipient must not fail the confirmation: %v", err)
	}
	if result.EmailSent {
		t.Error("expected EmailSent=false")
	}
	if len(mailer.sent) != 0 {
		t.Error("no delivery should have been attempted")
	}

	var stored models.Appointment
	if err := db.First(&stored, 1).Error; err != nil {
		t.Fatalf("failed to reload appointment: %v", err)
	}
	if stored.Status != models.StatusConfirmed {
		t.Errorf("store should reflect the confirmed status, got %q", stored.Status)
	}
}

func TestConfirmMissingDoctorStillSucceeds(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	if err := db.Delete(&models.Doctor{}, 1).Error; err != nil {
		t.Fatalf("failed to delete doctor: %v", err)
	}
	mailer := &fakeMailer{}
	svc := NewAppointmentService(db, mailer)

	result, err := svc.Confirm(context.Background(), 1, 1, ConfirmInput{
		TimeSlot:        "10:00-10:30",
		AppointmentDate: confirmDate,
	})
	if err != nil {
		t.Fatalf("doctor lookup failure must not fail the confirmation: %v", err)
	}
	if !result.EmailSent {
		t.Error("mail still goes out without the doctor lines")
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one send, got %d", len(mailer.sent))
	}
	if strings.Contains(mailer.sent[0].htmlBody, "Smith") {
		t.Error("doctor lines should be omitted when the lookup fails")
	}
}

func TestListForDoctor(t *testing.T) {
	db := newTestDB(t)
	seed(t, db)
	second := models.Appointment{
		AppointmentID: 2,
		DoctorID:      1,
		PatientName:   "Bob",
		PatientEmail:  "b@x.com",
		Status:        models.StatusConfirmed,
	}
	other := models.Appointment{
		AppointmentID: 3,
		DoctorID:      2,
		PatientName:   "Carol",
		PatientEmail:  "c@x.com",
		Status:        models.StatusRequested,
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&other).Error; err != nil {
		t.Fatal(err)
	}

	svc := NewAppointmentService(db, &fakeMailer{})

	all, err := svc.ListForDoctor(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 appointments for doctor 1, got %d", len(all))
	}

	confirmed, err := svc.ListForDoctor(context.Background(), 1, models.StatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(confirmed) != 1 || confirmed[0].AppointmentID != 2 {
		t.Errorf("status filter returned %+v", confirmed)
	}
}
