package notification

import (
	"errors"
	"fmt"
	"html/template"
	"strings"

	"docportal/models"
)

// ErrMissingRecipient means the appointment carries no patient email, so
// there is nobody to deliver to. Checked before any send is attempted.
var ErrMissingRecipient = errors.New("appointment has no patient email on record")

// DateLayout is the long-form calendar date used in both the subject line
// and the body so the two never disagree.
const DateLayout = "Monday, January 2, 2006"

// Message is a fully rendered notification, ready for the mailer.
type Message struct {
	Subject  string
	HTMLBody string
	TextBody string
}

type confirmationData struct {
	PatientName string
	Date        string
	TimeSlot    string
	Message     string
	Description string
	Doctor      *models.Doctor
}

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<html>
<body>
<h2>Appointment Confirmed</h2>
{{if .PatientName}}<p>Dear {{.PatientName}},</p>{{end}}
<p>Your appointment on <b>{{.Date}}</b> at <b>{{.TimeSlot}}</b> has been confirmed.</p>
{{with .Doctor}}<p>You will be seeing Dr. {{.Name}}{{if .Specialization}} ({{.Specialization}}){{end}}{{if .Location}} at {{.Location}}{{end}}.</p>{{end}}
{{if .Description}}<p>Reason for visit: {{.Description}}</p>{{end}}
{{if .Message}}<p>{{.Message}}</p>{{end}}
<p>Please arrive a few minutes early. We look forward to seeing you.</p>
</body>
</html>`))

// RenderConfirmation builds the confirmation notice for an appointment.
// It is a pure function of its inputs: the doctor may be nil and any empty
// field is simply left out of the output rather than rendered blank.
func RenderConfirmation(appointment models.Appointment, doctor *models.Doctor) (Message, error) {
	if appointment.PatientEmail == "" {
		return Message{}, ErrMissingRecipient
	}

	data := confirmationData{
		PatientName: appointment.PatientName,
		Date:        appointment.AppointmentDate.Format(DateLayout),
		TimeSlot:    appointment.AppointmentTimeSlot,
		Message:     appointment.ConfirmationMessage,
		Description: appointment.Description,
		Doctor:      doctor,
	}

	var html strings.Builder
	if err := confirmationHTML.Execute(&html, data); err != nil {
		return Message{}, err
	}

	return Message{
		Subject:  fmt.Sprintf("Appointment Confirmed - %s", data.Date),
		HTMLBody: html.String(),
		TextBody: renderConfirmationText(data),
	}, nil
}

// Plain-text fallback carrying the same field set as the HTML part.
func renderConfirmationText(data confirmationData) string {
	var b strings.Builder
	if data.PatientName != "" {
		fmt.Fprintf(&b, "Dear %s,\n\n", data.PatientName)
	}
	fmt.Fprintf(&b, "Your appointment on %s at %s has been confirmed.\n", data.Date, data.TimeSlot)
	if d := data.Doctor; d != nil {
		fmt.Fprintf(&b, "You will be seeing Dr. %s", d.Name)
		if d.Specialization != "" {
			fmt.Fprintf(&b, " (%s)", d.Specialization)
		}
		if d.Location != "" {
			fmt.Fprintf(&b, " at %s", d.Location)
		}
		b.WriteString(".\n")
	}
	if data.Description != "" {
		fmt.Fprintf(&b, "Reason for visit: %s\n", data.Description)
	}
	if data.Message != "" {
		fmt.Fprintf(&b, "%s\n", data.Message)
	}
	b.WriteString("\nPlease arrive a few minutes early. We look forward to seeing you.\n")
	return b.String()
}
