package notification

import (
	"bytes"

	"docportal/models"

	"github.com/jung-kurt/gofpdf"
)

// ConfirmationLetter generates the PDF letter attached to the confirmation
// email.
func ConfirmationLetter(appointment models.Appointment, doctor *models.Doctor) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Appointment Confirmation", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	addLetterDetail(pdf, "Patient Name:", appointment.PatientName, true)
	addLetterDetail(pdf, "Appointment Date:", appointment.AppointmentDate.Format(DateLayout), false)
	addLetterDetail(pdf, "Time Slot:", appointment.AppointmentTimeSlot, false)

	if doctor != nil {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetY(pdf.GetY() + 10)
		addLetterDetail(pdf, "Doctor Name:", doctor.Name, true)
		addLetterDetail(pdf, "Specialization:", doctor.Specialization, false)
		if doctor.Location != "" {
			addLetterDetail(pdf, "Location:", doctor.Location, false)
		}
	}

	if appointment.ConfirmationMessage != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.SetY(pdf.GetY() + 10)
		pdf.MultiCell(0, 5, appointment.ConfirmationMessage, "", "L", false)
	}

	pdf.SetFont("Arial", "", 10)
	pdf.SetY(pdf.GetY() + 10)
	pdf.MultiCell(0, 5, "Please carry this letter to the clinic. Your health is all that matters!", "", "C", false)

	var pdfBuffer bytes.Buffer
	if err := pdf.Output(&pdfBuffer); err != nil {
		return nil, err
	}
	return pdfBuffer.Bytes(), nil
}

// addLetterDetail adds a detail line to the PDF
func addLetterDetail(pdf *gofpdf.Fpdf, label, value string, isHeader bool) {
	if isHeader {
		pdf.SetFont("Arial", "B", 12)
	} else {
		pdf.SetFont("Arial", "", 12)
	}
	pdf.CellFormat(0, 10, label, "", 1, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "", 1, "", false, 0, "")
}
