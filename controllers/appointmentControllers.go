package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"docportal/models"
	"docportal/service"

	"github.com/gin-gonic/gin"
)

// ListAppointments returns the authenticated doctor's appointments, with an
// optional ?status= filter.
func (ctl *Controller) ListAppointments(c *gin.Context) {
	doctorID, ok := c.Get("doctor_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	appointments, err := ctl.Appointments.ListForDoctor(c.Request.Context(), doctorID.(uint), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Appointments fetched successfully",
		"data":    appointments,
	})
}

// ConfirmAppointment confirms one of the doctor's own appointments. The
// response reports success as soon as the row is written; the email outcome
// only shows up in the emailSent flag.
func (ctl *Controller) ConfirmAppointment(c *gin.Context) {
	doctorID, ok := c.Get("doctor_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Doctor not authenticated"})
		return
	}

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid appointment id"})
		return
	}

	var req models.ConfirmAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.AppointmentDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	result, err := ctl.Appointments.Confirm(c.Request.Context(), uint(appointmentID), doctorID.(uint), service.ConfirmInput{
		TimeSlot:            req.TimeSlot,
		AppointmentDate:     date,
		ConfirmationMessage: req.ConfirmationMessage,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Appointment confirmed successfully",
		"appointment": result.Appointment,
		"emailSent":   result.EmailSent,
	})
}
