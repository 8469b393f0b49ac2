package controllers

import (
	"crypto/subtle"
	"fmt"
	"log"
	"net/http"

	"docportal/authentication"
	"docportal/configuration"
	"docportal/models"

	"github.com/gin-gonic/gin"
)

// AdminLogin authenticates against the configured admin credential pair and
// opens an admin session.
func (ctl *Controller) AdminLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(ctl.Config.AdminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(ctl.Config.AdminPassword)) == 1
	if ctl.Config.AdminEmail == "" || !emailOK || !passwordOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid admin credentials"})
		return
	}

	token, err := ctl.Sessions.Create(c.Request.Context(), 0, req.Email, authentication.RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Login successful",
	})
}

// AdminLogout
func (ctl *Controller) AdminLogout(c *gin.Context) {
	if token, err := c.Cookie(authentication.SessionCookie); err == nil && token != "" {
		ctl.Sessions.Destroy(c.Request.Context(), token)
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "You are successfully logged out"})
}

// ListPendingDoctors shows the registrations waiting for a decision.
func (ctl *Controller) ListPendingDoctors(c *gin.Context) {
	var doctors []models.Doctor
	if err := configuration.DB.Where("approval_status = ?", models.ApprovalPending).Find(&doctors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while fetching pending doctors"})
		return
	}

	for i := range doctors {
		doctors[i].Password = ""
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Pending doctors list fetched successfully",
		"data":    doctors,
	})
}

// ApproveDoctor approves a pending registration.
func (ctl *Controller) ApproveDoctor(c *gin.Context) {
	ctl.decideDoctor(c, models.ApprovalApproved)
}

// RejectDoctor rejects a pending registration.
func (ctl *Controller) RejectDoctor(c *gin.Context) {
	ctl.decideDoctor(c, models.ApprovalRejected)
}

func (ctl *Controller) decideDoctor(c *gin.Context, decision string) {
	doctorID := c.Param("id")

	var doctor models.Doctor
	if err := configuration.DB.Where("doctor_id = ?", doctorID).First(&doctor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No doctor with this ID"})
		return
	}

	if doctor.ApprovalStatus != models.ApprovalPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Doctor is not pending approval"})
		return
	}

	if err := configuration.DB.Model(&doctor).Update("approval_status", decision).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update doctor"})
		return
	}
	doctor.ApprovalStatus = decision

	// Best-effort notices; the decision stands regardless of delivery
	ctl.notifyDecision(doctor, decision)

	doctor.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Doctor " + decision,
		"data":    doctor,
	})
}

func (ctl *Controller) notifyDecision(doctor models.Doctor, decision string) {
	var body string
	switch decision {
	case models.ApprovalApproved:
		body = fmt.Sprintf("Hello Dr. %s, your registration has been approved. You can now log in and manage your appointments.", doctor.Name)
	default:
		body = fmt.Sprintf("Hello Dr. %s, your registration has been rejected. Please contact support for details.", doctor.Name)
	}

	subject := "Registration " + decision
	html := "<p>" + body + "</p>"
	if err := ctl.Mailer.Send(doctor.Email, subject, html, body); err != nil {
		log.Println("Decision email not delivered:", err)
	}

	if doctor.Phone != "" {
		if err := ctl.SMS.Send(doctor.Phone, body); err != nil {
			log.Println("Decision SMS not delivered:", err)
		}
	}
}
