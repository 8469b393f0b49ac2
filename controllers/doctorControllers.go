package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"docportal/authentication"
	"docportal/configuration"
	"docportal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Signup handles the registration of a new doctor. The record is parked in
// redis until the emailed OTP is verified.
func (ctl *Controller) Signup(c *gin.Context) {
	var doctor models.Doctor

	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "Failed",
			"message": "Binding error",
			"data":    err.Error(),
		})
		return
	}

	// Validate doctor struct fields
	if err := validate.Struct(doctor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "Failed",
			"message": "Please fill all the mandatory fields",
			"data":    err.Error(),
		})
		return
	}

	// Check if email is already in use
	var existingDoctor models.Doctor
	if err := configuration.DB.Where("email = ?", doctor.Email).First(&existingDoctor).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "Failed",
			"message": "Email already in use",
			"data":    "Choose another email",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "Failed",
			"message": "Database error",
			"data":    err.Error(),
		})
		return
	}

	// Check if phone number is already in use
	if err := configuration.DB.Where("phone = ?", doctor.Phone).First(&existingDoctor).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "Failed",
			"message": "Phone number already in use",
			"data":    "Choose another phone number",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "Failed",
			"message": "Database error",
			"data":    err.Error(),
		})
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(doctor.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "Failed",
			"message": "Failed to hash password",
			"data":    err.Error(),
		})
		return
	}
	doctor.Password = string(hashedPassword)

	// Generate OTP and send it via email
	otp := authentication.GenerateOTP(6)
	if err := authentication.SendOTPByEmail(ctl.Mailer, otp, doctor.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "Failed",
			"message": "Failed to send OTP email",
			"data":    err.Error(),
		})
		return
	}

	jsonData, err := json.Marshal(doctor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "Failed",
			"message": "Failed to marshal json data",
			"data":    err.Error(),
		})
		return
	}

	// Store OTP in redis with a key based on the doctor's email
	if err := configuration.SetRedis("otp"+doctor.Email, otp, 300*time.Second); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "Failed",
			"message": "Redis error",
			"data":    err.Error(),
		})
		return
	}

	// Store doctor data in redis with a key based on the doctor's email
	if err := configuration.SetRedis("user"+doctor.Email, jsonData, 1200*time.Second); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "Failed",
			"message": "Redis error",
			"data":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Go to verification page",
		"data":    nil,
	})
}

// VerifyOTP for doctor signup.
func (ctl *Controller) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "Failed",
			"message": "Binding error",
			"data":    err.Error(),
		})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "Failed",
			"message": "Email and OTP are required",
			"data":    err.Error(),
		})
		return
	}

	// Retrieve OTP from redis
	otp, err := configuration.GetRedis("otp" + req.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "Failed",
			"message": "otp not found",
			"data":    err.Error(),
		})
		return
	}

	if !authentication.ValidateOTP(otp, req.Otp) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "Failed",
			"message": "Incorrect OTP",
			"data":    nil,
		})
		return
	}

	// If OTP is valid, retrieve doctor data from redis
	user, err := configuration.GetRedis("user" + req.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "Failed",
			"message": "User details missing",
			"data":    err.Error(),
		})
		return
	}

	var doctorData models.Doctor
	if err := json.Unmarshal([]byte(user), &doctorData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "Failed",
			"message": "Error in unmarshaling json data",
			"data":    err.Error(),
		})
		return
	}

	// Create doctor record in the database, pending admin approval
	doctorData.ApprovalStatus = models.ApprovalPending
	if err := configuration.DB.Create(&doctorData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "Failed",
			"message": "Failed to create doctor",
			"data":    err.Error(),
		})
		return
	}

	// The code is one-time: drop it and the parked record so a replay
	// cannot reuse them within their TTL
	if err := configuration.DelRedis("otp"+req.Email, "user"+req.Email); err != nil {
		log.Println("Failed to clear signup keys from redis:", err)
	}

	doctorData.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Signup successful, awaiting admin approval",
		"data":    doctorData,
	})
}

// DoctorLogin
func (ctl *Controller) DoctorLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Finding doctor by email
	var existingDoctor models.Doctor
	if err := configuration.DB.Where("email = ?", req.Email).First(&existingDoctor).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email"})
		return
	}

	// Comparing password hashes
	if err := bcrypt.CompareHashAndPassword([]byte(existingDoctor.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	// Checking if the doctor is approved
	if existingDoctor.ApprovalStatus != models.ApprovalApproved {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not approved yet"})
		return
	}

	// Open a server-held session for the authenticated doctor
	token, err := ctl.Sessions.Create(c.Request.Context(), existingDoctor.DoctorID, existingDoctor.Email, authentication.RoleDoctor)
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

// DoctorLogout destroys the server-side session and clears the cookie.
func (ctl *Controller) DoctorLogout(c *gin.Context) {
	if token, err := c.Cookie(authentication.SessionCookie); err == nil && token != "" {
		ctl.Sessions.Destroy(c.Request.Context(), token)
	}
	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "You are successfully logged out"})
}

// GetProfile returns the authenticated doctor's own record.
func (ctl *Controller) GetProfile(c *gin.Context) {
	doctorID, ok := c.Get("doctor_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	var doctor models.Doctor
	if err := configuration.DB.Where("doctor_id = ?", doctorID).First(&doctor).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	doctor.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Profile fetched successfully",
		"data":    doctor,
	})
}

// UpdateProfile lets a doctor change the editable profile fields. Email,
// password and approval status are not touched here.
func (ctl *Controller) UpdateProfile(c *gin.Context) {
	doctorID, ok := c.Get("doctor_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Gender != "" {
		updates["gender"] = req.Gender
	}
	if req.Specialization != "" {
		updates["specialization"] = req.Specialization
	}
	if req.Location != "" {
		updates["location"] = req.Location
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	if err := configuration.DB.Model(&models.Doctor{}).Where("doctor_id = ?", doctorID).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	var doctor models.Doctor
	if err := configuration.DB.Where("doctor_id = ?", doctorID).First(&doctor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload profile"})
		return
	}

	doctor.Password = ""
	c.JSON(http.StatusOK, gin.H{
		"status":  "Success",
		"message": "Profile updated successfully",
		"data":    doctor,
	})
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(authentication.SessionCookie, token, int((24 * time.Hour).Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(authentication.SessionCookie, "", -1, "/", "", false, true)
}
