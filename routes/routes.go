package routes

import (
	"docportal/authentication"
	"docportal/controllers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(ctl *controllers.Controller, sessions *authentication.SessionManager) *gin.Engine {
	// creates a new Gin engine instance with default configurations
	r := gin.Default()

	// public routes
	r.POST("/doctor/signup", ctl.Signup)
	r.POST("/doctor/verify", ctl.VerifyOTP)
	r.POST("/doctor/login", ctl.DoctorLogin)
	r.POST("/admin/login", ctl.AdminLogin)

	// doctor routes
	doctor := r.Group("/doctor")
	doctor.Use(sessions.DoctorAuthMiddleware())
	{
		doctor.GET("/logout", ctl.DoctorLogout)
		doctor.GET("/profile", ctl.GetProfile)
		doctor.PATCH("/profile", ctl.UpdateProfile)
		doctor.POST("/upload/identity-proof", ctl.UploadIdentityProof)
		doctor.POST("/upload/photo", ctl.UploadProfilePicture)
	}

	appointments := r.Group("/appointments")
	appointments.Use(sessions.DoctorAuthMiddleware())
	{
		appointments.GET("", ctl.ListAppointments)
		appointments.POST("/:id/confirm", ctl.ConfirmAppointment)
	}

	// admin routes
	admin := r.Group("/admin")
	admin.Use(sessions.AdminAuthMiddleware())
	{
		admin.GET("/logout", ctl.AdminLogout)
		admin.GET("/doctors/pending", ctl.ListPendingDoctors)
		admin.POST("/doctors/:id/approve", ctl.ApproveDoctor)
		admin.POST("/doctors/:id/reject", ctl.RejectDoctor)
	}

	return r
}
