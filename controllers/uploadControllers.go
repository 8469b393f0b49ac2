package controllers

import (
	"net/http"

	"docportal/configuration"
	"docportal/models"

	"github.com/gin-gonic/gin"
)

// UploadIdentityProof stores the doctor's identity document with the media
// service and records its URL.
func (ctl *Controller) UploadIdentityProof(c *gin.Context) {
	ctl.uploadDoctorFile(c, "identity-proofs", "identity_proof_url")
}

// UploadProfilePicture stores the doctor's photo with the media service and
// records its URL.
func (ctl *Controller) UploadProfilePicture(c *gin.Context) {
	ctl.uploadDoctorFile(c, "profile-pictures", "profile_picture_url")
}

func (ctl *Controller) uploadDoctorFile(c *gin.Context, folder, column string) {
	doctorID, ok := c.Get("doctor_id")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Doctor not authenticated"})
		return
	}

	if ctl.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "File storage is not configured"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing file field"})
		return
	}

	url, err := ctl.Uploader.Upload(c.Request.Context(), file, folder)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file", "data": err.Error()})
		return
	}

	if err := configuration.DB.Model(&models.Doctor{}).Where("doctor_id = ?", doctorID).Update(column, url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file reference"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "Success",
		"message": "File uploaded successfully",
		"data":    gin.H{"url": url},
	})
}
