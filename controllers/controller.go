package controllers

import (
	"docportal/authentication"
	"docportal/configuration"
	"docportal/notification"
	"docportal/service"
	"docportal/uploads"

	"github.com/go-playground/validator"
)

var validate = validator.New()

// Controller bundles the long-lived handles every handler shares. All of
// them are built once in main and reused across requests.
type Controller struct {
	Config       configuration.Config
	Sessions     *authentication.SessionManager
	Mailer       notification.Sender
	SMS          *notification.SMSSender
	Uploader     *uploads.Uploader
	Appointments *service.AppointmentService
}

func New(cfg configuration.Config, sessions *authentication.SessionManager, mailer notification.Sender,
	sms *notification.SMSSender, uploader *uploads.Uploader, appointments *service.AppointmentService) *Controller {
	return &Controller{
		Config:       cfg,
		Sessions:     sessions,
		Mailer:       mailer,
		SMS:          sms,
		Uploader:     uploader,
		Appointments: appointments,
	}
}
