package main

import (
	"log"

	"docportal/authentication"
	"docportal/configuration"
	"docportal/controllers"
	"docportal/notification"
	"docportal/routes"
	"docportal/service"
	"docportal/uploads"
)

func main() {
	cfg := configuration.Load()
	configuration.ConfigDB(cfg)
	configuration.InitRedis(cfg)

	// Long-lived handles, built once and shared across requests
	mailer := notification.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SenderPassword)
	sms := notification.NewSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	sessions := authentication.NewSessionManager(configuration.Client, cfg.SessionSecret)
	appointments := service.NewAppointmentService(configuration.DB, mailer)

	uploader, err := uploads.NewUploader(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Println("File storage disabled:", err)
	}

	ctl := controllers.New(cfg, sessions, mailer, sms, uploader, appointments)
	r := routes.SetupRoutes(ctl, sessions)

	// Run the engine in default port
	if err := r.Run(); err != nil {
		panic(err)
	}
}
