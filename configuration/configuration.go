package configuration

import (
	"log"
	"os"
	"strconv"

	"docportal/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds every externally supplied setting. It is loaded once at
// startup and handed to the constructors that need it, so no component
// reads the process environment on its own after boot.
type Config struct {
	DatabaseDSN   string
	RedisAddr     string
	RedisPassword string

	SessionSecret string

	SMTPHost       string
	SMTPPort       int
	SenderEmail    string
	SenderPassword string

	AdminEmail    string
	AdminPassword string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// hold connection to db
var DB *gorm.DB

// Load reads the .env file and the process environment into a Config.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	return Config{
		DatabaseDSN:   os.Getenv("DB"),
		RedisAddr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		SessionSecret: os.Getenv("SESSION_SECRET"),

		SMTPHost:       getenvDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       getenvInt("SMTP_PORT", 587),
		SenderEmail:    os.Getenv("Email"),
		SenderPassword: os.Getenv("Password"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTHTOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}
}

// initializing db connection
func ConfigDB(cfg Config) {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		panic("Failed to connect to the database")
	}

	DB.AutoMigrate(
		&models.Doctor{},
		&models.Appointment{},
	)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid value %q for %s, using %d", v, key, fallback)
		return fallback
	}
	return n
}
