package authentication

import (
	"log"
	"math/rand"
	"time"

	"docportal/notification"
)

// GenerateOTP
func GenerateOTP(length int) string {
	rand.NewSource(time.Now().UnixNano())
	characters := "0123456789"
	otp := make([]byte, length)

	for i := range otp {
		otp[i] = characters[rand.Intn(len(characters))]
	}
	return string(otp)
}

// SendOTPByEmail delivers the signup OTP through the shared mailer.
func SendOTPByEmail(mailer notification.Sender, otp, email string) error {
	subject := "Doctor Portal Verification Code"
	text := "Hey, your verification code is " + otp + ". It expires in 5 minutes."
	html := "<p>Hey, your verification code is <b>" + otp + "</b>. It expires in 5 minutes.</p>"

	if err := mailer.Send(email, subject, html, text); err != nil {
		log.Println("Error sending OTP email:", err)
		return err
	}
	return nil
}

// ValidateOTP
func ValidateOTP(otp, userOTP string) bool {
	return otp == userOTP
}
