package notification

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/textproto"

	"github.com/go-gomail/gomail"
)

// ErrNotConfigured is returned before any network action when the sender
// identity or credential was not supplied at startup.
var ErrNotConfigured = errors.New("mail sender identity or credential not configured")

// ErrorKind classifies a failed delivery attempt.
type ErrorKind string

const (
	KindAuthentication ErrorKind = "authentication"
	KindConnection     ErrorKind = "connection"
	KindUnknown        ErrorKind = "unknown"
)

// SendError wraps the underlying SMTP error with its classification. The
// original message is preserved for diagnostics.
type SendError struct {
	Kind ErrorKind
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("mail delivery failed (%s): %v", e.Kind, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// Attachment is a file attached to an outgoing message.
type Attachment struct {
	Name string
	Data []byte
}

// Sender is the delivery surface the rest of the application depends on;
// Mailer is its SMTP implementation.
type Sender interface {
	Send(to, subject, htmlBody, textBody string, attachments ...Attachment) error
}

// Mailer is a long-lived handle on the SMTP relay. One instance is built
// from the Config at startup and shared across requests.
type Mailer struct {
	host     string
	port     int
	email    string
	password string
}

func NewMailer(host string, port int, email, password string) *Mailer {
	return &Mailer{host: host, port: port, email: email, password: password}
}

// Send delivers one message with a plain-text part, an HTML part and any
// attachments. The dial doubles as the connectivity check; a single attempt
// is made with no retries.
func (m *Mailer) Send(to, subject, htmlBody, textBody string, attachments ...Attachment) error {
	if m.email == "" || m.password == "" {
		return ErrNotConfigured
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.email)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	msg.AddAlternative("text/html", htmlBody)

	for _, a := range attachments {
		a := a
		msg.Attach(a.Name, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(a.Data)
			return err
		}))
	}

	d := gomail.NewDialer(m.host, m.port, m.email, m.password)
	sender, err := d.Dial()
	if err != nil {
		return &SendError{Kind: Classify(err), Err: err}
	}
	defer sender.Close()

	if err := gomail.Send(sender, msg); err != nil {
		return &SendError{Kind: Classify(err), Err: err}
	}
	return nil
}

// Classify maps an SMTP-level error onto the delivery failure taxonomy.
// Credential rejections arrive as textproto errors with the auth reply
// codes; anything the network layer produced counts as a connection
// failure.
func Classify(err error) ErrorKind {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 530, 534, 535:
			return KindAuthentication
		}
		return KindUnknown
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnection
	}
	return KindUnknown
}
