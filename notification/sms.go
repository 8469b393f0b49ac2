package notification

import (
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSSender delivers short text notices through Twilio. When the Twilio
// credentials are absent the sender is inert and Send reports
// ErrNotConfigured, which callers treat as a skipped best-effort notice.
type SMSSender struct {
	client *twilio.RestClient
	from   string
}

func NewSMSSender(accountSID, authToken, fromNumber string) *SMSSender {
	if accountSID == "" || authToken == "" || fromNumber == "" {
		return &SMSSender{}
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSSender{client: client, from: fromNumber}
}

func (s *SMSSender) Send(to, body string) error {
	if s.client == nil {
		return ErrNotConfigured
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}
