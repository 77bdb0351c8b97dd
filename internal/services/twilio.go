package services

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Button is one option in a chat prompt menu
type Button struct {
	ID    string
	Label string
}

// Notifier sends outbound messages to a phone number
type Notifier interface {
	SendText(phone, text string) error
	SendButtons(phone, text string, buttons []Button) error
}

// TwilioService sends WhatsApp messages via the Twilio API
type TwilioService struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioService creates a new Twilio service instance
func NewTwilioService() (*TwilioService, error) {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_WHATSAPP_FROM") // Format: "whatsapp:+14155238886"

	if accountSid == "" || authToken == "" || from == "" {
		return nil, fmt.Errorf("missing Twilio credentials in environment variables")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	return &TwilioService{
		client: client,
		from:   from,
	}, nil
}

// SendText sends a plain WhatsApp message
func (t *TwilioService) SendText(phone, text string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(t.from)
	params.SetTo(fmt.Sprintf("whatsapp:%s", phone))
	params.SetBody(text)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("❌ Failed to send WhatsApp message: %v", err)
		return err
	}

	log.Printf("✅ WhatsApp message sent! SID: %s", *resp.Sid)
	return nil
}

// SendButtons sends a prompt with a menu of options. WhatsApp button
// payloads need pre-approved templates, so the options are rendered as a
// numbered list in the message body; replies match on the option id.
func (t *TwilioService) SendButtons(phone, text string, buttons []Button) error {
	var b strings.Builder
	b.WriteString(text)
	for i, btn := range buttons {
		b.WriteString(fmt.Sprintf("\n%d. %s (%s)", i+1, btn.Label, btn.ID))
	}

	return t.SendText(phone, b.String())
}
