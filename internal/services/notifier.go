package services

import "log"

// LogNotifier logs outbound messages instead of sending them. Used when
// Twilio credentials are not configured (local development).
type LogNotifier struct{}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendText(phone, text string) error {
	log.Printf("📤 (not sent - Twilio not configured) to %s: %s", phone, text)
	return nil
}

func (n *LogNotifier) SendButtons(phone, text string, buttons []Button) error {
	log.Printf("📤 (not sent - Twilio not configured) to %s: %s %v", phone, text, buttons)
	return nil
}
