package mailer

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LogSender só registra o envio. Usado quando RESEND_API_KEY não está configurada.
type LogSender struct {
	Log zerolog.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Log.Info().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Msg("email not sent (no provider configured)")
	return nil
}

// NewSender escolhe o Resend quando há chave; sem chave, só loga.
func NewSender(apiKey, baseURL, from string, log zerolog.Logger) Sender {
	if apiKey == "" {
		return LogSender{Log: log.With().Str("component", "mailer").Logger()}
	}
	return NewResendClient(baseURL, apiKey, from, 10*time.Second)
}
