// Package mailer monta e envia os e-mails transacionais (confirmação e lembrete).
package mailer

import (
	"context"
	"errors"
)

var ErrSend = errors.New("email send failed")

type Message struct {
	To      []string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Confirmation traz os dados exibidos nos e-mails de agendamento.
// Date em YYYY-MM-DD, Time em HH:MM.
type Confirmation struct {
	ClientName  string
	ClientEmail string
	ServiceName string
	BarberName  string
	Date        string
	Time        string
}
