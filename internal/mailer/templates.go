package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var (
	weekdaysPT = [...]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"}
	monthsPT   = [...]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}
)

// LongDatePTBR: "2026-10-20" → "terça-feira, 20 de outubro de 2026".
// Datas inválidas voltam como vieram.
func LongDatePTBR(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s, %d de %s de %d", weekdaysPT[d.Weekday()], d.Day(), monthsPT[d.Month()-1], d.Year())
}

const layoutHTML = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin:0;padding:0;background-color:#0a0a0a;font-family:-apple-system,'Segoe UI',Roboto,Arial,sans-serif;">
<table role="presentation" style="max-width:500px;margin:40px auto;background-color:#1a1a1a;border-radius:16px;border:1px solid #2a2a2a;">
<tr><td style="padding:32px;text-align:center;background:linear-gradient(135deg,#d4a853 0%,#b8942e 100%);">
<h1 style="margin:0;color:#0a0a0a;font-size:24px;">✂️ BarberPro</h1>
</td></tr>
<tr><td style="padding:32px;">
<h2 style="margin:0 0 16px 0;color:#d4a853;font-size:20px;">{{.Title}}</h2>
<p style="margin:0 0 24px 0;color:#e0e0e0;font-size:16px;">{{.Greeting}}</p>
<table role="presentation" style="width:100%;background-color:#252525;border-radius:12px;margin-bottom:24px;">
<tr><td style="padding:8px 20px;"><span style="color:#888;font-size:14px;">Serviço</span><br><span style="color:#fff;font-weight:600;">{{.ServiceName}}</span></td></tr>
<tr><td style="padding:8px 20px;"><span style="color:#888;font-size:14px;">Barbeiro</span><br><span style="color:#fff;font-weight:600;">{{.BarberName}}</span></td></tr>
<tr><td style="padding:8px 20px;"><span style="color:#888;font-size:14px;">Data</span><br><span style="color:#d4a853;font-weight:600;">{{.LongDate}}</span></td></tr>
<tr><td style="padding:8px 20px;"><span style="color:#888;font-size:14px;">Horário</span><br><span style="color:#d4a853;font-size:18px;font-weight:bold;">{{.Time}}</span></td></tr>
</table>
<p style="margin:0;color:#888;font-size:14px;">{{.Footer}}</p>
</td></tr>
<tr><td style="padding:24px 32px;background-color:#151515;text-align:center;">
<p style="margin:0;color:#666;font-size:12px;">© {{.Year}} BarberPro. Todos os direitos reservados.</p>
</td></tr>
</table>
</body>
</html>`

var layout = template.Must(template.New("email").Parse(layoutHTML))

type view struct {
	Title       string
	Greeting    template.HTML
	ServiceName string
	BarberName  string
	LongDate    string
	Time        string
	Footer      string
	Year        int
}

func render(v view) (string, error) {
	var buf bytes.Buffer
	if err := layout.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func RenderConfirmation(c Confirmation, now time.Time) (Message, error) {
	html, err := render(view{
		Title:       "Agendamento Confirmado!",
		Greeting:    template.HTML("Olá <strong>" + template.HTMLEscapeString(c.ClientName) + "</strong>, seu agendamento foi confirmado com sucesso!"),
		ServiceName: orDefault(c.ServiceName, "Serviço"),
		BarberName:  orDefault(c.BarberName, "Barbeiro"),
		LongDate:    LongDatePTBR(c.Date),
		Time:        c.Time,
		Footer:      "Você receberá um lembrete 24 horas antes do seu agendamento.",
		Year:        now.Year(),
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      []string{c.ClientEmail},
		Subject: "✅ Agendamento Confirmado - BarberPro",
		HTML:    html,
	}, nil
}

func RenderReminder(c Confirmation, now time.Time) (Message, error) {
	html, err := render(view{
		Title:       "⏰ Lembrete de Agendamento",
		Greeting:    template.HTML("Olá <strong>" + template.HTMLEscapeString(c.ClientName) + "</strong>, não esqueça! Seu agendamento é <strong>amanhã</strong>!"),
		ServiceName: orDefault(c.ServiceName, "Serviço"),
		BarberName:  orDefault(c.BarberName, "Barbeiro"),
		LongDate:    LongDatePTBR(c.Date),
		Time:        c.Time,
		Footer:      "Estamos ansiosos para atendê-lo! Até amanhã! 💈",
		Year:        now.Year(),
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      []string{c.ClientEmail},
		Subject: "⏰ Lembrete: Seu agendamento é amanhã! - BarberPro",
		HTML:    html,
	}, nil
}
