package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// EmailDomainCheck decide se o domínio de um e-mail existe. Os handlers
// recebem a função para que testes possam trocar por uma versão sem DNS.
type EmailDomainCheck func(email string) bool

func IsEmailDomainValid(email string) bool {
	return emailDomainValid(net.DefaultResolver, email)
}

type resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

func emailDomainValid(r resolver, email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := r.LookupIPAddr(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
