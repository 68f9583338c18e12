package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	mx  map[string]bool
	ips map[string]bool
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if f.mx[name] {
		return []*net.MX{{Host: "mx." + name}}, nil
	}
	return nil, errors.New("no such host")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if f.ips[host] {
		return []net.IPAddr{{IP: net.IPv4(127, 0, 0, 1)}}, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainValid(t *testing.T) {
	r := fakeResolver{mx: map[string]bool{"gmail.com": true}, ips: map[string]bool{"barber.dev": true}}

	assert.True(t, emailDomainValid(r, "ana@gmail.com"))
	assert.True(t, emailDomainValid(r, "ana@barber.dev"))
	assert.False(t, emailDomainValid(r, "ana@nope.invalid"))
	assert.False(t, emailDomainValid(r, "ana@"))
	assert.False(t, emailDomainValid(r, "ana"))
}

func TestCustomTags(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	type req struct {
		Date string `validate:"isodate"`
		Time string `validate:"hhmm"`
	}

	assert.NoError(t, v.Struct(req{Date: "2026-10-20", Time: "09:30"}))
	assert.Error(t, v.Struct(req{Date: "20/10/2026", Time: "09:30"}))
	assert.Error(t, v.Struct(req{Date: "2026-10-20", Time: "9h"}))
}
