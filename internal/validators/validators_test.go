package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	mx  map[string]bool
	ips map[string]bool
}

func (f fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	if f.mx[name] {
		return []*net.MX{{Host: "mx." + name}}, nil
	}
	return nil, errors.New("no mx")
}

func (f fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	if f.ips[host] {
		return []net.IPAddr{{IP: net.IPv4(10, 0, 0, 1)}}, nil
	}
	return nil, errors.New("no host")
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ana@salao.com.br"))
	assert.False(t, IsEmail("ana"))
	assert.False(t, IsEmail("ana@localhost"))
	assert.False(t, IsEmail("Ana <ana@salao.com>"))
}

func TestIsEmailDomainValid(t *testing.T) {
	r := fakeResolver{mx: map[string]bool{"salao.com": true}, ips: map[string]bool{"barbearia.com": true}}
	ctx := context.Background()

	assert.True(t, IsEmailDomainValid(ctx, r, "a@salao.com"))
	assert.True(t, IsEmailDomainValid(ctx, r, "a@barbearia.com"))
	assert.False(t, IsEmailDomainValid(ctx, r, "a@nada.invalid"))
	assert.False(t, IsEmailDomainValid(ctx, r, "a@"))
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"(11) 98765-4321":   "11987654321",
		"+55 11 98765-4321": "11987654321",
		"11 3333-4444":      "1133334444",
	}
	for in, want := range cases {
		got, ok := NormalizePhone(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := NormalizePhone("1234")
	assert.False(t, ok)
}
