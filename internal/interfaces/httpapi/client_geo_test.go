package httpapi

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	t.Run("vercel header wins", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/v1/submissions/contact", nil)
		r.Header.Set("X-Vercel-Forwarded-For", "203.0.113.7")
		r.Header.Set("X-Forwarded-For", "198.51.100.1")
		assert.Equal(t, "203.0.113.7", clientIP(r))
	})

	t.Run("left-most forwarded entry", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/v1/submissions/contact", nil)
		r.Header.Set("X-Forwarded-For", " 198.51.100.1 , 10.0.0.2")
		assert.Equal(t, "198.51.100.1", clientIP(r))
	})

	t.Run("garbage header falls back to peer", func(t *testing.T) {
		r := httptest.NewRequest("POST", "/v1/submissions/contact", nil)
		r.Header.Set("X-Forwarded-For", "unknown")
		r.RemoteAddr = "[::ffff:192.0.2.9]:51234"
		assert.Equal(t, "192.0.2.9", clientIP(r))
	})
}

func TestClientCountry(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/home", nil)
	assert.Equal(t, unknownCountry, clientCountry(r))

	r.Header.Set("X-Vercel-IP-Country", "xx")
	r.Header.Set("CF-IPCountry", "in")
	assert.Equal(t, "IN", clientCountry(r))

	r.Header.Set("X-Vercel-IP-Country", "I1")
	r.Header.Set("CF-IPCountry", "")
	assert.Equal(t, unknownCountry, clientCountry(r))
}
