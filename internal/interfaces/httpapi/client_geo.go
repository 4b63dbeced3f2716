package httpapi

import (
	"net/http"
	"net/netip"
	"strings"
)

// Edge headers in the order they are trusted. The site is fronted by Vercel;
// the rest cover self-hosted deployments behind a CDN.
var (
	clientIPHeaders = []string{
		"X-Vercel-Forwarded-For",
		"CF-Connecting-IP",
		"X-Forwarded-For",
		"X-Real-IP",
	}
	clientCountryHeaders = []string{
		"X-Vercel-IP-Country",
		"CF-IPCountry",
		"CloudFront-Viewer-Country",
	}
)

// unknownCountry is the ISO 3166 user-assigned code for "not known".
const unknownCountry = "ZZ"

// clientIP returns the first parseable address from the edge headers, falling
// back to the socket peer.
func clientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		if addr, ok := parseForwardedAddr(r.Header.Get(header)); ok {
			return addr.String()
		}
	}
	if addrPort, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return addrPort.Addr().Unmap().String()
	}
	if addr, ok := parseForwardedAddr(r.RemoteAddr); ok {
		return addr.String()
	}
	return ""
}

func clientCountry(r *http.Request) string {
	for _, header := range clientCountryHeaders {
		if code, ok := countryCode(r.Header.Get(header)); ok {
			return code
		}
	}
	return unknownCountry
}

// parseForwardedAddr takes the left-most entry of a comma separated chain.
func parseForwardedAddr(raw string) (netip.Addr, bool) {
	first, _, _ := strings.Cut(raw, ",")
	addr, err := netip.ParseAddr(strings.TrimSpace(first))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

func countryCode(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 2 || code == "XX" {
		return "", false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return "", false
		}
	}
	return code, true
}
