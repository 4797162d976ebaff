package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks at registration time that the address's domain
// actually resolves, through MX records or a plain host lookup. Format
// validation happens earlier, in request binding.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(email[at+1:])
	if domain == "" || strings.ContainsAny(domain, " \t") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	// Some small businesses run mail on a bare A record.
	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
