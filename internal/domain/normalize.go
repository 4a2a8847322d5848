package domain

import (
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var strippedPrefixes = []string{"https://", "http://", "www."}

// Normalize canonicalizes a user-supplied domain string. It does not
// validate DNS syntax; malformed input passes through and simply fails to
// resolve later.
func Normalize(raw string) Name {
	s := strings.ToLower(raw)
	// Strip until a fixed point so that Normalize is idempotent for inputs
	// like "www.www.example.com".
	for {
		trimmed := s
		for _, p := range strippedPrefixes {
			trimmed = strings.TrimPrefix(trimmed, p)
		}
		if trimmed == s {
			break
		}
		s = trimmed
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	return Name(s)
}

// Registrable reduces name to its registrable domain (eTLD+1), e.g.
// "mail.example.co.uk" -> "example.co.uk". IP addresses, private suffixes
// and names without a registrable form are returned unchanged.
func Registrable(name Name) Name {
	host := strings.TrimRight(string(name), ".")
	if host == "" || net.ParseIP(host) != nil {
		return name
	}
	if _, icann := publicsuffix.PublicSuffix(host); !icann {
		return name
	}
	reg, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return name
	}
	return Name(reg)
}
