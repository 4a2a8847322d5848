// Package whoistext extracts registration fields from free-form WHOIS
// output as printed by registries and the whois(1) tool.
package whoistext

import (
	"strings"

	"domaininfo/internal/domain"
)

var (
	createdLabels = []string{"creation date", "created date", "created on"}
	expiryLabels  = []string{"expir", "renewal date"}
)

// Parse scans text line by line. When a field is stated more than once the
// last line wins, which picks the registrar-level section over the registry
// summary in thick WHOIS output. ok is false when no creation date was
// found; such a record cannot be aged.
func Parse(text string) (fields domain.RawFields, ok bool) {
	for line := range strings.Lines(text) {
		lower := strings.ToLower(line)

		if containsAny(lower, createdLabels) {
			if v := valueOf(line); v != "" {
				fields.CreatedDate = v
			}
		}
		if containsAny(lower, expiryLabels) {
			if v := valueOf(line); v != "" {
				fields.ExpiryDate = v
			}
		}
		if strings.Contains(lower, "registrar") && strings.Contains(line, ":") {
			fields.Registrar = valueOf(line)
		}
	}
	return fields, fields.CreatedDate != ""
}

// valueOf returns the text after the first colon, or the whole line when
// there is none.
func valueOf(line string) string {
	_, after, found := strings.Cut(line, ":")
	if !found {
		after = line
	}
	return strings.TrimSpace(after)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
