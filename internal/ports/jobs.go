package ports

import (
	"time"

	"domaininfo/internal/domain"
)

// LookupEntry is one resolved lookup queued for the audit log.
type LookupEntry struct {
	ID         string
	Query      string
	Record     domain.Record
	ResolvedAt time.Time
}

// LookupRecorder accepts lookups without blocking the request path.
type LookupRecorder interface {
	Record(entry LookupEntry)
}
