package ports

import (
	"context"

	"domaininfo/internal/domain"
)

// Resolver turns a normalized domain into a registration record. It never
// fails; exhausted sources yield an unavailable record.
type Resolver interface {
	Resolve(ctx context.Context, name domain.Name) domain.Record
}

// Source is one registration data source. Fetch returns a *domain.SourceError
// for every soft failure so the caller can fall through to the next source.
type Source interface {
	Name() string
	Fetch(ctx context.Context, name domain.Name) (domain.RawFields, error)
}

// RegistryLookup queries a registry for the raw record text of a domain,
// e.g. by running the local whois executable.
type RegistryLookup interface {
	Lookup(ctx context.Context, name domain.Name) (string, error)
}
