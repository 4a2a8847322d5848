package whoiscli

import (
	"context"

	"domaininfo/internal/domain"
	"domaininfo/internal/parsers/whoistext"
	"domaininfo/internal/ports"
)

// Source adapts a RegistryLookup into a pipeline source by parsing its text
// output.
type Source struct {
	lookup ports.RegistryLookup
	name   string
}

func NewSource(lookup ports.RegistryLookup) *Source {
	return &Source{lookup: lookup, name: sourceName}
}

func (s *Source) Name() string { return s.name }

func (s *Source) Fetch(ctx context.Context, name domain.Name) (domain.RawFields, error) {
	text, err := s.lookup.Lookup(ctx, name)
	if err != nil {
		return domain.RawFields{}, err
	}
	fields, ok := whoistext.Parse(text)
	if !ok {
		return domain.RawFields{}, domain.NewSourceError(domain.ErrNoMatch, s.name, "no creation date in whois output", nil)
	}
	return fields, nil
}
