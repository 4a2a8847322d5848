package whoiscli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domaininfo/internal/domain"
)

type stubLookup struct {
	text string
	err  error
	got  domain.Name
}

func (s *stubLookup) Lookup(_ context.Context, name domain.Name) (string, error) {
	s.got = name
	return s.text, s.err
}

func TestSourceFetch(t *testing.T) {
	lookup := &stubLookup{text: "Creation Date: 2015-06-01\nRegistry Expiry Date: 2026-06-01\nRegistrar: Example Registrar\n"}
	src := NewSource(lookup)

	fields, err := src.Fetch(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.Name("example.com"), lookup.got)
	assert.Equal(t, "2015-06-01", fields.CreatedDate)
	assert.Equal(t, "2026-06-01", fields.ExpiryDate)
	assert.Equal(t, "Example Registrar", fields.Registrar)
	assert.Equal(t, "whois-cli", src.Name())
}

func TestSourceFetchWithoutCreationDate(t *testing.T) {
	src := NewSource(&stubLookup{text: "No match for \"EXAMPLE.INVALID\".\n"})

	_, err := src.Fetch(context.Background(), "example.invalid")
	require.Error(t, err)
	assert.Equal(t, domain.ErrNoMatch, domain.CategoryOf(err))
}

func TestSourceFetchPropagatesLookupError(t *testing.T) {
	lookupErr := domain.NewSourceError(domain.ErrTimeout, "whois-cli", "slow", nil)
	src := NewSource(&stubLookup{err: lookupErr})

	_, err := src.Fetch(context.Background(), "example.com")
	assert.ErrorIs(t, err, lookupErr)
}
