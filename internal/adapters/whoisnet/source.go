// Package whoisnet speaks the WHOIS protocol (port 43) directly, for hosts
// without a whois executable.
package whoisnet

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/likexian/whois"

	"domaininfo/internal/domain"
	"domaininfo/internal/parsers/whoistext"
)

const (
	DefaultTimeout = 10 * time.Second
	sourceName     = "whois-net"
)

// Querier is the subset of *whois.Client used here.
type Querier interface {
	Whois(domain string, servers ...string) (string, error)
}

// Source implements ports.Source and ports.RegistryLookup.
type Source struct {
	client  Querier
	timeout time.Duration
}

func New(timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewWithClient(whois.NewClient().SetTimeout(timeout), timeout)
}

func NewWithClient(client Querier, timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Source{client: client, timeout: timeout}
}

func (s *Source) Name() string { return sourceName }

// Lookup runs the query in a goroutine so ctx cancellation is honoured even
// though the client only supports its own timeout.
func (s *Source) Lookup(ctx context.Context, name domain.Name) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := s.client.Whois(string(name))
		done <- result{text, err}
	}()

	select {
	case <-ctx.Done():
		return "", domain.ContextError(ctx, sourceName, "whois server did not answer in time")
	case r := <-done:
		switch {
		case errors.Is(r.err, os.ErrDeadlineExceeded):
			return "", domain.NewSourceError(domain.ErrTimeout, sourceName, "whois server did not answer", r.err)
		case r.err != nil:
			return "", domain.NewSourceError(domain.ErrUnavailable, sourceName, "whois query failed", r.err)
		case strings.TrimSpace(r.text) == "":
			return "", domain.NewSourceError(domain.ErrEmpty, sourceName, "empty response", nil)
		}
		return r.text, nil
	}
}

func (s *Source) Fetch(ctx context.Context, name domain.Name) (domain.RawFields, error) {
	text, err := s.Lookup(ctx, name)
	if err != nil {
		return domain.RawFields{}, err
	}
	fields, ok := whoistext.Parse(text)
	if !ok {
		return domain.RawFields{}, domain.NewSourceError(domain.ErrNoMatch, sourceName, "no creation date in whois response", nil)
	}
	return fields, nil
}
