// Package remoteapi queries HTTP WHOIS APIs used as fallbacks when the
// local whois tool has nothing.
package remoteapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"domaininfo/internal/domain"
	"domaininfo/internal/parsers/apipayload"
)

const (
	DefaultTimeout   = 8 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
	// DomainPlaceholder is replaced with the path-escaped domain in endpoint URLs.
	DomainPlaceholder = "{domain}"
	maxBodyBytes      = 1 << 20
)

// Endpoint describes one remote API.
type Endpoint struct {
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	UserAgent string `yaml:"user_agent"`
}

// DefaultEndpoints is a placeholder list; ARIN serves IP registrations and
// rarely has domain fields. Replace it through the sources file.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{Name: "arin-rest", URL: "http://whois.arin.net/rest/ip/" + DomainPlaceholder},
	}
}

// Source fetches one endpoint and decodes the payload.
type Source struct {
	endpoint Endpoint
	client   *http.Client
	timeout  time.Duration
	log      zerolog.Logger
}

func New(ep Endpoint, client *http.Client, timeout time.Duration, log zerolog.Logger) *Source {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if ep.UserAgent == "" {
		ep.UserAgent = DefaultUserAgent
	}
	if ep.Name == "" {
		ep.Name = ep.URL
	}
	return &Source{endpoint: ep, client: client, timeout: timeout, log: log}
}

func (s *Source) Name() string { return s.endpoint.Name }

// URL expands the endpoint template for name.
func (s *Source) URL(name domain.Name) string {
	return strings.ReplaceAll(s.endpoint.URL, DomainPlaceholder, url.PathEscape(string(name)))
}

func (s *Source) Fetch(ctx context.Context, name domain.Name) (domain.RawFields, error) {
	body, err := s.get(ctx, s.URL(name))
	if err != nil {
		return domain.RawFields{}, err
	}
	m, err := apipayload.Parse(body)
	if err != nil {
		return domain.RawFields{}, domain.NewSourceError(domain.ErrNoMatch, s.Name(), "unrecognized payload", err)
	}
	s.log.Debug().
		Str("source", s.Name()).
		Str("domain", name.String()).
		Str("shape", string(m.Shape)).
		Msg("decoded remote payload")
	return m.Fields, nil
}

func (s *Source) get(ctx context.Context, target string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, domain.NewSourceError(domain.ErrUnavailable, s.Name(), "invalid endpoint url", err)
	}
	req.Header.Set("User-Agent", s.endpoint.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, domain.ContextError(ctx, s.Name(), "request timed out")
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.NewSourceError(domain.ErrTimeout, s.Name(), "request timed out", err)
		}
		return nil, domain.NewSourceError(domain.ErrUnavailable, s.Name(), "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, domain.NewSourceError(domain.ErrBadStatus, s.Name(), fmt.Sprintf("status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.NewSourceError(domain.ErrTimeout, s.Name(), "reading body timed out", err)
		}
		return nil, domain.NewSourceError(domain.ErrUnavailable, s.Name(), "reading body failed", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, domain.NewSourceError(domain.ErrEmpty, s.Name(), "empty body", nil)
	}
	return body, nil
}
