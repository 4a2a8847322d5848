// Package lookup is the resolution pipeline: it tries each configured
// source in priority order and assembles the first usable answer.
package lookup

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"domaininfo/internal/domain"
	"domaininfo/internal/metrics"
	"domaininfo/internal/ports"
)

// Service implements ports.Resolver. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	sources []ports.Source
	clock   clockwork.Clock
	metrics *metrics.Metrics
	log     zerolog.Logger

	registrable bool
}

type Option func(*Service)

// WithRegistrableQuery makes the sources query the registrable domain
// (eTLD+1) instead of the normalized name. Records still report the
// normalized name.
func WithRegistrableQuery() Option {
	return func(s *Service) { s.registrable = true }
}

// New returns a pipeline over sources, tried strictly in the given order.
func New(sources []ports.Source, clock clockwork.Clock, m *metrics.Metrics, log zerolog.Logger, opts ...Option) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Service{sources: sources, clock: clock, metrics: m, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve never fails. The first source whose fields assemble into a record
// wins; if none does the unavailable record is returned.
func (s *Service) Resolve(ctx context.Context, name domain.Name) domain.Record {
	query := name
	if s.registrable {
		query = domain.Registrable(name)
	}

	for _, src := range s.sources {
		rec, err := s.try(ctx, src, name, query)
		if err != nil {
			s.log.Warn().
				Err(err).
				Str("source", src.Name()).
				Str("domain", name.String()).
				Str("category", string(domain.CategoryOf(err))).
				Msg("source failed, trying next")
			continue
		}
		s.log.Info().
			Str("source", src.Name()).
			Str("domain", name.String()).
			Str("created", rec.CreatedDate).
			Str("age_years", rec.AgeYears).
			Int("risk_score", rec.RiskScore).
			Msg("resolved registration data")
		s.metrics.ObserveLookup(string(rec.Status))
		return rec
	}

	s.log.Warn().
		Str("domain", name.String()).
		Int("sources", len(s.sources)).
		Msg("all sources exhausted")
	s.metrics.ObserveLookup(string(domain.StatusUnavailable))
	return domain.Unavailable(name)
}

func (s *Service) try(ctx context.Context, src ports.Source, name, query domain.Name) (domain.Record, error) {
	start := s.clock.Now()
	fields, err := src.Fetch(ctx, query)
	elapsed := s.clock.Since(start)
	if err != nil {
		s.metrics.ObserveSource(src.Name(), string(domain.CategoryOf(err)), elapsed)
		return domain.Record{}, err
	}

	rec, err := domain.Assemble(name, fields, s.clock.Now())
	if err != nil {
		var se *domain.SourceError
		if errors.As(err, &se) {
			se.Source = src.Name()
		}
		s.metrics.ObserveSource(src.Name(), string(domain.ErrAssembly), elapsed)
		return domain.Record{}, err
	}
	rec.Origin = src.Name()
	s.metrics.ObserveSource(src.Name(), "ok", elapsed)
	return rec, nil
}

// Sources reports the configured source names in order.
func (s *Service) Sources() []string {
	names := make([]string, 0, len(s.sources))
	for _, src := range s.sources {
		names = append(names, src.Name())
	}
	return names
}

var _ ports.Resolver = (*Service)(nil)
