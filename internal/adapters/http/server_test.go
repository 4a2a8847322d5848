package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"domaininfo/internal/adapters/whoiscli"
	"domaininfo/internal/domain"
	"domaininfo/internal/metrics"
	"domaininfo/internal/ports"
	"domaininfo/internal/services/lookup"
)

type stubResolver struct {
	mu     sync.Mutex
	record func(domain.Name) domain.Record
	seen   []domain.Name
}

func (s *stubResolver) Resolve(_ context.Context, name domain.Name) domain.Record {
	s.mu.Lock()
	s.seen = append(s.seen, name)
	s.mu.Unlock()
	return s.record(name)
}

type spyRecorder struct {
	entries []ports.LookupEntry
}

func (s *spyRecorder) Record(e ports.LookupEntry) { s.entries = append(s.entries, e) }

type panickingResolver struct{}

func (panickingResolver) Resolve(context.Context, domain.Name) domain.Record { panic("boom") }

type ServerSuite struct {
	suite.Suite
	resolver *stubResolver
	recorder *spyRecorder
	clock    *clockwork.FakeClock
	router   http.Handler
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	s.resolver = &stubResolver{record: domain.Unavailable}
	s.recorder = &spyRecorder{}
	s.clock = clockwork.NewFakeClockAt(time.Date(2025, time.May, 2, 8, 0, 0, 0, time.UTC))
	s.router = New(s.resolver, s.recorder, s.clock, zerolog.Nop()).Routes()
}

func (s *ServerSuite) get(target string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func (s *ServerSuite) assertCORS(rec *httptest.ResponseRecorder) {
	s.Equal("*", rec.Header().Get("Access-Control-Allow-Origin"))
	s.Equal("GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	s.Equal("Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func (s *ServerSuite) TestHealth() {
	rec, body := s.get("/api/health")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))
	s.Equal(map[string]any{"status": "ok", "service": "domain-info"}, body)
	s.assertCORS(rec)
}

func (s *ServerSuite) TestDomainInfoWithoutDomain() {
	for _, target := range []string{"/api/domain-info", "/api/domain-info?domain="} {
		rec, body := s.get(target)

		s.Equal(http.StatusOK, rec.Code, target)
		s.Equal(map[string]any{"error": "No domain provided"}, body, target)
		s.assertCORS(rec)
	}
	s.Empty(s.resolver.seen)
	s.Empty(s.recorder.entries)
}

func (s *ServerSuite) TestDomainInfoNormalizesAndRecords() {
	s.resolver.record = func(name domain.Name) domain.Record {
		return domain.Record{
			Domain: name, Status: domain.StatusSuccess,
			CreatedDate: "2000-01-01", ExpiryDate: domain.Unknown, AgeYears: "25.0", AgeDays: 9131,
			Registrar: "Reg", RiskScore: 10, Source: domain.RecordSource, Origin: "whois-cli",
		}
	}

	rec, body := s.get("/api/domain-info?domain=https://WWW.Example.com/path")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal([]domain.Name{"example.com"}, s.resolver.seen)
	s.Equal(map[string]any{
		"domain":           "example.com",
		"status":           "success",
		"created_date":     "2000-01-01",
		"expiry_date":      "Unknown",
		"domain_age_years": "25.0",
		"domain_age_days":  float64(9131),
		"registrar":        "Reg",
		"risk_score":       float64(10),
		"source":           "whois-data",
	}, body)

	s.Require().Len(s.recorder.entries, 1)
	s.Equal("https://WWW.Example.com/path", s.recorder.entries[0].Query)
	s.NotEmpty(s.recorder.entries[0].ID)
	s.True(s.clock.Now().Equal(s.recorder.entries[0].ResolvedAt))
}

func (s *ServerSuite) TestDomainInfoRepeatedParameterUsesFirst() {
	s.get("/api/domain-info?domain=first.example&domain=second.example")

	s.Equal([]domain.Name{"first.example"}, s.resolver.seen)
}

func (s *ServerSuite) TestDomainInfoUnavailable() {
	_, body := s.get("/api/domain-info?domain=nope.invalid")

	s.Equal("unavailable", body["status"])
	s.Equal("nope.invalid", body["domain"])
	s.NotEmpty(body["error"])
	s.NotEmpty(body["message"])
	s.NotContains(body, "risk_score")
	s.NotContains(body, "domain_age_days")
}

func (s *ServerSuite) TestUnknownEndpoint() {
	rec, body := s.get("/api/whatever")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(map[string]any{"error": "Endpoint not found"}, body)
	s.assertCORS(rec)
}

func (s *ServerSuite) TestMethodNotAllowed() {
	req := httptest.NewRequest(http.MethodPost, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Equal(http.StatusMethodNotAllowed, rec.Code)
	s.assertCORS(rec)
}

func (s *ServerSuite) TestPreflight() {
	for _, target := range []string{"/api/domain-info", "/anything/else"} {
		req := httptest.NewRequest(http.MethodOptions, target, nil)
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code, target)
		s.Zero(rec.Body.Len(), target)
		s.assertCORS(rec)
	}
}

func (s *ServerSuite) TestPanicIsRecovered() {
	router := New(panickingResolver{}, s.recorder, s.clock, zerolog.Nop()).Routes()

	req := httptest.NewRequest(http.MethodGet, "/api/domain-info?domain=example.com", nil)
	rec := httptest.NewRecorder()
	s.NotPanics(func() { router.ServeHTTP(rec, req) })
	s.Equal(http.StatusInternalServerError, rec.Code)

	// The router keeps serving.
	rec2, body := s.get("/api/health")
	s.Equal(http.StatusOK, rec2.Code)
	s.Equal("ok", body["status"])
}

// End to end through the real pipeline with a fake whois executable.
func TestDomainInfoEndToEnd(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.July, 1, 15, 0, 0, 0, time.UTC))
	created := clock.Now().AddDate(0, 0, -10).Format("2006-01-02")
	local := whoiscli.NewSource(lookupFunc(func(context.Context, domain.Name) (string, error) {
		return "Creation Date: " + created + "T10:00:00Z\nRegistrar: New Registrar\n", nil
	}))
	svc := lookup.New([]ports.Source{local}, clock, metrics.New(prometheus.NewRegistry()), zerolog.Nop())
	router := New(svc, &spyRecorder{}, clock, zerolog.Nop()).Routes()

	req := httptest.NewRequest(http.MethodGet, "/api/domain-info?domain=brand-new.example", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body recordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "success" || body.AgeDays != 10 || body.RiskScore != 80 {
		t.Fatalf("unexpected record: %+v", body)
	}
}

type lookupFunc func(context.Context, domain.Name) (string, error)

func (f lookupFunc) Lookup(ctx context.Context, name domain.Name) (string, error) { return f(ctx, name) }
