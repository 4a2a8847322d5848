package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpadapter "domaininfo/internal/adapters/http"
	pg "domaininfo/internal/adapters/postgres"
	"domaininfo/internal/adapters/remoteapi"
	"domaininfo/internal/adapters/whoiscli"
	"domaininfo/internal/adapters/whoisnet"
	"domaininfo/internal/config"
	"domaininfo/internal/metrics"
	"domaininfo/internal/ports"
	"domaininfo/internal/services/lookup"
	"domaininfo/internal/workers/lookuplog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	setupLogging(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	clock := clockwork.NewRealClock()
	var opts []lookup.Option
	if cfg.QueryRegistrable {
		opts = append(opts, lookup.WithRegistrableQuery())
	}
	svc := lookup.New(buildSources(cfg), clock, m, log.With().Str("component", "lookup").Logger(), opts...)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	var recorder ports.LookupRecorder = lookuplog.Discard{}
	var writer *lookuplog.Writer
	if cfg.DatabaseURL != "" {
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("db connect error")
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("db migrate error")
		}
		writer = lookuplog.New(db, cfg.AuditQueue, m, log.With().Str("component", "lookuplog").Logger())
		writer.Run(workerCtx, cfg.AuditWorkers)
		recorder = writer
		log.Info().Int("workers", cfg.AuditWorkers).Msg("lookup audit log enabled")
	} else {
		log.Warn().Msg("DATABASE_URL not set; lookups are not persisted")
	}

	srv := httpadapter.New(svc, recorder, clock, log.With().Str("component", "http").Logger())
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsServer := startMetrics(cfg.MetricsAddr, reg)

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	log.Info().
		Str("addr", cfg.ListenAddr).
		Strs("sources", svc.Sources()).
		Msg("domain info server listening")
	log.Info().Msgf("  GET http://%s/api/domain-info?domain=example.com", cfg.ListenAddr)
	log.Info().Msgf("  GET http://%s/api/health", cfg.ListenAddr)

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("metrics shutdown")
		}
	}
	cancelWorkers()
	if writer != nil {
		writer.Wait()
	}
}

// startMetrics serves /metrics on its own listener. An empty addr disables
// it; a failing listener is logged and never stops the API server.
func startMetrics(addr string, reg *prometheus.Registry) *http.Server {
	if addr == "" {
		log.Info().Msg("metrics listener disabled")
		return nil
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics listener stopped")
		}
	}()
	log.Info().Str("addr", addr).Msg("metrics listening")
	return srv
}

func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogFormat == "console" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
		return
	}
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// buildSources orders the pipeline: local whois first, the native client if
// enabled, then the remote APIs.
func buildSources(cfg config.Config) []ports.Source {
	sources := []ports.Source{
		whoiscli.NewSource(whoiscli.NewExec(cfg.WhoisBinary, cfg.WhoisTimeout)),
	}
	if cfg.NativeWhois {
		sources = append(sources, whoisnet.New(cfg.WhoisTimeout))
	}
	client := &http.Client{Timeout: cfg.RemoteTimeout}
	for _, ep := range cfg.RemoteEndpoints {
		sources = append(sources, remoteapi.New(ep, client, cfg.RemoteTimeout, log.With().Str("source", ep.Name).Logger()))
	}
	return sources
}
