package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"domaininfo/internal/adapters/remoteapi"
	"domaininfo/internal/adapters/whoiscli"
)

// ErrInvalidSourcesFile is returned when SOURCES_FILE cannot be used.
var ErrInvalidSourcesFile = errors.New("invalid sources file")

type Config struct {
	Env         string
	ListenAddr  string
	MetricsAddr string
	DatabaseURL string

	AuditWorkers int
	AuditQueue   int

	WhoisBinary     string
	WhoisTimeout    time.Duration
	NativeWhois     bool
	RemoteTimeout   time.Duration
	RemoteUserAgent string
	RemoteEndpoints []remoteapi.Endpoint

	// QueryRegistrable sends the eTLD+1 to the sources instead of the
	// normalized name.
	QueryRegistrable bool

	LogLevel  string
	LogFormat string
}

// Development reports whether APP_ENV selects local development defaults.
func (c Config) Development() bool { return c.Env == "development" }

type sourcesFile struct {
	Remote []remoteapi.Endpoint `yaml:"remote"`
}

func Load() (Config, error) {
	cfg := Config{
		Env:              getenv("APP_ENV", "development"),
		ListenAddr:       getenv("LISTEN_ADDR", "127.0.0.1:8001"),
		MetricsAddr:      getenvAllowEmpty("METRICS_ADDR", "127.0.0.1:9101"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		AuditWorkers:     getenvInt("AUDIT_WORKERS", 1),
		AuditQueue:       getenvInt("AUDIT_QUEUE", 64),
		WhoisBinary:      getenv("WHOIS_BINARY", whoiscli.DefaultBinary),
		WhoisTimeout:     getenvDuration("WHOIS_TIMEOUT", whoiscli.DefaultTimeout),
		NativeWhois:      getenvBool("NATIVE_WHOIS", false),
		QueryRegistrable: getenvBool("QUERY_REGISTRABLE", false),
		RemoteTimeout:    getenvDuration("REMOTE_TIMEOUT", remoteapi.DefaultTimeout),
		RemoteUserAgent:  getenv("REMOTE_USER_AGENT", remoteapi.DefaultUserAgent),
		LogLevel:         getenv("LOG_LEVEL", "info"),
	}
	format := "json"
	if cfg.Development() {
		format = "console"
	}
	cfg.LogFormat = getenv("LOG_FORMAT", format)

	endpoints := remoteapi.DefaultEndpoints()
	if path := os.Getenv("SOURCES_FILE"); path != "" {
		loaded, err := loadSources(path)
		if err != nil {
			return cfg, err
		}
		endpoints = loaded
	}
	for i := range endpoints {
		if endpoints[i].UserAgent == "" {
			endpoints[i].UserAgent = cfg.RemoteUserAgent
		}
	}
	cfg.RemoteEndpoints = endpoints
	return cfg, nil
}

func loadSources(path string) ([]remoteapi.Endpoint, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSourcesFile, err)
	}
	var f sourcesFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSourcesFile, path, err)
	}
	for i, ep := range f.Remote {
		if ep.Name == "" || ep.URL == "" {
			return nil, fmt.Errorf("%w: %s: remote[%d] needs name and url", ErrInvalidSourcesFile, path, i)
		}
	}
	return f.Remote, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getenvAllowEmpty distinguishes an unset variable from one set to "".
func getenvAllowEmpty(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
