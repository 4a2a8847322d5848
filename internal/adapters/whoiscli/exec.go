// Package whoiscli resolves registration data through the host's whois
// executable.
package whoiscli

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"domaininfo/internal/domain"
)

const (
	DefaultBinary  = "whois"
	DefaultTimeout = 10 * time.Second
	sourceName     = "whois-cli"
)

// Exec runs `<Binary> <domain>` and returns its standard output.
type Exec struct {
	Binary  string
	Timeout time.Duration
}

func NewExec(binary string, timeout time.Duration) *Exec {
	if binary == "" {
		binary = DefaultBinary
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Exec{Binary: binary, Timeout: timeout}
}

// Lookup implements ports.RegistryLookup. Every failure is a
// *domain.SourceError.
func (e *Exec) Lookup(ctx context.Context, name domain.Name) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Binary, string(name))
	cmd.Stdout = &stdout
	// Do not wait on grandchildren holding stdout after the deadline.
	cmd.WaitDelay = time.Second
	err := cmd.Run()

	switch {
	case ctx.Err() != nil:
		return "", domain.ContextError(ctx, sourceName, "whois did not finish in "+e.Timeout.String())
	case errors.Is(err, exec.ErrNotFound):
		return "", domain.NewSourceError(domain.ErrUnavailable, sourceName, "whois executable not found", err)
	case err != nil:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", domain.NewSourceError(domain.ErrBadStatus, sourceName, "whois exited non-zero", err)
		}
		return "", domain.NewSourceError(domain.ErrUnavailable, sourceName, "could not run whois", err)
	}

	out := stdout.String()
	if strings.TrimSpace(out) == "" {
		return "", domain.NewSourceError(domain.ErrEmpty, sourceName, "whois printed nothing", nil)
	}
	return out, nil
}
