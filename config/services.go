package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP:
			services[mode] = true
		default:
			return nil, fmt.Errorf("invalid service name: %q (valid options: http)", serviceName)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

const (
	defaultPollInterval = 3 * time.Second
	minPollInterval     = 500 * time.Millisecond
	defaultPollTimeout  = 15 * time.Second
)

// PollConfig contains result poll loop configuration, used by the client
// orchestrator (rutaflow-admin optimize and library consumers).
type PollConfig struct {
	// Interval is the minimum delay between the completion of one result
	// poll and the issuance of the next.
	Interval time.Duration `env:"POLL_INTERVAL" envDefault:"3s"`

	// RequestTimeout bounds a single dispatch or poll HTTP request.
	RequestTimeout time.Duration `env:"POLL_REQUEST_TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to poll configuration values.
func (p *PollConfig) Sanitize() {
	if p.Interval <= 0 {
		p.Interval = defaultPollInterval
	}
	if p.Interval < minPollInterval {
		p.Interval = minPollInterval
	}
	if p.RequestTimeout <= 0 {
		p.RequestTimeout = defaultPollTimeout
	}
}
