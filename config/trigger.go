package config

import (
	"strings"
	"time"
)

const defaultTriggerTimeout = 10 * time.Second

// TriggerConfig contains configuration for the best-effort compute-job
// trigger (a GitHub repository_dispatch call). An incomplete configuration
// is valid: the dispatch endpoint reports "skipped" and continues.
type TriggerConfig struct {
	Owner string `env:"GITHUB_OWNER" envDefault:""`
	Repo  string `env:"GITHUB_REPO"  envDefault:""`
	Token string `env:"GITHUB_TOKEN" envDefault:""`

	// EventType is the repository_dispatch event type the workflow listens on.
	EventType string `env:"GITHUB_DISPATCH_EVENT" envDefault:"calculate_routes"`

	// BaseURL is the GitHub API base URL. Override for GitHub Enterprise
	// or for pointing tests at a local server.
	BaseURL string `env:"GITHUB_API_BASE_URL" envDefault:"https://api.github.com"`

	// Timeout bounds the outbound trigger call so a slow external
	// dependency cannot stall the dispatch response.
	Timeout time.Duration `env:"GITHUB_DISPATCH_TIMEOUT" envDefault:"10s"`
}

// Configured reports whether all required trigger credentials are present.
func (t *TriggerConfig) Configured() bool {
	return strings.TrimSpace(t.Owner) != "" &&
		strings.TrimSpace(t.Repo) != "" &&
		strings.TrimSpace(t.Token) != ""
}

// Sanitize applies guardrails to trigger configuration values.
func (t *TriggerConfig) Sanitize() {
	if t.Timeout <= 0 {
		t.Timeout = defaultTriggerTimeout
	}
	if t.EventType == "" {
		t.EventType = "calculate_routes"
	}
	t.BaseURL = strings.TrimRight(t.BaseURL, "/")
	if t.BaseURL == "" {
		t.BaseURL = "https://api.github.com"
	}
}
