package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://app.example.com").
	// Used for generating absolute tracking URLs in order responses.
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CORSAllowedOrigins lists origins allowed by the CORS middleware.
	// The dispatch and result endpoints are called directly from the
	// browser bundle, so the default is open.
	CORSAllowedOrigins []string `env:"HTTP_CORS_ALLOWED_ORIGINS" envDefault:"*"`
}
