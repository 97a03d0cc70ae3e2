// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultBoundary is the literal that separates documents inside the combined
// report. The gateway concatenates XML files verbatim, so each file's
// declaration marks where a new document starts.
const DefaultBoundary = `<?xml version="1.0" ?>`

// Config holds the application configuration loaded from environment variables.
type Config struct {
	GatewayURL   string
	Username     string
	Password     string
	OutputDir    string
	OutputPrefix string
	Boundary     string
	HTTPTimeout  time.Duration
	TLSInsecure  bool
	AcceptTerms  bool
	JournalPath  string // Empty disables the run journal.
}

// RequireGateway returns an error when no gateway URL is configured.
func (c *Config) RequireGateway() error {
	if c.GatewayURL == "" {
		return fmt.Errorf("GWREPORTS_GATEWAY_URL is required")
	}
	return nil
}

// RequireCredentials returns an error unless gateway URL, username and
// password are all configured.
func (c *Config) RequireCredentials() error {
	if err := c.RequireGateway(); err != nil {
		return err
	}
	if c.Username == "" {
		return fmt.Errorf("GWREPORTS_USERNAME is required")
	}
	if c.Password == "" {
		return fmt.Errorf("GWREPORTS_PASSWORD is required")
	}
	return nil
}

// HasJournal returns true when a run journal path is configured.
func (c *Config) HasJournal() bool {
	return c.JournalPath != ""
}

// Load reads configuration from environment variables and returns a validated Config.
// Gateway settings (GWREPORTS_GATEWAY_URL, GWREPORTS_USERNAME, GWREPORTS_PASSWORD)
// are not checked here; commands that talk to the gateway call RequireGateway or
// RequireCredentials, so offline commands run without them.
// Optional variables with defaults: GWREPORTS_OUTPUT_DIR (.),
// GWREPORTS_OUTPUT_PREFIX (report_), GWREPORTS_BOUNDARY (the XML declaration),
// GWREPORTS_HTTP_TIMEOUT (30s), GWREPORTS_TLS_INSECURE (false),
// GWREPORTS_ACCEPT_TERMS (true), GWREPORTS_JOURNAL_PATH (unset, journal off).
func Load() (*Config, error) {
	gatewayURL := os.Getenv("GWREPORTS_GATEWAY_URL")
	username := os.Getenv("GWREPORTS_USERNAME")
	password := os.Getenv("GWREPORTS_PASSWORD")

	outputDir := "."
	if v, ok := os.LookupEnv("GWREPORTS_OUTPUT_DIR"); ok && v != "" {
		outputDir = v
	}

	outputPrefix := "report_"
	if v, ok := os.LookupEnv("GWREPORTS_OUTPUT_PREFIX"); ok && v != "" {
		outputPrefix = v
	}

	boundary := DefaultBoundary
	if v, ok := os.LookupEnv("GWREPORTS_BOUNDARY"); ok && v != "" {
		boundary = v
	}

	httpTimeout := 30 * time.Second
	if v, ok := os.LookupEnv("GWREPORTS_HTTP_TIMEOUT"); ok {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("GWREPORTS_HTTP_TIMEOUT has invalid duration %q: %w", v, err)
		}
		httpTimeout = parsed
	}

	tlsInsecure := false
	if v, ok := os.LookupEnv("GWREPORTS_TLS_INSECURE"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("GWREPORTS_TLS_INSECURE has invalid boolean %q: %w", v, err)
		}
		tlsInsecure = parsed
	}

	acceptTerms := true
	if v, ok := os.LookupEnv("GWREPORTS_ACCEPT_TERMS"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("GWREPORTS_ACCEPT_TERMS has invalid boolean %q: %w", v, err)
		}
		acceptTerms = parsed
	}

	journalPath := os.Getenv("GWREPORTS_JOURNAL_PATH")

	return &Config{
		GatewayURL:   gatewayURL,
		Username:     username,
		Password:     password,
		OutputDir:    outputDir,
		OutputPrefix: outputPrefix,
		Boundary:     boundary,
		HTTPTimeout:  httpTimeout,
		TLSInsecure:  tlsInsecure,
		AcceptTerms:  acceptTerms,
		JournalPath:  journalPath,
	}, nil
}
