package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

// Config captures process-level settings for the POS hosts.
type Config struct {
	Addr string
	// APIEndpoint is the base URL of the catalog and sales services.
	APIEndpoint string

	EmployeeCode string
	StoreCode    string
	TerminalNo   string

	TaxRate     string
	HTTPTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Defaults applied when the corresponding variable is unset.
const (
	DefaultAddr         = ":8080"
	DefaultEmployeeCode = "E001"
	DefaultStoreCode    = "S01"
	DefaultTerminalNo   = "P01"
	DefaultTaxRate      = "0.10"
	DefaultHTTPTimeout  = 10 * time.Second
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
)

var ErrMissingEndpoint = errors.New("POS_API_ENDPOINT is required")

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}

	cfg := Config{
		Addr:         get("POS_ADDR", DefaultAddr),
		EmployeeCode: get("POS_EMPLOYEE_CODE", DefaultEmployeeCode),
		StoreCode:    get("POS_STORE_CODE", DefaultStoreCode),
		TerminalNo:   get("POS_TERMINAL_NO", DefaultTerminalNo),
		TaxRate:      get("POS_TAX_RATE", DefaultTaxRate),
		HTTPTimeout:  DefaultHTTPTimeout,
		LogLevel:     get("POS_LOG_LEVEL", DefaultLogLevel),
		LogFormat:    get("POS_LOG_FORMAT", DefaultLogFormat),
	}

	endpoint, err := NormalizeEndpoint(get("POS_API_ENDPOINT", ""))
	if err != nil {
		return Config{}, err
	}
	cfg.APIEndpoint = endpoint

	if raw := get("POS_HTTP_TIMEOUT", ""); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse POS_HTTP_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("POS_HTTP_TIMEOUT must be positive, got %s", d)
		}
		cfg.HTTPTimeout = d
	}

	return cfg, nil
}

// NormalizeEndpoint turns the configured endpoint into a base URL. A bare
// host ("api.example.com/") is served over https.
func NormalizeEndpoint(raw string) (string, error) {
	if raw == "" {
		return "", ErrMissingEndpoint
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse POS_API_ENDPOINT: %w", err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("POS_API_ENDPOINT has no host: %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("POS_API_ENDPOINT scheme must be http or https, got %q", u.Scheme)
	}
	return u.String(), nil
}
