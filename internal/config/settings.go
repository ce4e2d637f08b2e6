package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	appErrors "menutree/internal/errors"
)

// ServerSettings is the snapshot `menutree serve` runs with.
type ServerSettings struct {
	Addr            string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
	DatabasePath    string
	LogLevel        string
	LogFormat       string
}

// Server reads the server settings from the live configuration.
func Server() ServerSettings {
	return ServerSettings{
		Addr:            GetString(KeyServerAddr),
		CORSOrigins:     GetStringSlice(KeyServerCORSOrigins),
		ShutdownTimeout: GetDuration(KeyServerShutdownTimeout),
		DatabasePath:    GetString(KeyDatabasePath),
		LogLevel:        GetString(KeyLogLevel),
		LogFormat:       GetString(KeyLogFormat),
	}
}

// Validate reports the first unusable server setting.
func (s ServerSettings) Validate() error {
	if strings.TrimSpace(s.Addr) == "" {
		return invalid(KeyServerAddr, "must not be empty")
	}
	if strings.TrimSpace(s.DatabasePath) == "" {
		return invalid(KeyDatabasePath, "must not be empty")
	}
	if s.ShutdownTimeout <= 0 {
		return invalid(KeyServerShutdownTimeout, "must be positive")
	}
	return nil
}

// ClientSettings is the snapshot the terminal client and `show` run with.
type ClientSettings struct {
	APIURL          string
	Timeout         time.Duration
	AutoExpandDepth int
	OutputFormat    string
	LastMenu        string
}

// Client reads the client settings from the live configuration.
func Client() ClientSettings {
	return ClientSettings{
		APIURL:          GetString(KeyAPIURL),
		Timeout:         GetDuration(KeyAPITimeout),
		AutoExpandDepth: GetInt(KeyAutoExpandDepth),
		OutputFormat:    GetString(KeyOutputFormat),
		LastMenu:        GetString(KeyLastMenu),
	}
}

// Validate reports the first unusable client setting.
func (s ClientSettings) Validate() error {
	u, err := url.Parse(s.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return invalid(KeyAPIURL, fmt.Sprintf("%q is not an absolute URL", s.APIURL))
	}
	if s.Timeout <= 0 {
		return invalid(KeyAPITimeout, "must be positive")
	}
	if s.AutoExpandDepth < 0 {
		return invalid(KeyAutoExpandDepth, "must not be negative")
	}
	switch s.OutputFormat {
	case "rich", "plain":
	default:
		return invalid(KeyOutputFormat, fmt.Sprintf("%q is not rich or plain", s.OutputFormat))
	}
	return nil
}

func invalid(key, reason string) error {
	return appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("%s %s", key, reason), nil)
}
