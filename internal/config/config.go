// Package config provides functionality for managing configuration options
// for the application using command-line flags and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// AuthURL is the legacy SOAP login endpoint.
	AuthURL string

	// TimeoutSeconds bounds one HTTP exchange with the backend.
	TimeoutSeconds int

	// RetryAttempts is the total number of login tries, including the first.
	RetryAttempts int

	// RetryDelayMs is the fixed pause between retries, in milliseconds.
	RetryDelayMs int

	// DataDir is the directory holding all persisted client state.
	DataDir string

	// LogLevel sets the zap log level (debug, info, warn, error).
	LogLevel string

	// CACert optionally names a PEM bundle to trust for HTTPS.
	CACert string

	// Port defines the stub server's listening address (ip:port).
	Port string

	// StubUser and StubPass are the credentials the stub server accepts.
	StubUser string
	StubPass string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.AuthURL, "auth-url", "https://localhost:8443/auth/login.asmx", "SOAP login endpoint")
	flag.IntVar(&options.TimeoutSeconds, "timeout", 10, "HTTP timeout in seconds")
	flag.IntVar(&options.RetryAttempts, "attempts", 3, "total login attempts")
	flag.IntVar(&options.RetryDelayMs, "retry-delay", 1000, "delay between retries in milliseconds")
	flag.StringVar(&options.DataDir, "data", "data", "directory for persisted state")
	flag.StringVar(&options.LogLevel, "log-level", "info", "log level")
	flag.StringVar(&options.CACert, "ca", "", "path to CA cert (optional)")
	flag.StringVar(&options.Port, "a", "localhost:8443", "run on ip:port server")
	flag.StringVar(&options.StubUser, "stub-user", "demo", "username the stub server accepts")
	flag.StringVar(&options.StubPass, "stub-pass", "demo", "password the stub server accepts")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if authURL := os.Getenv("AUTH_URL"); authURL != "" {
		options.AuthURL = authURL
	}
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		options.DataDir = dataDir
	}
	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}

	return options
}

// Timeout returns the HTTP timeout as a duration.
func (o *Options) Timeout() time.Duration {
	return time.Duration(o.TimeoutSeconds) * time.Second
}

// RetryDelay returns the retry delay as a duration.
func (o *Options) RetryDelay() time.Duration {
	return time.Duration(o.RetryDelayMs) * time.Millisecond
}
