// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and an
// optional JSON config file. A .env file in the working directory is loaded
// first so container setups can ship defaults alongside the binary.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the gateway's listening address (ip:port).
	Addr string

	// APIBaseURL is the base URL of the remote catalog API.
	APIBaseURL string

	// UploadURL is the unsigned image-upload endpoint.
	UploadURL string

	// UploadPreset is the unsigned upload preset name.
	UploadPreset string

	// CookieName is the session-token cookie key.
	CookieName string

	// TokenFile is where the terminal client persists its token.
	TokenFile string

	// PageSize is the number of catalog items shown per page.
	PageSize int

	// LogLevel sets the zap logging level.
	LogLevel string

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port gateway")
	flag.StringVar(&options.APIBaseURL, "api", "http://localhost:5000", "remote catalog API base URL")
	flag.StringVar(&options.UploadURL, "upload-url", "", "unsigned image upload endpoint")
	flag.StringVar(&options.UploadPreset, "upload-preset", "unsigned_preset", "unsigned upload preset")
	flag.StringVar(&options.CookieName, "cookie", "token", "session token cookie name")
	flag.StringVar(&options.TokenFile, "token-file", "", "token file for the terminal client")
	flag.IntVar(&options.PageSize, "page-size", 12, "catalog items per page")
	flag.StringVar(&options.LogLevel, "log-level", "info", "logging level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	// Missing .env is fine; explicit files surface their errors via flags below.
	_ = godotenv.Load()

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

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if apiBase := os.Getenv("API_BASE_URL"); apiBase != "" {
		options.APIBaseURL = apiBase
	}
	if uploadURL := os.Getenv("UPLOAD_URL"); uploadURL != "" {
		options.UploadURL = uploadURL
	}
	if uploadPreset := os.Getenv("UPLOAD_PRESET"); uploadPreset != "" {
		options.UploadPreset = uploadPreset
	}
	if tokenFile := os.Getenv("TOKEN_FILE"); tokenFile != "" {
		options.TokenFile = tokenFile
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}

	return options
}
