package main

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the process configuration, loaded from the environment.
type Config struct {
	Server struct {
		Host string
		Port string
	}
	TemplatePath string
	OutputDir    string

	Surface struct {
		BrowserPath string
		Headless    bool
		Args        []string
		LoadTimeout time.Duration
		SettleDelay time.Duration
	}

	// AcademyKeptByStory switches the academy pruning rule to the
	// deployment variant that keeps the section for a non-blank story.
	AcademyKeptByStory bool

	Drive struct {
		CredentialsFile string
		FolderID        string
	}

	SQLitePath string
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	cfg := Config{}
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = "8080"
	cfg.TemplatePath = "./templates/report.html"
	cfg.OutputDir = "./output"
	cfg.Surface.Headless = true
	cfg.Surface.LoadTimeout = 30 * time.Second
	cfg.Surface.SettleDelay = 2 * time.Second
	return cfg
}

// FromEnv loads defaults and applies environment overrides.
func FromEnv() Config {
	cfg := Defaults()

	if host := os.Getenv("HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if path := os.Getenv("REPORT_TEMPLATE_PATH"); path != "" {
		cfg.TemplatePath = path
	}
	if dir := os.Getenv("REPORT_OUTPUT_DIR"); dir != "" {
		cfg.OutputDir = dir
	}
	if path := os.Getenv("CHROME_BIN"); path != "" {
		cfg.Surface.BrowserPath = path
	}
	if headless := os.Getenv("CHROME_HEADLESS"); headless != "" {
		if parsed, err := strconv.ParseBool(headless); err == nil {
			cfg.Surface.Headless = parsed
		}
	}
	if args := os.Getenv("CHROME_ARGS"); args != "" {
		cfg.Surface.Args = splitCSV(args)
	}
	if timeout := os.Getenv("REPORT_LOAD_TIMEOUT"); timeout != "" {
		if parsed, err := time.ParseDuration(timeout); err == nil && parsed > 0 {
			cfg.Surface.LoadTimeout = parsed
		}
	}
	if delay := os.Getenv("REPORT_SETTLE_DELAY"); delay != "" {
		if parsed, err := time.ParseDuration(delay); err == nil && parsed > 0 {
			cfg.Surface.SettleDelay = parsed
		}
	}
	if variant := os.Getenv("REPORT_ACADEMY_KEPT_BY_STORY"); variant != "" {
		if parsed, err := strconv.ParseBool(variant); err == nil {
			cfg.AcademyKeptByStory = parsed
		}
	}
	if creds := os.Getenv("DRIVE_CREDENTIALS_FILE"); creds != "" {
		cfg.Drive.CredentialsFile = creds
	}
	if folder := os.Getenv("DRIVE_FOLDER_ID"); folder != "" {
		cfg.Drive.FolderID = folder
	}
	if dsn := os.Getenv("REPORT_SQLITE_PATH"); dsn != "" {
		cfg.SQLitePath = dsn
	}

	return cfg
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
