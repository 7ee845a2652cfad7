package commands

import (
	"errors"
	"fmt"
	"freeroom/lib/artifact"
	"freeroom/lib/configutil"
	configlibsql "freeroom/lib/configutil/libsql"
	"freeroom/services/notify"
	"freeroom/services/report"
	"log/slog"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
)

const (
	usernameEnv = "YOUR_NEUQ_USERNAME"
	passwordEnv = "YOUR_NEUQ_PASSWORD"
)

type PortalConfig struct {
	BaseUrl          string `json:"base_url"`
	RequestDelayMs   int    `json:"request_delay_ms"`
	LoginDelayMs     int    `json:"login_delay_ms"`
	TimeoutSeconds   int    `json:"timeout_seconds"`
	CloudflareBypass bool   `json:"cloudflare_bypass"`
	// request dumps are written here while debug logging is on
	DumpDir string `json:"dump_dir"`
}

type Config struct {
	Portal PortalConfig `json:"portal"`

	DataDir string `json:"data_dir"`
	Days    int    `json:"days"`

	// empty uses a bare generated template
	Template     string   `json:"template"`
	EventsFile   string   `json:"events_file"`
	QuotesFile   string   `json:"quotes_file"`
	DenylistFile string   `json:"denylist_file"`
	OutputHtml   string   `json:"output_html"`
	CnameFile    string   `json:"cname_file"`
	Patterns     []string `json:"patterns"`

	Database  configlibsql.Struct `json:"database"`
	KeepRuns  int                 `json:"keep_runs_days"`
	Notify    notify.Options      `json:"notify"`
	Artifacts artifact.Config     `json:"artifacts"`
}

func defaultConfig() Config {
	return Config{
		Portal: PortalConfig{
			BaseUrl:        "https://jwxt.neuq.edu.cn/eams",
			RequestDelayMs: 500,
			LoginDelayMs:   500,
			TimeoutSeconds: 30,
		},
		DataDir:      ".",
		Days:         7,
		EventsFile:   "calendar/neuq_events.json",
		QuotesFile:   "quotes/quotes.json",
		DenylistFile: "config/denylist.json5",
		OutputHtml:   "index.html",
		CnameFile:    "CNAME",
		Patterns:     report.DefaultPatterns,
		KeepRuns:     90,
	}
}

func (c Config) requestDelay() time.Duration {
	return time.Duration(c.Portal.RequestDelayMs) * time.Millisecond
}

func (c Config) loginDelay() time.Duration {
	return time.Duration(c.Portal.LoginDelayMs) * time.Millisecond
}

func (c Config) timeout() time.Duration {
	return time.Duration(c.Portal.TimeoutSeconds) * time.Second
}

// domain returns the contents of the CNAME file, empty when there is none.
func (c Config) domain() string {
	if c.CnameFile == "" {
		return ""
	}
	contents, err := os.ReadFile(c.CnameFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to read CNAME file", "path", c.CnameFile, "err", err)
		}
		return ""
	}
	return strings.TrimSpace(string(contents))
}

var cfg Config

func loadConfig(path, envPath string) error {
	err := configutil.LoadDotenv(envPath)
	if err != nil {
		return err
	}

	cfg = defaultConfig()
	fileConfig, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("no config file found, using defaults", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	// values left out of the file keep their defaults
	return mergo.Merge(&cfg, fileConfig, mergo.WithOverride)
}

// credentials are only needed by the commands that talk to the portal.
func credentials() (username, password string, err error) {
	values, err := configutil.RequireEnv(usernameEnv, passwordEnv)
	if err != nil {
		return "", "", err
	}
	return values[0], values[1], nil
}
