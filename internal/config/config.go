package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ZhihuClipper/pkg/logger"
)

const (
	configPathEnv = "ZHIHU_CLIPPER_CONFIG"
	logLevelEnv   = "LOG_LEVEL"
	cookieEnv     = "ZHIHU_COOKIE"
	userAgentEnv  = "ZHIHU_USER_AGENT"
	serverAddrEnv = "CLIPPER_SERVER_ADDR"
	browserEnv    = "CLIPPER_BROWSER"

	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

var bootLog = logger.New("config")

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Browser BrowserConfig `yaml:"browser"`
	Panel   PanelConfig   `yaml:"panel"`
	Server  ServerConfig  `yaml:"server"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FetchConfig describes plain HTTP page downloads.
type FetchConfig struct {
	UserAgent    string        `yaml:"userAgent"`
	Cookie       string        `yaml:"cookie"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxBodyBytes int64         `yaml:"maxBodyBytes"`
}

// BrowserConfig describes headless Chrome rendering.
type BrowserConfig struct {
	Enabled      bool          `yaml:"enabled"`
	Headless     bool          `yaml:"headless"`
	Timeout      time.Duration `yaml:"timeout"`
	WaitSelector string        `yaml:"waitSelector"`
}

// PanelConfig drives the side panel presentation.
type PanelConfig struct {
	LineDelay time.Duration `yaml:"lineDelay"`
	Clipboard bool          `yaml:"clipboard"`
}

// ServerConfig holds the panel server listen address.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads .env and the YAML configuration (if present) and applies environment overrides.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		bootLog.Printf("cannot read .env: %v", err)
	}

	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			bootLog.Printf("cannot read %s: %v (falling back to defaults)", path, err)
		} else if fileCfg, err := Parse(raw); err != nil {
			bootLog.Printf("cannot parse %s: %v (falling back to defaults)", path, err)
		} else {
			cfg = fileCfg
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Parse decodes a YAML document over the defaults. Keys present in the
// document win, including zero values such as `clipboard: false` or `lineDelay: 0s`.
func Parse(raw []byte) (Config, error) {
	cfg := defaultConfig()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(cookieEnv); v != "" {
		c.Fetch.Cookie = v
	}

	if v := os.Getenv(userAgentEnv); v != "" {
		c.Fetch.UserAgent = v
	}

	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}

	if v := os.Getenv(browserEnv); v != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			bootLog.Printf("ignoring %s=%q: %v", browserEnv, v, err)
		} else {
			c.Browser.Enabled = enabled
		}
	}
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Fetch: FetchConfig{
			UserAgent:    defaultUserAgent,
			Timeout:      20 * time.Second,
			MaxBodyBytes: 8 << 20,
		},
		Browser: BrowserConfig{
			Enabled:      false,
			Headless:     true,
			Timeout:      60 * time.Second,
			WaitSelector: "body",
		},
		Panel: PanelConfig{
			LineDelay: 100 * time.Millisecond,
			Clipboard: true,
		},
		Server: ServerConfig{Addr: "127.0.0.1:8787"},
	}
}
