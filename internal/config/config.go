// Package config loads runtime settings from flags and SPLITFRIENDS_*
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mmynk/splitfriends/internal/money"
)

const (
	KeyListenAddr    = "listen_addr"
	KeyStaticPath    = "static_path"
	KeySessionSecret = "session_secret"
	KeySessionTTL    = "session_ttl"
	KeyCurrency      = "currency"
	KeySeed          = "seed"
	KeyLogLevel      = "log_level"
	KeyLogFormat     = "log_format"
	KeyLogFile       = "log_file"
	KeyServer        = "server"

	envPrefix = "SPLITFRIENDS"

	defaultListenAddr = ":8080"
	defaultSessionTTL = 24 * time.Hour
	defaultLogLevel   = "info"
	defaultLogFormat  = "text"
)

// Config aggregates runtime settings for the server and the terminal client.
type Config struct {
	ListenAddr    string
	StaticPath    string
	SessionSecret string
	SessionTTL    time.Duration
	Currency      string
	Seed          bool
	LogLevel      string
	LogFormat     string
	LogFile       string
	// Server is the base URL the terminal client talks to. Empty means an
	// in-process server.
	Server string
}

// RegisterFlags adds the shared flags to fs. Flag names use dashes; the
// matching config keys and environment variables use underscores.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(flagName(KeyListenAddr), defaultListenAddr, "listen address")
	fs.String(flagName(KeyStaticPath), "", "directory of static files to serve at /")
	fs.String(flagName(KeySessionSecret), "", "HMAC secret for session tokens (random if empty)")
	fs.Duration(flagName(KeySessionTTL), defaultSessionTTL, "session token lifetime and idle timeout")
	fs.String(flagName(KeyCurrency), money.DefaultCurrency, "ISO currency code used to display balances")
	fs.Bool(flagName(KeySeed), true, "start new sessions with the sample friends")
	fs.String(flagName(KeyLogLevel), defaultLogLevel, "log level: debug, info, warn, error")
	fs.String(flagName(KeyLogFormat), defaultLogFormat, "log format: text or json")
	fs.String(flagName(KeyLogFile), "", "write logs to this file instead of stderr")
	fs.String(flagName(KeyServer), "", "server base URL for the terminal client (in-process if empty)")
}

// Load resolves the configuration from flags, environment and defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{
		KeyListenAddr, KeyStaticPath, KeySessionSecret, KeySessionTTL, KeyCurrency,
		KeySeed, KeyLogLevel, KeyLogFormat, KeyLogFile, KeyServer,
	} {
		if f := fs.Lookup(flagName(key)); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
			}
		}
	}

	v.SetDefault(KeyListenAddr, defaultListenAddr)
	v.SetDefault(KeySessionTTL, defaultSessionTTL)
	v.SetDefault(KeyCurrency, money.DefaultCurrency)
	v.SetDefault(KeySeed, true)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogFormat, defaultLogFormat)

	cfg := &Config{
		ListenAddr:    v.GetString(KeyListenAddr),
		StaticPath:    v.GetString(KeyStaticPath),
		SessionSecret: v.GetString(KeySessionSecret),
		SessionTTL:    v.GetDuration(KeySessionTTL),
		Currency:      strings.ToUpper(v.GetString(KeyCurrency)),
		Seed:          v.GetBool(KeySeed),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFormat:     v.GetString(KeyLogFormat),
		LogFile:       v.GetString(KeyLogFile),
		Server:        v.GetString(KeyServer),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the configuration contains sane values.
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.ListenAddr) == "" {
		return fmt.Errorf("listen addr is required")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", cfg.SessionTTL)
	}
	if !money.IsKnownCurrency(cfg.Currency) {
		return fmt.Errorf("unknown currency %q", cfg.Currency)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", cfg.LogFormat)
	}
	return nil
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
