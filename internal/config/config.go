package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const delim = "."

// Defaults applied before any file or environment source.
var Defaults = map[string]any{
	"web.port":                       "8080",
	"web.request_timeout":            "30s",
	"log.level":                      "info",
	"log.format":                     "text",
	"db.mongo.url":                   "mongodb://localhost:27017",
	"db.mongo.name":                  "dinein",
	"db.mongo.transactions":          false,
	"nats.enabled":                   true,
	"nats.url":                       "nats://localhost:4222",
	"nats.stream.enabled":            false,
	"nats.stream.max_age":            "24h",
	"auth.jwt.issuer":                "dinein",
	"auth.jwt.secret":                "",
	"auth.staff_checks":              true,
	"orders.timezone":                "Local",
	"payment.stripe.api_version":     "",
	"payment.stripe.secret_key":      "",
	"payment.default_country":        "US",
	"payment.currency":               "usd",
	"payment.onboarding.refresh_url": "http://localhost:8080/payments/onboarding/refresh",
	"payment.onboarding.return_url":  "http://localhost:8080/payments/onboarding/return",
	"report.top_items":               5,
}

type Config struct {
	k *koanf.Koanf
}

// Options selects the file and overrides for Load.
type Options struct {
	// File is an optional YAML file; a missing file is not an error.
	File string
	// EnvFile is loaded into the environment when present (default ".env").
	EnvFile string
	// Overrides win over every other source.
	Overrides map[string]any
}

// Load builds a configuration from defaults, a YAML file, a .env file, the
// environment (NAMESPACE_SOME_KEY becomes some.key) and overrides, in that order.
func Load(namespace string, opts Options) (*Config, error) {
	k := koanf.New(delim)

	if err := k.Load(confmap.Provider(Defaults, delim), nil); err != nil {
		return nil, fmt.Errorf("cannot load defaults: %w", err)
	}

	prefix := strings.ToUpper(namespace) + "_"

	path := opts.File
	if path == "" {
		path = os.Getenv(prefix + "CONFIG_FILE")
	}
	if path != "" && exists(path) {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("cannot load config file %s: %w", path, err)
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if exists(envFile) {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("cannot load env file %s: %w", envFile, err)
		}
	}

	envProvider := env.Provider(prefix, delim, func(s string) string {
		return envKey(strings.TrimPrefix(s, prefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("cannot load environment: %w", err)
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, delim), nil); err != nil {
			return nil, fmt.Errorf("cannot load overrides: %w", err)
		}
	}

	return &Config{k: k}, nil
}

// envKey maps SOME_KEY to a known key whose dotted form flattens to it, so
// PAYMENT_STRIPE_SECRET_KEY reaches payment.stripe.secret_key. Unknown names
// fall back to one level per underscore.
func envKey(name string) string {
	name = strings.ToLower(name)
	for k := range Defaults {
		if strings.ReplaceAll(k, delim, "_") == name {
			return k
		}
	}
	return strings.ReplaceAll(name, "_", delim)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// New returns a config holding Defaults merged with values. Used by tests and tools.
func New(values ...map[string]any) *Config {
	k := koanf.New(delim)
	_ = k.Load(confmap.Provider(Defaults, delim), nil)
	for _, v := range values {
		_ = k.Load(confmap.Provider(v, delim), nil)
	}
	return &Config{k: k}
}

func (c *Config) GetString(key string) (string, bool) {
	if c == nil || !c.k.Exists(key) {
		return "", false
	}
	return c.k.String(key), true
}

func (c *Config) GetStringOrDef(key, def string) string {
	v, ok := c.GetString(key)
	if !ok || v == "" {
		return def
	}
	return v
}

func (c *Config) GetInt(key string) (int, bool) {
	if c == nil || !c.k.Exists(key) {
		return 0, false
	}
	return c.k.Int(key), true
}

func (c *Config) GetIntOrDef(key string, def int) int {
	v, ok := c.GetInt(key)
	if !ok || v == 0 {
		return def
	}
	return v
}

// GetBool accepts native booleans and the strings "true", "1", "yes", "on".
func (c *Config) GetBool(key string) bool {
	if c == nil || !c.k.Exists(key) {
		return false
	}
	switch v := c.k.Get(key).(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "1", "yes", "on":
			return true
		}
		return false
	default:
		return c.k.Bool(key)
	}
}

func (c *Config) GetDuration(key string, def time.Duration) time.Duration {
	if c == nil || !c.k.Exists(key) {
		return def
	}
	d := c.k.Duration(key)
	if d <= 0 {
		return def
	}
	return d
}

func (c *Config) GetStringSlice(key string) []string {
	if c == nil || !c.k.Exists(key) {
		return nil
	}
	if s, ok := c.k.Get(key).(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return c.k.Strings(key)
}

// Location resolves a timezone key; invalid or empty names fall back to time.Local.
func (c *Config) Location(key string) *time.Location {
	name := c.GetStringOrDef(key, "Local")
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
