package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// EnvPrefix namespaces environment overrides, e.g. VIDSHARE_SESSION_SECRET.
const EnvPrefix = "VIDSHARE"

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Session    SessionConfig
	Auth       AuthConfig
	Pagination PaginationConfig
	Log        LogConfig
}

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type AuthConfig struct {
	BcryptCost int
}

type PaginationConfig struct {
	PerPage    int
	MaxPerPage int
}

type LogConfig struct {
	Level  string
	Format string
}

var supportedDrivers = map[string]bool{
	"sqlite3":  true,
	"mysql":    true,
	"postgres": true,
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "video-share.db")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_name", "video_share_session")
	v.SetDefault("session.ttl", 14*24*time.Hour)
	v.SetDefault("session.secure", false)
	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("pagination.per_page", 10)
	v.SetDefault("pagination.max_per_page", 100)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads config.yaml from cmd/config/ or the working directory (the file
// is optional), then applies VIDSHARE_* environment overrides. A .env file in
// the working directory is loaded into the environment first if present.
func Load(paths ...string) (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"cmd/config/", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			Driver: v.GetString("database.driver"),
			DSN:    v.GetString("database.dsn"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("session.secret"),
			CookieName: v.GetString("session.cookie_name"),
			TTL:        v.GetDuration("session.ttl"),
			Secure:     v.GetBool("session.secure"),
		},
		Auth: AuthConfig{
			BcryptCost: v.GetInt("auth.bcrypt_cost"),
		},
		Pagination: PaginationConfig{
			PerPage:    v.GetInt("pagination.per_page"),
			MaxPerPage: v.GetInt("pagination.max_per_page"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate collects every configuration problem instead of stopping at the first.
func (c *Config) Validate() error {
	var problems []string
	if c.Session.Secret == "" {
		problems = append(problems, "session.secret must be set")
	}
	if c.Session.CookieName == "" {
		problems = append(problems, "session.cookie_name must be set")
	}
	if c.Session.TTL <= 0 {
		problems = append(problems, "session.ttl must be positive")
	}
	if !supportedDrivers[c.Database.Driver] {
		problems = append(problems, fmt.Sprintf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		problems = append(problems, "database.dsn must be set")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		problems = append(problems, fmt.Sprintf("auth.bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Pagination.PerPage <= 0 {
		problems = append(problems, "pagination.per_page must be positive")
	}
	if c.Pagination.MaxPerPage < c.Pagination.PerPage {
		problems = append(problems, "pagination.max_per_page must be at least pagination.per_page")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
