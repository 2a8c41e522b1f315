package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/atlekbai/function_registry/internal/session"
)

// Keys, read from flags or from the environment as DATABASE_URL, PORT, ...
const (
	KeyDatabaseURL    = "database-url"
	KeyPort           = "port"
	KeyTimeZone       = "timezone"
	KeyPageSize       = "page-size"
	KeyRequestTimeout = "request-timeout"
	KeyPageTimeout    = "page-timeout"
	KeyMode           = "mode"
	KeyUsername       = "username"
	KeyClusterName    = "cluster-name"
	KeyLogLevel       = "log-level"
	KeyLogFormat      = "log-format"
)

type Config struct {
	DatabaseURL    string
	Port           string
	TimeZone       string
	PageSize       int
	RequestTimeout time.Duration
	PageTimeout    time.Duration
	Mode           string
	Username       string
	ClusterName    string
	LogLevel       string
	LogFormat      string
}

// Init registers defaults and environment binding on v.
func Init(v *viper.Viper) {
	defaults := session.Default()
	v.SetDefault(KeyDatabaseURL, "")
	v.SetDefault(KeyPort, "8080")
	v.SetDefault(KeyTimeZone, "UTC")
	v.SetDefault(KeyPageSize, defaults.PageSize)
	v.SetDefault(KeyRequestTimeout, defaults.RequestTimeout)
	v.SetDefault(KeyPageTimeout, defaults.PageTimeout)
	v.SetDefault(KeyMode, string(session.ModePlain))
	v.SetDefault(KeyUsername, "")
	v.SetDefault(KeyClusterName, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")

	// database-url -> DATABASE_URL
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	Init(viper.GetViper())
	return FromViper(viper.GetViper())
}

// FromViper reads and checks the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:    v.GetString(KeyDatabaseURL),
		Port:           v.GetString(KeyPort),
		TimeZone:       v.GetString(KeyTimeZone),
		PageSize:       v.GetInt(KeyPageSize),
		RequestTimeout: v.GetDuration(KeyRequestTimeout),
		PageTimeout:    v.GetDuration(KeyPageTimeout),
		Mode:           v.GetString(KeyMode),
		Username:       v.GetString(KeyUsername),
		ClusterName:    v.GetString(KeyClusterName),
		LogLevel:       v.GetString(KeyLogLevel),
		LogFormat:      v.GetString(KeyLogFormat),
	}
	if cfg.PageSize < 0 {
		return nil, errors.Newf("%s must not be negative, got %d", KeyPageSize, cfg.PageSize)
	}
	if _, err := cfg.Session(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Session builds the per-request session configuration.
func (c *Config) Session() (*session.Configuration, error) {
	zone, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %q", KeyTimeZone, c.TimeZone)
	}
	mode, err := session.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}
	s := session.Default()
	s.Zone = zone
	s.PageSize = c.PageSize
	s.RequestTimeout = c.RequestTimeout
	s.PageTimeout = c.PageTimeout
	s.Mode = mode
	s.Username = c.Username
	s.ClusterName = c.ClusterName
	return s, nil
}
