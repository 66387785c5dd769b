// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	KeyListen     = "listen"
	KeyBackend    = "backend"
	KeySQLitePath = "sqlite_path"
	KeyServerURL  = "server_url"
	KeySessionID  = "session_id"

	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config carries the settings of both binaries: orderd reads Listen/Backend/
// SQLitePath, tablectl reads ServerURL/SessionID.
type Config struct {
	Listen     string
	Backend    string
	SQLitePath string
	ServerURL  string
	SessionID  string
}

// Load reads config.yaml from configDir (missing file is not an error),
// applies TABLESIDE_* environment overrides, and honors PORT for the listen
// address (Cloud Run convention).
func Load(configDir string) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyListen, ":8080")
	v.SetDefault(KeyBackend, BackendMemory)
	v.SetDefault(KeySQLitePath, "tableside.db")
	v.SetDefault(KeyServerURL, "http://localhost:8080")
	v.SetDefault(KeySessionID, "")

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	if strings.TrimSpace(configDir) != "" {
		v.AddConfigPath(configDir)
	} else {
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("TABLESIDE")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Listen:     strings.TrimSpace(v.GetString(KeyListen)),
		Backend:    strings.TrimSpace(v.GetString(KeyBackend)),
		SQLitePath: strings.TrimSpace(v.GetString(KeySQLitePath)),
		ServerURL:  strings.TrimRight(strings.TrimSpace(v.GetString(KeyServerURL)), "/"),
		SessionID:  strings.TrimSpace(v.GetString(KeySessionID)),
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Listen = ":" + port
	}

	switch cfg.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("config: unknown backend %q (want %s or %s)", cfg.Backend, BackendMemory, BackendSQLite)
	}

	return cfg, nil
}
