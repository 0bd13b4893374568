package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	DefaultPath    = "~/.facemenu.db"
	DefaultMenuKey = "default"
)

type Config interface {
	BasePath() string
}

// Settings is the resolved facemenu configuration.
type Settings struct {
	Path     string `json:"path"`
	Menu     string `json:"menu"`
	Existing string `json:"existing,omitempty"`
	Trace    bool   `json:"trace,omitempty"`
	LogFile  string `json:"logFile,omitempty"`
}

func (s *Settings) BasePath() string {
	return s.Path
}

// MenuKey returns the configured menu key, or the default one.
func (s *Settings) MenuKey() string {
	if s.Menu == "" {
		return DefaultMenuKey
	}
	return s.Menu
}

// LoadConfig reads .facemenu.yaml from $FACEMENU_CONFIG_PATH or the working
// directory. FACEMENU_* environment variables override file values.
func LoadConfig() (*Settings, error) {
	viper.SetDefault("path", DefaultPath)
	viper.SetDefault("menu", DefaultMenuKey)
	viper.SetDefault("existing", "")
	viper.SetDefault("trace", false)
	viper.SetDefault("log-file", "")
	viper.SetConfigName(".facemenu") // .yaml is implicit
	viper.SetEnvPrefix("FACEMENU")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if override := os.Getenv("FACEMENU_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	return settingsFrom(viper.GetViper())
}

func settingsFrom(v *viper.Viper) (*Settings, error) {
	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	existing, err := homedir.Expand(v.GetString("existing"))
	if err != nil {
		return nil, fmt.Errorf("store: expand existing: %w", err)
	}
	logFile, err := homedir.Expand(v.GetString("log-file"))
	if err != nil {
		return nil, fmt.Errorf("store: expand log-file: %w", err)
	}
	return &Settings{
		Path:     path,
		Menu:     v.GetString("menu"),
		Existing: existing,
		Trace:    v.GetBool("trace"),
		LogFile:  logFile,
	}, nil
}
