package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config describes where syllabus keeps its files and which catalog it reads.
type Config interface {
	BasePath() string
	CatalogSource() string
	LogLevel() string
	LogFile() string
	ContentStyle() string
}

// LoadConfig reads .syllabus.yaml from $SYLLABUS_CONFIG_PATH or the working
// directory, with SYLLABUS_* environment overrides.
func LoadConfig() (Config, error) {
	return loadConfig(viper.GetViper())
}

func loadConfig(v *viper.Viper) (Config, error) {
	v.SetDefault("path", "~/.syllabus.db")
	v.SetDefault("catalog", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("content.style", "auto")
	v.SetConfigName(".syllabus") // .yaml is implicit
	v.SetEnvPrefix("SYLLABUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("SYLLABUS_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	logFile, err := homedir.Expand(v.GetString("log.file"))
	if err != nil {
		return nil, fmt.Errorf("store: expand log file: %w", err)
	}

	return &fileConfig{
		Path:    path,
		Catalog: v.GetString("catalog"),
		Level:   v.GetString("log.level"),
		File:    logFile,
		Style:   v.GetString("content.style"),
	}, nil
}

type fileConfig struct {
	Path    string `json:"path"`
	Catalog string `json:"catalog"`
	Level   string `json:"logLevel"`
	File    string `json:"logFile"`
	Style   string `json:"contentStyle"`
}

func (f *fileConfig) BasePath() string      { return f.Path }
func (f *fileConfig) CatalogSource() string { return f.Catalog }
func (f *fileConfig) LogLevel() string      { return f.Level }
func (f *fileConfig) LogFile() string       { return f.File }
func (f *fileConfig) ContentStyle() string  { return f.Style }

// StaticConfig is a Config with fixed values, used by tests and callers that
// already resolved their settings.
type StaticConfig struct {
	Path    string
	Catalog string
	Level   string
	File    string
	Style   string
}

func (s StaticConfig) BasePath() string      { return s.Path }
func (s StaticConfig) CatalogSource() string { return s.Catalog }
func (s StaticConfig) LogLevel() string      { return s.Level }
func (s StaticConfig) LogFile() string       { return s.File }
func (s StaticConfig) ContentStyle() string  { return s.Style }
