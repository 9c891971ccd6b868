package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/cznic/mathutil"
	"github.com/magiconair/properties"
)

const (
	configEnv      = "SQLREPL_CONFIG"
	configFileName = ".sqlrepl.properties"

	maxIndent    = 8
	maxCacheSize = 4096
)

type Config struct {
	PrimaryPrompt      string
	ContinuationPrompt string
	Farewell           string
	Indent             int
	CacheSize          int
	LineEditing        bool
	HistoryFile        string
	Debug              bool
}

func DefaultConfig() Config {
	return Config{
		PrimaryPrompt:      "sql> ",
		ContinuationPrompt: "",
		Farewell:           "Bye!",
		Indent:             4,
		CacheSize:          128,
		LineEditing:        true,
	}
}

// ConfigPath returns $SQLREPL_CONFIG when set and ~/.sqlrepl.properties
// otherwise. It returns "" when neither can be determined.
func ConfigPath() string {
	if path := os.Getenv(configEnv); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configFileName)
}

// LoadConfig reads a properties file on top of the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return DefaultConfig(), err
	}
	return configFromProperties(p), nil
}

func configFromProperties(p *properties.Properties) Config {
	cfg := DefaultConfig()
	cfg.PrimaryPrompt = p.GetString("prompt.primary", cfg.PrimaryPrompt)
	cfg.ContinuationPrompt = p.GetString("prompt.continuation", cfg.ContinuationPrompt)
	cfg.Farewell = p.GetString("farewell", cfg.Farewell)
	cfg.Indent = mathutil.Clamp(p.GetInt("render.indent", cfg.Indent), 0, maxIndent)
	cfg.CacheSize = mathutil.Clamp(p.GetInt("cache.size", cfg.CacheSize), 0, maxCacheSize)
	cfg.LineEditing = p.GetBool("terminal.line_editing", cfg.LineEditing)
	cfg.HistoryFile = p.GetString("terminal.history_file", cfg.HistoryFile)
	cfg.Debug = p.GetBool("log.debug", cfg.Debug)
	return cfg
}

func (c Config) IndentString() string {
	return strings.Repeat(" ", c.Indent)
}
