package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.properties")} {
		t.Logf("running test '%s'", path)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlrepl.properties")
	content := "prompt.primary = db>\n" +
		"prompt.continuation = ..\n" +
		"farewell = ciao\n" +
		"render.indent = 2\n" +
		"cache.size = 16\n" +
		"terminal.line_editing = false\n" +
		"terminal.history_file = /tmp/history\n" +
		"log.debug = true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, Config{
		PrimaryPrompt:      "db>",
		ContinuationPrompt: "..",
		Farewell:           "ciao",
		Indent:             2,
		CacheSize:          16,
		LineEditing:        false,
		HistoryFile:        "/tmp/history",
		Debug:              true,
	}, cfg)
	assert.Equal(t, "  ", cfg.IndentString())
}

func TestLoadConfig_ClampsNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlrepl.properties")
	require.NoError(t, os.WriteFile(path, []byte("render.indent = 40\ncache.size = -3\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, maxIndent, cfg.Indent)
	assert.Equal(t, 0, cfg.CacheSize)
}

func TestConfigPath_PrefersEnvironment(t *testing.T) {
	t.Setenv(configEnv, "/etc/sqlrepl.properties")
	assert.Equal(t, "/etc/sqlrepl.properties", ConfigPath())

	t.Setenv(configEnv, "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	assert.Equal(t, filepath.Join(home, configFileName), ConfigPath())
}

func TestSession_UsesConfiguredPromptAndFarewell(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PrimaryPrompt = "db> "
	cfg.Farewell = "ciao"
	cfg.Indent = 0

	out := &bytes.Buffer{}
	source := NewReaderSource(strings.NewReader("drop table t;\n"), out)
	session, err := NewSession("test", cfg, SQLParser{}, source, out, newTestLogger())
	require.NoError(t, err)
	require.NoError(t, session.Run())

	assert.Equal(t, "db> {\"type\":\"drop table\",\"dropTable\":{\"name\":\"t\"}}\ndb> ciao\n", out.String())
}
