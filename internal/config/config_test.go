package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemDefaults(t *testing.T) {
	cfg := SystemDefaults()
	assert.Equal(t, "report.json", cfg.Output.Path)
	assert.Equal(t, ".pyvet/runs", cfg.Store.Dir)
	assert.False(t, cfg.Telemetry.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestMergeConfigs(t *testing.T) {
	base := SystemDefaults()
	project := &Config{
		Output: OutputConfig{Format: "sarif"},
		Store:  StoreConfig{Dir: "/var/lib/pyvet/runs"},
	}

	merged := MergeConfigs(base, project)

	assert.Equal(t, "sarif", merged.Output.Format)
	assert.Equal(t, "/var/lib/pyvet/runs", merged.Store.Dir)
	assert.Equal(t, "report.json", merged.Output.Path, "lower tier survives where upper tier is silent")
	assert.Equal(t, ".pyvet/history.db", merged.Store.HistoryDB)
}

func TestMergeConfigsNilTier(t *testing.T) {
	merged := MergeConfigs(SystemDefaults(), nil, nil)
	assert.Equal(t, "report.json", merged.Output.Path)
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: ["), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadTiered(t *testing.T) {
	dir := t.TempDir()
	machine := filepath.Join(dir, "machine.yaml")
	project := filepath.Join(dir, "project.yaml")

	require.NoError(t, os.WriteFile(machine, []byte("output:\n  format: json\nserve:\n  addr: 0.0.0.0:9000\n"), 0644))
	require.NoError(t, os.WriteFile(project, []byte("output:\n  format: markdown\n"), 0644))

	cfg, err := LoadTiered(machine, project)
	require.NoError(t, err)

	assert.Equal(t, "markdown", cfg.Output.Format, "project overrides machine")
	assert.Equal(t, "0.0.0.0:9000", cfg.Serve.Addr, "machine overrides defaults")
	assert.Equal(t, "report.json", cfg.Output.Path, "defaults survive")
}

func TestValidate(t *testing.T) {
	cfg := SystemDefaults()
	cfg.Output.Format = "xml"
	assert.ErrorContains(t, cfg.Validate(), "output.format")

	cfg = SystemDefaults()
	cfg.Telemetry.Enabled = true
	assert.ErrorContains(t, cfg.Validate(), "telemetry.endpoint")

	cfg = SystemDefaults()
	cfg.Telemetry.Protocol = "udp"
	assert.ErrorContains(t, cfg.Validate(), "telemetry.protocol")
}
