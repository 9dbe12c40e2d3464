package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage_path: storage/leads.db
http_server:
  address: localhost:9090
analytics:
  ga4_measurement_id: G-TEST123
experiments:
  - name: hero-cta
    variants: [control, quote]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "localhost:9090", cfg.Addr)
	require.Equal(t, 10*time.Second, cfg.ReadTimeout)
	require.Equal(t, "G-TEST123", cfg.Analytics.GA4MeasurementID)
	require.Equal(t, "SunVista Solar Design", cfg.Site.Name)
	require.Len(t, cfg.Experiments, 1)
	require.Equal(t, []string{"control", "quote"}, cfg.Experiments[0].Variants)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_RejectsSingleVariantExperiment(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage_path: leads.db
http_server:
  address: localhost:9090
experiments:
  - name: hero-cta
    variants: [control]
`)

	_, err := Load(path)
	require.ErrorContains(t, err, "at least two variants")
}

func TestLoad_RejectsDuplicateExperiment(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage_path: leads.db
http_server:
  address: localhost:9090
experiments:
  - name: a
    variants: [x, y]
  - name: a
    variants: [x, y]
`)

	_, err := Load(path)
	require.ErrorContains(t, err, "declared twice")
}
