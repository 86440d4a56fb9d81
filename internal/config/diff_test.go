package config_test

import (
	"testing"

	"github.com/clarionvoice/clarion/internal/config"
)

func baseConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.ListenAddr = ":8080"
	cfg.Server.LogLevel = config.LogInfo
	cfg.Storage.Backend = config.StorageFile
	cfg.Storage.FilePath = "history.jsonl"
	cfg.Catalog.Path = "catalog.yaml"
	cfg.Analysis.PhoneticThreshold = 0.7
	return cfg
}

func TestDiffNoChanges(t *testing.T) {
	t.Parallel()

	d := config.Diff(baseConfig(), baseConfig())
	if d.Changed() {
		t.Errorf("Diff of identical configs reports changes: %+v", d)
	}
}

func TestDiffLogLevel(t *testing.T) {
	t.Parallel()

	next := baseConfig()
	next.Server.LogLevel = config.LogDebug
	d := config.Diff(baseConfig(), next)
	if !d.LogLevelChanged {
		t.Fatal("LogLevelChanged not set")
	}
	if d.NewLogLevel != config.LogDebug {
		t.Errorf("NewLogLevel = %q, want debug", d.NewLogLevel)
	}
	if d.RequiresRestart {
		t.Error("log level change should not require restart")
	}
}

func TestDiffCatalogAndThreshold(t *testing.T) {
	t.Parallel()

	next := baseConfig()
	next.Catalog.Path = "other.yaml"
	next.Analysis.PhoneticThreshold = 0.8
	d := config.Diff(baseConfig(), next)
	if !d.CatalogPathChanged || d.NewCatalogPath != "other.yaml" {
		t.Errorf("catalog diff = %+v, want path other.yaml", d)
	}
	if !d.ThresholdChanged || d.NewThreshold != 0.8 {
		t.Errorf("threshold diff = %+v, want 0.8", d)
	}
}

func TestDiffRequiresRestart(t *testing.T) {
	t.Parallel()

	next := baseConfig()
	next.Storage.Backend = config.StoragePostgres
	next.Storage.PostgresDSN = "postgres://localhost/clarion"
	d := config.Diff(baseConfig(), next)
	if !d.RequiresRestart {
		t.Error("storage backend change should require restart")
	}

	next = baseConfig()
	next.Server.ListenAddr = ":9090"
	d = config.Diff(baseConfig(), next)
	if !d.RequiresRestart {
		t.Error("listen address change should require restart")
	}
}
