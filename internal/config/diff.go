package config

// ConfigDiff describes what changed between two configs, field by field,
// so the host can apply what it supports live and report the rest. Listen
// address and storage changes always set RequiresRestart.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	CatalogPathChanged bool
	NewCatalogPath     string

	ThresholdChanged bool
	NewThreshold     float64

	// RequiresRestart is set when the listen address or storage backend
	// configuration changed, which cannot be applied live.
	RequiresRestart bool
}

// Changed reports whether the diff carries any change at all.
func (d ConfigDiff) Changed() bool {
	return d.LogLevelChanged || d.CatalogPathChanged || d.ThresholdChanged || d.RequiresRestart
}

// Diff compares old and new configs and returns what changed.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}
	if old.Catalog.Path != new.Catalog.Path {
		d.CatalogPathChanged = true
		d.NewCatalogPath = new.Catalog.Path
	}
	if old.Analysis.PhoneticThreshold != new.Analysis.PhoneticThreshold {
		d.ThresholdChanged = true
		d.NewThreshold = new.Analysis.PhoneticThreshold
	}
	if old.Server.ListenAddr != new.Server.ListenAddr || old.Storage != new.Storage {
		d.RequiresRestart = true
	}

	return d
}
