package config

// MergeLocal merges per-directory overrides into a global config,
// returning a new Config without mutating the global.
// Returns global unchanged if local is nil.
func MergeLocal(global Config, local *Local) Config {
	if local == nil {
		return global
	}

	merged := global

	if local.Prefix != nil {
		merged.Prefix = *local.Prefix
	}
	if local.FilenameTemplate != nil {
		merged.FilenameTemplate = *local.FilenameTemplate
	}
	if local.FoldernameTemplate != nil {
		merged.FoldernameTemplate = *local.FoldernameTemplate
	}
	if local.Delimiter != nil {
		merged.Delimiter = *local.Delimiter
	}
	if local.Format != nil {
		merged.Format = *local.Format
	}
	if local.Quality != nil {
		merged.Quality = *local.Quality
	}
	if local.CounterDigits != nil {
		merged.CounterDigits = *local.CounterDigits
	}
	if local.CounterPosition != nil {
		merged.CounterPosition = *local.CounterPosition
	}
	if local.PerDirectoryCounter != nil {
		merged.PerDirectoryCounter = *local.PerDirectoryCounter
	}
	if local.OutputDir != nil {
		merged.OutputDir = *local.OutputDir
	}
	if local.JobData != nil {
		merged.JobData = *local.JobData
	}
	if local.History != nil {
		merged.History = *local.History
	}

	return merged
}
