package ports

import "github.com/yrrapt/yaaade/internal/domain"

// SettingsLoader loads the global settings document (include + pvt).
// The path may start with a $VAR token.
type SettingsLoader interface {
	LoadSettings(path string) (domain.GlobalSettings, error)
}
