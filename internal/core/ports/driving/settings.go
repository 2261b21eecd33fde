package driving

import "github.com/custodia-labs/lectern/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves settings from defaults, the config file and the environment.
	Get() (*domain.Settings, error)

	// Set validates and persists a single key.
	Set(key, value string) error

	// Keys returns every supported configuration key.
	Keys() []string

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}
