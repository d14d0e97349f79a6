package ai

import "fmt"

// ConfigError means the selected provider has no credential. It is raised
// before any network call.
type ConfigError struct {
	Provider string
	Key      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s not configured", e.Provider, e.Key)
}

// ProviderError is a non-2xx reply from the provider. Body is an excerpt
// kept for logs only.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %d", e.Provider, e.StatusCode)
}
