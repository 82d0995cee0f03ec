package extractor

import (
	"fmt"

	"flowcase/internal/config"
	"flowcase/internal/port"
)

// ProviderFactory is a function that creates a ScenarioExtractor from the
// extractor config.
type ProviderFactory func(cfg *config.ExtractorConfig) (port.ScenarioExtractor, error)

// registry of extractor provider factories, populated via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an extractor provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// New creates a ScenarioExtractor from the config using the registered factory.
func New(cfg *config.ExtractorConfig) (port.ScenarioExtractor, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown extractor provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
