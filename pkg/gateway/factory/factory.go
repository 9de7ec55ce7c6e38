package factory

import (
	"fmt"

	"oak-village-be/pkg/gateway"
	"oak-village-be/pkg/gateway/gemini"
)

// NewGatewayFactory builds a factory for the configured provider. The
// factory hands out a fresh handle per use instead of a module singleton.
func NewGatewayFactory(providerType string, cfg gemini.Config) (gateway.Factory, error) {
	switch providerType {
	case "gemini":
		return gateway.FactoryFunc(func() gateway.Gateway {
			return gemini.NewClient(cfg)
		}), nil
	default:
		return nil, fmt.Errorf("unsupported gateway provider: %s", providerType)
	}
}
