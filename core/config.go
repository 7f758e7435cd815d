package core

import (
	"fmt"
	"strings"
)

type CatalogConfig struct {
	EnabledVerticals []string `koanf:"enabled_verticals" mapstructure:"enabled_verticals"`
}

type Config struct {
	ServiceName string        `koanf:"service_name" mapstructure:"service_name"`
	Catalog     CatalogConfig `koanf:"catalog" mapstructure:"catalog"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "connectors",
		Catalog:     CatalogConfig{},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	return nil
}

// verticalEnabled is an advisory gate: an empty list enables every vertical.
func (c Config) verticalEnabled(vertical string) bool {
	if len(c.Catalog.EnabledVerticals) == 0 {
		return true
	}
	needle := strings.ToLower(strings.TrimSpace(vertical))
	for _, candidate := range c.Catalog.EnabledVerticals {
		if strings.ToLower(strings.TrimSpace(candidate)) == needle {
			return true
		}
	}
	return false
}
