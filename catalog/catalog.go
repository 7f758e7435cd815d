// Package catalog loads the built-in provider registry shipped with the
// module. The registry is a static YAML document embedded at build time;
// consumers can also parse their own document to extend or replace it.
package catalog

import (
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-connectors/core"
)

//go:embed catalog.yaml
var builtinCatalog []byte

type document struct {
	Providers []core.ProviderEntry `yaml:"providers"`
}

// Parse decodes a catalog document and validates it into a core.Catalog.
func Parse(logger core.Logger, data []byte) (*core.Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode document: %w", err)
	}
	if len(doc.Providers) == 0 {
		return nil, fmt.Errorf("catalog: document has no providers")
	}
	return core.NewCatalog(logger, doc.Providers)
}

// Load reads and parses a catalog document from r.
func Load(logger core.Logger, r io.Reader) (*core.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read document: %w", err)
	}
	return Parse(logger, data)
}

// Builtin returns the catalog embedded in the module.
func Builtin(logger core.Logger) (*core.Catalog, error) {
	return Parse(logger, builtinCatalog)
}
