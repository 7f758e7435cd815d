package core

import (
	"fmt"
	"sort"
	"strings"
)

// ProviderURLs describes how a provider instance is addressed. A relative
// authBaseUrl or apiUrl (leading "/"), or an empty apiUrl, signals a
// templated URL that must be completed with a customer subdomain at call
// time.
type ProviderURLs struct {
	AuthBaseURL string `yaml:"auth_base_url"`
	APIURL      string `yaml:"api_url"`
}

// ProviderEntry is one (vertical, provider) row of the catalog.
type ProviderEntry struct {
	Vertical      string         `yaml:"vertical"`
	Provider      string         `yaml:"provider"`
	AuthStrategy  AuthStrategy   `yaml:"auth_strategy"`
	URLs          ProviderURLs   `yaml:"urls"`
	SoftwareModes []SoftwareMode `yaml:"software_modes"`
	Logo          string         `yaml:"logo"`
}

func (e ProviderEntry) key() string {
	return catalogKey(e.Provider, e.Vertical)
}

func (e ProviderEntry) Validate() error {
	if strings.TrimSpace(e.Vertical) == "" {
		return fmt.Errorf("core: catalog entry vertical is required")
	}
	if strings.TrimSpace(e.Provider) == "" {
		return fmt.Errorf("core: catalog entry provider is required")
	}
	if !e.AuthStrategy.Valid() {
		return fmt.Errorf("%w: catalog entry %s/%s", ErrInvalidAuthMode, e.Vertical, e.Provider)
	}
	return nil
}

// Catalog is the statically enumerated (vertical, provider) registry. It is
// validated at construction so an unregistered pair is a startup-time fact,
// and read-only afterwards, safe for unbounded concurrent lookups.
type Catalog struct {
	logger  Logger
	entries map[string]ProviderEntry
}

func NewCatalog(logger Logger, entries []ProviderEntry) (*Catalog, error) {
	indexed := make(map[string]ProviderEntry, len(entries))
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
		key := entry.key()
		if _, exists := indexed[key]; exists {
			return nil, fmt.Errorf("core: duplicate catalog entry: %s/%s", entry.Vertical, entry.Provider)
		}
		indexed[key] = entry
	}
	return &Catalog{logger: logger, entries: indexed}, nil
}

func catalogKey(provider, vertical string) string {
	return strings.ToLower(strings.TrimSpace(vertical)) + "/" + strings.ToLower(strings.TrimSpace(provider))
}

func (c *Catalog) Lookup(provider, vertical string) (ProviderEntry, bool) {
	if c == nil {
		return ProviderEntry{}, false
	}
	entry, ok := c.entries[catalogKey(provider, vertical)]
	return entry, ok
}

// Entries returns the catalog rows sorted by vertical then provider.
func (c *Catalog) Entries() []ProviderEntry {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]ProviderEntry, 0, len(keys))
	for _, key := range keys {
		out = append(out, c.entries[key])
	}
	return out
}

// NeedsSubdomain reports whether the provider must be addressed through a
// customer-supplied subdomain. A lookup miss logs a diagnostic and returns
// false: this is a best-effort UX hint, not a security gate.
func (c *Catalog) NeedsSubdomain(provider, vertical string) bool {
	entry, ok := c.Lookup(provider, vertical)
	if !ok {
		if c != nil && c.logger != nil {
			c.logger.Error("catalog lookup miss",
				"provider", strings.TrimSpace(provider),
				"vertical", strings.TrimSpace(vertical),
			)
		}
		return false
	}

	authBaseRelative := strings.HasPrefix(entry.URLs.AuthBaseURL, "/")
	apiRelative := strings.HasPrefix(entry.URLs.APIURL, "/")
	apiBlank := entry.URLs.APIURL == ""
	return authBaseRelative || apiRelative || apiBlank
}
