// Package zendesk provides mappers for the Zendesk ticketing provider.
package zendesk

import (
	"github.com/goliatone/go-connectors/core"
)

const (
	slugName        = "name"
	slugDescription = "description"
)

// CollectionMapper converts unified ticketing collections to and from Zendesk
// group payloads. The native field names happen to match the unified slugs;
// the mapper still filters unmapped fields and handles remote id lifting.
type CollectionMapper struct{}

func NewCollectionMapper() CollectionMapper {
	return CollectionMapper{}
}

// RegisterCollectionMapper installs the mapper under ticketing/collection/zendesk.
func RegisterCollectionMapper(registry *core.MapperRegistry) error {
	return registry.Register("ticketing", "collection", "zendesk", NewCollectionMapper())
}

func (CollectionMapper) Desunify(source map[string]any, mappings []core.CustomFieldMapping) (map[string]any, error) {
	target := map[string]any{}
	if value, ok := source[slugName]; ok {
		target[slugName] = value
	}
	if value, ok := source[slugDescription]; ok {
		target[slugDescription] = value
	}
	core.DesunifyCustomFields(source, target, mappings)
	return target, nil
}

func (CollectionMapper) Unify(source any, mappings []core.CustomFieldMapping) (any, error) {
	return core.UnifyEach(source, func(payload map[string]any) (map[string]any, error) {
		target := map[string]any{}
		if value, ok := payload[slugName]; ok {
			target[slugName] = value
		}
		if value, ok := payload[slugDescription]; ok {
			target[slugDescription] = value
		}
		if id, ok := payload["id"]; ok {
			target["remote_id"] = id
		}
		core.UnifyCustomFields(payload, target, mappings)
		return target, nil
	})
}

var _ core.Mapper = CollectionMapper{}
