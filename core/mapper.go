package core

import (
	"fmt"
	"strings"
	"sync"
)

// CustomFieldMapping associates a canonical unified field name (Slug) with a
// provider-native field identifier (RemoteID). Mappings extend the fixed
// unification schema per customer; zero or more may accompany any
// unify/desunify call, in any order.
type CustomFieldMapping struct {
	Slug     string
	RemoteID string
}

// Mapper converts between the canonical unified schema and one provider's
// native schema for one resource kind. Implementations must be pure: safe to
// call concurrently from independent sync workers with no ordering
// dependency between calls.
//
// Desunify projects fixed unified fields onto provider-native names and
// additionally writes source[slug] into the payload under remote_id for each
// mapping whose slug is present. Fields with neither a fixed correspondence
// nor a mapping are dropped, never invented.
//
// Unify is the inverse projection. It accepts either a single provider
// payload (map[string]any) or a slice of payloads and preserves that
// single/collection shape, including slice length and order. Missing remote
// fields leave the unified slug absent, not null-filled.
type Mapper interface {
	Desunify(source map[string]any, mappings []CustomFieldMapping) (map[string]any, error)
	Unify(source any, mappings []CustomFieldMapping) (any, error)
}

// DesunifyCustomFields copies source[slug] into target[remoteID] for every
// mapping whose slug is present in source. Shared by mapper implementations
// so unify and desunify agree on custom-field placement.
func DesunifyCustomFields(source, target map[string]any, mappings []CustomFieldMapping) {
	for _, mapping := range mappings {
		slug := strings.TrimSpace(mapping.Slug)
		remoteID := strings.TrimSpace(mapping.RemoteID)
		if slug == "" || remoteID == "" {
			continue
		}
		if value, ok := source[slug]; ok {
			target[remoteID] = value
		}
	}
}

// UnifyCustomFields copies remote[remoteID] into target[slug] for every
// mapping whose remote field is present.
func UnifyCustomFields(remote, target map[string]any, mappings []CustomFieldMapping) {
	for _, mapping := range mappings {
		slug := strings.TrimSpace(mapping.Slug)
		remoteID := strings.TrimSpace(mapping.RemoteID)
		if slug == "" || remoteID == "" {
			continue
		}
		if value, ok := remote[remoteID]; ok {
			target[slug] = value
		}
	}
}

// UnifyEach applies a single-payload projection over either shape accepted
// by Unify, preserving the single/collection distinction.
func UnifyEach(source any, project func(map[string]any) (map[string]any, error)) (any, error) {
	switch typed := source.(type) {
	case map[string]any:
		return project(typed)
	case []map[string]any:
		out := make([]map[string]any, 0, len(typed))
		for _, payload := range typed {
			unified, err := project(payload)
			if err != nil {
				return nil, err
			}
			out = append(out, unified)
		}
		return out, nil
	case []any:
		out := make([]map[string]any, 0, len(typed))
		for _, item := range typed {
			payload, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("core: unify expects object payloads, got %T", item)
			}
			unified, err := project(payload)
			if err != nil {
				return nil, err
			}
			out = append(out, unified)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("core: unify expects a payload or a payload slice, got %T", source)
	}
}

type mapperKey struct {
	vertical string
	resource string
	provider string
}

// MapperRegistry holds one Mapper per (vertical, resource, provider) triple.
// Registration happens at startup; duplicate registration is rejected so a
// conflicting mapper is a boot-time fact rather than a runtime surprise.
type MapperRegistry struct {
	mu      sync.RWMutex
	mappers map[mapperKey]Mapper
}

func NewMapperRegistry() *MapperRegistry {
	return &MapperRegistry{mappers: make(map[mapperKey]Mapper)}
}

func (r *MapperRegistry) Register(vertical, resource, provider string, mapper Mapper) error {
	if mapper == nil {
		return fmt.Errorf("core: mapper is nil")
	}
	key, err := newMapperKey(vertical, resource, provider)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.mappers[key]; exists {
		return fmt.Errorf("core: mapper already registered: %s/%s/%s", key.vertical, key.resource, key.provider)
	}
	r.mappers[key] = mapper
	return nil
}

func (r *MapperRegistry) Lookup(vertical, resource, provider string) (Mapper, bool) {
	key, err := newMapperKey(vertical, resource, provider)
	if err != nil {
		return nil, false
	}
	r.mu.RLock()
	mapper, ok := r.mappers[key]
	r.mu.RUnlock()
	return mapper, ok
}

// Resolve selects the mapper for a resource kind by decoded composite type.
func (r *MapperRegistry) Resolve(compositeType CompositeType, resource string) (Mapper, error) {
	parts, err := DecodeCompositeType(compositeType)
	if err != nil {
		return nil, err
	}
	mapper, ok := r.Lookup(parts.Vertical, resource, parts.Provider)
	if !ok {
		return nil, fmt.Errorf(
			"%w: %s/%s/%s",
			ErrMapperNotFound, parts.Vertical, strings.ToLower(strings.TrimSpace(resource)), parts.Provider,
		)
	}
	return mapper, nil
}

func newMapperKey(vertical, resource, provider string) (mapperKey, error) {
	key := mapperKey{
		vertical: strings.ToLower(strings.TrimSpace(vertical)),
		resource: strings.ToLower(strings.TrimSpace(resource)),
		provider: strings.ToLower(strings.TrimSpace(provider)),
	}
	if key.vertical == "" || key.resource == "" || key.provider == "" {
		return mapperKey{}, fmt.Errorf("core: mapper key requires vertical, resource, and provider")
	}
	return key, nil
}
