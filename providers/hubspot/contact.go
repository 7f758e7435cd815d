// Package hubspot provides mappers for the HubSpot CRM provider.
package hubspot

import (
	"github.com/goliatone/go-connectors/core"
)

// Unified contact slugs and their HubSpot property names.
const (
	slugFirstName = "first_name"
	slugLastName  = "last_name"
	slugEmail     = "email"
	slugPhone     = "phone"

	propertyFirstName = "firstname"
	propertyLastName  = "lastname"
	propertyEmail     = "email"
	propertyPhone     = "phone"
)

// ContactMapper converts unified CRM contacts to and from HubSpot contact
// properties.
type ContactMapper struct{}

func NewContactMapper() ContactMapper {
	return ContactMapper{}
}

// RegisterContactMapper installs the mapper under crm/contact/hubspot.
func RegisterContactMapper(registry *core.MapperRegistry) error {
	return registry.Register("crm", "contact", "hubspot", NewContactMapper())
}

func (ContactMapper) Desunify(source map[string]any, mappings []core.CustomFieldMapping) (map[string]any, error) {
	target := map[string]any{}
	copyField(source, target, slugFirstName, propertyFirstName)
	copyField(source, target, slugLastName, propertyLastName)
	copyField(source, target, slugEmail, propertyEmail)
	copyField(source, target, slugPhone, propertyPhone)
	core.DesunifyCustomFields(source, target, mappings)
	return target, nil
}

func (ContactMapper) Unify(source any, mappings []core.CustomFieldMapping) (any, error) {
	return core.UnifyEach(source, func(payload map[string]any) (map[string]any, error) {
		target := map[string]any{}
		copyField(payload, target, propertyFirstName, slugFirstName)
		copyField(payload, target, propertyLastName, slugLastName)
		copyField(payload, target, propertyEmail, slugEmail)
		copyField(payload, target, propertyPhone, slugPhone)
		if id, ok := payload["id"]; ok {
			target["remote_id"] = id
		}
		core.UnifyCustomFields(payload, target, mappings)
		return target, nil
	})
}

func copyField(source, target map[string]any, from, to string) {
	if value, ok := source[from]; ok {
		target[to] = value
	}
}

var _ core.Mapper = ContactMapper{}
