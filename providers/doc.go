// Package providers groups the reference mapper implementations bundled with
// the module, one subpackage per provider. Each mapper translates between the
// canonical unified schema and the provider's native field names for a single
// resource kind and registers under the corresponding
// (vertical, resource, provider) triple.
package providers
