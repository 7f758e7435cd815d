// Package core contains the canonical connector domain: the composite-type
// codec, the tagged auth-data model, the provider catalog, the unification
// mapper contract, and the connection-strategy and linked-user services.
// Lower-level adapters must depend on this package; core must not depend on
// provider-specific or transport-specific adapters.
package core
