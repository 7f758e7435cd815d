package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidCompositeType   = errors.New("core: invalid composite type")
	ErrInvalidAuthMode        = errors.New("core: invalid auth mode")
	ErrMalformedAuthData      = errors.New("core: malformed auth data")
	ErrLengthMismatch         = errors.New("core: attributes and values length mismatch")
	ErrStrategyNotFound       = errors.New("core: connection strategy not found")
	ErrAttributeNotFound      = errors.New("core: strategy attribute not found")
	ErrInvalidStrategyStatus  = errors.New("core: invalid connection strategy status")
	ErrMapperNotFound         = errors.New("core: mapper not found")
	ErrVerticalNotEnabled     = errors.New("core: vertical is not enabled")
	ErrSecretProviderRequired = errors.New("core: secret provider is required")
)

type ConnectionStrategyStatus string

const (
	StrategyStatusEnabled  ConnectionStrategyStatus = "enabled"
	StrategyStatusDisabled ConnectionStrategyStatus = "disabled"
)

func (s ConnectionStrategyStatus) Valid() bool {
	return s == StrategyStatusEnabled || s == StrategyStatusDisabled
}

// Toggled flips enabled<->disabled.
func (s ConnectionStrategyStatus) Toggled() ConnectionStrategyStatus {
	if s == StrategyStatusEnabled {
		return StrategyStatusDisabled
	}
	return StrategyStatusEnabled
}

// ConnectionStrategy is a project-scoped credential configuration for one
// provider integration. Attributes name secret fields (e.g. "client_id")
// and Values carry the corresponding secrets, positionally aligned and
// encrypted before they reach any store.
type ConnectionStrategy struct {
	ID         string
	ProjectID  string
	Type       CompositeType
	Attributes []string
	Values     []string
	Status     ConnectionStrategyStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateAlignment enforces the attributes/values arity invariant. It is
// checked at every mutation so a misaligned pair can never be persisted.
func (c ConnectionStrategy) ValidateAlignment() error {
	if len(c.Attributes) != len(c.Values) {
		return fmt.Errorf(
			"%w: %d attributes vs %d values",
			ErrLengthMismatch, len(c.Attributes), len(c.Values),
		)
	}
	for i, attribute := range c.Attributes {
		if strings.TrimSpace(attribute) == "" {
			return fmt.Errorf("%w: empty attribute name at index %d", ErrLengthMismatch, i)
		}
	}
	return nil
}

// AttributeIndex returns the position of the named attribute.
func (c ConnectionStrategy) AttributeIndex(attribute string) (int, bool) {
	needle := strings.ToLower(strings.TrimSpace(attribute))
	for i, candidate := range c.Attributes {
		if strings.ToLower(strings.TrimSpace(candidate)) == needle {
			return i, true
		}
	}
	return -1, false
}

// LinkedUser associates an external end-user identity with one project for
// its lifetime. OriginID is the external-system identifier used for
// idempotent lookups; ID is internally generated and distinct from it.
type LinkedUser struct {
	ID        string
	ProjectID string
	OriginID  string
	Alias     string
	Email     string
	Metadata  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}
