package core

import (
	"fmt"
	"strings"
)

// CompositeType is the canonical string encoding of a provider integration:
// PROVIDER_VERTICAL_MODE_AUTHSUFFIX, all uppercase, underscore delimited,
// exactly four segments. The format is persisted and wire-visible, so it must
// remain byte-stable across versions.
type CompositeType string

type SoftwareMode string

const (
	SoftwareModeCloud     SoftwareMode = "CLOUD"
	SoftwareModeOnPremise SoftwareMode = "ONPREMISE"
)

const (
	compositeTypeDelimiter = "_"
	compositeTypeSegments  = 4

	authSuffixOAuth  = "OAUTH"
	authSuffixAPIKey = "APIKEY"
	authSuffixBasic  = "BASIC"
)

// CompositeTypeParts is the decoded form of a CompositeType. Provider and
// Vertical are lowercase-normalized; SoftwareMode keeps its canonical
// uppercase wire spelling.
type CompositeTypeParts struct {
	Provider     string
	Vertical     string
	SoftwareMode SoftwareMode
	AuthStrategy AuthStrategy
}

func (p CompositeTypeParts) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", p.Provider, p.Vertical, p.SoftwareMode, p.AuthStrategy)
}

// EncodeCompositeType builds the canonical composite type for the given
// provider identity. An empty mode defaults to SoftwareModeCloud. Segments
// may not be empty or contain the delimiter; either would break the
// round-trip law.
func EncodeCompositeType(provider, vertical string, strategy AuthStrategy, mode SoftwareMode) (CompositeType, error) {
	provider = strings.TrimSpace(provider)
	vertical = strings.TrimSpace(vertical)
	if provider == "" || vertical == "" {
		return "", fmt.Errorf("%w: provider and vertical are required", ErrInvalidCompositeType)
	}
	if strings.Contains(provider, compositeTypeDelimiter) || strings.Contains(vertical, compositeTypeDelimiter) {
		return "", fmt.Errorf("%w: provider and vertical may not contain %q", ErrInvalidCompositeType, compositeTypeDelimiter)
	}

	suffix, err := strategy.suffix()
	if err != nil {
		return "", err
	}

	software := strings.ToUpper(strings.TrimSpace(string(mode)))
	if software == "" {
		software = string(SoftwareModeCloud)
	}
	if strings.Contains(software, compositeTypeDelimiter) {
		return "", fmt.Errorf("%w: software mode may not contain %q", ErrInvalidCompositeType, compositeTypeDelimiter)
	}

	segments := []string{
		strings.ToUpper(provider),
		strings.ToUpper(vertical),
		software,
		suffix,
	}
	return CompositeType(strings.Join(segments, compositeTypeDelimiter)), nil
}

// DecodeCompositeType splits a composite type back into its four fields.
// Provider is segment 0, vertical segment 1, software mode segment 2, and
// the auth suffix is the last segment. An unrecognized suffix is a hard
// ErrInvalidAuthMode, never a silent default.
func DecodeCompositeType(compositeType CompositeType) (CompositeTypeParts, error) {
	raw := strings.TrimSpace(string(compositeType))
	if raw == "" {
		return CompositeTypeParts{}, fmt.Errorf("%w: empty composite type", ErrInvalidCompositeType)
	}

	segments := strings.Split(raw, compositeTypeDelimiter)
	if len(segments) != compositeTypeSegments {
		return CompositeTypeParts{}, fmt.Errorf(
			"%w: expected %d segments, got %d in %q",
			ErrInvalidCompositeType, compositeTypeSegments, len(segments), raw,
		)
	}
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return CompositeTypeParts{}, fmt.Errorf("%w: empty segment in %q", ErrInvalidCompositeType, raw)
		}
	}

	strategy, err := authStrategyFromSuffix(segments[len(segments)-1])
	if err != nil {
		return CompositeTypeParts{}, err
	}

	return CompositeTypeParts{
		Provider:     strings.ToLower(segments[0]),
		Vertical:     strings.ToLower(segments[1]),
		SoftwareMode: SoftwareMode(strings.ToUpper(segments[2])),
		AuthStrategy: strategy,
	}, nil
}

func (s AuthStrategy) suffix() (string, error) {
	switch s {
	case AuthStrategyOAuth2:
		return authSuffixOAuth, nil
	case AuthStrategyAPIKey:
		return authSuffixAPIKey, nil
	case AuthStrategyBasic:
		return authSuffixBasic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAuthMode, string(s))
	}
}

func authStrategyFromSuffix(suffix string) (AuthStrategy, error) {
	switch strings.ToUpper(strings.TrimSpace(suffix)) {
	case authSuffixOAuth:
		return AuthStrategyOAuth2, nil
	case authSuffixAPIKey:
		return AuthStrategyAPIKey, nil
	case authSuffixBasic:
		return AuthStrategyBasic, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAuthMode, suffix)
	}
}
