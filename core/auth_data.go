package core

import (
	"fmt"
	"strings"
)

type AuthStrategy string

const (
	AuthStrategyOAuth2 AuthStrategy = "oauth2"
	AuthStrategyAPIKey AuthStrategy = "api_key"
	AuthStrategyBasic  AuthStrategy = "basic"
)

func (s AuthStrategy) Valid() bool {
	switch s {
	case AuthStrategyOAuth2, AuthStrategyAPIKey, AuthStrategyBasic:
		return true
	default:
		return false
	}
}

// Attribute names used when a credential bundle is flattened into the
// positional attributes/values arrays of a connection strategy.
const (
	AttributeClientID     = "client_id"
	AttributeClientSecret = "client_secret"
	AttributeScope        = "scope"
	AttributeAPIKey       = "api_key"
	AttributeUsername     = "username"
	AttributeSecret       = "secret"
	AttributeSubdomain    = "subdomain"
)

type BasicAuthData struct {
	Username  string
	Secret    string
	Subdomain string
}

type APIAuthData struct {
	APIKey    string
	Subdomain string
}

type OAuth2AuthData struct {
	ClientID     string
	ClientSecret string
	Scope        string
	Subdomain    string
}

// AuthData is a closed tagged union over the three credential shapes. The
// strategy tag and the populated variant always agree: agreement is enforced
// at construction and never re-inferred from field shape. Adding a strategy
// requires a new variant here and a new codec suffix together.
type AuthData struct {
	strategy AuthStrategy
	basic    *BasicAuthData
	apiKey   *APIAuthData
	oauth2   *OAuth2AuthData
}

func NewBasicAuthData(data BasicAuthData) (AuthData, error) {
	if strings.TrimSpace(data.Username) == "" || strings.TrimSpace(data.Secret) == "" {
		return AuthData{}, fmt.Errorf("%w: basic auth requires username and secret", ErrMalformedAuthData)
	}
	return AuthData{strategy: AuthStrategyBasic, basic: &data}, nil
}

func NewAPIAuthData(data APIAuthData) (AuthData, error) {
	if strings.TrimSpace(data.APIKey) == "" {
		return AuthData{}, fmt.Errorf("%w: api key auth requires an api key", ErrMalformedAuthData)
	}
	return AuthData{strategy: AuthStrategyAPIKey, apiKey: &data}, nil
}

func NewOAuth2AuthData(data OAuth2AuthData) (AuthData, error) {
	if strings.TrimSpace(data.ClientID) == "" || strings.TrimSpace(data.ClientSecret) == "" {
		return AuthData{}, fmt.Errorf("%w: oauth2 auth requires client id and client secret", ErrMalformedAuthData)
	}
	return AuthData{strategy: AuthStrategyOAuth2, oauth2: &data}, nil
}

// NewAuthData builds an AuthData from an explicit strategy tag and a variant
// payload. A payload that does not match the tag is rejected with
// ErrMalformedAuthData.
func NewAuthData(strategy AuthStrategy, payload any) (AuthData, error) {
	switch strategy {
	case AuthStrategyBasic:
		data, ok := payload.(BasicAuthData)
		if !ok {
			return AuthData{}, tagMismatch(strategy, payload)
		}
		return NewBasicAuthData(data)
	case AuthStrategyAPIKey:
		data, ok := payload.(APIAuthData)
		if !ok {
			return AuthData{}, tagMismatch(strategy, payload)
		}
		return NewAPIAuthData(data)
	case AuthStrategyOAuth2:
		data, ok := payload.(OAuth2AuthData)
		if !ok {
			return AuthData{}, tagMismatch(strategy, payload)
		}
		return NewOAuth2AuthData(data)
	default:
		return AuthData{}, fmt.Errorf("%w: unknown strategy %q", ErrMalformedAuthData, string(strategy))
	}
}

func tagMismatch(strategy AuthStrategy, payload any) error {
	return fmt.Errorf("%w: payload %T does not match strategy %q", ErrMalformedAuthData, payload, string(strategy))
}

func (a AuthData) Strategy() AuthStrategy {
	return a.strategy
}

func (a AuthData) Basic() (BasicAuthData, bool) {
	if a.basic == nil {
		return BasicAuthData{}, false
	}
	return *a.basic, true
}

func (a AuthData) APIKey() (APIAuthData, bool) {
	if a.apiKey == nil {
		return APIAuthData{}, false
	}
	return *a.apiKey, true
}

func (a AuthData) OAuth2() (OAuth2AuthData, bool) {
	if a.oauth2 == nil {
		return OAuth2AuthData{}, false
	}
	return *a.oauth2, true
}

// Attributes flattens the credential bundle into the positional
// attributes/values pair persisted on a connection strategy. Optional fields
// are emitted only when set, so the arrays stay index-aligned by
// construction.
func (a AuthData) Attributes() ([]string, []string) {
	var attributes, values []string
	appendPair := func(attribute, value string) {
		attributes = append(attributes, attribute)
		values = append(values, value)
	}

	switch a.strategy {
	case AuthStrategyOAuth2:
		appendPair(AttributeClientID, a.oauth2.ClientID)
		appendPair(AttributeClientSecret, a.oauth2.ClientSecret)
		if a.oauth2.Scope != "" {
			appendPair(AttributeScope, a.oauth2.Scope)
		}
		if a.oauth2.Subdomain != "" {
			appendPair(AttributeSubdomain, a.oauth2.Subdomain)
		}
	case AuthStrategyAPIKey:
		appendPair(AttributeAPIKey, a.apiKey.APIKey)
		if a.apiKey.Subdomain != "" {
			appendPair(AttributeSubdomain, a.apiKey.Subdomain)
		}
	case AuthStrategyBasic:
		appendPair(AttributeUsername, a.basic.Username)
		appendPair(AttributeSecret, a.basic.Secret)
		if a.basic.Subdomain != "" {
			appendPair(AttributeSubdomain, a.basic.Subdomain)
		}
	}
	return attributes, values
}

// AuthDataFromAttributes rebuilds the credential bundle a strategy persists
// positionally. Unknown attributes are ignored; missing required fields for
// the strategy's variant surface as ErrMalformedAuthData.
func AuthDataFromAttributes(strategy AuthStrategy, attributes, values []string) (AuthData, error) {
	if len(attributes) != len(values) {
		return AuthData{}, fmt.Errorf(
			"%w: %d attributes vs %d values",
			ErrLengthMismatch, len(attributes), len(values),
		)
	}

	byName := make(map[string]string, len(attributes))
	for i, attribute := range attributes {
		byName[strings.ToLower(strings.TrimSpace(attribute))] = values[i]
	}

	switch strategy {
	case AuthStrategyOAuth2:
		return NewOAuth2AuthData(OAuth2AuthData{
			ClientID:     byName[AttributeClientID],
			ClientSecret: byName[AttributeClientSecret],
			Scope:        byName[AttributeScope],
			Subdomain:    byName[AttributeSubdomain],
		})
	case AuthStrategyAPIKey:
		return NewAPIAuthData(APIAuthData{
			APIKey:    byName[AttributeAPIKey],
			Subdomain: byName[AttributeSubdomain],
		})
	case AuthStrategyBasic:
		return NewBasicAuthData(BasicAuthData{
			Username:  byName[AttributeUsername],
			Secret:    byName[AttributeSecret],
			Subdomain: byName[AttributeSubdomain],
		})
	default:
		return AuthData{}, fmt.Errorf("%w: unknown strategy %q", ErrMalformedAuthData, string(strategy))
	}
}
