package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestServiceErrorMapperCategories(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category goerrors.Category
		textCode string
		code     int
	}{
		{"invalid composite type", fmt.Errorf("wrap: %w", ErrInvalidCompositeType), goerrors.CategoryBadInput, ConnectorErrorInvalidCompositeType, http.StatusBadRequest},
		{"invalid auth mode", fmt.Errorf("wrap: %w", ErrInvalidAuthMode), goerrors.CategoryBadInput, ConnectorErrorInvalidAuthMode, http.StatusBadRequest},
		{"malformed auth data", fmt.Errorf("wrap: %w", ErrMalformedAuthData), goerrors.CategoryBadInput, ConnectorErrorMalformedAuthData, http.StatusBadRequest},
		{"length mismatch", fmt.Errorf("wrap: %w", ErrLengthMismatch), goerrors.CategoryBadInput, ConnectorErrorLengthMismatch, http.StatusBadRequest},
		{"strategy not found", fmt.Errorf("wrap: %w", ErrStrategyNotFound), goerrors.CategoryNotFound, ConnectorErrorNotFound, http.StatusNotFound},
		{"attribute not found", fmt.Errorf("wrap: %w", ErrAttributeNotFound), goerrors.CategoryNotFound, ConnectorErrorNotFound, http.StatusNotFound},
		{"mapper not found", fmt.Errorf("wrap: %w", ErrMapperNotFound), goerrors.CategoryNotFound, ConnectorErrorMapperNotFound, http.StatusNotFound},
		{"vertical not enabled", fmt.Errorf("wrap: %w", ErrVerticalNotEnabled), goerrors.CategoryBadInput, ConnectorErrorBadInput, http.StatusBadRequest},
		{"secret provider missing", ErrSecretProviderRequired, goerrors.CategoryInternal, ConnectorErrorInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := serviceErrorMapper(tc.err)
			if mapped == nil {
				t.Fatalf("expected mapped error")
			}
			if mapped.Category != tc.category {
				t.Fatalf("expected category %q, got %q", tc.category, mapped.Category)
			}
			if mapped.TextCode != tc.textCode {
				t.Fatalf("expected text code %q, got %q", tc.textCode, mapped.TextCode)
			}
			if mapped.Code != tc.code {
				t.Fatalf("expected http code %d, got %d", tc.code, mapped.Code)
			}
		})
	}
}

func TestServiceErrorMapperKeepsSentinelsReachable(t *testing.T) {
	// The envelope wraps the cause instead of replacing it, so callers can
	// still branch on the domain sentinels after mapping.
	for _, sentinel := range []error{
		ErrStrategyNotFound,
		ErrAttributeNotFound,
		ErrLengthMismatch,
		ErrVerticalNotEnabled,
	} {
		mapped := serviceErrorMapper(fmt.Errorf("%w: detail", sentinel))
		if !errors.Is(mapped, sentinel) {
			t.Fatalf("mapped envelope lost sentinel %v", sentinel)
		}
	}
}

func TestServiceErrorMapperAuthModeWinsOverCompositeType(t *testing.T) {
	// An unknown suffix wraps ErrInvalidAuthMode only, but a combined wrap
	// must still resolve to the more specific auth-mode code.
	err := fmt.Errorf("%w: %w", ErrInvalidCompositeType, ErrInvalidAuthMode)
	mapped := serviceErrorMapper(err)
	if mapped.TextCode != ConnectorErrorInvalidAuthMode {
		t.Fatalf("expected %s, got %s", ConnectorErrorInvalidAuthMode, mapped.TextCode)
	}
}

func TestServiceErrorMapperPassThrough(t *testing.T) {
	if serviceErrorMapper(nil) != nil {
		t.Fatalf("nil must map to nil")
	}

	original := goerrors.New("already mapped", goerrors.CategoryConflict).WithTextCode("CUSTOM")
	mapped := serviceErrorMapper(original)
	if mapped.TextCode != "CUSTOM" {
		t.Fatalf("existing envelopes must keep their text code, got %q", mapped.TextCode)
	}
	if mapped.Code != http.StatusConflict {
		t.Fatalf("missing http code must be filled from the category, got %d", mapped.Code)
	}
}

func TestServiceErrorMapperUnknownErrorIsInternal(t *testing.T) {
	mapped := serviceErrorMapper(fmt.Errorf("disk on fire"))
	if mapped == nil {
		t.Fatalf("expected mapped error")
	}
	if mapped.TextCode == "" {
		t.Fatalf("mapped error must carry a text code")
	}
	if mapped.Code == 0 {
		t.Fatalf("mapped error must carry an http code")
	}
}
