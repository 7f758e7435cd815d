package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ConnectorErrorBadInput             = "CONNECTORS_BAD_INPUT"
	ConnectorErrorInvalidCompositeType = "CONNECTORS_INVALID_COMPOSITE_TYPE"
	ConnectorErrorInvalidAuthMode      = "CONNECTORS_INVALID_AUTH_MODE"
	ConnectorErrorMalformedAuthData    = "CONNECTORS_MALFORMED_AUTH_DATA"
	ConnectorErrorLengthMismatch       = "CONNECTORS_LENGTH_MISMATCH"
	ConnectorErrorNotFound             = "CONNECTORS_NOT_FOUND"
	ConnectorErrorMapperNotFound       = "CONNECTORS_MAPPER_NOT_FOUND"
	ConnectorErrorInternal             = "CONNECTORS_INTERNAL_ERROR"
)

// serviceErrorMapper turns domain sentinels into rich error envelopes at the
// service boundary. Validation failures map to bad-input categories and are
// surfaced immediately with no retry; entity absence maps to not-found;
// everything else is wrapped as an opaque internal error so persistence
// detail never leaks to the caller.
func serviceErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureConnectorErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, ErrInvalidAuthMode):
		return wrapConnectorError(err, goerrors.CategoryBadInput, ConnectorErrorInvalidAuthMode)
	case errors.Is(err, ErrInvalidCompositeType):
		return wrapConnectorError(err, goerrors.CategoryBadInput, ConnectorErrorInvalidCompositeType)
	case errors.Is(err, ErrMalformedAuthData):
		return wrapConnectorError(err, goerrors.CategoryBadInput, ConnectorErrorMalformedAuthData)
	case errors.Is(err, ErrLengthMismatch):
		return wrapConnectorError(err, goerrors.CategoryBadInput, ConnectorErrorLengthMismatch)
	case errors.Is(err, ErrInvalidStrategyStatus), errors.Is(err, ErrVerticalNotEnabled):
		return wrapConnectorError(err, goerrors.CategoryBadInput, ConnectorErrorBadInput)
	case errors.Is(err, ErrStrategyNotFound), errors.Is(err, ErrAttributeNotFound):
		return wrapConnectorError(err, goerrors.CategoryNotFound, ConnectorErrorNotFound)
	case errors.Is(err, ErrMapperNotFound):
		return wrapConnectorError(err, goerrors.CategoryNotFound, ConnectorErrorMapperNotFound)
	case errors.Is(err, ErrSecretProviderRequired):
		return wrapConnectorError(err, goerrors.CategoryInternal, ConnectorErrorInternal)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureConnectorErrorEnvelope(mapped)
}

// wrapConnectorError keeps the sentinel reachable through errors.Is while the
// envelope carries the category, http code, and text code for the transport
// layer.
func wrapConnectorError(err error, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureConnectorErrorEnvelope(
		goerrors.Wrap(err, category, err.Error()).
			WithTextCode(textCode),
	)
}

func ensureConnectorErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = connectorHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultConnectorTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultConnectorTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ConnectorErrorBadInput
	case goerrors.CategoryNotFound:
		return ConnectorErrorNotFound
	default:
		return ConnectorErrorInternal
	}
}

func connectorHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
