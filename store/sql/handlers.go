package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func connectionStrategyHandlers() repository.ModelHandlers[*connectionStrategyRecord] {
	return repository.ModelHandlers[*connectionStrategyRecord]{
		NewRecord: func() *connectionStrategyRecord {
			return &connectionStrategyRecord{}
		},
		GetID: func(record *connectionStrategyRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *connectionStrategyRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *connectionStrategyRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func linkedUserHandlers() repository.ModelHandlers[*linkedUserRecord] {
	return repository.ModelHandlers[*linkedUserRecord]{
		NewRecord: func() *linkedUserRecord {
			return &linkedUserRecord{}
		},
		GetID: func(record *linkedUserRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *linkedUserRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *linkedUserRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
