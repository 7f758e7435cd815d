package sqlstore

import (
	"time"

	"github.com/goliatone/go-connectors/core"
)

func newConnectionStrategyRecord(in core.CreateConnectionStrategyInput, now time.Time) *connectionStrategyRecord {
	return &connectionStrategyRecord{
		ProjectID:     in.ProjectID,
		CompositeType: string(in.Type),
		Attributes:    append([]string(nil), in.Attributes...),
		Values:        append([]string(nil), in.Values...),
		Status:        string(in.Status),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (r *connectionStrategyRecord) toDomain() core.ConnectionStrategy {
	if r == nil {
		return core.ConnectionStrategy{}
	}
	return core.ConnectionStrategy{
		ID:         r.ID,
		ProjectID:  r.ProjectID,
		Type:       core.CompositeType(r.CompositeType),
		Attributes: append([]string(nil), r.Attributes...),
		Values:     append([]string(nil), r.Values...),
		Status:     core.ConnectionStrategyStatus(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func newLinkedUserRecord(in core.AddLinkedUserInput, now time.Time) *linkedUserRecord {
	return &linkedUserRecord{
		ProjectID: in.ProjectID,
		OriginID:  in.OriginID,
		Alias:     in.Alias,
		Email:     in.Email,
		Metadata:  copyAnyMap(in.Metadata),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *linkedUserRecord) toDomain() core.LinkedUser {
	if r == nil {
		return core.LinkedUser{}
	}
	return core.LinkedUser{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		OriginID:  r.OriginID,
		Alias:     r.Alias,
		Email:     r.Email,
		Metadata:  copyAnyMap(r.Metadata),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func copyAnyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
