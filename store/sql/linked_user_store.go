package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-connectors/core"
)

type LinkedUserStore struct {
	db   *bun.DB
	repo repository.Repository[*linkedUserRecord]
}

func (s *LinkedUserStore) Add(ctx context.Context, in core.AddLinkedUserInput) (core.LinkedUser, error) {
	if s == nil || s.repo == nil {
		return core.LinkedUser{}, fmt.Errorf("sqlstore: linked user store is not configured")
	}
	if strings.TrimSpace(in.ProjectID) == "" {
		return core.LinkedUser{}, fmt.Errorf("sqlstore: project id is required")
	}
	if strings.TrimSpace(in.OriginID) == "" {
		return core.LinkedUser{}, fmt.Errorf("sqlstore: origin id is required")
	}

	record := newLinkedUserRecord(core.AddLinkedUserInput{
		ProjectID: strings.TrimSpace(in.ProjectID),
		OriginID:  strings.TrimSpace(in.OriginID),
		Alias:     strings.TrimSpace(in.Alias),
		Email:     strings.TrimSpace(in.Email),
		Metadata:  in.Metadata,
	}, time.Now().UTC())
	record.ID = uuid.NewString()

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.LinkedUser{}, err
	}
	return created.toDomain(), nil
}

func (s *LinkedUserStore) Get(ctx context.Context, id string) (core.LinkedUser, bool, error) {
	if s == nil || s.repo == nil {
		return core.LinkedUser{}, false, fmt.Errorf("sqlstore: linked user store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("id", "=", strings.TrimSpace(id)),
	)
	if err != nil {
		return core.LinkedUser{}, false, err
	}
	if len(records) == 0 {
		return core.LinkedUser{}, false, nil
	}
	return records[0].toDomain(), true, nil
}

func (s *LinkedUserStore) GetByOrigin(ctx context.Context, originID string) (core.LinkedUser, bool, error) {
	if s == nil || s.repo == nil {
		return core.LinkedUser{}, false, fmt.Errorf("sqlstore: linked user store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("origin_id", "=", strings.TrimSpace(originID)),
		repository.OrderBy("created_at ASC"),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Limit(1)
		}),
	)
	if err != nil {
		return core.LinkedUser{}, false, err
	}
	if len(records) == 0 {
		return core.LinkedUser{}, false, nil
	}
	return records[0].toDomain(), true, nil
}

func (s *LinkedUserStore) ListByProject(ctx context.Context, projectID string) ([]core.LinkedUser, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: linked user store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("project_id", "=", strings.TrimSpace(projectID)),
		repository.OrderBy("created_at ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.LinkedUser, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}
