package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-connectors/core"
)

type ConnectionStrategyStore struct {
	db   *bun.DB
	repo repository.Repository[*connectionStrategyRecord]
}

func (s *ConnectionStrategyStore) Create(ctx context.Context, in core.CreateConnectionStrategyInput) (core.ConnectionStrategy, error) {
	if s == nil || s.repo == nil {
		return core.ConnectionStrategy{}, fmt.Errorf("sqlstore: connection strategy store is not configured")
	}
	if strings.TrimSpace(in.ProjectID) == "" {
		return core.ConnectionStrategy{}, fmt.Errorf("sqlstore: project id is required")
	}
	if len(in.Attributes) != len(in.Values) {
		return core.ConnectionStrategy{}, fmt.Errorf(
			"%w: %d attributes vs %d values",
			core.ErrLengthMismatch, len(in.Attributes), len(in.Values),
		)
	}
	status := in.Status
	if strings.TrimSpace(string(status)) == "" {
		status = core.StrategyStatusEnabled
	}

	record := newConnectionStrategyRecord(core.CreateConnectionStrategyInput{
		ProjectID:  strings.TrimSpace(in.ProjectID),
		Type:       in.Type,
		Attributes: in.Attributes,
		Values:     in.Values,
		Status:     status,
	}, time.Now().UTC())
	record.ID = uuid.NewString()

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return core.ConnectionStrategy{}, err
	}
	return created.toDomain(), nil
}

func (s *ConnectionStrategyStore) Get(ctx context.Context, id string) (core.ConnectionStrategy, bool, error) {
	if s == nil || s.repo == nil {
		return core.ConnectionStrategy{}, false, fmt.Errorf("sqlstore: connection strategy store is not configured")
	}
	record, err := s.findByID(ctx, s.db, id)
	if err != nil {
		return core.ConnectionStrategy{}, false, err
	}
	if record == nil {
		return core.ConnectionStrategy{}, false, nil
	}
	return record.toDomain(), true, nil
}

func (s *ConnectionStrategyStore) FindByProjectAndType(ctx context.Context, projectID string, compositeType core.CompositeType) (core.ConnectionStrategy, bool, error) {
	if s == nil || s.repo == nil {
		return core.ConnectionStrategy{}, false, fmt.Errorf("sqlstore: connection strategy store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("project_id", "=", strings.TrimSpace(projectID)),
		repository.SelectBy("composite_type", "=", string(compositeType)),
		repository.OrderBy("created_at ASC"),
	)
	if err != nil {
		return core.ConnectionStrategy{}, false, err
	}
	if len(records) == 0 {
		return core.ConnectionStrategy{}, false, nil
	}
	return records[0].toDomain(), true, nil
}

func (s *ConnectionStrategyStore) ListByProject(ctx context.Context, projectID string) ([]core.ConnectionStrategy, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: connection strategy store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.SelectBy("project_id", "=", strings.TrimSpace(projectID)),
		repository.OrderBy("created_at ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.ConnectionStrategy, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *ConnectionStrategyStore) Update(ctx context.Context, in core.UpdateConnectionStrategyInput) (core.ConnectionStrategy, bool, error) {
	if s == nil || s.db == nil {
		return core.ConnectionStrategy{}, false, fmt.Errorf("sqlstore: connection strategy store is not configured")
	}
	trimmedID := strings.TrimSpace(in.ID)
	if trimmedID == "" {
		return core.ConnectionStrategy{}, false, fmt.Errorf("sqlstore: strategy id is required")
	}
	if in.Attributes != nil && len(in.Attributes) != len(in.Values) {
		return core.ConnectionStrategy{}, false, fmt.Errorf(
			"%w: %d attributes vs %d values",
			core.ErrLengthMismatch, len(in.Attributes), len(in.Values),
		)
	}

	var out core.ConnectionStrategy
	found := false
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.findByID(ctx, tx, trimmedID)
		if err != nil {
			return err
		}
		if record == nil {
			return nil
		}
		if in.Attributes != nil {
			record.Attributes = append([]string(nil), in.Attributes...)
			record.Values = append([]string(nil), in.Values...)
		}
		if in.Status != nil {
			record.Status = string(*in.Status)
		}
		record.UpdatedAt = time.Now().UTC()

		if _, updateErr := tx.NewUpdate().
			Model(record).
			Where("id = ?", record.ID).
			Exec(ctx); updateErr != nil {
			return updateErr
		}
		out = record.toDomain()
		found = true
		return nil
	})
	if err != nil {
		return core.ConnectionStrategy{}, false, err
	}
	return out, found, nil
}

// Toggle flips the status inside a row transaction so concurrent toggles
// serialize instead of losing a flip.
func (s *ConnectionStrategyStore) Toggle(ctx context.Context, id string) (core.ConnectionStrategy, bool, error) {
	if s == nil || s.db == nil {
		return core.ConnectionStrategy{}, false, fmt.Errorf("sqlstore: connection strategy store is not configured")
	}
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return core.ConnectionStrategy{}, false, fmt.Errorf("sqlstore: strategy id is required")
	}

	var out core.ConnectionStrategy
	found := false
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.findByID(ctx, tx, trimmedID)
		if err != nil {
			return err
		}
		if record == nil {
			return nil
		}
		record.Status = string(core.ConnectionStrategyStatus(record.Status).Toggled())
		record.UpdatedAt = time.Now().UTC()

		if _, updateErr := tx.NewUpdate().
			Model(record).
			Where("id = ?", record.ID).
			Exec(ctx); updateErr != nil {
			return updateErr
		}
		out = record.toDomain()
		found = true
		return nil
	})
	if err != nil {
		return core.ConnectionStrategy{}, false, err
	}
	return out, found, nil
}

func (s *ConnectionStrategyStore) Delete(ctx context.Context, id string) (core.ConnectionStrategy, bool, error) {
	if s == nil || s.db == nil {
		return core.ConnectionStrategy{}, false, fmt.Errorf("sqlstore: connection strategy store is not configured")
	}
	trimmedID := strings.TrimSpace(id)
	if trimmedID == "" {
		return core.ConnectionStrategy{}, false, fmt.Errorf("sqlstore: strategy id is required")
	}

	var out core.ConnectionStrategy
	found := false
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.findByID(ctx, tx, trimmedID)
		if err != nil {
			return err
		}
		if record == nil {
			return nil
		}
		result, deleteErr := tx.NewDelete().
			Model((*connectionStrategyRecord)(nil)).
			Where("id = ?", record.ID).
			Exec(ctx)
		if deleteErr != nil {
			return deleteErr
		}
		affected, affectedErr := result.RowsAffected()
		if affectedErr != nil {
			return affectedErr
		}
		if affected == 0 {
			return nil
		}
		out = record.toDomain()
		found = true
		return nil
	})
	if err != nil {
		return core.ConnectionStrategy{}, false, err
	}
	return out, found, nil
}

func (s *ConnectionStrategyStore) findByID(ctx context.Context, db bun.IDB, id string) (*connectionStrategyRecord, error) {
	record := &connectionStrategyRecord{}
	err := db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", strings.TrimSpace(id)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if strings.TrimSpace(record.ID) == "" {
		return nil, nil
	}
	return record, nil
}
