package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type connectionStrategyRecord struct {
	bun.BaseModel `bun:"table:connector_connection_strategies,alias:ccs"`

	ID            string    `bun:"id,pk"`
	ProjectID     string    `bun:"project_id,notnull"`
	CompositeType string    `bun:"composite_type,notnull"`
	Attributes    []string  `bun:"attributes,type:jsonb,notnull"`
	Values        []string  `bun:"secret_values,type:jsonb,notnull"`
	Status        string    `bun:"status,notnull"`
	CreatedAt     time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type linkedUserRecord struct {
	bun.BaseModel `bun:"table:connector_linked_users,alias:clu"`

	ID        string         `bun:"id,pk"`
	ProjectID string         `bun:"project_id,notnull"`
	OriginID  string         `bun:"origin_id,notnull"`
	Alias     string         `bun:"alias"`
	Email     string         `bun:"email"`
	Metadata  map[string]any `bun:"metadata,type:jsonb,notnull"`
	CreatedAt time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time      `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
