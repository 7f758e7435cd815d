package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

// SecretProvider is the credential vault collaborator. The core performs no
// cryptography itself; strategy values pass through Encrypt before any store
// sees them and through Decrypt on read-only projections.
type SecretProvider interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

type CreateConnectionStrategyInput struct {
	ProjectID  string
	Type       CompositeType
	Attributes []string
	Values     []string
	Status     ConnectionStrategyStatus
}

type UpdateConnectionStrategyInput struct {
	ID         string
	Status     *ConnectionStrategyStatus
	Attributes []string
	Values     []string
}

// ConnectionStrategyStore persists project-scoped connection strategies.
// Each mutating call must be atomic per entity: implementations back it with
// a row transaction or equivalent compare-and-set. Lookup misses are
// reported through the bool result, not as errors.
type ConnectionStrategyStore interface {
	Create(ctx context.Context, in CreateConnectionStrategyInput) (ConnectionStrategy, error)
	Get(ctx context.Context, id string) (ConnectionStrategy, bool, error)
	FindByProjectAndType(ctx context.Context, projectID string, compositeType CompositeType) (ConnectionStrategy, bool, error)
	ListByProject(ctx context.Context, projectID string) ([]ConnectionStrategy, error)
	Update(ctx context.Context, in UpdateConnectionStrategyInput) (ConnectionStrategy, bool, error)
	Toggle(ctx context.Context, id string) (ConnectionStrategy, bool, error)
	Delete(ctx context.Context, id string) (ConnectionStrategy, bool, error)
}

type AddLinkedUserInput struct {
	ProjectID string
	OriginID  string
	Alias     string
	Email     string
	Metadata  map[string]any
}

type LinkedUserStore interface {
	Add(ctx context.Context, in AddLinkedUserInput) (LinkedUser, error)
	Get(ctx context.Context, id string) (LinkedUser, bool, error)
	GetByOrigin(ctx context.Context, originID string) (LinkedUser, bool, error)
	ListByProject(ctx context.Context, projectID string) ([]LinkedUser, error)
}

type StoreProvider interface {
	ConnectionStrategyStore() ConnectionStrategyStore
	LinkedUserStore() LinkedUserStore
}

type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

type CreateConnectionStrategyRequest struct {
	ProjectID  string
	Type       CompositeType
	Attributes []string
	Values     []string
}

type UpdateConnectionStrategyRequest struct {
	ID         string
	Status     *ConnectionStrategyStatus
	Attributes []string
	Values     []string
}

type ConnectionStrategyDataRequest struct {
	ProjectID  string
	Type       CompositeType
	Attributes []string
}

type AddLinkedUserRequest struct {
	ProjectID string
	OriginID  string
	Alias     string
	Email     string
	Metadata  map[string]any
}

// ConnectorService is the operation surface exposed to the transport
// collaborator. Linked-user point lookups report expected absence through
// the bool result rather than an error.
type ConnectorService interface {
	CreateConnectionStrategy(ctx context.Context, req CreateConnectionStrategyRequest) (ConnectionStrategy, error)
	UpdateConnectionStrategy(ctx context.Context, req UpdateConnectionStrategyRequest) (ConnectionStrategy, error)
	ToggleConnectionStrategy(ctx context.Context, id string) (ConnectionStrategy, error)
	DeleteConnectionStrategy(ctx context.Context, id string) (ConnectionStrategy, error)
	GetConnectionStrategyData(ctx context.Context, req ConnectionStrategyDataRequest) ([]string, error)
	GetCredentials(ctx context.Context, projectID string, compositeType CompositeType) (AuthData, error)
	GetConnectionStrategiesForProject(ctx context.Context, projectID string) ([]ConnectionStrategy, error)

	AddLinkedUser(ctx context.Context, req AddLinkedUserRequest) (LinkedUser, error)
	GetLinkedUser(ctx context.Context, id string) (LinkedUser, bool, error)
	GetLinkedUserByOrigin(ctx context.Context, originID string) (LinkedUser, bool, error)
	GetLinkedUsers(ctx context.Context, projectID string) ([]LinkedUser, error)
}
