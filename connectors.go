package connectors

import "github.com/goliatone/go-connectors/core"

type Config = core.Config

type CatalogConfig = core.CatalogConfig

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies
type CompositeType = core.CompositeType
type CompositeTypeParts = core.CompositeTypeParts
type AuthData = core.AuthData
type AuthStrategy = core.AuthStrategy
type ConnectionStrategy = core.ConnectionStrategy
type ConnectionStrategyStatus = core.ConnectionStrategyStatus
type LinkedUser = core.LinkedUser
type ProviderEntry = core.ProviderEntry
type Catalog = core.Catalog
type Mapper = core.Mapper
type MapperRegistry = core.MapperRegistry
type SecretProvider = core.SecretProvider
type ConnectionStrategyStore = core.ConnectionStrategyStore
type LinkedUserStore = core.LinkedUserStore

type CreateConnectionStrategyRequest = core.CreateConnectionStrategyRequest
type UpdateConnectionStrategyRequest = core.UpdateConnectionStrategyRequest
type ConnectionStrategyDataRequest = core.ConnectionStrategyDataRequest
type AddLinkedUserRequest = core.AddLinkedUserRequest

var (
	WithLogger                  = core.WithLogger
	WithLoggerProvider          = core.WithLoggerProvider
	WithMetricsRecorder         = core.WithMetricsRecorder
	WithErrorFactory            = core.WithErrorFactory
	WithErrorMapper             = core.WithErrorMapper
	WithSecretProvider          = core.WithSecretProvider
	WithPersistenceClient       = core.WithPersistenceClient
	WithRepositoryFactory       = core.WithRepositoryFactory
	WithConfigProvider          = core.WithConfigProvider
	WithOptionsResolver         = core.WithOptionsResolver
	WithCatalog                 = core.WithCatalog
	WithMapperRegistry          = core.WithMapperRegistry
	WithConnectionStrategyStore = core.WithConnectionStrategyStore
	WithLinkedUserStore         = core.WithLinkedUserStore
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return core.Setup(cfg, opts...)
}
