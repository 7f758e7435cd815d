package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

// Service owns the connection-strategy and linked-user lifecycles. The codec,
// auth model, catalog, and mappers it coordinates are pure; all shared state
// lives behind the injected stores, which provide per-entity atomicity.
type Service struct {
	config            Config
	logger            Logger
	loggerProvider    LoggerProvider
	metricsRecorder   MetricsRecorder
	errorFactory      ErrorFactory
	errorMapper       ErrorMapper
	secretProvider    SecretProvider
	persistenceClient any
	repositoryFactory any
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver
	catalog           *Catalog
	mapperRegistry    *MapperRegistry
	strategyStore     ConnectionStrategyStore
	linkedUserStore   LinkedUserStore
}

type ServiceDependencies struct {
	Logger            Logger
	LoggerProvider    LoggerProvider
	MetricsRecorder   MetricsRecorder
	ErrorFactory      ErrorFactory
	ErrorMapper       ErrorMapper
	SecretProvider    SecretProvider
	PersistenceClient any
	RepositoryFactory any
	ConfigProvider    ConfigProvider
	OptionsResolver   OptionsResolver
	Catalog           *Catalog
	MapperRegistry    *MapperRegistry
	StrategyStore     ConnectionStrategyStore
	LinkedUserStore   LinkedUserStore
}

func NewService(cfg Config, options ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("connectors", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("connectors"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.mapperRegistry == nil {
		builder.mapperRegistry = NewMapperRegistry()
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	if (builder.strategyStore == nil || builder.linkedUserStore == nil) && builder.repositoryFactory != nil {
		if storeFactory, ok := builder.repositoryFactory.(RepositoryStoreFactory); ok {
			stores, buildErr := storeFactory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			if stores != nil {
				if builder.strategyStore == nil {
					builder.strategyStore = stores.ConnectionStrategyStore()
				}
				if builder.linkedUserStore == nil {
					builder.linkedUserStore = stores.LinkedUserStore()
				}
			}
		} else if stores, ok := builder.repositoryFactory.(StoreProvider); ok {
			if builder.strategyStore == nil {
				builder.strategyStore = stores.ConnectionStrategyStore()
			}
			if builder.linkedUserStore == nil {
				builder.linkedUserStore = stores.LinkedUserStore()
			}
		}
	}

	return &Service{
		config:            finalConfig,
		logger:            logger,
		loggerProvider:    provider,
		metricsRecorder:   builder.metricsRecorder,
		errorFactory:      builder.errorFactory,
		errorMapper:       builder.errorMapper,
		secretProvider:    builder.secretProvider,
		persistenceClient: builder.persistenceClient,
		repositoryFactory: builder.repositoryFactory,
		configProvider:    builder.configProvider,
		optionsResolver:   builder.optionsResolver,
		catalog:           builder.catalog,
		mapperRegistry:    builder.mapperRegistry,
		strategyStore:     builder.strategyStore,
		linkedUserStore:   builder.linkedUserStore,
	}, nil
}

func Setup(cfg Config, options ...Option) (*Service, error) {
	return NewService(cfg, options...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Catalog() *Catalog {
	if s == nil {
		return nil
	}
	return s.catalog
}

func (s *Service) Mappers() *MapperRegistry {
	if s == nil {
		return nil
	}
	return s.mapperRegistry
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:            s.logger,
		LoggerProvider:    s.loggerProvider,
		MetricsRecorder:   s.metricsRecorder,
		ErrorFactory:      s.errorFactory,
		ErrorMapper:       s.errorMapper,
		SecretProvider:    s.secretProvider,
		PersistenceClient: s.persistenceClient,
		RepositoryFactory: s.repositoryFactory,
		ConfigProvider:    s.configProvider,
		OptionsResolver:   s.optionsResolver,
		Catalog:           s.catalog,
		MapperRegistry:    s.mapperRegistry,
		StrategyStore:     s.strategyStore,
		LinkedUserStore:   s.linkedUserStore,
	}
}

// NeedsSubdomain resolves the subdomain requirement for a provider through
// the catalog; see Catalog.NeedsSubdomain for the fail-open contract.
func (s *Service) NeedsSubdomain(provider, vertical string) bool {
	if s == nil {
		return false
	}
	return s.catalog.NeedsSubdomain(provider, vertical)
}

func (s *Service) CreateConnectionStrategy(ctx context.Context, req CreateConnectionStrategyRequest) (strategy ConnectionStrategy, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project_id":     req.ProjectID,
		"composite_type": string(req.Type),
	}
	defer func() {
		if strategy.ID != "" {
			fields["strategy_id"] = strategy.ID
		}
		s.observeOperation(ctx, startedAt, "create_connection_strategy", err, fields)
	}()

	if strings.TrimSpace(req.ProjectID) == "" {
		err = s.invalidInputError("core: project id is required")
		return ConnectionStrategy{}, err
	}
	if len(req.Attributes) != len(req.Values) {
		err = s.mapError(fmt.Errorf(
			"%w: %d attributes vs %d values",
			ErrLengthMismatch, len(req.Attributes), len(req.Values),
		))
		return ConnectionStrategy{}, err
	}
	parts, decodeErr := DecodeCompositeType(req.Type)
	if decodeErr != nil {
		err = s.mapError(decodeErr)
		return ConnectionStrategy{}, err
	}
	if !s.config.verticalEnabled(parts.Vertical) {
		err = s.mapError(fmt.Errorf("%w: %q", ErrVerticalNotEnabled, parts.Vertical))
		return ConnectionStrategy{}, err
	}

	candidate := ConnectionStrategy{
		ProjectID:  strings.TrimSpace(req.ProjectID),
		Type:       req.Type,
		Attributes: append([]string(nil), req.Attributes...),
		Values:     append([]string(nil), req.Values...),
		Status:     StrategyStatusEnabled,
	}
	if alignErr := candidate.ValidateAlignment(); alignErr != nil {
		err = s.mapError(alignErr)
		return ConnectionStrategy{}, err
	}

	encrypted, encryptErr := s.encryptValues(ctx, candidate.Values)
	if encryptErr != nil {
		err = s.mapError(encryptErr)
		return ConnectionStrategy{}, err
	}

	if s.strategyStore == nil {
		err = s.dependencyError("core: connection strategy store is required")
		return ConnectionStrategy{}, err
	}
	strategy, err = s.strategyStore.Create(ctx, CreateConnectionStrategyInput{
		ProjectID:  candidate.ProjectID,
		Type:       candidate.Type,
		Attributes: candidate.Attributes,
		Values:     encrypted,
		Status:     StrategyStatusEnabled,
	})
	if err != nil {
		err = s.mapError(err)
		return ConnectionStrategy{}, err
	}
	return strategy, nil
}

func (s *Service) UpdateConnectionStrategy(ctx context.Context, req UpdateConnectionStrategyRequest) (strategy ConnectionStrategy, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"strategy_id": req.ID}
	defer func() {
		s.observeOperation(ctx, startedAt, "update_connection_strategy", err, fields)
	}()

	if strings.TrimSpace(req.ID) == "" {
		err = s.invalidInputError("core: strategy id is required")
		return ConnectionStrategy{}, err
	}
	if req.Status != nil && !req.Status.Valid() {
		err = s.mapError(fmt.Errorf("%w: %q", ErrInvalidStrategyStatus, string(*req.Status)))
		return ConnectionStrategy{}, err
	}
	// Secret fields travel as a pair; status may be toggled on its own.
	if (req.Attributes == nil) != (req.Values == nil) {
		err = s.mapError(fmt.Errorf("%w: attributes and values must be updated together", ErrLengthMismatch))
		return ConnectionStrategy{}, err
	}
	if req.Attributes != nil && len(req.Attributes) != len(req.Values) {
		err = s.mapError(fmt.Errorf(
			"%w: %d attributes vs %d values",
			ErrLengthMismatch, len(req.Attributes), len(req.Values),
		))
		return ConnectionStrategy{}, err
	}

	input := UpdateConnectionStrategyInput{
		ID:     strings.TrimSpace(req.ID),
		Status: req.Status,
	}
	if req.Attributes != nil {
		input.Attributes = append([]string(nil), req.Attributes...)
		encrypted, encryptErr := s.encryptValues(ctx, req.Values)
		if encryptErr != nil {
			err = s.mapError(encryptErr)
			return ConnectionStrategy{}, err
		}
		input.Values = encrypted
	}

	if s.strategyStore == nil {
		err = s.dependencyError("core: connection strategy store is required")
		return ConnectionStrategy{}, err
	}
	updated, found, updateErr := s.strategyStore.Update(ctx, input)
	if updateErr != nil {
		err = s.mapError(updateErr)
		return ConnectionStrategy{}, err
	}
	if !found {
		err = s.notFoundError(
			fmt.Errorf("%w: %s", ErrStrategyNotFound, input.ID),
			map[string]any{"strategy_id": input.ID},
		)
		return ConnectionStrategy{}, err
	}
	return updated, nil
}

func (s *Service) ToggleConnectionStrategy(ctx context.Context, id string) (strategy ConnectionStrategy, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"strategy_id": id}
	defer func() {
		s.observeOperation(ctx, startedAt, "toggle_connection_strategy", err, fields)
	}()

	if strings.TrimSpace(id) == "" {
		err = s.invalidInputError("core: strategy id is required")
		return ConnectionStrategy{}, err
	}
	if s.strategyStore == nil {
		err = s.dependencyError("core: connection strategy store is required")
		return ConnectionStrategy{}, err
	}

	toggled, found, toggleErr := s.strategyStore.Toggle(ctx, strings.TrimSpace(id))
	if toggleErr != nil {
		err = s.mapError(toggleErr)
		return ConnectionStrategy{}, err
	}
	if !found {
		err = s.notFoundError(
			fmt.Errorf("%w: %s", ErrStrategyNotFound, id),
			map[string]any{"strategy_id": id},
		)
		return ConnectionStrategy{}, err
	}
	return toggled, nil
}

// DeleteConnectionStrategy removes the entity and returns its final
// snapshot. Deletion is not silently idempotent: a second delete surfaces
// not-found so callers can detect double-delete bugs.
func (s *Service) DeleteConnectionStrategy(ctx context.Context, id string) (strategy ConnectionStrategy, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"strategy_id": id}
	defer func() {
		s.observeOperation(ctx, startedAt, "delete_connection_strategy", err, fields)
	}()

	if strings.TrimSpace(id) == "" {
		err = s.invalidInputError("core: strategy id is required")
		return ConnectionStrategy{}, err
	}
	if s.strategyStore == nil {
		err = s.dependencyError("core: connection strategy store is required")
		return ConnectionStrategy{}, err
	}

	deleted, found, deleteErr := s.strategyStore.Delete(ctx, strings.TrimSpace(id))
	if deleteErr != nil {
		err = s.mapError(deleteErr)
		return ConnectionStrategy{}, err
	}
	if !found {
		err = s.notFoundError(
			fmt.Errorf("%w: %s", ErrStrategyNotFound, id),
			map[string]any{"strategy_id": id},
		)
		return ConnectionStrategy{}, err
	}
	return deleted, nil
}

// GetConnectionStrategyData returns the decrypted values for the requested
// attribute subset, in request order.
func (s *Service) GetConnectionStrategyData(ctx context.Context, req ConnectionStrategyDataRequest) (values []string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project_id":     req.ProjectID,
		"composite_type": string(req.Type),
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "get_connection_strategy_data", err, fields)
	}()

	strategy, findErr := s.findStrategy(ctx, req.ProjectID, req.Type)
	if findErr != nil {
		err = s.mapError(findErr)
		return nil, err
	}

	values = make([]string, 0, len(req.Attributes))
	for _, attribute := range req.Attributes {
		index, ok := strategy.AttributeIndex(attribute)
		if !ok {
			err = s.notFoundError(
				fmt.Errorf("%w: %q", ErrAttributeNotFound, attribute),
				map[string]any{"attribute": attribute},
			)
			return nil, err
		}
		plaintext, decryptErr := s.decryptValue(ctx, strategy.Values[index])
		if decryptErr != nil {
			err = s.mapError(decryptErr)
			return nil, err
		}
		values = append(values, plaintext)
	}
	return values, nil
}

// GetCredentials rebuilds the full auth-data bundle for the project's
// strategy of the given type. The variant is selected by the decoded auth
// strategy, never inferred from attribute shape.
func (s *Service) GetCredentials(ctx context.Context, projectID string, compositeType CompositeType) (bundle AuthData, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"project_id":     projectID,
		"composite_type": string(compositeType),
	}
	defer func() {
		s.observeOperation(ctx, startedAt, "get_credentials", err, fields)
	}()

	parts, decodeErr := DecodeCompositeType(compositeType)
	if decodeErr != nil {
		err = s.mapError(decodeErr)
		return AuthData{}, err
	}

	strategy, findErr := s.findStrategy(ctx, projectID, compositeType)
	if findErr != nil {
		err = s.mapError(findErr)
		return AuthData{}, err
	}

	plaintext := make([]string, 0, len(strategy.Values))
	for _, value := range strategy.Values {
		decrypted, decryptErr := s.decryptValue(ctx, value)
		if decryptErr != nil {
			err = s.mapError(decryptErr)
			return AuthData{}, err
		}
		plaintext = append(plaintext, decrypted)
	}

	bundle, buildErr := AuthDataFromAttributes(parts.AuthStrategy, strategy.Attributes, plaintext)
	if buildErr != nil {
		err = s.mapError(buildErr)
		return AuthData{}, err
	}
	return bundle, nil
}

// GetConnectionStrategiesForProject returns all strategies scoped to the
// project. Ordering is unspecified; callers must not depend on it.
func (s *Service) GetConnectionStrategiesForProject(ctx context.Context, projectID string) (strategies []ConnectionStrategy, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID}
	defer func() {
		s.observeOperation(ctx, startedAt, "get_connection_strategies_for_project", err, fields)
	}()

	if strings.TrimSpace(projectID) == "" {
		err = s.invalidInputError("core: project id is required")
		return nil, err
	}
	if s.strategyStore == nil {
		err = s.dependencyError("core: connection strategy store is required")
		return nil, err
	}
	strategies, err = s.strategyStore.ListByProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	return strategies, nil
}

func (s *Service) findStrategy(ctx context.Context, projectID string, compositeType CompositeType) (ConnectionStrategy, error) {
	if strings.TrimSpace(projectID) == "" {
		return ConnectionStrategy{}, s.invalidInputError("core: project id is required")
	}
	if _, err := DecodeCompositeType(compositeType); err != nil {
		return ConnectionStrategy{}, err
	}
	if s.strategyStore == nil {
		return ConnectionStrategy{}, s.dependencyError("core: connection strategy store is required")
	}
	strategy, found, err := s.strategyStore.FindByProjectAndType(ctx, strings.TrimSpace(projectID), compositeType)
	if err != nil {
		return ConnectionStrategy{}, err
	}
	if !found {
		return ConnectionStrategy{}, s.notFoundError(
			fmt.Errorf(
				"%w: project %s type %s",
				ErrStrategyNotFound, strings.TrimSpace(projectID), string(compositeType),
			),
			map[string]any{
				"project_id":     strings.TrimSpace(projectID),
				"composite_type": string(compositeType),
			},
		)
	}
	return strategy, nil
}

func (s *Service) encryptValues(ctx context.Context, values []string) ([]string, error) {
	if len(values) == 0 {
		return []string{}, nil
	}
	if s == nil || s.secretProvider == nil {
		return nil, ErrSecretProviderRequired
	}
	encrypted := make([]string, 0, len(values))
	for _, value := range values {
		ciphertext, err := s.secretProvider.Encrypt(ctx, []byte(value))
		if err != nil {
			return nil, fmt.Errorf("core: encrypt strategy value: %w", err)
		}
		encrypted = append(encrypted, string(ciphertext))
	}
	return encrypted, nil
}

func (s *Service) decryptValue(ctx context.Context, value string) (string, error) {
	if s == nil || s.secretProvider == nil {
		return "", ErrSecretProviderRequired
	}
	plaintext, err := s.secretProvider.Decrypt(ctx, []byte(value))
	if err != nil {
		return "", fmt.Errorf("core: decrypt strategy value: %w", err)
	}
	return string(plaintext), nil
}

// invalidInputError builds the guard-failure envelope through the configured
// error factory so an installed WithErrorFactory shapes these errors too.
func (s *Service) invalidInputError(message string) error {
	return ensureConnectorErrorEnvelope(
		s.errorFactory(message, goerrors.CategoryBadInput).
			WithTextCode(ConnectorErrorBadInput),
	)
}

func (s *Service) dependencyError(message string) error {
	return ensureConnectorErrorEnvelope(
		s.errorFactory(message, goerrors.CategoryInternal).
			WithTextCode(ConnectorErrorInternal),
	)
}

// notFoundError wraps the sentinel-tagged cause, so errors.Is keeps seeing
// the sentinel, and attaches the lookup keys as envelope metadata.
func (s *Service) notFoundError(cause error, metadata map[string]any) error {
	wrapped := goerrors.Wrap(cause, goerrors.CategoryNotFound, cause.Error()).
		WithTextCode(ConnectorErrorNotFound)
	if len(metadata) > 0 {
		wrapped = wrapped.WithMetadata(metadata)
	}
	return ensureConnectorErrorEnvelope(wrapped)
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}
