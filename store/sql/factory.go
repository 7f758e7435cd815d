package sqlstore

import (
	"fmt"

	persistence "github.com/goliatone/go-persistence-bun"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-connectors/core"
)

type RepositoryFactory struct {
	db *bun.DB

	strategyStore   *ConnectionStrategyStore
	linkedUserStore *LinkedUserStore
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) (core.StoreProvider, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.strategyStore != nil && f.linkedUserStore != nil {
		return f, nil
	}
	if err := f.initStores(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *RepositoryFactory) ConnectionStrategyStore() core.ConnectionStrategyStore {
	if f == nil {
		return nil
	}
	return f.strategyStore
}

func (f *RepositoryFactory) LinkedUserStore() core.LinkedUserStore {
	if f == nil {
		return nil
	}
	return f.linkedUserStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) initStores() error {
	strategyRepo := repository.NewRepository[*connectionStrategyRecord](f.db, connectionStrategyHandlers())
	if validator, ok := strategyRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid connection strategy repository wiring: %w", err)
		}
	}

	linkedUserRepo := repository.NewRepository[*linkedUserRecord](f.db, linkedUserHandlers())
	if validator, ok := linkedUserRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("sqlstore: invalid linked user repository wiring: %w", err)
		}
	}

	f.strategyStore = &ConnectionStrategyStore{
		db:   f.db,
		repo: strategyRepo,
	}
	f.linkedUserStore = &LinkedUserStore{
		db:   f.db,
		repo: linkedUserRepo,
	}
	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}
