package sqlstore

import "github.com/goliatone/go-connectors/core"

var (
	_ core.ConnectionStrategyStore = (*ConnectionStrategyStore)(nil)
	_ core.LinkedUserStore         = (*LinkedUserStore)(nil)
	_ core.LinkedUserStore         = (*CachedLinkedUserStore)(nil)
	_ core.StoreProvider           = (*RepositoryFactory)(nil)
	_ core.RepositoryStoreFactory  = (*RepositoryFactory)(nil)
)
