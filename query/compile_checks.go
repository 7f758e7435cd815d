package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-connectors/core"
)

var (
	_ gocmd.Querier[GetCredentialsMessage, core.AuthData]                       = (*GetCredentialsQuery)(nil)
	_ gocmd.Querier[GetConnectionStrategyDataMessage, []string]                 = (*GetConnectionStrategyDataQuery)(nil)
	_ gocmd.Querier[ListConnectionStrategiesMessage, []core.ConnectionStrategy] = (*ListConnectionStrategiesQuery)(nil)
	_ gocmd.Querier[GetLinkedUserMessage, LinkedUserResult]                     = (*GetLinkedUserQuery)(nil)
	_ gocmd.Querier[GetLinkedUserByOriginMessage, LinkedUserResult]             = (*GetLinkedUserByOriginQuery)(nil)
	_ gocmd.Querier[ListLinkedUsersMessage, []core.LinkedUser]                  = (*ListLinkedUsersQuery)(nil)
)
