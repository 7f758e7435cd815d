package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[CreateConnectionStrategyMessage] = (*CreateConnectionStrategyCommand)(nil)
	_ gocmd.Commander[UpdateConnectionStrategyMessage] = (*UpdateConnectionStrategyCommand)(nil)
	_ gocmd.Commander[ToggleConnectionStrategyMessage] = (*ToggleConnectionStrategyCommand)(nil)
	_ gocmd.Commander[DeleteConnectionStrategyMessage] = (*DeleteConnectionStrategyCommand)(nil)
	_ gocmd.Commander[AddLinkedUserMessage]            = (*AddLinkedUserCommand)(nil)
)
