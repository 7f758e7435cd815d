package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-connectors/core"
)

type MutatingService interface {
	CreateConnectionStrategy(ctx context.Context, req core.CreateConnectionStrategyRequest) (core.ConnectionStrategy, error)
	UpdateConnectionStrategy(ctx context.Context, req core.UpdateConnectionStrategyRequest) (core.ConnectionStrategy, error)
	ToggleConnectionStrategy(ctx context.Context, id string) (core.ConnectionStrategy, error)
	DeleteConnectionStrategy(ctx context.Context, id string) (core.ConnectionStrategy, error)
	AddLinkedUser(ctx context.Context, req core.AddLinkedUserRequest) (core.LinkedUser, error)
}

type CreateConnectionStrategyCommand struct {
	service MutatingService
}

func NewCreateConnectionStrategyCommand(service MutatingService) *CreateConnectionStrategyCommand {
	return &CreateConnectionStrategyCommand{service: service}
}

func (c *CreateConnectionStrategyCommand) Execute(ctx context.Context, msg CreateConnectionStrategyMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: connection strategy service is required")
	}
	out, err := c.service.CreateConnectionStrategy(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type UpdateConnectionStrategyCommand struct {
	service MutatingService
}

func NewUpdateConnectionStrategyCommand(service MutatingService) *UpdateConnectionStrategyCommand {
	return &UpdateConnectionStrategyCommand{service: service}
}

func (c *UpdateConnectionStrategyCommand) Execute(ctx context.Context, msg UpdateConnectionStrategyMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: connection strategy service is required")
	}
	out, err := c.service.UpdateConnectionStrategy(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type ToggleConnectionStrategyCommand struct {
	service MutatingService
}

func NewToggleConnectionStrategyCommand(service MutatingService) *ToggleConnectionStrategyCommand {
	return &ToggleConnectionStrategyCommand{service: service}
}

func (c *ToggleConnectionStrategyCommand) Execute(ctx context.Context, msg ToggleConnectionStrategyMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: connection strategy service is required")
	}
	out, err := c.service.ToggleConnectionStrategy(ctx, msg.ID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type DeleteConnectionStrategyCommand struct {
	service MutatingService
}

func NewDeleteConnectionStrategyCommand(service MutatingService) *DeleteConnectionStrategyCommand {
	return &DeleteConnectionStrategyCommand{service: service}
}

func (c *DeleteConnectionStrategyCommand) Execute(ctx context.Context, msg DeleteConnectionStrategyMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: connection strategy service is required")
	}
	out, err := c.service.DeleteConnectionStrategy(ctx, msg.ID)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

type AddLinkedUserCommand struct {
	service MutatingService
}

func NewAddLinkedUserCommand(service MutatingService) *AddLinkedUserCommand {
	return &AddLinkedUserCommand{service: service}
}

func (c *AddLinkedUserCommand) Execute(ctx context.Context, msg AddLinkedUserMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: linked user service is required")
	}
	out, err := c.service.AddLinkedUser(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
