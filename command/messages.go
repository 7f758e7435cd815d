package command

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-connectors/core"
)

const (
	TypeCreateConnectionStrategy = "connectors.command.strategy.create"
	TypeUpdateConnectionStrategy = "connectors.command.strategy.update"
	TypeToggleConnectionStrategy = "connectors.command.strategy.toggle"
	TypeDeleteConnectionStrategy = "connectors.command.strategy.delete"
	TypeAddLinkedUser            = "connectors.command.linked_user.add"
)

type CreateConnectionStrategyMessage struct {
	Request core.CreateConnectionStrategyRequest
}

func (CreateConnectionStrategyMessage) Type() string { return TypeCreateConnectionStrategy }

func (m CreateConnectionStrategyMessage) Validate() error {
	if strings.TrimSpace(m.Request.ProjectID) == "" {
		return fmt.Errorf("command: project id is required")
	}
	if strings.TrimSpace(string(m.Request.Type)) == "" {
		return fmt.Errorf("command: composite type is required")
	}
	if len(m.Request.Attributes) == 0 {
		return fmt.Errorf("command: attributes are required")
	}
	if len(m.Request.Attributes) != len(m.Request.Values) {
		return fmt.Errorf("command: attributes and values must align")
	}
	return nil
}

type UpdateConnectionStrategyMessage struct {
	Request core.UpdateConnectionStrategyRequest
}

func (UpdateConnectionStrategyMessage) Type() string { return TypeUpdateConnectionStrategy }

func (m UpdateConnectionStrategyMessage) Validate() error {
	if strings.TrimSpace(m.Request.ID) == "" {
		return fmt.Errorf("command: strategy id is required")
	}
	if m.Request.Status == nil && m.Request.Attributes == nil && m.Request.Values == nil {
		return fmt.Errorf("command: update requires a status or attribute change")
	}
	return nil
}

type ToggleConnectionStrategyMessage struct {
	ID string
}

func (ToggleConnectionStrategyMessage) Type() string { return TypeToggleConnectionStrategy }

func (m ToggleConnectionStrategyMessage) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("command: strategy id is required")
	}
	return nil
}

type DeleteConnectionStrategyMessage struct {
	ID string
}

func (DeleteConnectionStrategyMessage) Type() string { return TypeDeleteConnectionStrategy }

func (m DeleteConnectionStrategyMessage) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("command: strategy id is required")
	}
	return nil
}

type AddLinkedUserMessage struct {
	Request core.AddLinkedUserRequest
}

func (AddLinkedUserMessage) Type() string { return TypeAddLinkedUser }

func (m AddLinkedUserMessage) Validate() error {
	if strings.TrimSpace(m.Request.ProjectID) == "" {
		return fmt.Errorf("command: project id is required")
	}
	if strings.TrimSpace(m.Request.OriginID) == "" {
		return fmt.Errorf("command: origin id is required")
	}
	return nil
}
