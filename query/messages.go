package query

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-connectors/core"
)

const (
	TypeGetCredentials            = "connectors.query.credentials.get"
	TypeGetConnectionStrategyData = "connectors.query.strategy_data.get"
	TypeListConnectionStrategies  = "connectors.query.strategies.list"
	TypeGetLinkedUser             = "connectors.query.linked_user.get"
	TypeGetLinkedUserByOrigin     = "connectors.query.linked_user.get_by_origin"
	TypeListLinkedUsers           = "connectors.query.linked_users.list"
)

type GetCredentialsMessage struct {
	ProjectID     string
	CompositeType core.CompositeType
}

func (GetCredentialsMessage) Type() string { return TypeGetCredentials }

func (m GetCredentialsMessage) Validate() error {
	if strings.TrimSpace(m.ProjectID) == "" {
		return fmt.Errorf("query: project id is required")
	}
	if strings.TrimSpace(string(m.CompositeType)) == "" {
		return fmt.Errorf("query: composite type is required")
	}
	return nil
}

type GetConnectionStrategyDataMessage struct {
	Request core.ConnectionStrategyDataRequest
}

func (GetConnectionStrategyDataMessage) Type() string { return TypeGetConnectionStrategyData }

func (m GetConnectionStrategyDataMessage) Validate() error {
	if strings.TrimSpace(m.Request.ProjectID) == "" {
		return fmt.Errorf("query: project id is required")
	}
	if strings.TrimSpace(string(m.Request.Type)) == "" {
		return fmt.Errorf("query: composite type is required")
	}
	if len(m.Request.Attributes) == 0 {
		return fmt.Errorf("query: attributes are required")
	}
	return nil
}

type ListConnectionStrategiesMessage struct {
	ProjectID string
}

func (ListConnectionStrategiesMessage) Type() string { return TypeListConnectionStrategies }

func (m ListConnectionStrategiesMessage) Validate() error {
	if strings.TrimSpace(m.ProjectID) == "" {
		return fmt.Errorf("query: project id is required")
	}
	return nil
}

type GetLinkedUserMessage struct {
	ID string
}

func (GetLinkedUserMessage) Type() string { return TypeGetLinkedUser }

func (m GetLinkedUserMessage) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("query: linked user id is required")
	}
	return nil
}

type GetLinkedUserByOriginMessage struct {
	OriginID string
}

func (GetLinkedUserByOriginMessage) Type() string { return TypeGetLinkedUserByOrigin }

func (m GetLinkedUserByOriginMessage) Validate() error {
	if strings.TrimSpace(m.OriginID) == "" {
		return fmt.Errorf("query: origin id is required")
	}
	return nil
}

type ListLinkedUsersMessage struct {
	ProjectID string
}

func (ListLinkedUsersMessage) Type() string { return TypeListLinkedUsers }

func (m ListLinkedUsersMessage) Validate() error {
	if strings.TrimSpace(m.ProjectID) == "" {
		return fmt.Errorf("query: project id is required")
	}
	return nil
}
