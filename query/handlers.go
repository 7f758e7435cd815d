package query

import (
	"context"

	"github.com/goliatone/go-connectors/core"
)

type CredentialReader interface {
	GetCredentials(ctx context.Context, projectID string, compositeType core.CompositeType) (core.AuthData, error)
	GetConnectionStrategyData(ctx context.Context, req core.ConnectionStrategyDataRequest) ([]string, error)
}

type StrategyReader interface {
	GetConnectionStrategiesForProject(ctx context.Context, projectID string) ([]core.ConnectionStrategy, error)
}

type LinkedUserReader interface {
	GetLinkedUser(ctx context.Context, id string) (core.LinkedUser, bool, error)
	GetLinkedUserByOrigin(ctx context.Context, originID string) (core.LinkedUser, bool, error)
	GetLinkedUsers(ctx context.Context, projectID string) ([]core.LinkedUser, error)
}

// LinkedUserResult carries the expected-absence flag through the query
// surface so callers can tell a miss apart from a failure.
type LinkedUserResult struct {
	User  core.LinkedUser
	Found bool
}

type GetCredentialsQuery struct {
	reader CredentialReader
}

func NewGetCredentialsQuery(reader CredentialReader) *GetCredentialsQuery {
	return &GetCredentialsQuery{reader: reader}
}

func (q *GetCredentialsQuery) Query(ctx context.Context, msg GetCredentialsMessage) (core.AuthData, error) {
	if q == nil || q.reader == nil {
		return core.AuthData{}, queryDependencyError("query: credential reader is required")
	}
	return q.reader.GetCredentials(ctx, msg.ProjectID, msg.CompositeType)
}

type GetConnectionStrategyDataQuery struct {
	reader CredentialReader
}

func NewGetConnectionStrategyDataQuery(reader CredentialReader) *GetConnectionStrategyDataQuery {
	return &GetConnectionStrategyDataQuery{reader: reader}
}

func (q *GetConnectionStrategyDataQuery) Query(
	ctx context.Context,
	msg GetConnectionStrategyDataMessage,
) ([]string, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: credential reader is required")
	}
	return q.reader.GetConnectionStrategyData(ctx, msg.Request)
}

type ListConnectionStrategiesQuery struct {
	reader StrategyReader
}

func NewListConnectionStrategiesQuery(reader StrategyReader) *ListConnectionStrategiesQuery {
	return &ListConnectionStrategiesQuery{reader: reader}
}

func (q *ListConnectionStrategiesQuery) Query(
	ctx context.Context,
	msg ListConnectionStrategiesMessage,
) ([]core.ConnectionStrategy, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: strategy reader is required")
	}
	return q.reader.GetConnectionStrategiesForProject(ctx, msg.ProjectID)
}

type GetLinkedUserQuery struct {
	reader LinkedUserReader
}

func NewGetLinkedUserQuery(reader LinkedUserReader) *GetLinkedUserQuery {
	return &GetLinkedUserQuery{reader: reader}
}

func (q *GetLinkedUserQuery) Query(ctx context.Context, msg GetLinkedUserMessage) (LinkedUserResult, error) {
	if q == nil || q.reader == nil {
		return LinkedUserResult{}, queryDependencyError("query: linked user reader is required")
	}
	user, found, err := q.reader.GetLinkedUser(ctx, msg.ID)
	if err != nil {
		return LinkedUserResult{}, err
	}
	return LinkedUserResult{User: user, Found: found}, nil
}

type GetLinkedUserByOriginQuery struct {
	reader LinkedUserReader
}

func NewGetLinkedUserByOriginQuery(reader LinkedUserReader) *GetLinkedUserByOriginQuery {
	return &GetLinkedUserByOriginQuery{reader: reader}
}

func (q *GetLinkedUserByOriginQuery) Query(
	ctx context.Context,
	msg GetLinkedUserByOriginMessage,
) (LinkedUserResult, error) {
	if q == nil || q.reader == nil {
		return LinkedUserResult{}, queryDependencyError("query: linked user reader is required")
	}
	user, found, err := q.reader.GetLinkedUserByOrigin(ctx, msg.OriginID)
	if err != nil {
		return LinkedUserResult{}, err
	}
	return LinkedUserResult{User: user, Found: found}, nil
}

type ListLinkedUsersQuery struct {
	reader LinkedUserReader
}

func NewListLinkedUsersQuery(reader LinkedUserReader) *ListLinkedUsersQuery {
	return &ListLinkedUsersQuery{reader: reader}
}

func (q *ListLinkedUsersQuery) Query(
	ctx context.Context,
	msg ListLinkedUsersMessage,
) ([]core.LinkedUser, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: linked user reader is required")
	}
	return q.reader.GetLinkedUsers(ctx, msg.ProjectID)
}
