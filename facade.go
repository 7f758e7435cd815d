package connectors

import (
	"fmt"

	connectorscommand "github.com/goliatone/go-connectors/command"
	"github.com/goliatone/go-connectors/core"
	connectorsquery "github.com/goliatone/go-connectors/query"
)

var _ CommandQueryService = (*core.Service)(nil)

// CommandQueryService is the surface the facade wires into command and
// query handlers. *core.Service satisfies it.
type CommandQueryService interface {
	connectorscommand.MutatingService
	connectorsquery.CredentialReader
	connectorsquery.StrategyReader
	connectorsquery.LinkedUserReader
}

type Commands struct {
	CreateConnectionStrategy *connectorscommand.CreateConnectionStrategyCommand
	UpdateConnectionStrategy *connectorscommand.UpdateConnectionStrategyCommand
	ToggleConnectionStrategy *connectorscommand.ToggleConnectionStrategyCommand
	DeleteConnectionStrategy *connectorscommand.DeleteConnectionStrategyCommand
	AddLinkedUser            *connectorscommand.AddLinkedUserCommand
}

type Queries struct {
	GetCredentials            *connectorsquery.GetCredentialsQuery
	GetConnectionStrategyData *connectorsquery.GetConnectionStrategyDataQuery
	ListConnectionStrategies  *connectorsquery.ListConnectionStrategiesQuery
	GetLinkedUser             *connectorsquery.GetLinkedUserQuery
	GetLinkedUserByOrigin     *connectorsquery.GetLinkedUserByOriginQuery
	ListLinkedUsers           *connectorsquery.ListLinkedUsersQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	credentialReader connectorsquery.CredentialReader
}

// WithCredentialReader swaps the credential read path, for callers that
// front credential reads with a cache or an audit wrapper.
func WithCredentialReader(reader connectorsquery.CredentialReader) FacadeOption {
	return func(options *facadeOptions) {
		options.credentialReader = reader
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("connectors: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	credentials := cfg.credentialReader
	if credentials == nil {
		credentials = service
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		CreateConnectionStrategy: connectorscommand.NewCreateConnectionStrategyCommand(service),
		UpdateConnectionStrategy: connectorscommand.NewUpdateConnectionStrategyCommand(service),
		ToggleConnectionStrategy: connectorscommand.NewToggleConnectionStrategyCommand(service),
		DeleteConnectionStrategy: connectorscommand.NewDeleteConnectionStrategyCommand(service),
		AddLinkedUser:            connectorscommand.NewAddLinkedUserCommand(service),
	}
	facade.queries = Queries{
		GetCredentials:            connectorsquery.NewGetCredentialsQuery(credentials),
		GetConnectionStrategyData: connectorsquery.NewGetConnectionStrategyDataQuery(credentials),
		ListConnectionStrategies:  connectorsquery.NewListConnectionStrategiesQuery(service),
		GetLinkedUser:             connectorsquery.NewGetLinkedUserQuery(service),
		GetLinkedUserByOrigin:     connectorsquery.NewGetLinkedUserByOriginQuery(service),
		ListLinkedUsers:           connectorsquery.NewListLinkedUsersQuery(service),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}
