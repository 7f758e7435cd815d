package command

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-connectors/core"
	goerrors "github.com/goliatone/go-errors"
)

type stubMutatingService struct {
	createFn func(ctx context.Context, req core.CreateConnectionStrategyRequest) (core.ConnectionStrategy, error)
	updateFn func(ctx context.Context, req core.UpdateConnectionStrategyRequest) (core.ConnectionStrategy, error)
	toggleFn func(ctx context.Context, id string) (core.ConnectionStrategy, error)
	deleteFn func(ctx context.Context, id string) (core.ConnectionStrategy, error)
	addFn    func(ctx context.Context, req core.AddLinkedUserRequest) (core.LinkedUser, error)
}

func (s stubMutatingService) CreateConnectionStrategy(ctx context.Context, req core.CreateConnectionStrategyRequest) (core.ConnectionStrategy, error) {
	if s.createFn == nil {
		return core.ConnectionStrategy{}, fmt.Errorf("create not stubbed")
	}
	return s.createFn(ctx, req)
}

func (s stubMutatingService) UpdateConnectionStrategy(ctx context.Context, req core.UpdateConnectionStrategyRequest) (core.ConnectionStrategy, error) {
	if s.updateFn == nil {
		return core.ConnectionStrategy{}, fmt.Errorf("update not stubbed")
	}
	return s.updateFn(ctx, req)
}

func (s stubMutatingService) ToggleConnectionStrategy(ctx context.Context, id string) (core.ConnectionStrategy, error) {
	if s.toggleFn == nil {
		return core.ConnectionStrategy{}, fmt.Errorf("toggle not stubbed")
	}
	return s.toggleFn(ctx, id)
}

func (s stubMutatingService) DeleteConnectionStrategy(ctx context.Context, id string) (core.ConnectionStrategy, error) {
	if s.deleteFn == nil {
		return core.ConnectionStrategy{}, fmt.Errorf("delete not stubbed")
	}
	return s.deleteFn(ctx, id)
}

func (s stubMutatingService) AddLinkedUser(ctx context.Context, req core.AddLinkedUserRequest) (core.LinkedUser, error) {
	if s.addFn == nil {
		return core.LinkedUser{}, fmt.Errorf("add not stubbed")
	}
	return s.addFn(ctx, req)
}

func TestCreateConnectionStrategyCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := core.ConnectionStrategy{
		ID:        "cs_1",
		ProjectID: "proj_1",
		Type:      core.CompositeType("HUBSPOT_CRM_CLOUD_OAUTH"),
		Status:    core.StrategyStatusEnabled,
	}
	called := false

	svc := stubMutatingService{
		createFn: func(_ context.Context, req core.CreateConnectionStrategyRequest) (core.ConnectionStrategy, error) {
			called = true
			if req.ProjectID != "proj_1" {
				t.Fatalf("expected project proj_1, got %q", req.ProjectID)
			}
			return expected, nil
		},
	}

	cmd := NewCreateConnectionStrategyCommand(svc)
	collector := gocmd.NewResult[core.ConnectionStrategy]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, CreateConnectionStrategyMessage{Request: core.CreateConnectionStrategyRequest{
		ProjectID:  "proj_1",
		Type:       core.CompositeType("HUBSPOT_CRM_CLOUD_OAUTH"),
		Attributes: []string{"client_id"},
		Values:     []string{"cid"},
	}})
	if err != nil {
		t.Fatalf("execute create: %v", err)
	}
	if !called {
		t.Fatalf("expected create invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.ID != expected.ID || result.Status != expected.Status {
		t.Fatalf("unexpected result: %#v", result)
	}
}

func TestCreateConnectionStrategyCommand_ServiceErrorPropagates(t *testing.T) {
	svc := stubMutatingService{
		createFn: func(_ context.Context, _ core.CreateConnectionStrategyRequest) (core.ConnectionStrategy, error) {
			return core.ConnectionStrategy{}, core.ErrVerticalNotEnabled
		},
	}
	cmd := NewCreateConnectionStrategyCommand(svc)
	err := cmd.Execute(context.Background(), CreateConnectionStrategyMessage{Request: core.CreateConnectionStrategyRequest{
		ProjectID:  "proj_1",
		Type:       core.CompositeType("HUBSPOT_CRM_CLOUD_OAUTH"),
		Attributes: []string{"client_id"},
		Values:     []string{"cid"},
	}})
	if !errors.Is(err, core.ErrVerticalNotEnabled) {
		t.Fatalf("expected vertical not enabled error, got %v", err)
	}
}

func TestMutationCommands_DelegateToService(t *testing.T) {
	t.Run("update", func(t *testing.T) {
		status := core.StrategyStatusDisabled
		called := false
		svc := stubMutatingService{
			updateFn: func(_ context.Context, req core.UpdateConnectionStrategyRequest) (core.ConnectionStrategy, error) {
				called = true
				if req.ID != "cs_1" || req.Status == nil || *req.Status != status {
					t.Fatalf("unexpected update payload: %#v", req)
				}
				return core.ConnectionStrategy{ID: "cs_1", Status: status}, nil
			},
		}
		cmd := NewUpdateConnectionStrategyCommand(svc)
		collector := gocmd.NewResult[core.ConnectionStrategy]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		err := cmd.Execute(ctx, UpdateConnectionStrategyMessage{Request: core.UpdateConnectionStrategyRequest{
			ID:     "cs_1",
			Status: &status,
		}})
		if err != nil {
			t.Fatalf("execute update: %v", err)
		}
		if !called {
			t.Fatalf("expected update invocation")
		}
		stored, ok := collector.Load()
		if !ok {
			t.Fatalf("expected update result")
		}
		if stored.Status != status {
			t.Fatalf("unexpected update result: %#v", stored)
		}
	})

	t.Run("toggle", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			toggleFn: func(_ context.Context, id string) (core.ConnectionStrategy, error) {
				called = true
				if id != "cs_1" {
					t.Fatalf("unexpected toggle id: %q", id)
				}
				return core.ConnectionStrategy{ID: "cs_1", Status: core.StrategyStatusDisabled}, nil
			},
		}
		cmd := NewToggleConnectionStrategyCommand(svc)
		if err := cmd.Execute(context.Background(), ToggleConnectionStrategyMessage{ID: "cs_1"}); err != nil {
			t.Fatalf("execute toggle: %v", err)
		}
		if !called {
			t.Fatalf("expected toggle invocation")
		}
	})

	t.Run("delete", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			deleteFn: func(_ context.Context, id string) (core.ConnectionStrategy, error) {
				called = true
				if id != "cs_1" {
					t.Fatalf("unexpected delete id: %q", id)
				}
				return core.ConnectionStrategy{ID: "cs_1"}, nil
			},
		}
		cmd := NewDeleteConnectionStrategyCommand(svc)
		collector := gocmd.NewResult[core.ConnectionStrategy]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		if err := cmd.Execute(ctx, DeleteConnectionStrategyMessage{ID: "cs_1"}); err != nil {
			t.Fatalf("execute delete: %v", err)
		}
		if !called {
			t.Fatalf("expected delete invocation")
		}
		stored, ok := collector.Load()
		if !ok {
			t.Fatalf("expected delete result")
		}
		if stored.ID != "cs_1" {
			t.Fatalf("unexpected delete result: %#v", stored)
		}
	})

	t.Run("add linked user", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			addFn: func(_ context.Context, req core.AddLinkedUserRequest) (core.LinkedUser, error) {
				called = true
				if req.OriginID != "acct_42" {
					t.Fatalf("unexpected origin id: %q", req.OriginID)
				}
				return core.LinkedUser{ID: "lu_1", ProjectID: req.ProjectID, OriginID: req.OriginID}, nil
			},
		}
		cmd := NewAddLinkedUserCommand(svc)
		collector := gocmd.NewResult[core.LinkedUser]()
		ctx := gocmd.ContextWithResult(context.Background(), collector)
		err := cmd.Execute(ctx, AddLinkedUserMessage{Request: core.AddLinkedUserRequest{
			ProjectID: "proj_1",
			OriginID:  "acct_42",
		}})
		if err != nil {
			t.Fatalf("execute add linked user: %v", err)
		}
		if !called {
			t.Fatalf("expected add linked user invocation")
		}
		stored, ok := collector.Load()
		if !ok {
			t.Fatalf("expected linked user result")
		}
		if stored.ID != "lu_1" {
			t.Fatalf("unexpected linked user result: %#v", stored)
		}
	})
}

func TestCommandMessages_Validate(t *testing.T) {
	cases := []struct {
		name    string
		message interface{ Validate() error }
		wantErr bool
	}{
		{"create missing project", CreateConnectionStrategyMessage{Request: core.CreateConnectionStrategyRequest{
			Type:       core.CompositeType("HUBSPOT_CRM_CLOUD_OAUTH"),
			Attributes: []string{"client_id"},
			Values:     []string{"cid"},
		}}, true},
		{"create misaligned values", CreateConnectionStrategyMessage{Request: core.CreateConnectionStrategyRequest{
			ProjectID:  "proj_1",
			Type:       core.CompositeType("HUBSPOT_CRM_CLOUD_OAUTH"),
			Attributes: []string{"client_id", "client_secret"},
			Values:     []string{"cid"},
		}}, true},
		{"create valid", CreateConnectionStrategyMessage{Request: core.CreateConnectionStrategyRequest{
			ProjectID:  "proj_1",
			Type:       core.CompositeType("HUBSPOT_CRM_CLOUD_OAUTH"),
			Attributes: []string{"client_id"},
			Values:     []string{"cid"},
		}}, false},
		{"update no changes", UpdateConnectionStrategyMessage{Request: core.UpdateConnectionStrategyRequest{
			ID: "cs_1",
		}}, true},
		{"toggle missing id", ToggleConnectionStrategyMessage{}, true},
		{"delete valid", DeleteConnectionStrategyMessage{ID: "cs_1"}, false},
		{"linked user missing origin", AddLinkedUserMessage{Request: core.AddLinkedUserRequest{
			ProjectID: "proj_1",
		}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.message.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestCreateConnectionStrategyCommand_NilServiceReturnsRichError(t *testing.T) {
	var cmd *CreateConnectionStrategyCommand
	err := cmd.Execute(context.Background(), CreateConnectionStrategyMessage{})
	if err == nil {
		t.Fatalf("expected command dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
	if rich.TextCode != core.ConnectorErrorInternal {
		t.Fatalf("expected %q text code, got %q", core.ConnectorErrorInternal, rich.TextCode)
	}
}
