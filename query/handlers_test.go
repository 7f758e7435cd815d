package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/goliatone/go-connectors/core"
	goerrors "github.com/goliatone/go-errors"
)

type stubCredentialReader struct {
	credentialsFn func(ctx context.Context, projectID string, compositeType core.CompositeType) (core.AuthData, error)
	dataFn        func(ctx context.Context, req core.ConnectionStrategyDataRequest) ([]string, error)
}

func (s stubCredentialReader) GetCredentials(ctx context.Context, projectID string, compositeType core.CompositeType) (core.AuthData, error) {
	if s.credentialsFn == nil {
		return core.AuthData{}, fmt.Errorf("credentials not stubbed")
	}
	return s.credentialsFn(ctx, projectID, compositeType)
}

func (s stubCredentialReader) GetConnectionStrategyData(ctx context.Context, req core.ConnectionStrategyDataRequest) ([]string, error) {
	if s.dataFn == nil {
		return nil, fmt.Errorf("strategy data not stubbed")
	}
	return s.dataFn(ctx, req)
}

type stubStrategyReader struct {
	listFn func(ctx context.Context, projectID string) ([]core.ConnectionStrategy, error)
}

func (s stubStrategyReader) GetConnectionStrategiesForProject(ctx context.Context, projectID string) ([]core.ConnectionStrategy, error) {
	if s.listFn == nil {
		return nil, fmt.Errorf("list not stubbed")
	}
	return s.listFn(ctx, projectID)
}

type stubLinkedUserReader struct {
	getFn      func(ctx context.Context, id string) (core.LinkedUser, bool, error)
	byOriginFn func(ctx context.Context, originID string) (core.LinkedUser, bool, error)
	listFn     func(ctx context.Context, projectID string) ([]core.LinkedUser, error)
}

func (s stubLinkedUserReader) GetLinkedUser(ctx context.Context, id string) (core.LinkedUser, bool, error) {
	if s.getFn == nil {
		return core.LinkedUser{}, false, fmt.Errorf("get not stubbed")
	}
	return s.getFn(ctx, id)
}

func (s stubLinkedUserReader) GetLinkedUserByOrigin(ctx context.Context, originID string) (core.LinkedUser, bool, error) {
	if s.byOriginFn == nil {
		return core.LinkedUser{}, false, fmt.Errorf("get by origin not stubbed")
	}
	return s.byOriginFn(ctx, originID)
}

func (s stubLinkedUserReader) GetLinkedUsers(ctx context.Context, projectID string) ([]core.LinkedUser, error) {
	if s.listFn == nil {
		return nil, fmt.Errorf("list not stubbed")
	}
	return s.listFn(ctx, projectID)
}

func TestGetCredentialsQuery_DelegatesToReader(t *testing.T) {
	expected, err := core.NewBasicAuthData(core.BasicAuthData{Username: "user", Secret: "pass"})
	if err != nil {
		t.Fatalf("build auth data: %v", err)
	}
	reader := stubCredentialReader{
		credentialsFn: func(_ context.Context, projectID string, compositeType core.CompositeType) (core.AuthData, error) {
			if projectID != "proj_1" {
				t.Fatalf("expected project proj_1, got %q", projectID)
			}
			if compositeType != core.CompositeType("JIRA_TICKETING_CLOUD_BASIC") {
				t.Fatalf("unexpected composite type: %q", compositeType)
			}
			return expected, nil
		},
	}

	q := NewGetCredentialsQuery(reader)
	out, err := q.Query(context.Background(), GetCredentialsMessage{
		ProjectID:     "proj_1",
		CompositeType: core.CompositeType("JIRA_TICKETING_CLOUD_BASIC"),
	})
	if err != nil {
		t.Fatalf("query credentials: %v", err)
	}
	if out.Strategy() != core.AuthStrategyBasic {
		t.Fatalf("unexpected auth strategy: %q", out.Strategy())
	}
	basic, ok := out.Basic()
	if !ok || basic.Username != "user" {
		t.Fatalf("unexpected basic payload: %#v", basic)
	}
}

func TestGetConnectionStrategyDataQuery_DelegatesToReader(t *testing.T) {
	reader := stubCredentialReader{
		dataFn: func(_ context.Context, req core.ConnectionStrategyDataRequest) ([]string, error) {
			if len(req.Attributes) != 2 {
				t.Fatalf("unexpected attributes: %#v", req.Attributes)
			}
			return []string{"cid", "secret"}, nil
		},
	}

	q := NewGetConnectionStrategyDataQuery(reader)
	out, err := q.Query(context.Background(), GetConnectionStrategyDataMessage{Request: core.ConnectionStrategyDataRequest{
		ProjectID:  "proj_1",
		Type:       core.CompositeType("HUBSPOT_CRM_CLOUD_OAUTH"),
		Attributes: []string{"client_id", "client_secret"},
	}})
	if err != nil {
		t.Fatalf("query strategy data: %v", err)
	}
	if len(out) != 2 || out[0] != "cid" {
		t.Fatalf("unexpected values: %#v", out)
	}
}

func TestListConnectionStrategiesQuery_DelegatesToReader(t *testing.T) {
	reader := stubStrategyReader{
		listFn: func(_ context.Context, projectID string) ([]core.ConnectionStrategy, error) {
			if projectID != "proj_1" {
				t.Fatalf("expected project proj_1, got %q", projectID)
			}
			return []core.ConnectionStrategy{{ID: "cs_1"}, {ID: "cs_2"}}, nil
		},
	}

	q := NewListConnectionStrategiesQuery(reader)
	out, err := q.Query(context.Background(), ListConnectionStrategiesMessage{ProjectID: "proj_1"})
	if err != nil {
		t.Fatalf("query strategies: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected two strategies, got %d", len(out))
	}
}

func TestLinkedUserQueries_ReportExpectedAbsence(t *testing.T) {
	reader := stubLinkedUserReader{
		getFn: func(_ context.Context, id string) (core.LinkedUser, bool, error) {
			if id == "lu_1" {
				return core.LinkedUser{ID: "lu_1", OriginID: "acct_42"}, true, nil
			}
			return core.LinkedUser{}, false, nil
		},
		byOriginFn: func(_ context.Context, originID string) (core.LinkedUser, bool, error) {
			if originID == "acct_42" {
				return core.LinkedUser{ID: "lu_1", OriginID: "acct_42"}, true, nil
			}
			return core.LinkedUser{}, false, nil
		},
	}

	byID := NewGetLinkedUserQuery(reader)
	hit, err := byID.Query(context.Background(), GetLinkedUserMessage{ID: "lu_1"})
	if err != nil {
		t.Fatalf("query linked user: %v", err)
	}
	if !hit.Found || hit.User.OriginID != "acct_42" {
		t.Fatalf("unexpected hit: %#v", hit)
	}

	miss, err := byID.Query(context.Background(), GetLinkedUserMessage{ID: "lu_missing"})
	if err != nil {
		t.Fatalf("query missing linked user: %v", err)
	}
	if miss.Found {
		t.Fatalf("expected miss, got %#v", miss)
	}

	byOrigin := NewGetLinkedUserByOriginQuery(reader)
	originHit, err := byOrigin.Query(context.Background(), GetLinkedUserByOriginMessage{OriginID: "acct_42"})
	if err != nil {
		t.Fatalf("query linked user by origin: %v", err)
	}
	if !originHit.Found || originHit.User.ID != "lu_1" {
		t.Fatalf("unexpected origin hit: %#v", originHit)
	}
}

func TestListLinkedUsersQuery_DelegatesToReader(t *testing.T) {
	reader := stubLinkedUserReader{
		listFn: func(_ context.Context, projectID string) ([]core.LinkedUser, error) {
			if projectID != "proj_1" {
				t.Fatalf("expected project proj_1, got %q", projectID)
			}
			return []core.LinkedUser{{ID: "lu_1"}}, nil
		},
	}

	q := NewListLinkedUsersQuery(reader)
	out, err := q.Query(context.Background(), ListLinkedUsersMessage{ProjectID: "proj_1"})
	if err != nil {
		t.Fatalf("query linked users: %v", err)
	}
	if len(out) != 1 || out[0].ID != "lu_1" {
		t.Fatalf("unexpected linked users: %#v", out)
	}
}

func TestQueryMessages_Validate(t *testing.T) {
	cases := []struct {
		name    string
		message interface{ Validate() error }
		wantErr bool
	}{
		{"credentials missing project", GetCredentialsMessage{CompositeType: core.CompositeType("HUBSPOT_CRM_CLOUD_OAUTH")}, true},
		{"credentials valid", GetCredentialsMessage{ProjectID: "proj_1", CompositeType: core.CompositeType("HUBSPOT_CRM_CLOUD_OAUTH")}, false},
		{"strategy data missing attributes", GetConnectionStrategyDataMessage{Request: core.ConnectionStrategyDataRequest{
			ProjectID: "proj_1",
			Type:      core.CompositeType("HUBSPOT_CRM_CLOUD_OAUTH"),
		}}, true},
		{"list strategies missing project", ListConnectionStrategiesMessage{}, true},
		{"linked user missing id", GetLinkedUserMessage{}, true},
		{"linked user by origin valid", GetLinkedUserByOriginMessage{OriginID: "acct_42"}, false},
		{"list linked users missing project", ListLinkedUsersMessage{}, true},
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

func TestQueries_NilReaderReturnsRichError(t *testing.T) {
	var q *GetCredentialsQuery
	_, err := q.Query(context.Background(), GetCredentialsMessage{})
	if err == nil {
		t.Fatalf("expected dependency error")
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
