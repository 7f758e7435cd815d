package core

import (
	"context"
	"strings"
	"time"
)

// AddLinkedUser registers an end user of the consuming application so remote
// records can be attributed to them. OriginID is the caller's own identifier
// and is unique per project.
func (s *Service) AddLinkedUser(ctx context.Context, req AddLinkedUserRequest) (user LinkedUser, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": req.ProjectID}
	defer func() {
		if user.ID != "" {
			fields["linked_user_id"] = user.ID
		}
		s.observeOperation(ctx, startedAt, "add_linked_user", err, fields)
	}()

	if strings.TrimSpace(req.ProjectID) == "" {
		err = s.invalidInputError("core: project id is required")
		return LinkedUser{}, err
	}
	if strings.TrimSpace(req.OriginID) == "" {
		err = s.invalidInputError("core: origin id is required")
		return LinkedUser{}, err
	}
	if s.linkedUserStore == nil {
		err = s.dependencyError("core: linked user store is required")
		return LinkedUser{}, err
	}

	user, err = s.linkedUserStore.Add(ctx, AddLinkedUserInput{
		ProjectID: strings.TrimSpace(req.ProjectID),
		OriginID:  strings.TrimSpace(req.OriginID),
		Alias:     strings.TrimSpace(req.Alias),
		Email:     strings.TrimSpace(req.Email),
		Metadata:  req.Metadata,
	})
	if err != nil {
		err = s.mapError(err)
		return LinkedUser{}, err
	}
	return user, nil
}

func (s *Service) GetLinkedUser(ctx context.Context, id string) (user LinkedUser, found bool, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"linked_user_id": id}
	defer func() {
		s.observeOperation(ctx, startedAt, "get_linked_user", err, fields)
	}()

	if strings.TrimSpace(id) == "" {
		err = s.invalidInputError("core: linked user id is required")
		return LinkedUser{}, false, err
	}
	if s.linkedUserStore == nil {
		err = s.dependencyError("core: linked user store is required")
		return LinkedUser{}, false, err
	}

	user, found, err = s.linkedUserStore.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		err = s.mapError(err)
		return LinkedUser{}, false, err
	}
	return user, found, nil
}

// GetLinkedUserByOrigin resolves a linked user by the caller-side identifier
// it was registered with.
func (s *Service) GetLinkedUserByOrigin(ctx context.Context, originID string) (user LinkedUser, found bool, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		if user.ID != "" {
			fields["linked_user_id"] = user.ID
		}
		s.observeOperation(ctx, startedAt, "get_linked_user_by_origin", err, fields)
	}()

	if strings.TrimSpace(originID) == "" {
		err = s.invalidInputError("core: origin id is required")
		return LinkedUser{}, false, err
	}
	if s.linkedUserStore == nil {
		err = s.dependencyError("core: linked user store is required")
		return LinkedUser{}, false, err
	}

	user, found, err = s.linkedUserStore.GetByOrigin(ctx, strings.TrimSpace(originID))
	if err != nil {
		err = s.mapError(err)
		return LinkedUser{}, false, err
	}
	return user, found, nil
}

func (s *Service) GetLinkedUsers(ctx context.Context, projectID string) (users []LinkedUser, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"project_id": projectID}
	defer func() {
		s.observeOperation(ctx, startedAt, "get_linked_users", err, fields)
	}()

	if strings.TrimSpace(projectID) == "" {
		err = s.invalidInputError("core: project id is required")
		return nil, err
	}
	if s.linkedUserStore == nil {
		err = s.dependencyError("core: linked user store is required")
		return nil, err
	}

	users, err = s.linkedUserStore.ListByProject(ctx, strings.TrimSpace(projectID))
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	return users, nil
}
