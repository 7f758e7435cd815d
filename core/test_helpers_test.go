package core

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"
)

type testSecretProvider struct{}

func (testSecretProvider) Encrypt(_ context.Context, plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("test secret provider: plaintext is required")
	}
	encoded := base64.StdEncoding.EncodeToString(plaintext)
	return []byte("enc:" + encoded), nil
}

func (testSecretProvider) Decrypt(_ context.Context, ciphertext []byte) ([]byte, error) {
	value := strings.TrimSpace(string(ciphertext))
	if value == "" || !strings.HasPrefix(value, "enc:") {
		return nil, fmt.Errorf("test secret provider: invalid ciphertext")
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, "enc:"))
	if err != nil {
		return nil, fmt.Errorf("test secret provider: decode ciphertext: %w", err)
	}
	return decoded, nil
}

type memoryStrategyStore struct {
	mu   sync.Mutex
	next int
	byID map[string]ConnectionStrategy
}

func newMemoryStrategyStore() *memoryStrategyStore {
	return &memoryStrategyStore{byID: map[string]ConnectionStrategy{}}
}

func (s *memoryStrategyStore) Create(_ context.Context, in CreateConnectionStrategyInput) (ConnectionStrategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(in.Attributes) != len(in.Values) {
		return ConnectionStrategy{}, fmt.Errorf("attributes and values misaligned")
	}
	s.next++
	now := time.Now().UTC()
	strategy := ConnectionStrategy{
		ID:         fmt.Sprintf("cs_%d", s.next),
		ProjectID:  in.ProjectID,
		Type:       in.Type,
		Attributes: append([]string(nil), in.Attributes...),
		Values:     append([]string(nil), in.Values...),
		Status:     in.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if strategy.Status == "" {
		strategy.Status = StrategyStatusEnabled
	}
	s.byID[strategy.ID] = strategy
	return cloneStrategy(strategy), nil
}

func (s *memoryStrategyStore) Get(_ context.Context, id string) (ConnectionStrategy, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	strategy, ok := s.byID[id]
	if !ok {
		return ConnectionStrategy{}, false, nil
	}
	return cloneStrategy(strategy), true, nil
}

func (s *memoryStrategyStore) FindByProjectAndType(_ context.Context, projectID string, compositeType CompositeType) (ConnectionStrategy, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, strategy := range s.byID {
		if strategy.ProjectID == projectID && strategy.Type == compositeType {
			return cloneStrategy(strategy), true, nil
		}
	}
	return ConnectionStrategy{}, false, nil
}

func (s *memoryStrategyStore) ListByProject(_ context.Context, projectID string) ([]ConnectionStrategy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ConnectionStrategy
	for _, strategy := range s.byID {
		if strategy.ProjectID == projectID {
			out = append(out, cloneStrategy(strategy))
		}
	}
	return out, nil
}

func (s *memoryStrategyStore) Update(_ context.Context, in UpdateConnectionStrategyInput) (ConnectionStrategy, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	strategy, ok := s.byID[in.ID]
	if !ok {
		return ConnectionStrategy{}, false, nil
	}
	if in.Attributes != nil {
		if len(in.Attributes) != len(in.Values) {
			return ConnectionStrategy{}, false, fmt.Errorf("attributes and values misaligned")
		}
		strategy.Attributes = append([]string(nil), in.Attributes...)
		strategy.Values = append([]string(nil), in.Values...)
	}
	if in.Status != nil {
		strategy.Status = *in.Status
	}
	strategy.UpdatedAt = time.Now().UTC()
	s.byID[in.ID] = strategy
	return cloneStrategy(strategy), true, nil
}

func (s *memoryStrategyStore) Toggle(_ context.Context, id string) (ConnectionStrategy, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	strategy, ok := s.byID[id]
	if !ok {
		return ConnectionStrategy{}, false, nil
	}
	strategy.Status = strategy.Status.Toggled()
	strategy.UpdatedAt = time.Now().UTC()
	s.byID[id] = strategy
	return cloneStrategy(strategy), true, nil
}

func (s *memoryStrategyStore) Delete(_ context.Context, id string) (ConnectionStrategy, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	strategy, ok := s.byID[id]
	if !ok {
		return ConnectionStrategy{}, false, nil
	}
	delete(s.byID, id)
	return cloneStrategy(strategy), true, nil
}

func cloneStrategy(strategy ConnectionStrategy) ConnectionStrategy {
	strategy.Attributes = append([]string(nil), strategy.Attributes...)
	strategy.Values = append([]string(nil), strategy.Values...)
	return strategy
}

type memoryLinkedUserStore struct {
	mu   sync.Mutex
	next int
	byID map[string]LinkedUser
}

func newMemoryLinkedUserStore() *memoryLinkedUserStore {
	return &memoryLinkedUserStore{byID: map[string]LinkedUser{}}
}

func (s *memoryLinkedUserStore) Add(_ context.Context, in AddLinkedUserInput) (LinkedUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.ProjectID == in.ProjectID && existing.OriginID == in.OriginID {
			return LinkedUser{}, fmt.Errorf("duplicate origin id %q", in.OriginID)
		}
	}
	s.next++
	now := time.Now().UTC()
	user := LinkedUser{
		ID:        fmt.Sprintf("lu_%d", s.next),
		ProjectID: in.ProjectID,
		OriginID:  in.OriginID,
		Alias:     in.Alias,
		Email:     in.Email,
		Metadata:  in.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.byID[user.ID] = user
	return user, nil
}

func (s *memoryLinkedUserStore) Get(_ context.Context, id string) (LinkedUser, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byID[id]
	return user, ok, nil
}

func (s *memoryLinkedUserStore) GetByOrigin(_ context.Context, originID string) (LinkedUser, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.byID {
		if user.OriginID == originID {
			return user, true, nil
		}
	}
	return LinkedUser{}, false, nil
}

func (s *memoryLinkedUserStore) ListByProject(_ context.Context, projectID string) ([]LinkedUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []LinkedUser
	for _, user := range s.byID {
		if user.ProjectID == projectID {
			out = append(out, user)
		}
	}
	return out, nil
}

func newTestService(t interface{ Fatalf(string, ...any) }, options ...Option) *Service {
	base := []Option{
		WithSecretProvider(testSecretProvider{}),
		WithConnectionStrategyStore(newMemoryStrategyStore()),
		WithLinkedUserStore(newMemoryLinkedUserStore()),
	}
	service, err := NewService(Config{}, append(base, options...)...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return service
}

func testCatalogEntries() []ProviderEntry {
	return []ProviderEntry{
		{
			Vertical:     "crm",
			Provider:     "hubspot",
			AuthStrategy: AuthStrategyOAuth2,
			URLs: ProviderURLs{
				AuthBaseURL: "https://app.hubspot.com/oauth/authorize",
				APIURL:      "https://api.hubapi.com",
			},
		},
		{
			Vertical:     "ticketing",
			Provider:     "zendesk",
			AuthStrategy: AuthStrategyOAuth2,
			URLs: ProviderURLs{
				AuthBaseURL: "/oauth/authorizations/new",
				APIURL:      "/api/v2",
			},
		},
		{
			Vertical:     "crm",
			Provider:     "zoho",
			AuthStrategy: AuthStrategyOAuth2,
			URLs: ProviderURLs{
				AuthBaseURL: "https://accounts.zoho.com/oauth/v2/auth",
				APIURL:      "",
			},
		},
	}
}
