package maintenance

import (
	"context"
	"testing"
)

// mockStore implements the store interface with overridable behavior.
type mockStore struct {
	scanFn        func(ctx context.Context, pattern string) ([]string, error)
	delMultiFn    func(ctx context.Context, keys []string) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) DelMulti(ctx context.Context, keys []string) error {
	if m.delMultiFn != nil {
		return m.delMultiFn(ctx, keys)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return true, nil
}

// mockIndex implements Index and counts lifecycle calls.
type mockIndex struct {
	name        string
	ensureErr   error
	dropErr     error
	ensureCalls int
	dropCalls   int
}

func (m *mockIndex) IndexName() string { return m.name }

func (m *mockIndex) EnsureIndex(_ context.Context) error {
	m.ensureCalls++
	return m.ensureErr
}

func (m *mockIndex) DropIndex(_ context.Context) error {
	m.dropCalls++
	return m.dropErr
}

func newTestRepo(t *testing.T) (*Repo, *mockStore, []*mockIndex) {
	t.Helper()
	ms := &mockStore{}
	indexes := []*mockIndex{
		{name: "cardex:cars:idx"},
		{name: "cardex:brands:idx"},
		{name: "cardex:tags:idx"},
	}
	return New(ms, indexes[0], indexes[1], indexes[2]), ms, indexes
}
