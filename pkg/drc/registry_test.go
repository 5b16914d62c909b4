package drc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider implements Provider for testing.
type mockProvider struct {
	name string
	run  func(ctx context.Context, pass *Pass) bool
}

func (m *mockProvider) Name() string                          { return m.name }
func (m *mockProvider) Description() string                   { return "mock " + m.name }
func (m *mockProvider) MatchingConstraints() []ConstraintType { return nil }

func (m *mockProvider) Run(ctx context.Context, pass *Pass) bool {
	if m.run == nil {
		return true
	}
	return m.run(ctx, pass)
}

func mockFactory(name string, run func(context.Context, *Pass) bool) Factory {
	return func() Provider { return &mockProvider{name: name, run: run} }
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("b", mockFactory("b", nil)))
	require.NoError(t, reg.Register("a", mockFactory("a", nil)))

	err := reg.Register("b", mockFactory("b", nil))
	require.ErrorIs(t, err, ErrDuplicateProvider)

	assert.Error(t, reg.Register("", mockFactory("", nil)))
	assert.Error(t, reg.Register("c", nil))

	assert.Equal(t, 2, reg.Count())
	assert.Equal(t, []string{"b", "a"}, reg.Names())

	all := reg.CreateAll()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].Name())
	assert.Equal(t, "a", all[1].Name())
}

func TestRegistry_Get(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("a", mockFactory("a", nil))

	_, ok := reg.Get("a")
	assert.True(t, ok)

	p, err := reg.New("a")
	require.NoError(t, err)
	assert.Equal(t, "a", p.Name())

	_, err = reg.New("zzz")
	var unknown *UnknownProviderError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "zzz", unknown.Name)
	assert.Equal(t, []string{"a"}, unknown.Available)
	assert.Contains(t, err.Error(), `unknown provider "zzz"`)
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("a", mockFactory("a", nil))
	assert.Panics(t, func() { reg.MustRegister("a", mockFactory("a", nil)) })
}

func TestRegistry_Independent(t *testing.T) {
	one := NewRegistry()
	two := NewRegistry()
	one.MustRegister("a", mockFactory("a", nil))

	assert.Equal(t, 1, one.Count())
	assert.Equal(t, 0, two.Count())
}
