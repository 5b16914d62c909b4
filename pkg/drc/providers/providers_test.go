package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/boardcheck/pkg/drc"
)

func TestRegisterAll(t *testing.T) {
	reg := drc.NewRegistry()
	require.NoError(t, RegisterAll(reg))
	assert.Equal(t, []string{"courtyard_clearance"}, reg.Names())

	err := RegisterAll(reg)
	require.ErrorIs(t, err, drc.ErrDuplicateProvider)
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	p, err := reg.New("courtyard_clearance")
	require.NoError(t, err)
	assert.Equal(t, "courtyard_clearance", p.Name())
}
