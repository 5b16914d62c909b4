// Package providers wires the built-in design rule providers into a registry.
package providers

import (
	"github.com/leapstack-labs/boardcheck/pkg/drc"
	"github.com/leapstack-labs/boardcheck/pkg/drc/providers/courtyard"
)

// builtin lists every provider shipped with boardcheck, in run order.
var builtin = []struct {
	name    string
	factory drc.Factory
}{
	{courtyard.Name, courtyard.New},
}

// RegisterAll registers every built-in provider with reg.
func RegisterAll(reg *drc.Registry) error {
	for _, p := range builtin {
		if err := reg.Register(p.name, p.factory); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding the built-in providers.
func NewRegistry() *drc.Registry {
	reg := drc.NewRegistry()
	for _, p := range builtin {
		reg.MustRegister(p.name, p.factory)
	}
	return reg
}
