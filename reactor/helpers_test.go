package reactor_test

import (
	"testing"

	"github.com/christian-schlichtherle/reactor-di-go/reactor"
	"github.com/stretchr/testify/require"
)

// newAppRegistry builds the canonical three-type fixture: a Config with
// defaulted values, a Service forwarding through its _config slot, and an
// AppModule synthesizing both under the given caching strategy.
func newAppRegistry(t *testing.T, caching reactor.CachingStrategy) *reactor.Registry {
	t.Helper()

	reg := reactor.NewRegistry()

	require.NoError(t, reg.Register(&reactor.Definition{
		Name: "Config",
		Slots: []reactor.Slot{
			reactor.NewSlot("timeout", reactor.Int()).WithDefault(30),
			reactor.NewSlot("host", reactor.String()).WithDefault("localhost"),
		},
	}))

	require.NoError(t, reg.Register(&reactor.Definition{
		Name: "Service",
		Slots: []reactor.Slot{
			reactor.NewSlot("_config", reactor.Named("Config")).AsPlaceholder(),
			reactor.NewSlot("_timeout", reactor.Int()),
		},
		Forwards: []reactor.ForwardDecl{reactor.NewForward("_config")},
	}))

	require.NoError(t, reg.Register(&reactor.Definition{
		Name: "AppModule",
		Slots: []reactor.Slot{
			reactor.NewSlot("config", reactor.Named("Config")),
			reactor.NewSlot("service", reactor.Named("Service")),
		},
		Module: reactor.Module(caching),
	}))

	return reg
}

// mustNew constructs an instance or fails the test.
func mustNew(t *testing.T, reg *reactor.Registry, name string) *reactor.Instance {
	t.Helper()
	inst, err := reg.New(name)
	require.NoError(t, err)
	return inst
}
