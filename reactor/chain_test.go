package reactor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christian-schlichtherle/reactor-di-go/reactor"
)

// newStackedRegistry mirrors the stacked-decorator pattern: a Resource takes
// an AppCtx at construction, forwards module-level members through _module,
// and config-level members through _config — which itself resolves through
// _module.config.
func newStackedRegistry(t *testing.T) *reactor.Registry {
	t.Helper()

	reg := reactor.NewRegistry()
	reg.MustRegister(&reactor.Definition{
		Name: "Config",
		Slots: []reactor.Slot{
			reactor.NewSlot("timeout", reactor.Int()).WithDefault(30),
			reactor.NewSlot("flag", reactor.String()).WithDefault("from-config"),
		},
	})
	reg.MustRegister(&reactor.Definition{
		Name: "AppCtx",
		Slots: []reactor.Slot{
			reactor.NewSlot("config", reactor.Named("Config")),
			reactor.NewSlot("namespace", reactor.String()).WithDefault("prod"),
			reactor.NewSlot("flag", reactor.String()).WithDefault("from-module"),
		},
		Module: reactor.Module(reactor.CachingMemoized),
	})
	reg.MustRegister(&reactor.Definition{
		Name: "Resource",
		Slots: []reactor.Slot{
			reactor.NewSlot("_config", reactor.Named("Config")).AsPlaceholder(),
			reactor.NewSlot("_timeout", reactor.Int()),
			reactor.NewSlot("_namespace", reactor.String()),
			reactor.NewSlot("_flag", reactor.Any()),
		},
		Params: []reactor.Param{
			reactor.NewParam("module", reactor.Named("AppCtx")),
		},
		// Application order: _config first, then _module. The chain
		// consults _module (more recently applied) first.
		Forwards: []reactor.ForwardDecl{
			reactor.NewForward("_config"),
			reactor.NewForward("_module"),
		},
	})
	return reg
}

//
// -----------------------------------------------------------------------------
// Resolution chain
// -----------------------------------------------------------------------------

// TestChain_ResolvesThroughLayers verifies slots resolve through whichever
// layer carries them: _namespace straight off the module, _timeout through
// the _config slot that the _module layer itself supplies.
func TestChain_ResolvesThroughLayers(t *testing.T) {
	t.Parallel()

	reg := newStackedRegistry(t)

	ctx := mustNew(t, reg, "AppCtx")
	res, err := reg.NewWith("Resource", map[string]any{"_module": ctx})
	require.NoError(t, err)

	ns, err := res.Get("_namespace")
	require.NoError(t, err)
	assert.Equal(t, "prod", ns)

	timeout, err := res.Get("_timeout")
	require.NoError(t, err)
	assert.Equal(t, 30, timeout)

	// _config resolved through _module.config, identical to the memoized one.
	cfg, err := res.Get("_config")
	require.NoError(t, err)
	direct, err := ctx.Get("config")
	require.NoError(t, err)
	assert.Same(t, direct, cfg)
}

// TestChain_MostRecentlyAppliedWins verifies declaration order: when both
// layers expose the target member, the more recently applied declaration is
// consulted first.
func TestChain_MostRecentlyAppliedWins(t *testing.T) {
	t.Parallel()

	reg := newStackedRegistry(t)

	ctx := mustNew(t, reg, "AppCtx")
	res, err := reg.NewWith("Resource", map[string]any{"_module": ctx})
	require.NoError(t, err)

	got, err := res.Get("_flag")
	require.NoError(t, err)
	assert.Equal(t, "from-module", got)
}

// TestChain_ExhaustionReportsAttempts verifies a fully failed chain reports
// every attempted branch once, in consultation order; the verbatim retry of
// the primary declaration adds no duplicate entry.
func TestChain_ExhaustionReportsAttempts(t *testing.T) {
	t.Parallel()

	reg := newStackedRegistry(t)

	// No _module injected: every branch fails.
	res := mustNew(t, reg, "Resource")

	_, err := res.Get("_flag")
	var re *reactor.ResolutionError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Resource", re.Type)
	assert.Equal(t, "_flag", re.Slot)
	assert.Equal(t,
		[]string{"_module.flag", "_config.flag"},
		re.Attempted)
}

// TestChain_FailedBranchesMutateNothing verifies an exhausted chain leaves
// the instance untouched: a later direct injection resolves normally.
func TestChain_FailedBranchesMutateNothing(t *testing.T) {
	t.Parallel()

	reg := newStackedRegistry(t)
	res := mustNew(t, reg, "Resource")

	_, err := res.Get("_flag")
	require.Error(t, err)

	res.Set("_config", map[string]any{"flag": "late"})
	got, err := res.Get("_flag")
	require.NoError(t, err)
	assert.Equal(t, "late", got)
}
