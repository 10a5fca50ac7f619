package schema_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/christian-schlichtherle/reactor-di-go/reactor"
	"github.com/christian-schlichtherle/reactor-di-go/schema"
)

const appJSONC = `{
  // Engine-managed application graph.
  "types": [
    {
      "name": "Config",
      "slots": [
        {"name": "timeout", "type": "int", "default": 30},
        {"name": "host", "type": "string", "default": "localhost"},
      ],
    },
    {
      "name": "Service",
      "slots": [
        {"name": "_config", "type": "Config", "placeholder": true},
        {"name": "_timeout", "type": "int"},
      ],
      "forward": [{"ref": "_config"}], /* default "_" prefix */
    },
    {
      "name": "AppModule",
      "slots": [
        {"name": "config", "type": "Config"},
        {"name": "service", "type": "Service"},
      ],
      "module": {"caching": "memoized"},
    },
  ],
}`

const appYAML = `
types:
  - name: Config
    slots:
      - {name: timeout, type: int, default: 30}
      - {name: host, type: string, default: localhost}
  - name: Service
    slots:
      - {name: _config, type: Config, placeholder: true}
      - {name: _timeout, type: int}
    forward:
      - {ref: _config}
  - name: AppModule
    slots:
      - {name: config, type: Config}
      - {name: service, type: Service}
    module: {caching: memoized}
`

// assertAppGraph drives the registered graph end to end: the module
// memoizes, the service forwards, and the back-wired config is shared.
func assertAppGraph(t *testing.T, reg *reactor.Registry) {
	t.Helper()

	m, err := reg.New("AppModule")
	require.NoError(t, err)

	svc, err := reactor.TryAs[*reactor.Instance](m, "service")
	require.NoError(t, err)

	timeout, err := svc.Get("_timeout")
	require.NoError(t, err)
	assert.Equal(t, 30, timeout)

	cfg, err := m.Get("config")
	require.NoError(t, err)
	shared, err := svc.Get("_config")
	require.NoError(t, err)
	assert.Same(t, cfg, shared)
}

//
// -----------------------------------------------------------------------------
// Parsing
// -----------------------------------------------------------------------------

// TestParse_JSONCWithComments verifies comments and trailing commas are
// accepted and the document applies cleanly.
func TestParse_JSONCWithComments(t *testing.T) {
	t.Parallel()

	doc, err := schema.Parse([]byte(appJSONC))
	require.NoError(t, err)
	require.Len(t, doc.Types, 3)

	reg := reactor.NewRegistry()
	require.NoError(t, schema.Apply(doc, reg))
	assert.Equal(t, []string{"Config", "Service", "AppModule"}, reg.TypeNames())

	assertAppGraph(t, reg)
}

// TestParseYAML verifies the YAML form produces the same graph.
func TestParseYAML(t *testing.T) {
	t.Parallel()

	doc, err := schema.ParseYAML([]byte(appYAML))
	require.NoError(t, err)
	require.Len(t, doc.Types, 3)

	reg := reactor.NewRegistry()
	require.NoError(t, schema.Apply(doc, reg))
	assertAppGraph(t, reg)
}

// TestParse_Malformed verifies malformed input fails with a parse error.
func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := schema.Parse([]byte(`{"types": [}`))
	assert.Error(t, err)

	_, err = schema.ParseYAML([]byte("types: [\n"))
	assert.Error(t, err)
}

//
// -----------------------------------------------------------------------------
// File loading
// -----------------------------------------------------------------------------

// TestLoad_DispatchesOnExtension verifies .jsonc and .yaml both load.
func TestLoad_DispatchesOnExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	jsoncPath := filepath.Join(dir, "app.jsonc")
	require.NoError(t, os.WriteFile(jsoncPath, []byte(appJSONC), 0o644))
	yamlPath := filepath.Join(dir, "app.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(appYAML), 0o644))

	for _, path := range []string{jsoncPath, yamlPath} {
		reg := reactor.NewRegistry()
		require.NoError(t, schema.Load(path, reg))
		assertAppGraph(t, reg)
	}
}

// TestLoad_MissingFile verifies the read error names the path.
func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	err := schema.Load(filepath.Join(t.TempDir(), "nope.jsonc"), reactor.NewRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.jsonc")
}

//
// -----------------------------------------------------------------------------
// Validation
// -----------------------------------------------------------------------------

// TestApply_Validation covers document validation ahead of registration.
func TestApply_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			"missing type name",
			`{"types": [{"slots": [{"name": "x", "type": "int"}]}]}`,
			"missing name",
		},
		{
			"missing slot name",
			`{"types": [{"name": "T", "slots": [{"type": "int"}]}]}`,
			"slot missing name",
		},
		{
			"bad slot type",
			`{"types": [{"name": "T", "slots": [{"name": "x", "type": "list["}]}]}`,
			"malformed type",
		},
		{
			"missing forward ref",
			`{"types": [{"name": "T", "forward": [{"prefix": ""}]}]}`,
			"forward missing ref",
		},
		{
			"unknown caching strategy",
			`{"types": [{"name": "T", "module": {"caching": "sometimes"}}]}`,
			"disabled|memoized",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			doc, err := schema.Parse([]byte(tc.doc))
			require.NoError(t, err)

			err = schema.Apply(doc, reactor.NewRegistry())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// TestApply_RegistrationErrorsSurface verifies engine-level synthesis
// errors pass through Apply with the type named.
func TestApply_RegistrationErrorsSurface(t *testing.T) {
	t.Parallel()

	doc, err := schema.Parse([]byte(`{
	  "types": [
	    {
	      "name": "Mod",
	      "slots": [{"name": "dep", "type": "Nowhere"}],
	      "module": {"caching": "memoized"}
	    }
	  ]
	}`))
	require.NoError(t, err)

	err = schema.Apply(doc, reactor.NewRegistry())
	var ude *reactor.UnsatisfiedDependencyError
	require.ErrorAs(t, err, &ude)
	assert.Equal(t, "dep", ude.Slot)
}

// TestApply_ExplicitEmptyPrefix verifies a present-but-empty prefix selects
// rename-free public forwarding rather than the default marker.
func TestApply_ExplicitEmptyPrefix(t *testing.T) {
	t.Parallel()

	doc, err := schema.Parse([]byte(`{
	  "types": [
	    {
	      "name": "Config",
	      "slots": [{"name": "timeout", "type": "int", "default": 30}]
	    },
	    {
	      "name": "Direct",
	      "slots": [
	        {"name": "cfg", "type": "Config"},
	        {"name": "timeout", "type": "int"}
	      ],
	      "forward": [{"ref": "cfg", "prefix": ""}]
	    }
	  ]
	}`))
	require.NoError(t, err)

	reg := reactor.NewRegistry()
	require.NoError(t, schema.Apply(doc, reg))

	config, err := reg.New("Config")
	require.NoError(t, err)
	d, err := reg.NewWith("Direct", map[string]any{"cfg": config})
	require.NoError(t, err)

	got, err := d.Get("timeout")
	require.NoError(t, err)
	assert.Equal(t, 30, got)
}

// TestApply_IntDefaultsCoerced verifies JSON numbers become Go ints on
// integer slots.
func TestApply_IntDefaultsCoerced(t *testing.T) {
	t.Parallel()

	doc, err := schema.Parse([]byte(`{
	  "types": [
	    {
	      "name": "Config",
	      "slots": [
	        {"name": "timeout", "type": "int", "default": 30},
	        {"name": "rate", "type": "float", "default": 0.5}
	      ]
	    }
	  ]
	}`))
	require.NoError(t, err)

	reg := reactor.NewRegistry()
	require.NoError(t, schema.Apply(doc, reg))

	config, err := reg.New("Config")
	require.NoError(t, err)

	assert.Equal(t, 30, reactor.MustAs[int](config, "timeout"))
	assert.Equal(t, 0.5, reactor.MustAs[float64](config, "rate"))
}
