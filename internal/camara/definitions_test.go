package camara

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camara-gateway/internal/pipeline/template"
	manifestregistry "camara-gateway/pkg/registry"
)

func TestDefinitions_Complete(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 9)

	seen := map[string]bool{}
	for _, def := range defs {
		assert.NotEmpty(t, def.Operation)
		assert.False(t, seen[def.Operation], "duplicate operation %q", def.Operation)
		seen[def.Operation] = true

		assert.Equal(t, def.Operation, def.Schema.Operation)
		assert.NotEmpty(t, def.Endpoint.Method, "operation %q", def.Operation)
		assert.NotEmpty(t, def.Endpoint.Path, "operation %q", def.Operation)
		assert.NotEmpty(t, def.Variants, "operation %q", def.Operation)
	}

	for _, op := range []string{
		OpCreateSession, OpGetSession, OpDeleteSession,
		OpGetLocation, OpSendSMS, OpCheckReachability,
		OpVerifyNumber, OpGetAppDefinitions, OpGetCatalog,
	} {
		assert.True(t, seen[op], "operation %q not defined", op)
	}
}

func TestDefinitions_EveryOperationHasTemplate(t *testing.T) {
	templates, err := template.LoadRegistry("../../configs/templates.json")
	require.NoError(t, err)

	for _, def := range Definitions() {
		_, ok := templates.Lookup(def.Operation)
		assert.True(t, ok, "operation %q has no template in configs/templates.json", def.Operation)
	}
}

func TestDefinitions_ManifestCoverage(t *testing.T) {
	manifest, err := manifestregistry.LoadManifest("../../configs/operations.json")
	require.NoError(t, err)

	bound := map[string]bool{}
	for _, def := range Definitions() {
		bound[def.Operation] = true
	}

	for _, op := range manifest.Operations {
		assert.True(t, bound[op.Name], "manifest operation %q has no pipeline definition", op.Name)
	}
	assert.Len(t, manifest.Operations, len(bound), "manifest and catalog must list the same operations")
}

func TestDefinitions_PathParamsDeclaredInSchema(t *testing.T) {
	for _, def := range Definitions() {
		path := def.Endpoint.Path
		for {
			start := strings.Index(path, "{")
			if start < 0 {
				break
			}
			end := strings.Index(path[start:], "}")
			require.Positive(t, end, "operation %q: unbalanced path parameter", def.Operation)
			name := path[start+1 : start+end]

			found := false
			for _, spec := range def.Schema.Fields {
				if spec.Name == name {
					found = true
					break
				}
			}
			assert.True(t, found, "operation %q: path parameter %q not declared in schema", def.Operation, name)
			path = path[start+end+1:]
		}
	}
}

func TestDefinitions_OrderedVariantsMostSpecificFirst(t *testing.T) {
	for _, def := range Definitions() {
		for i := 1; i < len(def.Variants); i++ {
			assert.GreaterOrEqual(t,
				len(def.Variants[i-1].Required), len(def.Variants[i].Required),
				"operation %q: variant %q must not be richer than %q",
				def.Operation, def.Variants[i].Name, def.Variants[i-1].Name)
		}
	}
}
