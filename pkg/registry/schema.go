// pkg/registry/schema.go
package registry

// OperationManifest is the versioned artifact describing every operation
// the gateway exposes. It feeds documentation tooling and the startup
// fail-fast check.
type OperationManifest struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Operations  []Operation `json:"operations"`
}

type Operation struct {
	Name        string                 `json:"name"`
	DisplayName string                 `json:"displayName"`
	Description string                 `json:"description"`
	Service     string                 `json:"service"`
	Method      string                 `json:"method"`
	Endpoint    string                 `json:"endpoint"`
	InputSchema map[string]interface{} `json:"inputSchema,omitempty"`
	ErrorCodes  []string               `json:"errorCodes,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
}

// Names returns the manifest's operation names in declaration order.
func (m *OperationManifest) Names() []string {
	names := make([]string, len(m.Operations))
	for i, op := range m.Operations {
		names[i] = op.Name
	}
	return names
}
