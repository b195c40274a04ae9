// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"os"
)

func LoadManifest(path string) (*OperationManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var manifest OperationManifest
	err = json.Unmarshal(data, &manifest)
	return &manifest, err
}
