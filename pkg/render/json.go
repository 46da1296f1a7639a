package render

import (
	"encoding/json"

	"github.com/matzehuels/ecolayout/pkg/style"
)

// RenderJSON serializes the scene as pretty-printed JSON.
func RenderJSON(scene style.Scene) ([]byte, error) {
	return json.MarshalIndent(scene, "", "  ")
}
