// Package formats reads and writes mesh interchange files.
package formats

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/meshsplit/pkg/mesh"
)

// ErrUnsupportedFormat is returned for files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// ReadObjects loads every mesh object from a file, choosing the parser by
// extension.
func ReadObjects(path string) ([]*mesh.Object, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		obj, err := ParseOBJFile(path)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return obj.Objects(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}
