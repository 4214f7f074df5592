// AngelaMos | 2026
// mirror.go

package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// Mirror writes JSON snapshots of a catalog kind into one directory. A
// snapshot replaces the previous file atomically; concurrent writers of the
// same kind are last-writer-wins.
type Mirror struct {
	dir string
}

func NewMirror(dir string) *Mirror {
	return &Mirror{dir: dir}
}

func (m *Mirror) Path(filename string) string {
	return filepath.Join(m.dir, filename)
}

func (m *Mirror) Write(filename string, records any) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create mirror dir: %w", err)
	}

	tmp, err := os.CreateTemp(m.dir, "."+filename+".*.tmp")
	if err != nil {
		return fmt.Errorf("create mirror temp file: %w", err)
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(records); err != nil {
		_ = tmp.Close()        //nolint:errcheck // already failing
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("encode mirror: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("close mirror temp file: %w", err)
	}

	if err := os.Rename(tmpName, m.Path(filename)); err != nil {
		_ = os.Remove(tmpName) //nolint:errcheck // best-effort cleanup
		return fmt.Errorf("replace mirror file: %w", err)
	}

	return nil
}
