package templates

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// Export writes every file of the set into dir on afs so it can be edited and
// loaded back with Load. Existing files are overwritten. It returns the
// written paths relative to dir.
func (s *Set) Export(afs afero.Fs, dir string) ([]string, error) {
	if err := afs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	var written []string
	for _, name := range s.Files() {
		data, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return written, fmt.Errorf("reading %s: %w", name, err)
		}

		outPath := filepath.Join(dir, filepath.FromSlash(name))
		if err := afs.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return written, fmt.Errorf("creating %s: %w", filepath.Dir(outPath), err)
		}
		if err := afero.WriteFile(afs, outPath, data, 0644); err != nil {
			return written, fmt.Errorf("writing %s: %w", outPath, err)
		}
		written = append(written, name)
	}
	return written, nil
}
