package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/SscSPs/valutatrade_hub/internal/apperrors"
)

// jsonFile serializes every read-modify-write of one JSON document. Writes go
// to a temp file in the same directory and are renamed over the target.
type jsonFile struct {
	path string
	mu   sync.Mutex
}

func newJSONFile(path string) *jsonFile {
	return &jsonFile{path: path}
}

// read decodes the file into v. A missing or empty file leaves v untouched.
// Callers must hold mu.
func (f *jsonFile) read(v any) error {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: reading %s: %v", apperrors.ErrPersistence, f.path, err)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", apperrors.ErrPersistence, f.path, err)
	}
	return nil
}

// write encodes v and atomically replaces the file. Callers must hold mu.
func (f *jsonFile) write(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", apperrors.ErrPersistence, f.path, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", apperrors.ErrPersistence, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file for %s: %v", apperrors.ErrPersistence, f.path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: writing %s: %v", apperrors.ErrPersistence, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: syncing %s: %v", apperrors.ErrPersistence, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: closing %s: %v", apperrors.ErrPersistence, tmpName, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		cleanup()
		return fmt.Errorf("%w: replacing %s: %v", apperrors.ErrPersistence, f.path, err)
	}
	return nil
}
