package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/labstack/gommon/log"
)

// Read loads a JSON document from path. A missing file is created with def;
// an unparseable file is reset to def (recovery is logged, not surfaced).
// Only real I/O failures come back as errors.
func Read[T any](path string, def T) (T, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := Write(path, def); err != nil {
			return def, err
		}
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc T
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Warnf("resetting corrupt document %s: %v", path, err)
		if err := Write(path, def); err != nil {
			return def, err
		}
		return def, nil
	}
	return doc, nil
}

// Write overwrites the document at path, creating parent directories as
// needed. The write is not atomic; callers serialize access.
func Write[T any](path string, doc T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
