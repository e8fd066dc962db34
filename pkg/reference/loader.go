package reference

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/praetorian-inc/rexp/pkg/matcher"
	"gopkg.in/yaml.v3"
)

var (
	// cachedBuiltin holds builtin tables loaded once per process
	cachedBuiltin    *Tables
	cachedBuiltinErr error
	builtinOnce      sync.Once
)

// Builtin returns the embedded tables, loading them once.
func Builtin() (*Tables, error) {
	builtinOnce.Do(func() {
		cachedBuiltin, cachedBuiltinErr = NewLoader().LoadTables()
	})
	return cachedBuiltin, cachedBuiltinErr
}

// Loader handles loading reference tables from YAML files.
type Loader struct {
	fs fs.FS // embedded filesystem for built-in tables
}

// NewLoader creates a loader with built-in tables from embedded filesystem.
func NewLoader() *Loader {
	return &Loader{
		fs: builtinTablesFS,
	}
}

// NewLoaderWithFS creates a loader with a custom filesystem.
// Tables are read from the "tables" directory of fsys.
func NewLoaderWithFS(fsys fs.FS) *Loader {
	return &Loader{
		fs: fsys,
	}
}

// Parse loads tables from YAML bytes.
func (l *Loader) Parse(data []byte) (*Tables, error) {
	var file yamlTablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if len(file.Syntax) == 0 && len(file.Modifiers) == 0 {
		return nil, fmt.Errorf("no reference entries found in YAML")
	}

	t := &Tables{}
	if err := t.merge(file); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadFile loads tables from a YAML file path.
func (l *Loader) LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return l.Parse(data)
}

// LoadTables loads every .yml file under "tables", merged in lexical path order.
func (l *Loader) LoadTables() (*Tables, error) {
	t := &Tables{}

	err := fs.WalkDir(l.fs, "tables", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".yml" {
			return nil
		}

		data, err := fs.ReadFile(l.fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		var file yamlTablesFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if err := t.merge(file); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Tables) merge(file yamlTablesFile) error {
	syntax, err := convertYAMLEntries(file.Syntax)
	if err != nil {
		return err
	}
	modifiers, err := convertYAMLEntries(file.Modifiers)
	if err != nil {
		return err
	}
	t.Syntax = append(t.Syntax, syntax...)
	t.Modifiers = append(t.Modifiers, modifiers...)
	return nil
}

// convertYAMLEntries converts yamlEntry rows, resolving engine names.
func convertYAMLEntries(rows []yamlEntry) ([]Entry, error) {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		en := Entry{
			Code:        row.Code,
			Description: row.Description,
		}
		for _, name := range row.Engines {
			e, err := matcher.ParseEngine(name)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", row.Code, err)
			}
			en.Engines = append(en.Engines, e)
		}
		entries = append(entries, en)
	}
	return entries, nil
}
