package definition

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/seqkit/errors"
	"github.com/kbukum/seqkit/logger"
)

var extensions = []string{".yaml", ".yml", ".json"}

// Loader reads definitions from files in a set of directories.
type Loader struct {
	dirs []string
	log  *logger.Logger
}

// NewLoader creates a loader that searches the given directories.
func NewLoader(dirs ...string) *Loader {
	return &Loader{dirs: dirs, log: logger.WithComponent("definition-loader")}
}

// Dirs returns the directories the loader searches.
func (l *Loader) Dirs() []string {
	return slices.Clone(l.dirs)
}

// Load finds the definition called name. It looks for {name}.yaml,
// {name}.yml and {name}.json in each directory, then in subdirectories.
func (l *Loader) Load(name string) (*Definition, error) {
	for _, dir := range l.dirs {
		for _, ext := range extensions {
			path := filepath.Join(dir, name+ext)
			if def, err := LoadFile(path); err == nil {
				return def, nil
			}

			matches, _ := filepath.Glob(filepath.Join(dir, "*", name+ext))
			for _, match := range matches {
				if def, err := LoadFile(match); err == nil {
					return def, nil
				}
			}
		}
	}
	return nil, errors.NotFound("pipeline", name).WithDetail("dirs", l.dirs)
}

// LoadAll reads every definition file under the loader's directories.
// Missing directories are skipped. A file that fails to parse aborts the load.
func (l *Loader) LoadAll() ([]*Definition, error) {
	var defs []*Definition
	for _, dir := range l.dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			l.log.Warn("definition directory not found", logger.Fields(logger.FieldPath, dir))
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !slices.Contains(extensions, filepath.Ext(path)) {
				return nil
			}
			def, err := LoadFile(path)
			if err != nil {
				return err
			}
			defs = append(defs, def)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	l.log.Debug("definitions loaded", logger.Fields("count", len(defs), "dirs", l.dirs))
	return defs, nil
}

// LoadFile reads a single definition file. JSON files parse as YAML.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("definition: parsing %s: %w", path, err)
	}
	return def, nil
}

// Parse decodes a YAML (or JSON) definition. Unknown fields are rejected.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil {
		return nil, errors.InvalidDefinition("", err.Error()).WithCause(err)
	}
	return &def, nil
}
