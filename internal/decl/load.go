package decl

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/funvibe/typeclass/internal/config"
)

// Load parses declaration file content and fills in generated names for
// anonymous instances.
func Load(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid declaration file: %v", err)
	}
	if err := normalize(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads and parses one declaration file from disk.
func LoadFile(path string) (*File, error) {
	if !isDeclFile(path) {
		return nil, fmt.Errorf("unrecognized declaration file extension: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}
	return f, nil
}

func isDeclFile(path string) bool {
	for _, ext := range config.DeclFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func normalize(f *File) error {
	for mi := range f.Modules {
		mod := &f.Modules[mi]
		if mod.Name == "" {
			return fmt.Errorf("module %d has no name", mi)
		}
		for ii := range mod.Instances {
			inst := &mod.Instances[ii]
			if inst.Class == "" {
				return fmt.Errorf("module %s: instance %d names no class", mod.Name, ii)
			}
			if len(inst.Head) == 0 {
				return fmt.Errorf("module %s: instance for %s has an empty head", mod.Name, inst.Class)
			}
			if inst.Name == "" {
				inst.Name = generatedInstanceName(inst.Class)
			}
		}
		for ci := range mod.Classes {
			cls := &mod.Classes[ci]
			if cls.Name == "" {
				return fmt.Errorf("module %s: class %d has no name", mod.Name, ci)
			}
			if len(cls.Params) == 0 {
				return fmt.Errorf("module %s: class %s declares no parameters", mod.Name, cls.Name)
			}
		}
	}
	return nil
}

// generatedInstanceName produces a stable-enough unique name for an
// instance declared without one, mirroring how derived instances get
// compiler-chosen names.
func generatedInstanceName(class string) string {
	return fmt.Sprintf("$inst_%s_%s", class, uuid.NewString()[:8])
}
