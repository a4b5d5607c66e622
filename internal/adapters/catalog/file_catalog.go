package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// LoadFile reads a store catalog from a YAML (.yaml, .yml) or JSON (.json) file.
func LoadFile(path string) (*StaticCatalog, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: read %q: %w", path, err)
	}

	var doc catalogDocument
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.UnmarshalStrict(bytes, &doc); err != nil {
			return nil, fmt.Errorf("load catalog: parse yaml %q: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(bytes, &doc); err != nil {
			return nil, fmt.Errorf("load catalog: parse json %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("load catalog: unsupported file extension %q", ext)
	}

	stores, err := doc.toStores()
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", path, err)
	}

	return NewStaticCatalog(stores), nil
}
