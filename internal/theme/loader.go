package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/tint/internal/log"
)

// themeFile is the on-disk theme shape. Tokens may be nested maps, flat
// dotted keys, or a mix; both spellings flatten to the same token names.
type themeFile struct {
	Name     string            `yaml:"name"`
	Version  string            `yaml:"version"`
	Metadata map[string]string `yaml:"metadata"`
	Tokens   map[string]any    `yaml:"tokens"`
}

// LoadFile parses one theme file into an immutable Theme.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from configured theme dirs
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var file themeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing theme file %s: %w", filepath.Base(path), err)
	}
	if file.Name == "" {
		return nil, fmt.Errorf("theme file %s: name is required", filepath.Base(path))
	}

	values := make(map[string]string)
	Flatten("", file.Tokens, values)

	meta := file.Metadata
	if meta == nil {
		meta = make(map[string]string)
	}

	return &Theme{
		name:    file.Name,
		version: file.Version,
		values:  values,
		raw:     file.Tokens,
		meta:    meta,
	}, nil
}

// LoadDir loads every .yaml/.yml theme in a directory, skipping files
// that fail to parse. The returned error joins all per-file failures so
// one broken theme never hides the rest.
func LoadDir(dir string) ([]*Theme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading theme directory: %w", err)
	}

	var (
		themes []*Theme
		errs   []error
	)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, entry.Name())
	}
	// Deterministic load order so same-source shadowing is stable.
	sort.Strings(names)

	for _, name := range names {
		t, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			log.ErrorErr(log.CatTheme, "skipping unparsable theme file", err, "file", name)
			errs = append(errs, err)
			continue
		}
		themes = append(themes, t)
	}
	return themes, errors.Join(errs...)
}

// Flatten recursively flattens a nested token mapping into dot-notation
// keys. Scalar leaves are stringified; YAML's map[any]any spelling is
// tolerated.
func Flatten(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case map[string]any:
			Flatten(key, val, result)
		case map[any]any:
			converted := make(map[string]any, len(val))
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			Flatten(key, converted, result)
		default:
			if s, ok := scalarString(v); ok {
				result[key] = s
			}
		}
	}
}

// scalarString renders a YAML scalar leaf as its token value string.
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	default:
		return "", false
	}
}
