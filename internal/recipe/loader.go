package recipe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// LoadFile reads and validates a single recipe JSON document.
// A missing ID is filled with a fresh UUID so hand-written files need not
// carry one.
func LoadFile(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe file: %w", err)
	}

	var r Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing recipe %s: %w", filepath.Base(path), err)
	}

	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	if err := Validate(&r); err != nil {
		return nil, fmt.Errorf("recipe %s: %w", filepath.Base(path), err)
	}
	return &r, nil
}

// LoadDir loads every .json recipe in a directory, sorted by filename for
// deterministic ordering. Subdirectories are ignored. A missing directory
// yields an empty list: a rig without a recipe folder just starts with an
// empty library.
func LoadDir(dir string) ([]Recipe, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading recipe directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	recipes := make([]Recipe, 0, len(names))
	for _, name := range names {
		r, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *r)
	}
	return recipes, nil
}
