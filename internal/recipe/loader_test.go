package recipe

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeRecipeFile marshals a recipe into dir under the given filename.
func writeRecipeFile(t *testing.T, dir, name string, r *Recipe) {
	t.Helper()
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshalling recipe: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0600); err != nil {
		t.Fatalf("writing recipe file: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writeRecipeFile(t, dir, "pale.json", validTestRecipe())

	r, err := LoadFile(filepath.Join(dir, "pale.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if r.Name != "House Pale" || len(r.MashSteps) != 1 {
		t.Errorf("loaded recipe = %+v", r)
	}
}

func TestLoadFile_AssignsID(t *testing.T) {
	dir := t.TempDir()
	rec := validTestRecipe()
	rec.ID = ""
	writeRecipeFile(t, dir, "pale.json", rec)

	r, err := LoadFile(filepath.Join(dir, "pale.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if r.ID == "" {
		t.Error("LoadFile left ID empty")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})

	t.Run("invalid recipe", func(t *testing.T) {
		rec := validTestRecipe()
		rec.MashSteps = nil
		writeRecipeFile(t, dir, "invalid.json", rec)
		if _, err := LoadFile(filepath.Join(dir, "invalid.json")); !errors.Is(err, ErrInvalid) {
			t.Errorf("expected ErrInvalid, got: %v", err)
		}
	})
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	second := validTestRecipe()
	second.ID = "22222222-2222-3333-4444-555555555555"
	second.Name = "Brown Porter"
	writeRecipeFile(t, dir, "b_porter.json", second)
	writeRecipeFile(t, dir, "a_pale.json", validTestRecipe())

	// Non-recipe content is ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hops"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "archive"), 0750); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	recipes, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("loaded %d recipes, want 2", len(recipes))
	}
	// Filename order: a_pale before b_porter.
	if recipes[0].Name != "House Pale" || recipes[1].Name != "Brown Porter" {
		t.Errorf("order = %q, %q", recipes[0].Name, recipes[1].Name)
	}
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	recipes, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if recipes != nil {
		t.Errorf("expected empty library, got %d recipes", len(recipes))
	}
}

func TestLoadDir_PropagatesFileError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadDir(dir); err == nil {
		t.Error("expected error from broken recipe file")
	}
}
